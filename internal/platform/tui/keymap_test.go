package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-pong/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"a", runeKey("a"), core.ActionP1Left, false},
		{"left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionP1Left, false},
		{"d", runeKey("d"), core.ActionP1Right, false},
		{"right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionP1Right, false},
		{"j", runeKey("j"), core.ActionP2Left, false},
		{"l", runeKey("l"), core.ActionP2Right, false},
		{"p", runeKey("p"), core.ActionSuspend, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEscape}, core.ActionSuspend, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"b", runeKey("b"), core.ActionBack, false},
		{"q", runeKey("q"), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"x", runeKey("x"), core.ActionNone, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			action, quit := km.MapKey(tc.msg)
			if action != tc.action || quit != tc.quit {
				t.Errorf("MapKey() = (%v, %v), expected (%v, %v)", action, quit, tc.action, tc.quit)
			}
		})
	}
}

func TestNudge(t *testing.T) {
	km := NewKeyMapper()

	player, dx, ok := km.Nudge(core.ActionP2Left)
	if !ok || player != 2 || dx != -nudgeStep {
		t.Errorf("Nudge(P2Left) = (%d, %v, %v), expected (2, %v, true)", player, dx, ok, -nudgeStep)
	}
	if _, _, ok := km.Nudge(core.ActionConfirm); ok {
		t.Error("Nudge(Confirm) should not move a paddle")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected MenuAction
	}{
		{"up", tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{"k", runeKey("k"), MenuActionUp},
		{"down", tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{"left", tea.KeyMsg{Type: tea.KeyLeft}, MenuActionLeft},
		{"l", runeKey("l"), MenuActionRight},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{"esc", tea.KeyMsg{Type: tea.KeyEscape}, MenuActionBack},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{"q", runeKey("q"), MenuActionQuit},
		{"x", runeKey("x"), MenuActionNone},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := km.MapKeyToMenuAction(tc.msg); got != tc.expected {
				t.Errorf("MapKeyToMenuAction() = %v, expected %v", got, tc.expected)
			}
		})
	}
}
