package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/savegame"
)

func (m MenuModel) indexOf(item menuItem) int {
	for i, it := range m.items {
		if it == item {
			return i
		}
	}
	return -1
}

func TestMenuItems(t *testing.T) {
	env := testEnv()
	m := NewMenuModel(env, 80, 24)
	if m.indexOf(itemResume) != -1 {
		t.Error("Resume shown without a saved game")
	}
	if len(m.items) != 5 {
		t.Errorf("len(items) = %d, expected 5", len(m.items))
	}

	env.Saves.Save(&fixedSession{snap: savegame.Snapshot{State: core.StatePlaying}})
	m = NewMenuModel(env, 80, 24)
	if m.indexOf(itemResume) != 0 {
		t.Error("Resume should be the first item with a saved game")
	}
	if !strings.Contains(m.View(), "Resume") {
		t.Error("View() does not show Resume")
	}
}

func TestMenuDifficultyWraps(t *testing.T) {
	env := testEnv()
	m := NewMenuModel(env, 80, 24)
	m.cursor = m.indexOf(itemDifficulty)

	m.settings.Difficulty = 0
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if got := m.Settings().Difficulty; got != 3 {
		t.Errorf("Difficulty = %d after left from 0, expected 3", got)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if got := m.Settings().Difficulty; got != 0 {
		t.Errorf("Difficulty = %d after right from 3, expected 0", got)
	}
	if !strings.Contains(m.View(), "Difficulty < easy >") {
		t.Errorf("View() = %q, expected the easy level", m.View())
	}
}

func TestMenuDifficultyDiscardsSave(t *testing.T) {
	env := testEnv()
	env.Saves.Save(&fixedSession{snap: savegame.Snapshot{State: core.StatePlaying}})
	m := NewMenuModel(env, 80, 24)
	m.cursor = m.indexOf(itemDifficulty)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if env.CanResume() {
		t.Error("changing difficulty kept the saved game")
	}
	if m.indexOf(itemResume) != -1 {
		t.Error("Resume still listed after the save was discarded")
	}
	if m.items[m.cursor] != itemDifficulty {
		t.Errorf("cursor on %v, expected it to stay on the difficulty", m.items[m.cursor])
	}
}

func TestMenuStartsGames(t *testing.T) {
	tests := []struct {
		name         string
		item         menuItem
		singlePlayer bool
	}{
		{"vs cpu", itemSinglePlayer, true},
		{"two players", itemTwoPlayer, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := testEnv()
			m := NewMenuModel(env, 80, 24)
			m.cursor = m.indexOf(tc.item)

			_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
			if cmd == nil {
				t.Fatal("Update(enter) returned no command")
			}
			msg, ok := cmd().(startMsg)
			if !ok {
				t.Fatalf("command produced %T, expected startMsg", cmd())
			}
			if msg.settings.SinglePlayer != tc.singlePlayer {
				t.Errorf("SinglePlayer = %v, expected %v", msg.settings.SinglePlayer, tc.singlePlayer)
			}
		})
	}
}

func TestMenuResumeUsesSavedMode(t *testing.T) {
	env := testEnv()
	env.Saves.Save(&fixedSession{snap: savegame.Snapshot{State: core.StateReady, SinglePlayer: false}})
	m := NewMenuModel(env, 80, 24)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg, ok := cmd().(startMsg)
	if !ok {
		t.Fatal("Resume did not start a game")
	}
	if msg.settings.SinglePlayer {
		t.Error("Resume should continue the two-player game")
	}
	if !env.CanResume() {
		t.Error("Resume discarded the saved game")
	}
}

func TestModelNavigation(t *testing.T) {
	env := testEnv()
	var model tea.Model = NewModel(env, 80, 24)

	model, _ = model.Update(scoresMsg{})
	if m := model.(Model); m.screen != screenScores {
		t.Fatalf("screen = %v, expected the scoreboard", m.screen)
	}
	if view := model.View(); !strings.Contains(view, "HIGH SCORES - All") || !strings.Contains(view, "No scores recorded yet") {
		t.Errorf("View() = %q", view)
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if view := model.View(); !strings.Contains(view, "MATCH HISTORY") {
		t.Errorf("View() = %q, expected the match history", view)
	}

	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("Back produced no command")
	}
	model, _ = model.Update(cmd())
	if m := model.(Model); m.screen != screenMenu {
		t.Errorf("screen = %v, expected the menu", m.screen)
	}
}
