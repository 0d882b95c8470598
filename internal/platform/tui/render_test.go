package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/games/pong"
)

func freshView() pong.View {
	return pong.New(pong.DefaultTunables(), nil).View()
}

func TestArenaViewport(t *testing.T) {
	vp := arenaViewport(80, 25)
	if vp.Scale != 48.0/1024 {
		t.Errorf("Scale = %v, expected %v", vp.Scale, 48.0/1024)
	}
	if vp.OffsetX != 22 || vp.OffsetY != 0 {
		t.Errorf("offset = (%v, %v), expected (22, 0)", vp.OffsetX, vp.OffsetY)
	}

	if vp := arenaViewport(80, 1); vp.Empty() {
		t.Error("a screen with only the HUD row should still get one arena row")
	}
}

func TestPointerToWindow(t *testing.T) {
	x, y := pointerToWindow(10, 5)
	if x != 10.5 || y != 9 {
		t.Errorf("pointerToWindow(10, 5) = (%v, %v), expected (10.5, 9)", x, y)
	}
}

func TestCellSpan(t *testing.T) {
	tests := []struct {
		lo, hi   float64
		from, to int
	}{
		{22, 22.7, 22, 22},
		{37.84, 42.16, 37, 42},
		{2.76, 3.0, 2, 2},
		{5.2, 5.3, 5, 5},
	}
	for _, tc := range tests {
		from, to := cellSpan(tc.lo, tc.hi)
		if from != tc.from || to != tc.to {
			t.Errorf("cellSpan(%v, %v) = (%d, %d), expected (%d, %d)", tc.lo, tc.hi, from, to, tc.from, tc.to)
		}
	}
}

func TestDrawViewLayout(t *testing.T) {
	s := core.NewScreen(80, 25)
	vp := arenaViewport(80, 25)
	v := freshView()

	if clipped := DrawView(s, vp, Frame{View: v, HighScore: 120, Hint: hintPlaying}); clipped {
		t.Error("DrawView() reported clipping on an 80x25 screen")
	}

	row := s.Row(0)
	if !strings.HasPrefix(row, "SCORE 00000  HI 00120  LIVES ♥♥♥") {
		t.Errorf("HUD = %q", row)
	}
	if !strings.HasSuffix(row, hintPlaying) {
		t.Errorf("HUD = %q, expected hint at the right", row)
	}

	tests := []struct {
		name string
		x, y int
	}{
		{"left border", 22, 12},
		{"paddle 1", 40, 22},
		{"paddle 2", 40, 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := s.Get(tc.x, tc.y); got != '█' {
				t.Errorf("Get(%d, %d) = %q, expected '█'", tc.x, tc.y, got)
			}
		})
	}

	if strings.ContainsRune(s.String(), '●') {
		t.Error("ball drawn before the serve")
	}
}

func TestDrawViewBallAndMessage(t *testing.T) {
	s := core.NewScreen(80, 25)
	vp := arenaViewport(80, 25)

	v := freshView()
	v.State = core.StatePlaying
	DrawView(s, vp, Frame{View: v})
	if got := s.Get(42, 17); got != '●' {
		t.Errorf("Get(42, 17) = %q, expected the ball", got)
	}

	v.State = core.StateReady
	v.Message = core.MessageReady
	DrawView(s, vp, Frame{View: v})
	for i, r := range "READY" {
		if got := s.Get(38+i, 13); got != r {
			t.Errorf("Get(%d, 13) = %q, expected %q", 38+i, got, r)
		}
	}
}

func TestDrawViewTwoPlayerHUD(t *testing.T) {
	s := core.NewScreen(80, 25)
	v := freshView()
	v.SinglePlayer = false
	v.Lives = [2]int{2, 0}

	DrawView(s, arenaViewport(80, 25), Frame{View: v})
	if row := s.Row(0); !strings.HasPrefix(row, "P1 ♥♥  P2 -") {
		t.Errorf("HUD = %q", row)
	}
}

func TestDrawViewReportsClipping(t *testing.T) {
	s := core.NewScreen(10, 5)
	if clipped := DrawView(s, arenaViewport(10, 5), Frame{View: freshView()}); !clipped {
		t.Error("DrawView() = false, expected clipping on a 10 column screen")
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(5, 1)
	s.DrawText(0, 0, "ab", core.ColorRed)
	s.DrawText(2, 0, "cd", core.Color(99))

	out := RenderScreen(s)
	for _, want := range []string{"ab", "cd"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderScreen() = %q, expected it to contain %q", out, want)
		}
	}
}

func TestArenaCellsExcludesHUD(t *testing.T) {
	r := arenaCells(80, 25)
	tests := []struct {
		x, y     int
		expected bool
	}{
		{5, 0, false},
		{5, 1, true},
		{79, 24, true},
		{80, 10, false},
		{10, 25, false},
	}
	for _, tc := range tests {
		if got := r.Contains(tc.x, tc.y); got != tc.expected {
			t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
		}
	}
}
