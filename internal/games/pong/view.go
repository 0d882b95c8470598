package pong

import (
	"github.com/vovakirdan/tui-pong/internal/arena"
	"github.com/vovakirdan/tui-pong/internal/core"
)

// ScoreCells is the number of digit cells in the score display.
const ScoreCells = 5

// View is an immutable copy of everything a renderer needs for one frame.
type View struct {
	Ball    arena.Ball
	Borders [4]arena.Rect
	Paddles [2]arena.Rect

	State        core.PlayState
	Message      core.MessageID
	Score        int
	Lives        [2]int
	MaxLives     int
	SinglePlayer bool
	Animating    bool
	Paused       bool
}

// View copies the current frame state.
func (g *Game) View() View {
	return View{
		Ball:         g.arena.Ball,
		Borders:      g.arena.Borders,
		Paddles:      g.arena.Paddles,
		State:        g.state,
		Message:      g.message,
		Score:        g.score,
		Lives:        g.lives,
		MaxLives:     g.tun.MaxLives,
		SinglePlayer: g.tun.SinglePlayer,
		Animating:    g.animating,
		Paused:       g.pause > 0,
	}
}

// BallLive reports whether the ball is in play and should be drawn.
func (v View) BallLive() bool {
	return v.State != core.StateInitializing && v.State != core.StateReady
}

// ScoreDigits returns the score as digit messages, ones digit first.
// Scores beyond the display wrap around.
func (v View) ScoreDigits() [ScoreCells]core.MessageID {
	var digits [ScoreCells]core.MessageID
	n := v.Score
	if n < 0 {
		n = 0
	}
	for i := range digits {
		digits[i] = core.DigitMessage(n % 10)
		n /= 10
	}
	return digits
}

// ScoreText returns the score as a zero-padded string, most significant
// digit first.
func (v View) ScoreText() string {
	digits := v.ScoreDigits()
	buf := make([]byte, 0, ScoreCells)
	for i := ScoreCells - 1; i >= 0; i-- {
		buf = append(buf, digits[i].Text()...)
	}
	return string(buf)
}
