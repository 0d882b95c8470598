package sim

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pong/internal/games/pong"
)

func quiet() *log.Logger {
	return log.New(io.Discard)
}

func TestRunRejectsBadOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"no duration", Options{Step: time.Millisecond}},
		{"no step", Options{Duration: time.Second}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Run(tc.opts, quiet()); !errors.Is(err, ErrOptions) {
				t.Errorf("Run() error = %v, expected ErrOptions", err)
			}
		})
	}
}

func TestRunFrameCount(t *testing.T) {
	res, err := Run(Options{
		Duration: time.Second,
		Step:     time.Second / 64,
		Tunables: pong.DefaultTunables(),
	}, quiet())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if res.Frames != 64 {
		t.Errorf("Frames = %d, expected 64", res.Frames)
	}
	if res.Elapsed != time.Second {
		t.Errorf("Elapsed = %v, expected 1s", res.Elapsed)
	}
}

func TestRunIsReproducible(t *testing.T) {
	opts := Options{
		Duration:  30 * time.Second,
		Step:      time.Second / 60,
		Smoothing: true,
		Tunables:  pong.DefaultTunables(),
	}
	first, err := Run(opts, quiet())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	second, err := Run(opts, quiet())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if first != second {
		t.Errorf("runs differ:\n%+v\n%+v", first, second)
	}
}

func TestRunAccounting(t *testing.T) {
	twoPlayer := pong.DefaultTunables()
	twoPlayer.SinglePlayer = false

	tests := []struct {
		name      string
		tunables  pong.Tunables
		autopilot bool
	}{
		{"single player", pong.DefaultTunables(), false},
		{"single player autopilot", pong.DefaultTunables(), true},
		{"two player", twoPlayer, false},
		{"two player autopilot", twoPlayer, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Run(Options{
				Duration:  3 * time.Minute,
				Step:      time.Second / 60,
				Tunables:  tc.tunables,
				Autopilot: tc.autopilot,
				StopOnEnd: true,
			}, quiet())
			if err != nil {
				t.Fatalf("Run() failed: %v", err)
			}

			v := res.Final
			if got := tc.tunables.MaxLives - v.Lives[0]; got != res.LostP1 {
				t.Errorf("P1 lost %d lives but %d balls", got, res.LostP1)
			}
			if tc.tunables.SinglePlayer {
				if v.Score != res.LostP2*pong.ScorePerPoint {
					t.Errorf("Score = %d, expected %d", v.Score, res.LostP2*pong.ScorePerPoint)
				}
			} else if got := tc.tunables.MaxLives - v.Lives[1]; got != res.LostP2 {
				t.Errorf("P2 lost %d lives but %d balls", got, res.LostP2)
			}
			if v.State.Terminal() && v.Animating {
				t.Error("finished session still animating")
			}
		})
	}
}
