// Package sim runs pong sessions headless, frame by frame, on a mocked
// clock. Runs are reproducible for equal options.
package sim

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pong/internal/clock"
	"github.com/vovakirdan/tui-pong/internal/games/pong"
	"github.com/vovakirdan/tui-pong/internal/physics"
)

// ErrOptions is returned for a run that cannot be performed.
var ErrOptions = errors.New("sim: invalid options")

// Options describe one headless run.
type Options struct {
	Duration  time.Duration // Simulated time
	Step      time.Duration // Wall time between frames
	Smoothing bool          // Average frame deltas
	Tunables  pong.Tunables
	Autopilot bool // Human paddles follow the ball
	StopOnEnd bool // Stop once the session is over
}

// Result summarizes a run.
type Result struct {
	Frames  int
	LostP1  int // Balls lost on player 1's side
	LostP2  int
	Elapsed time.Duration // Simulated time actually run
	Final   pong.View
}

// Run simulates a session from scratch.
func Run(opts Options, logger *log.Logger) (Result, error) {
	if opts.Duration <= 0 || opts.Step <= 0 {
		return Result{}, fmt.Errorf("%w: duration and step must be positive", ErrOptions)
	}
	if logger == nil {
		logger = log.Default().WithPrefix("sim")
	}

	mode := clock.Raw
	if opts.Smoothing {
		mode = clock.Smoothing
	}
	src := clock.NewMockTime(time.Unix(0, 0))
	fc := clock.New(src, mode)
	game := pong.New(opts.Tunables, logger)

	var res Result
	fc.Delta()
	for res.Elapsed < opts.Duration {
		src.Advance(opts.Step)
		res.Elapsed += opts.Step

		if opts.Autopilot {
			steer(game, opts.Tunables.SinglePlayer)
		}

		event, err := game.Advance(fc.Delta())
		if err != nil {
			return res, fmt.Errorf("sim: frame %d: %w", res.Frames, err)
		}
		res.Frames++

		switch event {
		case physics.EventBallLostP1Side:
			res.LostP1++
		case physics.EventBallLostP2Side:
			res.LostP2++
		}

		if opts.StopOnEnd && game.State().Terminal() && !game.Animating() {
			break
		}
	}

	res.Final = game.View()
	logger.Debug("simulation finished",
		"frames", res.Frames,
		"state", res.Final.State,
		"score", res.Final.Score,
	)
	return res, nil
}

// steer puts the human paddles under the ball.
func steer(game *pong.Game, singlePlayer bool) {
	x := game.Arena().Ball.X
	game.MovePaddle(1, x)
	if !singlePlayer {
		game.MovePaddle(2, x)
	}
}
