package pong

import (
	"fmt"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/physics"
)

// Advance runs one frame of dt seconds: pause handling, the play-state
// machine, ball movement and the reaction to whatever the ball hit. dt is
// capped at MaxFrameDelta. The returned event is the physics event of this
// frame; an error means the session is in an impossible state and must not
// be advanced further.
func (g *Game) Advance(dt float64) (physics.Event, error) {
	if limit := MaxFrameDelta.Seconds(); dt > limit {
		dt = limit
	}
	if dt < 0 {
		dt = 0
	}

	if g.tun.SinglePlayer {
		g.cpu.advance(dt, g.moveCPU)
	}

	advance := g.tickPause(dt)

	var err error
	if g.tun.SinglePlayer {
		advance, err = g.stepSinglePlayer(advance)
	} else {
		advance, err = g.stepTwoPlayer(advance)
	}
	if err != nil {
		return physics.EventNone, err
	}

	event := physics.EventNone
	if advance {
		event = g.engine.MoveBall(g.arena, dt)
		if g.tun.SinglePlayer {
			err = g.handleSinglePlayerEvent(event)
		} else {
			err = g.handleTwoPlayerEvent(event)
		}
	}

	if g.tun.SinglePlayer {
		g.cpu.schedule(g.arena.Ball.X, g.moveCPU)
	}
	return event, err
}

// tickPause counts the pause down and rotates the paddle colours while a
// rally is paused. It returns false while paused, including the frame in
// which the pause expires.
func (g *Game) tickPause(dt float64) bool {
	if g.pause <= 0 {
		return true
	}

	if g.pause > dt {
		g.pause -= dt
		if g.state == core.StatePlaying {
			g.arena.SetPaddleColor(nextPauseColor(g.arena.Paddles[0].Color))
		}
	} else {
		g.pause = 0
		g.arena.SetPaddleColor(core.ColorWhite)
	}
	return false
}

// nextPauseColor rotates cyan, magenta, yellow. Any other colour starts the
// rotation at cyan.
func nextPauseColor(c core.Color) core.Color {
	switch c {
	case core.ColorCyan:
		return core.ColorMagenta
	case core.ColorMagenta:
		return core.ColorYellow
	default:
		return core.ColorCyan
	}
}

func (g *Game) stepSinglePlayer(advance bool) (bool, error) {
	switch g.state {
	case core.StateInitializing:
		g.state = core.StateReady
		return false, nil
	case core.StateReady:
		return g.stepReady(advance), nil
	case core.StatePlaying:
	case core.StateWon:
		g.animating = false
		return false, nil
	case core.StateLost:
		g.message = core.MessageGameOver
		g.animating = false
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v in %s mode", ErrBadState, g.state, g.tun.mode())
	}
	return advance, nil
}

func (g *Game) stepTwoPlayer(advance bool) (bool, error) {
	switch g.state {
	case core.StateInitializing:
		g.state = core.StateReady
		return false, nil
	case core.StateReady:
		return g.stepReady(advance), nil
	case core.StatePlaying:
	case core.StateP1Won:
		g.message = core.MessageWinnerP1
		g.animating = false
		return false, nil
	case core.StateP2Won:
		g.message = core.MessageWinnerP2
		g.animating = false
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v in %s mode", ErrBadState, g.state, g.tun.mode())
	}
	return advance, nil
}

// stepReady shows READY until the pause is over, then serves: the state
// moves to playing behind a short pause and the ball does not move yet.
func (g *Game) stepReady(advance bool) bool {
	g.message = core.MessageReady
	if advance {
		g.state = core.StatePlaying
		g.message = core.MessageNone
		g.setPause(g.tun.servePause())
	}
	return false
}

func (g *Game) handleSinglePlayerEvent(event physics.Event) error {
	switch event {
	case physics.EventNone:
	case physics.EventBallLostP1Side:
		g.lives[0]--
		if g.lives[0] <= 0 {
			g.lives[0] = 0
			g.state = core.StateLost
			g.logger.Info("game over", "score", g.score)
			return nil
		}
		g.serveAgain()
	case physics.EventBallLostP2Side:
		g.score += ScorePerPoint
		g.logger.Debug("ball hit the top border", "score", g.score)
		g.serveAgain()
	default:
		return fmt.Errorf("%w: %v", ErrBadEvent, event)
	}
	return nil
}

func (g *Game) handleTwoPlayerEvent(event physics.Event) error {
	switch event {
	case physics.EventNone:
	case physics.EventBallLostP1Side:
		g.lives[0]--
		if g.lives[0] <= 0 {
			g.lives[0] = 0
			g.state = core.StateP2Won
			g.logger.Info("player 2 wins")
			return nil
		}
		g.serveAgain()
	case physics.EventBallLostP2Side:
		g.lives[1]--
		if g.lives[1] <= 0 {
			g.lives[1] = 0
			g.state = core.StateP1Won
			g.logger.Info("player 1 wins")
			return nil
		}
		g.serveAgain()
	default:
		return fmt.Errorf("%w: %v", ErrBadEvent, event)
	}
	return nil
}

func (g *Game) serveAgain() {
	g.state = core.StateReady
	g.message = core.MessageReady
	g.setPause(g.tun.readyPause())
	g.resetBall()
}
