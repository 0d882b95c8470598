package physics

import (
	"math"

	"github.com/vovakirdan/tui-pong/internal/arena"
	"github.com/vovakirdan/tui-pong/internal/core"
)

// Event is what a MoveBall call reports back to the session.
type Event int

const (
	EventNone Event = iota
	EventBallLostP1Side
	EventBallLostP2Side
)

// String returns a short name for the event.
func (ev Event) String() string {
	switch ev {
	case EventNone:
		return "none"
	case EventBallLostP1Side:
		return "ball-lost-p1-side"
	case EventBallLostP2Side:
		return "ball-lost-p2-side"
	default:
		return "unknown"
	}
}

// Paddle deflection tuning.
const (
	edgeZone      = 0.25 // outer share of the paddle on each side
	edgeBoostWith = 1.6  // edge hit while moving toward that edge
	edgeBoostElse = 1.2
	skewGain      = 1.25
	maxSlope      = 3.0 // max |dirX| / |dirY| after a paddle hit

	speedStep = 0.03 // share of (max-min) speed gained per bounce
)

// MoveBall advances the ball by speed*dt, bouncing off every border and
// paddle it meets on the way. Ball loss on either end stops the movement and
// is reported as an event.
func (e *Engine) MoveBall(a *arena.Arena, dt float64) Event {
	event := EventNone
	ball := &a.Ball
	radius := ball.Radius
	distance := ball.Speed * dt

	candidates := make([]Candidate, 0, len(a.Borders)+len(a.Paddles))

	for distance > 0 {
		curX, curY := ball.X, ball.Y
		dirX, dirY := ball.DirX, ball.DirY
		finalX := curX + dirX*distance
		finalY := curY + dirY*distance

		left := math.Min(curX, finalX) - radius
		right := math.Max(curX, finalX) + radius
		bottom := math.Min(curY, finalY) - radius
		top := math.Max(curY, finalY) + radius

		candidates = candidates[:0]
		for i, b := range a.Borders {
			if BroadPhase(b, left, right, bottom, top) {
				candidates = append(candidates, Candidate{Target: Target{Kind: TargetBorder, Index: i}, Rect: b})
			}
		}
		for i, p := range a.Paddles {
			if BroadPhase(p, left, right, bottom, top) {
				candidates = append(candidates, Candidate{Target: Target{Kind: TargetPaddle, Index: i + 1}, Rect: p})
			}
		}

		var (
			hit Hit
			ok  bool
		)
		if len(candidates) > 0 {
			hit, ok = e.NarrowPhase(candidates, curX, curY, dirX, dirY, distance, radius)
		}
		if !ok {
			ball.SetPosition(finalX, finalY)
			break
		}

		if hit.Traveled <= 0 {
			e.log().Error("collision detection did not move the ball", "target", hit.Target)
			hit.Traveled = MinStep
		}

		newX := curX + dirX*hit.Traveled + hit.AdjX
		newY := curY + dirY*hit.Traveled + hit.AdjY
		ball.SetPosition(newX, newY)
		if e.onContact != nil {
			e.onContact(hit, newX, newY)
		}

		newDirX, newDirY := e.reflect(hit.Face, dirX, dirY)

		switch hit.Target.Kind {
		case TargetPaddle:
			if hit.Face == FaceHorizontal {
				newDirX, newDirY = paddleSkew(*a.Paddle(hit.Target.Index), newX, dirX, newDirX, newDirY)
			}
		case TargetBorder:
			switch hit.Target.Index {
			case arena.BorderBottom:
				e.log().Debug("ball hit the bottom border")
				event = EventBallLostP1Side
				distance = 0
			case arena.BorderTop:
				e.log().Debug("ball hit the top border")
				event = EventBallLostP2Side
				distance = 0
			}
		}

		ball.Speed = math.Min(ball.Speed+(a.MaxSpeed-a.MinSpeed)*speedStep, a.MaxSpeed)
		ball.SetDirection(newDirX, newDirY)
		distance -= hit.Traveled
	}

	return event
}

func (e *Engine) reflect(face Face, dirX, dirY float64) (float64, float64) {
	switch face {
	case FaceHorizontal:
		return dirX, -dirY
	case FaceVertical:
		return -dirX, dirY
	case FaceSharpCorner:
		return -dirX, -dirY
	default:
		e.log().Error("unexpected hit face", "face", face)
		return dirX, dirY
	}
}

// paddleSkew bends the reflected direction according to where on the paddle
// the ball landed. dirX is the direction before the bounce.
func paddleSkew(paddle arena.Rect, hitX, dirX, newDirX, newDirY float64) (float64, float64) {
	offset := core.ClampF((hitX-paddle.Left())/paddle.Width(), 0, 1) - 0.5

	if math.Abs(offset) > edgeZone {
		if core.Sign(offset) == core.Sign(dirX) {
			offset *= edgeBoostWith
		} else {
			offset *= edgeBoostElse
		}
	}

	newDirX += offset * skewGain
	if math.Abs(newDirX) > math.Abs(newDirY)*maxSlope {
		newDirY = core.CopySign(math.Abs(newDirX)/maxSlope, newDirY)
	}
	return newDirX, newDirY
}
