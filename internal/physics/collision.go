// Package physics moves the ball through the arena. Collision detection runs
// in two passes: a broad phase that discards rectangles the swept ball cannot
// reach, and a narrow phase that steps a probe along the path to find the
// first contact, the face that was struck and the correction that leaves the
// ball tangent to it.
package physics

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pong/internal/arena"
	"github.com/vovakirdan/tui-pong/internal/core"
)

// Probe step limits, in arena units. MaxStep must stay well below the ball
// radius or the probe can tunnel through a paddle.
const (
	MaxStep = 2.0
	MinStep = 0.001
)

// Face is the kind of surface the ball struck.
type Face int

const (
	FaceNone Face = iota
	FaceHorizontal
	FaceVertical
	FaceSharpCorner
)

// String returns a short name for the face.
func (f Face) String() string {
	switch f {
	case FaceHorizontal:
		return "horizontal"
	case FaceVertical:
		return "vertical"
	case FaceSharpCorner:
		return "sharp-corner"
	default:
		return "none"
	}
}

// TargetKind tags what a collision candidate is.
type TargetKind int

const (
	TargetBorder TargetKind = iota
	TargetPaddle
)

// Target identifies a collidable rect. For borders Index is one of the
// arena.Border* constants; for paddles it is the player number (1 or 2).
type Target struct {
	Kind  TargetKind
	Index int
}

// Candidate is a rect that survived the broad phase.
type Candidate struct {
	Target Target
	Rect   arena.Rect
}

// Hit describes the first contact found by the narrow phase.
type Hit struct {
	Target   Target
	Rect     arena.Rect
	Traveled float64
	Face     Face
	AdjX     float64
	AdjY     float64
}

// BroadPhase reports whether target overlaps the box spanned by left, right,
// bottom and top. Rects that merely touch do not overlap.
func BroadPhase(target arena.Rect, left, right, bottom, top float64) bool {
	checkLeft := math.Max(target.Left(), left)
	checkRight := math.Min(target.Right(), right)
	checkBottom := math.Max(target.Bottom(), bottom)
	checkTop := math.Min(target.Top(), top)

	return checkRight > checkLeft && checkTop > checkBottom
}

// Engine runs the narrow phase and the ball movement loop. The zero value
// logs through the default logger.
type Engine struct {
	logger *log.Logger

	// onContact, when set, sees every resolved hit and the corrected ball
	// position, before the bounce changes direction and speed.
	onContact func(hit Hit, x, y float64)
}

// NewEngine creates an engine logging through logger. A nil logger selects
// the default logger.
func NewEngine(logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default().WithPrefix("physics")
	}
	return &Engine{logger: logger}
}

func (e *Engine) log() *log.Logger {
	if e == nil || e.logger == nil {
		return log.Default()
	}
	return e.logger
}

// NarrowPhase walks a probe from (x, y) along (dirX, dirY) for up to distance
// units and returns the first candidate the circle of the given radius
// touches. Candidates are tested in order at every step.
func (e *Engine) NarrowPhase(candidates []Candidate, x, y, dirX, dirY, distance, radius float64) (Hit, bool) {
	radiusSq := radius * radius
	traveled := 0.0

	for traveled < distance {
		switch remaining := distance - traveled; {
		case remaining > MaxStep:
			traveled += MaxStep
		case remaining < MinStep:
			return Hit{}, false
		default:
			traveled = distance
		}

		probeX := x + dirX*traveled
		probeY := y + dirY*traveled

		for _, c := range candidates {
			r := c.Rect

			// Fold the probe into the first quadrant around the rect center.
			circleX := math.Abs(probeX - r.X)
			circleY := math.Abs(probeY - r.Y)

			if circleX > r.HalfW+radius || circleY > r.HalfH+radius {
				continue
			}

			var face, adjust Face
			switch {
			case circleX <= r.HalfW:
				face, adjust = FaceHorizontal, FaceHorizontal
			case circleY <= r.HalfH:
				face, adjust = FaceVertical, FaceVertical
			default:
				xdist := circleX - r.HalfW
				ydist := circleY - r.HalfH
				if xdist*xdist+ydist*ydist > radiusSq {
					continue
				}

				face = e.cornerFace(dirX, dirY, r.X-probeX, r.Y-probeY)
				if xdist < ydist {
					adjust = FaceHorizontal
				} else {
					adjust = FaceVertical
				}
			}

			hit := Hit{Target: c.Target, Rect: r, Traveled: traveled, Face: face}
			switch adjust {
			case FaceHorizontal:
				hit.AdjY = r.HalfH + radius - circleY
				if probeY < r.Y {
					hit.AdjY = -hit.AdjY
				}
			case FaceVertical:
				hit.AdjX = r.HalfW + radius - circleX
				if probeX < r.X {
					hit.AdjX = -hit.AdjX
				}
			}
			return hit, true
		}
	}

	return Hit{}, false
}

// cornerFace classifies a corner contact by comparing the travel direction
// with the direction from the probe to the rect center.
func (e *Engine) cornerFace(dirX, dirY, toRectX, toRectY float64) Face {
	sameX := core.Sign(dirX) == core.Sign(toRectX)
	sameY := core.Sign(dirY) == core.Sign(toRectY)

	switch {
	case sameX && sameY:
		return FaceSharpCorner
	case sameX:
		return FaceVertical
	case sameY:
		return FaceHorizontal
	default:
		e.log().Warn("impossible corner hit", "dirX", dirX, "dirY", dirY)
		return FaceSharpCorner
	}
}
