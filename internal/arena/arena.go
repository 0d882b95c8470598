// Package arena holds the fixed-size playing field and the entities moving in
// it: the ball, the four borders and the two paddles. All coordinates are in
// arena units with the origin at the bottom-left corner and y growing upward.
package arena

import (
	"math"

	"github.com/vovakirdan/tui-pong/internal/core"
)

// Arena dimensions. Everything else is derived from them.
const (
	Width  = 768.0
	Height = 1024.0
)

var (
	BorderWidth  = math.Floor(Width * 0.02)
	PaddleHeight = Height * 0.01
	Paddle1Y     = Height * 0.12
	Paddle2Y     = Height - Height*0.12

	baseBallDiameter = math.Floor(Width * 0.025)
	basePaddleWidth  = math.Floor(Width * 0.02 * 6)
)

// Border indices. The bottom border sits behind player 1, the top border
// behind player 2.
const (
	BorderBottom = 0
	BorderLeft   = 1
	BorderRight  = 2
	BorderTop    = 3
)

// Ball start conditions.
var (
	BallStartX    = Width/2 + 45
	BallStartY    = Height*0.43 - 100
	ballStartDirX = -0.3
	ballStartDirY = -1.0
)

// Rect is an axis-aligned rectangle stored as center and half extents.
type Rect struct {
	X, Y         float64 // Center
	HalfW, HalfH float64
	Color        core.Color
}

// NewRect builds a rect from its center and full size.
func NewRect(cx, cy, w, h float64, c core.Color) Rect {
	return Rect{X: cx, Y: cy, HalfW: w / 2, HalfH: h / 2, Color: c}
}

// Left returns the x of the left edge.
func (r Rect) Left() float64 { return r.X - r.HalfW }

// Right returns the x of the right edge.
func (r Rect) Right() float64 { return r.X + r.HalfW }

// Bottom returns the y of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y - r.HalfH }

// Top returns the y of the top edge.
func (r Rect) Top() float64 { return r.Y + r.HalfH }

// Width returns the full width.
func (r Rect) Width() float64 { return r.HalfW * 2 }

// Ball is the moving circle. Its direction is always a unit vector.
type Ball struct {
	X, Y   float64
	DirX   float64
	DirY   float64
	Speed  float64
	Radius float64
	Color  core.Color
}

// SetDirection stores (x, y) normalized to unit length.
// A zero vector leaves the direction unchanged.
func (b *Ball) SetDirection(x, y float64) {
	l := math.Hypot(x, y)
	if l == 0 {
		return
	}
	b.DirX = x / l
	b.DirY = y / l
}

// SetPosition moves the ball center.
func (b *Ball) SetPosition(x, y float64) {
	b.X = x
	b.Y = y
}

// Sizes are the per-session entity size multipliers.
type Sizes struct {
	Ball    float64
	Paddle1 float64
	Paddle2 float64
}

// Arena owns every entity of a session.
type Arena struct {
	Ball    Ball
	Borders [4]Rect
	Paddles [2]Rect

	// Ball speed bounds for the current session.
	MinSpeed float64
	MaxSpeed float64
}

// New allocates the entities for the given sizes and speed bounds and
// places the ball at its start position.
func New(sizes Sizes, minSpeed, maxSpeed float64) *Arena {
	a := &Arena{MinSpeed: minSpeed, MaxSpeed: maxSpeed}

	bw := BorderWidth
	a.Borders[BorderBottom] = NewRect(Width/2, 0, Width, bw, core.ColorWhite)
	a.Borders[BorderLeft] = NewRect(bw/2, Height/2, bw, Height, core.ColorWhite)
	a.Borders[BorderRight] = NewRect(Width-bw/2, Height/2, bw, Height, core.ColorWhite)
	a.Borders[BorderTop] = NewRect(Width/2, Height, Width, bw, core.ColorWhite)

	a.Paddles[0] = NewRect(Width/2, Paddle1Y, basePaddleWidth*sizes.Paddle1, PaddleHeight, core.ColorWhite)
	a.Paddles[1] = NewRect(Width/2, Paddle2Y, basePaddleWidth*sizes.Paddle2, PaddleHeight, core.ColorWhite)

	a.Ball = Ball{
		Radius: baseBallDiameter * sizes.Ball / 2,
		Color:  core.ColorOrange,
	}
	a.ResetBall()
	return a
}

// ResetBall puts the ball back at the serve position heading down-left at
// minimum speed.
func (a *Arena) ResetBall() {
	a.Ball.SetDirection(ballStartDirX, ballStartDirY)
	a.Ball.Speed = a.MinSpeed
	a.Ball.SetPosition(BallStartX, BallStartY)
}

// Paddle returns the paddle of player 1 or 2.
func (a *Arena) Paddle(player int) *Rect {
	if player == 2 {
		return &a.Paddles[1]
	}
	return &a.Paddles[0]
}

// MovePaddle centers the paddle of the given player at x, clamped so the
// paddle stays between the side walls.
func (a *Arena) MovePaddle(player int, x float64) {
	p := a.Paddle(player)
	p.X = PaddleX(x, p.HalfW)
}

// PaddleX clamps a paddle center so a paddle of the given half width stays
// between the side walls.
func PaddleX(x, halfW float64) float64 {
	return core.ClampF(x, BorderWidth+halfW, Width-BorderWidth-halfW)
}

// SetPaddleColor paints both paddles.
func (a *Arena) SetPaddleColor(c core.Color) {
	a.Paddles[0].Color = c
	a.Paddles[1].Color = c
}
