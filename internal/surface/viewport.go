package surface

import (
	"github.com/vovakirdan/tui-pong/internal/arena"
)

// Viewport maps window coordinates (origin top-left, y down) onto the arena
// (origin bottom-left, y up). The arena keeps its aspect ratio and is
// centered in the window.
type Viewport struct {
	Width   float64 // window size
	Height  float64
	Scale   float64 // window units per arena unit
	OffsetX float64 // window position of the arena's top-left corner
	OffsetY float64
}

// Fit returns the largest viewport of the arena that fits the window.
func Fit(width, height float64) Viewport {
	v := Viewport{Width: width, Height: height}
	if width <= 0 || height <= 0 {
		return v
	}

	v.Scale = min(width/arena.Width, height/arena.Height)
	v.OffsetX = (width - arena.Width*v.Scale) / 2
	v.OffsetY = (height - arena.Height*v.Scale) / 2
	return v
}

// Empty reports whether the viewport has no drawable area.
func (v Viewport) Empty() bool {
	return v.Scale <= 0
}

// ToArena converts a window position to arena units.
func (v Viewport) ToArena(wx, wy float64) (float64, float64) {
	if v.Empty() {
		return 0, 0
	}
	ax := (wx - v.OffsetX) / v.Scale
	ay := arena.Height - (wy-v.OffsetY)/v.Scale
	return ax, ay
}

// ToWindow converts an arena position to window units.
func (v Viewport) ToWindow(ax, ay float64) (float64, float64) {
	wx := v.OffsetX + ax*v.Scale
	wy := v.OffsetY + (arena.Height-ay)*v.Scale
	return wx, wy
}

// PlayerAt returns which player a pointer at arena height ay steers: the
// lower half belongs to player 1, the upper half to player 2.
func PlayerAt(ay float64) int {
	if ay < arena.Height/2 {
		return 1
	}
	return 2
}
