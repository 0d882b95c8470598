// Package clock measures the time between simulation frames.
package clock

import (
	"time"
)

// MaxDelta is the largest delta, in seconds, a frame may report. Longer gaps
// (a stalled process, a suspended terminal) are clamped so the ball never
// leaps across the arena.
const MaxDelta = 0.5

// Window is the number of deltas averaged in Smoothing mode.
const Window = 5

// Mode selects how deltas are reported.
type Mode int

const (
	// Raw reports the measured delta of each frame.
	Raw Mode = iota
	// Smoothing reports the average of the last Window deltas.
	Smoothing
)

// TimeSource supplies the current time.
type TimeSource interface {
	Now() time.Time
}

// SystemTime reads the monotonic system clock.
type SystemTime struct{}

// Now returns time.Now().
func (SystemTime) Now() time.Time {
	return time.Now()
}

// FrameClock reports the seconds elapsed since the previous call to Delta.
// It is owned by the simulation goroutine and is not safe for concurrent use.
type FrameClock struct {
	src     TimeSource
	mode    Mode
	prev    time.Time
	started bool

	window [Window]float64
	filled int
	next   int
}

// New returns a clock reading from src. A nil src selects SystemTime.
func New(src TimeSource, mode Mode) *FrameClock {
	if src == nil {
		src = SystemTime{}
	}
	return &FrameClock{src: src, mode: mode}
}

// Delta returns the elapsed seconds since the last call, clamped to
// [0, MaxDelta]. The first call after New or Reset only records the time
// and returns 0.
func (c *FrameClock) Delta() float64 {
	now := c.src.Now()
	if !c.started {
		c.started = true
		c.prev = now
		return 0
	}

	d := now.Sub(c.prev).Seconds()
	c.prev = now
	if d < 0 {
		d = 0
	}
	if d > MaxDelta {
		d = MaxDelta
	}

	if c.mode != Smoothing {
		return d
	}
	return c.smooth(d)
}

func (c *FrameClock) smooth(d float64) float64 {
	c.window[c.next] = d
	c.next = (c.next + 1) % Window
	if c.filled < Window {
		c.filled++
	}

	sum := 0.0
	for i := 0; i < c.filled; i++ {
		sum += c.window[i]
	}
	return sum / float64(c.filled)
}

// Reset forgets the previous frame time, so the next Delta returns 0. Use it
// after the loop was idle or the surface changed.
func (c *FrameClock) Reset() {
	c.started = false
}
