// Package pong implements the paddle-and-ball session: lives, score, pause
// timers and the play-state machine driven by the physics engine. In
// single-player mode player 2 is a CPU that follows the ball with a delay.
package pong

import (
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pong/internal/arena"
	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/physics"
)

// Timing defaults.
const (
	MaxFrameDelta      = 500 * time.Millisecond
	DefaultReadyPause  = 1500 * time.Millisecond
	DefaultServePause  = 500 * time.Millisecond
	SurfaceChangePause = 1500 * time.Millisecond
)

// ScorePerPoint is added in single-player mode for every ball the CPU misses.
const ScorePerPoint = 10

var (
	// ErrBadState is returned by Advance when the session is in a state the
	// current mode does not know how to handle.
	ErrBadState = errors.New("pong: bad play state")

	// ErrBadEvent is returned by Advance for an unknown physics event.
	ErrBadEvent = errors.New("pong: bad game event")
)

// Tunables are the per-session parameters chosen by difficulty and mode.
type Tunables struct {
	MaxLives     int
	MinSpeed     float64
	MaxSpeed     float64
	BallSize     float64 // Ball size multiplier
	Paddle1Size  float64 // Paddle width multipliers
	Paddle2Size  float64
	CPUDelay     time.Duration
	SinglePlayer bool

	ReadyPause time.Duration // Pause after a lost ball; zero selects the default
	ServePause time.Duration // Pause between READY and the serve; zero selects the default
}

// DefaultTunables returns the "normal" single-player settings.
func DefaultTunables() Tunables {
	return Tunables{
		MaxLives:     3,
		MinSpeed:     300,
		MaxSpeed:     800,
		BallSize:     1,
		Paddle1Size:  1,
		Paddle2Size:  0.8,
		CPUDelay:     100 * time.Millisecond,
		SinglePlayer: true,
	}
}

func (t Tunables) readyPause() float64 {
	if t.ReadyPause <= 0 {
		return DefaultReadyPause.Seconds()
	}
	return t.ReadyPause.Seconds()
}

func (t Tunables) servePause() float64 {
	if t.ServePause <= 0 {
		return DefaultServePause.Seconds()
	}
	return t.ServePause.Seconds()
}

func (t Tunables) mode() string {
	if t.SinglePlayer {
		return "single-player"
	}
	return "two-player"
}

// Game is one session. It is not safe for concurrent use; the surface host
// owns it on a single goroutine.
type Game struct {
	tun    Tunables
	arena  *arena.Arena
	engine *physics.Engine
	logger *log.Logger

	state     core.PlayState
	lives     [2]int
	score     int
	message   core.MessageID
	pause     float64 // seconds left
	animating bool

	cpu cpuQueue
}

// New allocates a session for the given tunables and resets it.
// A nil logger selects the default logger.
func New(t Tunables, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.Default().WithPrefix("pong")
	}
	g := &Game{
		logger: logger,
		engine: physics.NewEngine(logger),
	}
	g.Configure(t)
	return g
}

// Configure replaces the tunables, reallocates the entities and resets the
// session.
func (g *Game) Configure(t Tunables) {
	g.tun = t
	g.arena = arena.New(arena.Sizes{
		Ball:    t.BallSize,
		Paddle1: t.Paddle1Size,
		Paddle2: t.Paddle2Size,
	}, t.MinSpeed, t.MaxSpeed)
	g.cpu = cpuQueue{delay: t.CPUDelay.Seconds()}
	g.Reset()
}

// Tunables returns the current session parameters.
func (g *Game) Tunables() Tunables {
	return g.tun
}

// Reset starts a fresh session without touching any saved game.
func (g *Game) Reset() {
	g.state = core.StateInitializing
	g.animating = true
	g.message = core.MessageNone
	g.pause = 0
	g.lives = [2]int{g.tun.MaxLives, g.tun.MaxLives}
	g.score = 0
	g.cpu.clear()
	g.arena.SetPaddleColor(core.ColorWhite)
	g.resetBall()
}

func (g *Game) resetBall() {
	g.arena.ResetBall()
}

// SurfaceChanged pauses briefly after the drawing surface changed and makes
// sure at least one more frame gets drawn.
func (g *Game) SurfaceChanged() {
	g.setPause(SurfaceChangePause.Seconds())
	g.animating = true
}

func (g *Game) setPause(seconds float64) {
	g.pause = seconds
}

// MovePaddle moves a player's paddle to arenaX, clamped to the walls. In
// single-player mode requests for player 2 are ignored; the CPU owns it.
func (g *Game) MovePaddle(player int, arenaX float64) {
	if player == 2 && g.tun.SinglePlayer {
		return
	}
	g.arena.MovePaddle(player, arenaX)
}

// NudgePaddle moves a player's paddle by dx arena units.
func (g *Game) NudgePaddle(player int, dx float64) {
	g.MovePaddle(player, g.arena.Paddle(player).X+dx)
}

// Animating reports whether frames still need to be produced. It turns false
// once the session reaches a terminal state.
func (g *Game) Animating() bool {
	return g.animating
}

// State returns the current play state.
func (g *Game) State() core.PlayState {
	return g.state
}

// Score returns the current score.
func (g *Game) Score() int {
	return g.score
}

// Lives returns the remaining lives of player 1 or 2.
func (g *Game) Lives(player int) int {
	if player == 2 {
		return g.lives[1]
	}
	return g.lives[0]
}

// Message returns the message currently shown.
func (g *Game) Message() core.MessageID {
	return g.message
}

// Paused reports whether a pause timer is running.
func (g *Game) Paused() bool {
	return g.pause > 0
}

// Arena exposes the entities, mostly for tests and the headless simulator.
func (g *Game) Arena() *arena.Arena {
	return g.arena
}
