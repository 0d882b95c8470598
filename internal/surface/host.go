// Package surface runs a pong session on its own goroutine and connects it
// to a drawing surface: pointer and key input, size changes, frame
// publishing and the suspend handshake with the save store.
package surface

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pong/internal/clock"
	"github.com/vovakirdan/tui-pong/internal/games/pong"
	"github.com/vovakirdan/tui-pong/internal/savegame"
)

var (
	// ErrNotRunning is returned by control calls made while Run is not active.
	ErrNotRunning = errors.New("surface: host is not running")

	// ErrAlreadyRunning is returned by Run when called twice and by
	// Configure once Run has started.
	ErrAlreadyRunning = errors.New("surface: host is already running")
)

// FrameFunc receives a copy of the session after every simulated frame.
// It runs on the simulation goroutine and must not block for long.
type FrameFunc func(pong.View)

// Config configures a Host.
type Config struct {
	// FrameRate is the number of frames per second. Defaults to 60.
	FrameRate int

	// Clock measures frame deltas. Defaults to a system clock.
	Clock *clock.FrameClock

	// Persister, when set, receives the snapshot on every suspend and when
	// Run returns. Loading it into the store is up to the caller.
	Persister savegame.Persister

	// OnFrame is called after each frame.
	OnFrame FrameFunc

	// OnFinish is called once when a session has ended and its final
	// message is set.
	OnFinish FrameFunc

	Logger *log.Logger
}

type inputKind int

const (
	inputTouch inputKind = iota
	inputNudge
)

type input struct {
	kind   inputKind
	x, y   float64 // window units, touch only
	player int     // nudge only
	dx     float64 // arena units, nudge only
}

type request struct {
	resize        bool
	width, height float64
	reply         chan error
}

// Host owns a pong.Game and the goroutine that advances it. Apart from the
// save store, nothing in the session is touched by more than one goroutine.
type Host struct {
	cfg    Config
	game   *pong.Game
	store  *savegame.Store
	clock  *clock.FrameClock
	logger *log.Logger

	inputs   chan input
	requests chan request

	mu      sync.Mutex
	started bool
	done    chan struct{}

	// Owned by the simulation goroutine.
	viewport Viewport
	reported bool
}

// NewHost wraps game and store. The game must not be used directly once the
// host runs.
func NewHost(game *pong.Game, store *savegame.Store, cfg Config) *Host {
	if cfg.FrameRate <= 0 {
		cfg.FrameRate = 60
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default().WithPrefix("surface")
	}
	c := cfg.Clock
	if c == nil {
		c = clock.New(clock.SystemTime{}, clock.Raw)
	}
	return &Host{
		cfg:      cfg,
		game:     game,
		store:    store,
		clock:    c,
		logger:   logger,
		inputs:   make(chan input, 64),
		requests: make(chan request, 16),
		done:     make(chan struct{}),
	}
}

// Store returns the save store shared with the simulation goroutine.
func (h *Host) Store() *savegame.Store {
	return h.store
}

// Configure replaces the session tunables. It is only allowed before Run;
// any change discards the saved game.
func (h *Host) Configure(t pong.Tunables) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.started {
		return ErrAlreadyRunning
	}
	if h.game.Tunables() != t {
		h.logger.Debug("tunables changed, discarding saved game")
		h.store.Invalidate()
		h.game.Configure(t)
	}
	return nil
}

// Touch queues a pointer sample in window units. It never blocks; the
// oldest queued input is dropped when the queue is full.
func (h *Host) Touch(x, y float64) {
	h.send(input{kind: inputTouch, x: x, y: y})
}

// Nudge queues a relative paddle move in arena units.
func (h *Host) Nudge(player int, dx float64) {
	h.send(input{kind: inputNudge, player: player, dx: dx})
}

func (h *Host) send(in input) {
	for {
		select {
		case h.inputs <- in:
			return
		default:
		}
		// Queue full, drop the oldest input
		select {
		case <-h.inputs:
		default:
		}
	}
}

// Resize reports a new window size. The arena is refitted and the session
// pauses briefly.
func (h *Host) Resize(width, height float64) error {
	return h.call(context.Background(), request{resize: true, width: width, height: height}, false)
}

// Suspend blocks until the simulation goroutine has saved the session (and
// persisted it when a persister is configured).
func (h *Host) Suspend(ctx context.Context) error {
	return h.call(ctx, request{}, true)
}

func (h *Host) call(ctx context.Context, req request, wait bool) error {
	h.mu.Lock()
	started := h.started
	h.mu.Unlock()
	if !started {
		return ErrNotRunning
	}
	select {
	case <-h.done:
		return ErrNotRunning
	default:
	}

	if wait {
		req.reply = make(chan error, 1)
	}

	select {
	case h.requests <- req:
	case <-h.done:
		return ErrNotRunning
	case <-ctx.Done():
		return ctx.Err()
	}

	if !wait {
		return nil
	}
	select {
	case err := <-req.reply:
		return err
	case <-h.done:
		return ErrNotRunning
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run restores the saved session and advances it until ctx is cancelled or
// the session fails. The session is saved before Run returns.
func (h *Host) Run(ctx context.Context) error {
	h.mu.Lock()
	if h.started {
		h.mu.Unlock()
		return ErrAlreadyRunning
	}
	h.started = true
	h.mu.Unlock()
	defer close(h.done)

	h.create()

	ticker := time.NewTicker(time.Second / time.Duration(h.cfg.FrameRate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if err := h.save(); err != nil {
				h.logger.Warn("could not persist session", "error", err)
			}
			return nil

		case req := <-h.requests:
			h.handle(req)

		case <-ticker.C:
			if err := h.frame(); err != nil {
				h.logger.Error("simulation stopped", "error", err)
				return err
			}
		}
	}
}

// create restores the session from the store.
func (h *Host) create() {
	if h.store.Restore(h.game) {
		h.logger.Info("resumed saved game", "state", h.game.State(), "score", h.game.Score())
	}
	h.clock.Reset()
	h.reported = false
	h.publish()
}

func (h *Host) handle(req request) {
	if req.resize {
		h.viewport = Fit(req.width, req.height)
		h.game.SurfaceChanged()
		h.clock.Reset()
		h.logger.Debug("surface changed", "width", req.width, "height", req.height)
	} else {
		err := h.save()
		if err != nil {
			h.logger.Warn("could not persist session", "error", err)
		}
		req.reply <- err
	}
}

func (h *Host) save() error {
	h.store.Save(h.game)
	if h.cfg.Persister == nil {
		return nil
	}
	return h.store.Persist(h.cfg.Persister)
}

func (h *Host) frame() error {
	if !h.game.Animating() {
		// Idle: input has nothing to move until something restarts the session.
		h.discardInputs()
		h.clock.Reset()
		return nil
	}

	h.applyInputs()

	if _, err := h.game.Advance(h.clock.Delta()); err != nil {
		return fmt.Errorf("surface: advance: %w", err)
	}

	view := h.publish()

	if view.State.Terminal() {
		if !h.reported && !view.Animating {
			h.reported = true
			h.store.Save(h.game)
			if h.cfg.OnFinish != nil {
				h.cfg.OnFinish(view)
			}
		}
	} else {
		h.reported = false
	}
	return nil
}

func (h *Host) publish() pong.View {
	view := h.game.View()
	if h.cfg.OnFrame != nil {
		h.cfg.OnFrame(view)
	}
	return view
}

// applyInputs drains the input queue. Pointer samples are coalesced to the
// last one per player; nudges accumulate on top of it.
func (h *Host) applyInputs() {
	var (
		target  [3]float64
		touched [3]bool
		delta   [3]float64
	)

	for {
		select {
		case in := <-h.inputs:
			switch in.kind {
			case inputTouch:
				if h.viewport.Empty() {
					continue
				}
				ax, ay := h.viewport.ToArena(in.x, in.y)
				p := PlayerAt(ay)
				target[p], touched[p], delta[p] = ax, true, 0
			case inputNudge:
				if in.player != 1 && in.player != 2 {
					continue
				}
				if touched[in.player] {
					target[in.player] += in.dx
				} else {
					delta[in.player] += in.dx
				}
			}
		default:
			for p := 1; p <= 2; p++ {
				switch {
				case touched[p]:
					h.game.MovePaddle(p, target[p])
				case delta[p] != 0:
					h.game.NudgePaddle(p, delta[p])
				}
			}
			return
		}
	}
}

func (h *Host) discardInputs() {
	for {
		select {
		case <-h.inputs:
		default:
			return
		}
	}
}
