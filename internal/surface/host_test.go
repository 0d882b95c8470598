package surface

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pong/internal/clock"
	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/games/pong"
	"github.com/vovakirdan/tui-pong/internal/savegame"
)

const waitTimeout = 3 * time.Second

type memPersister struct {
	mu   sync.Mutex
	data []byte
}

func (m *memPersister) SaveSnapshot(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	return nil
}

func (m *memPersister) LoadSnapshot() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data, nil
}

func (m *memPersister) snapshot(t *testing.T) savegame.Snapshot {
	t.Helper()
	data, _ := m.LoadSnapshot()
	snap, err := savegame.Decode(data)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	return snap
}

func persisted(t *testing.T, snap savegame.Snapshot) *memPersister {
	t.Helper()
	data, err := savegame.Encode(snap)
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	return &memPersister{data: data}
}

type harness struct {
	host   *Host
	frames chan pong.View
	cancel context.CancelFunc
	errc   chan error
}

func quiet() *log.Logger {
	return log.New(io.Discard)
}

func newHost(cfg Config) (*Host, chan pong.View) {
	frames := make(chan pong.View, 256)
	onFrame := cfg.OnFrame
	cfg.OnFrame = func(v pong.View) {
		if onFrame != nil {
			onFrame(v)
		}
		select {
		case frames <- v:
		default:
		}
	}
	if cfg.FrameRate == 0 {
		cfg.FrameRate = 200
	}
	cfg.Logger = quiet()
	game := pong.New(pong.DefaultTunables(), quiet())
	return NewHost(game, savegame.NewStore(quiet()), cfg), frames
}

func start(t *testing.T, h *Host, frames chan pong.View) *harness {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- h.Run(ctx) }()
	hs := &harness{host: h, frames: frames, cancel: cancel, errc: errc}
	t.Cleanup(func() {
		cancel()
		select {
		case <-errc:
		case <-time.After(waitTimeout):
		}
	})
	return hs
}

func (hs *harness) stop(t *testing.T) error {
	t.Helper()
	hs.cancel()
	select {
	case err := <-hs.errc:
		return err
	case <-time.After(waitTimeout):
		t.Fatal("Run() did not return after cancel")
		return nil
	}
}

func (hs *harness) waitFrame(t *testing.T, cond func(pong.View) bool) pong.View {
	t.Helper()
	deadline := time.After(waitTimeout)
	for {
		select {
		case v := <-hs.frames:
			if cond(v) {
				return v
			}
		case err := <-hs.errc:
			t.Fatalf("Run() returned early: %v", err)
		case <-deadline:
			t.Fatal("timed out waiting for frame")
		}
	}
}

func anyFrame(pong.View) bool { return true }

func TestRunSavesOnCancel(t *testing.T) {
	p := &memPersister{}
	h, frames := newHost(Config{Persister: p})
	hs := start(t, h, frames)

	hs.waitFrame(t, func(v pong.View) bool { return v.State == core.StatePlaying })

	if err := hs.stop(t); err != nil {
		t.Fatalf("Run() = %v, expected nil", err)
	}
	if !h.Store().CanResume() {
		t.Error("CanResume() = false after Run returned mid-game")
	}
	if snap := p.snapshot(t); !snap.Valid || snap.State != core.StatePlaying {
		t.Errorf("persisted snapshot = %+v, expected a valid playing session", snap)
	}
}

func TestSuspendRendezvous(t *testing.T) {
	p := &memPersister{}
	src := clock.NewMockTime(time.Now())
	h, frames := newHost(Config{Persister: p, Clock: clock.New(src, clock.Raw)})
	hs := start(t, h, frames)
	hs.waitFrame(t, func(v pong.View) bool { return v.State == core.StatePlaying })

	ctx, cancel := context.WithTimeout(context.Background(), waitTimeout)
	defer cancel()
	if err := h.Suspend(ctx); err != nil {
		t.Fatalf("Suspend() failed: %v", err)
	}

	// The save happened before Suspend returned.
	snap := p.snapshot(t)
	if !snap.Valid || snap.State != core.StatePlaying || snap.LivesP1 != 3 {
		t.Errorf("persisted snapshot = %+v", snap)
	}
}

func TestControlWithoutRun(t *testing.T) {
	h, frames := newHost(Config{})

	if err := h.Suspend(context.Background()); !errors.Is(err, ErrNotRunning) {
		t.Errorf("Suspend() = %v, expected ErrNotRunning", err)
	}
	if err := h.Resize(10, 10); !errors.Is(err, ErrNotRunning) {
		t.Errorf("Resize() = %v, expected ErrNotRunning", err)
	}

	hs := start(t, h, frames)
	hs.waitFrame(t, anyFrame)
	if err := hs.stop(t); err != nil {
		t.Fatalf("Run() = %v", err)
	}

	if err := h.Suspend(context.Background()); !errors.Is(err, ErrNotRunning) {
		t.Errorf("Suspend() after Run = %v, expected ErrNotRunning", err)
	}
	if err := h.Run(context.Background()); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second Run() = %v, expected ErrAlreadyRunning", err)
	}
}

func TestSuspendHonorsContext(t *testing.T) {
	h, frames := newHost(Config{})
	hs := start(t, h, frames)
	hs.waitFrame(t, anyFrame)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := h.Suspend(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		t.Errorf("Suspend() = %v, expected nil or context.Canceled", err)
	}
}

func TestConfigure(t *testing.T) {
	h, frames := newHost(Config{})

	h.Store().Save(h.game)
	if err := h.Configure(h.game.Tunables()); err != nil {
		t.Fatalf("Configure() failed: %v", err)
	}
	if !h.Store().Snapshot().Valid {
		t.Error("Configure() with unchanged tunables should keep the save")
	}

	tun := pong.DefaultTunables()
	tun.MaxLives = 5
	if err := h.Configure(tun); err != nil {
		t.Fatalf("Configure() failed: %v", err)
	}
	if h.Store().Snapshot().Valid {
		t.Error("Configure() with new tunables should discard the save")
	}

	hs := start(t, h, frames)
	v := hs.waitFrame(t, anyFrame)
	if v.MaxLives != 5 || v.Lives[0] != 5 {
		t.Errorf("view = %+v, expected 5 lives", v)
	}
	if err := h.Configure(pong.DefaultTunables()); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("Configure() while running = %v, expected ErrAlreadyRunning", err)
	}
}

func TestTouchMovesPaddle(t *testing.T) {
	h, frames := newHost(Config{})
	hs := start(t, h, frames)
	hs.waitFrame(t, anyFrame)

	if err := h.Resize(768, 1024); err != nil {
		t.Fatalf("Resize() failed: %v", err)
	}
	// Suspend is handled after the resize.
	if err := h.Suspend(context.Background()); err != nil {
		t.Fatalf("Suspend() failed: %v", err)
	}

	h.Touch(100, 1024-150) // lower half: player 1
	h.Touch(200, 1024-150)

	v := hs.waitFrame(t, func(v pong.View) bool { return v.Paddles[0].X == 200 })
	if v.Paddles[1].X == 200 {
		t.Error("player 1 touch moved paddle 2")
	}
}

func TestNudgeMovesPaddle(t *testing.T) {
	h, frames := newHost(Config{})
	hs := start(t, h, frames)
	first := hs.waitFrame(t, anyFrame)

	h.Nudge(1, -30)
	h.Nudge(1, -20)

	expected := first.Paddles[0].X - 50
	hs.waitFrame(t, func(v pong.View) bool { return v.Paddles[0].X == expected })
}

func TestFullQueueKeepsNewestInput(t *testing.T) {
	h, _ := newHost(Config{})
	size := cap(h.inputs)

	for i := 0; i < size+36; i++ {
		h.Touch(float64(i), 0)
	}

	if n := len(h.inputs); n != size {
		t.Fatalf("queued %d inputs, expected %d", n, size)
	}
	first := <-h.inputs
	if first.x != 36 {
		t.Errorf("oldest queued x = %v, expected 36", first.x)
	}
	var last input
	for len(h.inputs) > 0 {
		last = <-h.inputs
	}
	if expected := float64(size + 35); last.x != expected {
		t.Errorf("newest queued x = %v, expected %v", last.x, expected)
	}
}

func TestRunStopsOnBadState(t *testing.T) {
	p := persisted(t, savegame.Snapshot{
		State: core.PlayState(42), LivesP1: 3, LivesP2: 3, BallSpeed: 300, Valid: true,
	})
	h, _ := newHost(Config{})
	if err := h.Store().Load(p); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	errc := make(chan error, 1)
	go func() { errc <- h.Run(context.Background()) }()

	select {
	case err := <-errc:
		if !errors.Is(err, pong.ErrBadState) {
			t.Errorf("Run() = %v, expected ErrBadState", err)
		}
	case <-time.After(waitTimeout):
		t.Fatal("Run() did not stop on a corrupt session")
	}
}

func TestFinishReportedOnce(t *testing.T) {
	p := persisted(t, savegame.Snapshot{
		BallX: 300, BallY: 40, BallDirX: 0, BallDirY: -1, BallSpeed: 300,
		Paddle1X: 384, Paddle2X: 384,
		State: core.StatePlaying, Message: core.MessageNone,
		LivesP1: 1, LivesP2: 3, Score: 20, SinglePlayer: true, Valid: true,
	})

	var finished atomic.Int32
	final := make(chan pong.View, 4)
	h, frames := newHost(Config{
		OnFinish: func(v pong.View) {
			finished.Add(1)
			final <- v
		},
	})
	if err := h.Store().Load(p); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	hs := start(t, h, frames)

	var v pong.View
	select {
	case v = <-final:
	case <-time.After(waitTimeout):
		t.Fatal("session never finished")
	}
	if v.State != core.StateLost || v.Message != core.MessageGameOver || v.Lives[0] != 0 {
		t.Errorf("final view = %+v, expected a lost game", v)
	}
	if got := h.Store().FinalScore(); got != 20 {
		t.Errorf("FinalScore() = %d, expected 20", got)
	}

	// A resize wakes the session up without reporting it again.
	if err := h.Resize(80, 48); err != nil {
		t.Fatalf("Resize() failed: %v", err)
	}
	hs.waitFrame(t, func(v pong.View) bool { return v.State == core.StateLost && !v.Animating })
	if err := h.Suspend(context.Background()); err != nil {
		t.Fatalf("Suspend() failed: %v", err)
	}
	if n := finished.Load(); n != 1 {
		t.Errorf("OnFinish called %d times, expected 1", n)
	}
}
