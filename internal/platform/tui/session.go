package tui

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/games/pong"
	"github.com/vovakirdan/tui-pong/internal/savegame"
	"github.com/vovakirdan/tui-pong/internal/storage"
	"github.com/vovakirdan/tui-pong/internal/surface"
)

// suspendTimeout bounds how long leaving a game waits for the save.
const suspendTimeout = 2 * time.Second

// Env is what a UI needs from the process.
type Env struct {
	Config config.PongConfig
	DB     *storage.Store     // Optional; scores and history are skipped without it
	Saves  *savegame.Store    // The suspended session
	Slot   savegame.Persister // Optional; where Saves is persisted
	Logger *log.Logger

	// ScreenshotDir is where ctrl+s writes the screen. Empty disables it.
	ScreenshotDir string

	mu      sync.Mutex
	current *session
	// saved holds the tunables the suspended session was played with, once
	// a session has run in this process.
	saved *pong.Tunables
}

func (e *Env) logger() *log.Logger {
	if e.Logger == nil {
		return log.Default()
	}
	return e.Logger
}

// Settings are the menu choices that shape a new session.
type Settings struct {
	Difficulty   int
	SinglePlayer bool
}

// LoadSettings reads the saved menu choices, falling back to the
// configured defaults.
func (e *Env) LoadSettings() Settings {
	s := Settings{Difficulty: e.Config.DefaultDifficulty, SinglePlayer: true}
	if e.DB == nil {
		return s
	}
	if d, err := e.DB.PreferenceInt(storage.PrefDifficulty, s.Difficulty); err != nil {
		e.logger().Warn("could not read preference", "key", storage.PrefDifficulty, "error", err)
	} else if d >= 0 && d < len(e.Config.Difficulties) {
		s.Difficulty = d
	}
	if sp, err := e.DB.PreferenceBool(storage.PrefSinglePlayer, s.SinglePlayer); err != nil {
		e.logger().Warn("could not read preference", "key", storage.PrefSinglePlayer, "error", err)
	} else {
		s.SinglePlayer = sp
	}
	return s
}

// SaveSettings stores the menu choices.
func (e *Env) SaveSettings(s Settings) {
	if e.DB == nil {
		return
	}
	if err := e.DB.SetPreferenceInt(storage.PrefDifficulty, s.Difficulty); err != nil {
		e.logger().Warn("could not save preference", "key", storage.PrefDifficulty, "error", err)
	}
	if err := e.DB.SetPreferenceBool(storage.PrefSinglePlayer, s.SinglePlayer); err != nil {
		e.logger().Warn("could not save preference", "key", storage.PrefSinglePlayer, "error", err)
	}
}

// LevelName returns the display name of a difficulty index.
func (e *Env) LevelName(index int) string {
	level, _ := e.Config.Level(index)
	return level.Name
}

// HighScore returns the best recorded single-player score, or 0.
func (e *Env) HighScore() int {
	if e.DB == nil {
		return 0
	}
	high, err := e.DB.HighScore()
	if err != nil {
		e.logger().Warn("could not read high score", "error", err)
		return 0
	}
	return high
}

// CanResume reports whether a suspended session is waiting.
func (e *Env) CanResume() bool {
	return e.Saves.CanResume()
}

// Discard drops the suspended session. A session that was still being
// played is recorded as abandoned.
func (e *Env) Discard(s Settings) {
	if e.Saves.CanResume() {
		snap := e.Saves.Snapshot()
		e.recordMatch(storage.MatchResult{
			Mode:       modeName(snap.SinglePlayer),
			Difficulty: e.LevelName(s.Difficulty),
			Outcome:    storage.OutcomeAbandoned,
			Score:      snap.Score,
			LivesP1:    snap.LivesP1,
			LivesP2:    snap.LivesP2,
		})
	}
	e.Saves.Invalidate()
	e.persist()
}

func (e *Env) persist() {
	if e.Slot == nil {
		return
	}
	if err := e.Saves.Persist(e.Slot); err != nil {
		e.logger().Warn("could not persist session", "error", err)
	}
}

// dropCorrupt discards a save the simulation refused to run.
func (e *Env) dropCorrupt() {
	e.Saves.Invalidate()
	e.persist()
}

// ResumeSettings returns the settings the suspended session was played
// with. Changing difficulty discards the save, so only the mode is read
// back from it.
func (e *Env) ResumeSettings(s Settings) Settings {
	s.SinglePlayer = e.Saves.Snapshot().SinglePlayer
	return s
}

func (e *Env) recordMatch(m storage.MatchResult) {
	if e.DB == nil {
		return
	}
	id, err := e.DB.SaveMatch(m)
	if err != nil {
		e.logger().Warn("could not record match", "error", err)
		return
	}
	e.logger().Info("match recorded", "match_id", id, "outcome", m.Outcome, "score", m.Score)
}

// recordFinish stores a finished session in the match history and, for
// single-player games, the score table.
func (e *Env) recordFinish(s Settings, started time.Time, v pong.View) {
	level := e.LevelName(s.Difficulty)
	e.recordMatch(storage.MatchResult{
		Mode:       modeName(v.SinglePlayer),
		Difficulty: level,
		Outcome:    outcomeOf(v.State),
		Score:      v.Score,
		LivesP1:    v.Lives[0],
		LivesP2:    v.Lives[1],
		Duration:   int(time.Since(started).Seconds()),
	})

	final := e.Saves.FinalScore()
	if final < 0 || e.DB == nil {
		return
	}
	if _, err := e.DB.SaveScore(level, final); err != nil {
		e.logger().Warn("could not save score", "error", err)
	}
}

func modeName(singlePlayer bool) string {
	if singlePlayer {
		return storage.ModeSinglePlayer
	}
	return storage.ModeTwoPlayer
}

func outcomeOf(s core.PlayState) string {
	switch s {
	case core.StateWon:
		return storage.OutcomeWon
	case core.StateLost:
		return storage.OutcomeLost
	case core.StateP1Won:
		return storage.OutcomeP1Won
	case core.StateP2Won:
		return storage.OutcomeP2Won
	}
	return storage.OutcomeAbandoned
}

// frameBox holds the latest published view. The simulation goroutine
// writes it, the UI goroutine reads it on every tick.
type frameBox struct {
	mu    sync.Mutex
	view  pong.View
	seq   uint64
	final bool
}

func (b *frameBox) publish(v pong.View) {
	b.mu.Lock()
	b.view = v
	b.seq++
	b.mu.Unlock()
}

func (b *frameBox) finish(v pong.View) {
	b.mu.Lock()
	b.view = v
	b.seq++
	b.final = true
	b.mu.Unlock()
}

func (b *frameBox) load() (pong.View, uint64, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.view, b.seq, b.final
}

// session is one run of the simulation goroutine.
type session struct {
	env      *Env
	host     *surface.Host
	frames   *frameBox
	settings Settings
	cancel   context.CancelFunc
	done     chan error

	mu     sync.Mutex
	exited bool
	err    error
}

// startSession restores the suspended session (or starts a fresh one) and
// runs it until stop is called. A session still running is stopped first.
func (e *Env) startSession(s Settings) *session {
	e.Close()

	tun := config.TunablesFor(e.Config, s.Difficulty, s.SinglePlayer)
	e.mu.Lock()
	base := tun
	if e.saved != nil {
		base = *e.saved
	}
	e.saved = &tun
	e.mu.Unlock()

	game := pong.New(base, e.logger().WithPrefix("pong"))
	frames := &frameBox{}
	started := time.Now()

	sess := &session{
		env:      e,
		frames:   frames,
		settings: s,
		done:     make(chan error, 1),
	}
	sess.host = surface.NewHost(game, e.Saves, surface.Config{
		FrameRate: e.Config.FrameRate(),
		Persister: e.Slot,
		OnFrame:   frames.publish,
		OnFinish: func(v pong.View) {
			frames.finish(v)
			e.recordFinish(s, started, v)
		},
		Logger: e.logger().WithPrefix("surface"),
	})
	// A save made under other tunables cannot be resumed.
	if err := sess.host.Configure(tun); err != nil {
		e.logger().Warn("could not configure session", "error", err)
	}
	resumed := e.Saves.CanResume()

	ctx, cancel := context.WithCancel(context.Background())
	sess.cancel = cancel
	go func() { sess.done <- sess.host.Run(ctx) }()

	e.mu.Lock()
	e.current = sess
	e.mu.Unlock()

	e.logger().Info("session started",
		"difficulty", e.LevelName(s.Difficulty),
		"mode", modeName(s.SinglePlayer),
		"resumed", resumed,
	)
	return sess
}

// Close stops the running session, if any, and waits for its final save.
func (e *Env) Close() {
	e.mu.Lock()
	sess := e.current
	e.current = nil
	e.mu.Unlock()

	if sess != nil {
		sess.cancel()
		sess.wait(suspendTimeout)
	}
}

// forget drops sess from the registry unless another session replaced it.
func (e *Env) forget(sess *session) {
	e.mu.Lock()
	if e.current == sess {
		e.current = nil
	}
	e.mu.Unlock()
}

// wait collects the result of Run, waiting at most d. It reports whether
// the simulation goroutine has exited.
func (s *session) wait(d time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.exited {
		return true, s.err
	}
	if d <= 0 {
		select {
		case err := <-s.done:
			s.exited, s.err = true, err
		default:
		}
		return s.exited, s.err
	}
	select {
	case err := <-s.done:
		s.exited, s.err = true, err
	case <-time.After(d):
		s.env.logger().Warn("simulation did not stop in time")
	}
	return s.exited, s.err
}

// suspend saves the session without stopping it.
func (s *session) suspend() error {
	ctx, cancel := context.WithTimeout(context.Background(), suspendTimeout)
	defer cancel()
	return s.host.Suspend(ctx)
}

// stop ends the simulation goroutine and waits for its final save.
func (s *session) stop() error {
	s.cancel()
	s.env.forget(s)
	_, err := s.wait(suspendTimeout)
	return err
}
