// Package savegame keeps the single suspended session that can be resumed
// later. The store is the only piece of session state shared between the
// simulation goroutine and control callers, so every access goes through
// its mutex.
package savegame

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pong/internal/core"
)

// Snapshot is the saved state of a session.
type Snapshot struct {
	BallX     float64 `msgpack:"ball_x"`
	BallY     float64 `msgpack:"ball_y"`
	BallDirX  float64 `msgpack:"ball_dir_x"`
	BallDirY  float64 `msgpack:"ball_dir_y"`
	BallSpeed float64 `msgpack:"ball_speed"`
	Paddle1X  float64 `msgpack:"paddle1_x"`
	Paddle2X  float64 `msgpack:"paddle2_x"`

	State        core.PlayState `msgpack:"state"`
	Message      core.MessageID `msgpack:"message"`
	LivesP1      int            `msgpack:"lives_p1"`
	LivesP2      int            `msgpack:"lives_p2"`
	Score        int            `msgpack:"score"`
	SinglePlayer bool           `msgpack:"single_player"`

	Valid bool `msgpack:"valid"`
}

// Session is what the store saves from and restores into.
type Session interface {
	Capture() Snapshot
	Apply(Snapshot)
	Reset()
}

// Store holds at most one saved session.
type Store struct {
	mu     sync.Mutex
	snap   Snapshot
	logger *log.Logger
}

// NewStore returns an empty store. A nil logger selects the default logger.
func NewStore(logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default().WithPrefix("savegame")
	}
	return &Store{logger: logger}
}

func (s *Store) log() *log.Logger {
	if s.logger == nil {
		return log.Default()
	}
	return s.logger
}

// Save copies the session into the store and marks it valid.
func (s *Store) Save(sess Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveLocked(sess)
}

func (s *Store) saveLocked(sess Session) {
	s.snap = sess.Capture()
	s.snap.Valid = true
}

// Restore loads the saved session into sess and reports whether there was
// one. Without a valid save the session is reset and saved, so the store is
// never left empty after a restore. A saved session that had already ended
// is restored and then reset.
func (s *Store) Restore(sess Session) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.snap.Valid {
		s.log().Debug("no valid saved game found")
		sess.Reset()
		s.saveLocked(sess)
		return false
	}

	s.log().Debug("restoring saved game", "state", s.snap.State, "score", s.snap.Score)
	sess.Apply(s.snap)
	if s.snap.State.Terminal() {
		sess.Reset()
	}
	return true
}

// Invalidate discards the saved session.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Valid = false
}

// CanResume reports whether a saved session exists that is still being
// played or about to be.
func (s *Store) CanResume() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Valid && s.snap.State.Resumable()
}

// FinalScore returns the score of a finished single-player session, or -1
// when the store holds anything else.
func (s *Store) FinalScore() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.snap.Valid || !s.snap.SinglePlayer {
		return -1
	}
	if s.snap.State != core.StateWon && s.snap.State != core.StateLost {
		return -1
	}
	return s.snap.Score
}

// Snapshot returns a copy of the stored snapshot, valid or not.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}
