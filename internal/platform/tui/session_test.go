package tui

import (
	"io"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/games/pong"
	"github.com/vovakirdan/tui-pong/internal/savegame"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

type fixedSession struct {
	snap savegame.Snapshot
}

func (f *fixedSession) Capture() savegame.Snapshot { return f.snap }
func (f *fixedSession) Apply(s savegame.Snapshot) { f.snap = s }
func (f *fixedSession) Reset() { f.snap = savegame.Snapshot{State: core.StateInitializing} }

type memSlot struct {
	mu   sync.Mutex
	data []byte
}

func (m *memSlot) SaveSnapshot(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	return nil
}

func (m *memSlot) LoadSnapshot() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data, nil
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

// testEnv returns an env without a database.
func testEnv() *Env {
	return &Env{
		Config: config.DefaultPongConfig(),
		Saves:  savegame.NewStore(quietLogger()),
		Slot:   &memSlot{},
		Logger: quietLogger(),
	}
}

// dbEnv returns an env backed by a database in a temp dir.
func dbEnv(t *testing.T) *Env {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "pong.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	env := testEnv()
	env.DB = db
	env.Slot = db.Slot("test")
	return env
}

func TestSettingsRoundTrip(t *testing.T) {
	env := dbEnv(t)

	if got := env.LoadSettings(); got != (Settings{Difficulty: config.DefaultDifficulty, SinglePlayer: true}) {
		t.Errorf("LoadSettings() = %+v, expected the defaults", got)
	}

	env.SaveSettings(Settings{Difficulty: 3, SinglePlayer: false})
	if got := env.LoadSettings(); got != (Settings{Difficulty: 3, SinglePlayer: false}) {
		t.Errorf("LoadSettings() = %+v after save", got)
	}

	if err := env.DB.SetPreferenceInt(storage.PrefDifficulty, 42); err != nil {
		t.Fatalf("SetPreferenceInt() failed: %v", err)
	}
	if got := env.LoadSettings().Difficulty; got != config.DefaultDifficulty {
		t.Errorf("Difficulty = %d for an unknown level, expected %d", got, config.DefaultDifficulty)
	}

	if got := testEnv().LoadSettings(); got.Difficulty != config.DefaultDifficulty || !got.SinglePlayer {
		t.Errorf("LoadSettings() without a database = %+v", got)
	}
}

func TestDiscardRecordsAbandoned(t *testing.T) {
	env := dbEnv(t)
	env.Saves.Save(&fixedSession{snap: savegame.Snapshot{
		State: core.StatePlaying, Score: 30, LivesP1: 2, LivesP2: 3, SinglePlayer: true,
	}})

	env.Discard(Settings{Difficulty: 2})

	if env.CanResume() {
		t.Error("CanResume() = true after Discard()")
	}
	matches, err := env.DB.RecentMatches(10)
	if err != nil {
		t.Fatalf("RecentMatches() failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("len(matches) = %d, expected 1", len(matches))
	}
	m := matches[0]
	if m.Outcome != storage.OutcomeAbandoned || m.Difficulty != "hard" || m.Score != 30 || m.Mode != storage.ModeSinglePlayer {
		t.Errorf("match = %+v", m)
	}

	// The discarded state reached the slot too.
	reloaded := savegame.NewStore(quietLogger())
	if err := reloaded.Load(env.Slot); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if reloaded.CanResume() {
		t.Error("persisted save is still resumable")
	}

	// Nothing left to abandon.
	env.Discard(Settings{Difficulty: 2})
	if matches, _ := env.DB.RecentMatches(10); len(matches) != 1 {
		t.Errorf("len(matches) = %d after a second Discard(), expected 1", len(matches))
	}
}

func TestRecordFinish(t *testing.T) {
	env := dbEnv(t)

	env.Saves.Save(&fixedSession{snap: savegame.Snapshot{State: core.StateLost, Score: 50, SinglePlayer: true}})
	env.recordFinish(Settings{Difficulty: 0}, time.Now(), pong.View{
		State: core.StateLost, Score: 50, Lives: [2]int{0, 3}, SinglePlayer: true,
	})

	scores, err := env.DB.TopScores("easy", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 || scores[0].Score != 50 {
		t.Errorf("scores = %+v, expected one score of 50", scores)
	}
	if got := env.HighScore(); got != 50 {
		t.Errorf("HighScore() = %d, expected 50", got)
	}

	env.Saves.Save(&fixedSession{snap: savegame.Snapshot{State: core.StateP2Won}})
	env.recordFinish(Settings{Difficulty: 0}, time.Now(), pong.View{
		State: core.StateP2Won, Lives: [2]int{0, 1},
	})

	matches, err := env.DB.RecentMatches(10)
	if err != nil {
		t.Fatalf("RecentMatches() failed: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("len(matches) = %d, expected 2", len(matches))
	}
	if matches[0].Outcome != storage.OutcomeP2Won || matches[0].Mode != storage.ModeTwoPlayer {
		t.Errorf("latest match = %+v, expected a two-player loss for P1", matches[0])
	}
	if scores, _ := env.DB.TopScores("", 10); len(scores) != 1 {
		t.Errorf("len(scores) = %d, two-player games should not be scored", len(scores))
	}
}

func TestOutcomeOf(t *testing.T) {
	tests := []struct {
		state    core.PlayState
		expected string
	}{
		{core.StateWon, storage.OutcomeWon},
		{core.StateLost, storage.OutcomeLost},
		{core.StateP1Won, storage.OutcomeP1Won},
		{core.StateP2Won, storage.OutcomeP2Won},
		{core.StatePlaying, storage.OutcomeAbandoned},
	}
	for _, tc := range tests {
		t.Run(tc.state.String(), func(t *testing.T) {
			if got := outcomeOf(tc.state); got != tc.expected {
				t.Errorf("outcomeOf() = %q, expected %q", got, tc.expected)
			}
		})
	}
}

func waitForFrames(t *testing.T, sess *session, n uint64) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if _, seq, _ := sess.frames.load(); seq >= n {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("fewer than %d frames published", n)
}

func TestSessionSuspendAndStop(t *testing.T) {
	env := testEnv()
	sess := env.startSession(Settings{Difficulty: 1, SinglePlayer: true})
	waitForFrames(t, sess, 3)

	if err := sess.suspend(); err != nil {
		t.Fatalf("suspend() failed: %v", err)
	}
	if err := sess.stop(); err != nil {
		t.Fatalf("stop() = %v, expected nil", err)
	}
	if exited, _ := sess.wait(0); !exited {
		t.Error("simulation still running after stop()")
	}
	if !env.CanResume() {
		t.Error("CanResume() = false after leaving a running game")
	}

	reloaded := savegame.NewStore(quietLogger())
	if err := reloaded.Load(env.Slot); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if !reloaded.CanResume() {
		t.Error("persisted session is not resumable")
	}
	if got := env.ResumeSettings(Settings{Difficulty: 1}); !got.SinglePlayer {
		t.Errorf("ResumeSettings() = %+v, expected single player", got)
	}
}

func TestEnvCloseStopsSession(t *testing.T) {
	env := testEnv()
	first := env.startSession(Settings{Difficulty: 1, SinglePlayer: true})
	waitForFrames(t, first, 2)

	second := env.startSession(Settings{Difficulty: 1, SinglePlayer: false})
	if exited, _ := first.wait(0); !exited {
		t.Error("starting a session should stop the previous one")
	}
	waitForFrames(t, second, 2)

	env.Close()
	if exited, _ := second.wait(0); !exited {
		t.Error("Close() did not stop the session")
	}
	env.Close()
}

func TestSessionWithOtherTunablesDiscardsSave(t *testing.T) {
	env := testEnv()
	normal := Settings{Difficulty: 1, SinglePlayer: true}

	sess := env.startSession(normal)
	waitForFrames(t, sess, 3)
	if err := sess.stop(); err != nil {
		t.Fatalf("stop() = %v, expected nil", err)
	}
	if !env.CanResume() {
		t.Fatal("CanResume() = false after leaving a running game")
	}

	sess = env.startSession(normal)
	if !env.CanResume() {
		t.Error("restarting with the same settings discarded the save")
	}
	waitForFrames(t, sess, 3)
	if err := sess.stop(); err != nil {
		t.Fatalf("stop() = %v, expected nil", err)
	}

	sess = env.startSession(Settings{Difficulty: 2, SinglePlayer: true})
	defer sess.stop()
	if env.CanResume() {
		t.Error("a save made on another difficulty is still resumable")
	}
}
