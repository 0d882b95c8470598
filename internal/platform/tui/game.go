package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/games/pong"
	"github.com/vovakirdan/tui-pong/internal/surface"
)

const (
	hintPlaying  = "p: menu  q: quit"
	hintFinished = "enter: again  b: menu"
)

// GameModel is the game screen. It draws frames published by a session
// running on its own goroutine and forwards input to it.
type GameModel struct {
	env      *Env
	sess     *session
	keys     *KeyMapper
	screen   *core.Screen
	viewport surface.Viewport
	gen      int
	tickRate int

	view     pong.View
	seq      uint64
	final    bool
	sized    bool
	clipped  bool
	high     int
	failure  error
	quitting bool
}

// NewGameModel starts a session with the given settings.
func NewGameModel(env *Env, s Settings, width, height, gen int) GameModel {
	return GameModel{
		env:      env,
		sess:     env.startSession(s),
		keys:     NewKeyMapper(),
		screen:   core.NewScreen(width, height),
		viewport: arenaViewport(width, height),
		gen:      gen,
		tickRate: env.Config.FrameRate(),
		high:     env.HighScore(),
	}
}

// Init starts the frame loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.tickRate, m.gen)
}

// Update handles messages for the game screen.
func (m GameModel) Update(msg tea.Msg) (GameModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.failure != nil || !arenaCells(m.screen.Width(), m.screen.Height()).Contains(msg.X, msg.Y) {
			return m, nil
		}
		if msg.Action == tea.MouseActionMotion || msg.Action == tea.MouseActionPress {
			m.sess.host.Touch(pointerToWindow(msg.X, msg.Y))
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (GameModel, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		m.stop()
		return m, tea.Quit
	}

	if m.failure != nil {
		if action != core.ActionNone {
			m.stop()
			return m, navigate(menuMsg{})
		}
		return m, nil
	}

	if player, dx, ok := m.keys.Nudge(action); ok {
		m.sess.host.Nudge(player, dx)
		return m, nil
	}

	switch action {
	case core.ActionSuspend:
		if !m.final {
			if err := m.sess.suspend(); err != nil {
				m.env.logger().Warn("suspend failed", "error", err)
			}
		}
		m.stop()
		return m, navigate(menuMsg{})

	case core.ActionBack:
		if m.final {
			m.stop()
			return m, navigate(menuMsg{})
		}

	case core.ActionConfirm:
		if m.final {
			m.stop()
			return m, navigate(startMsg{settings: m.sess.settings})
		}
	}
	return m, nil
}

func (m GameModel) handleResize(msg tea.WindowSizeMsg) (GameModel, tea.Cmd) {
	m.screen.Resize(msg.Width, msg.Height)
	m.viewport = arenaViewport(msg.Width, msg.Height)
	m.sized = false
	m.resizeHost()
	if m.seq > 0 {
		m.draw()
	}
	return m, nil
}

// resizeHost reports the arena window to the session. It fails until the
// simulation goroutine is up, so ticks retry it.
func (m *GameModel) resizeHost() {
	if m.sized {
		return
	}
	rows := m.screen.Height() - hudRows
	if rows < 1 {
		rows = 1
	}
	err := m.sess.host.Resize(float64(m.screen.Width()), float64(rows)*cellAspect)
	m.sized = err == nil
}

func (m GameModel) handleTick() (GameModel, tea.Cmd) {
	if exited, err := m.sess.wait(0); exited {
		if err != nil && m.failure == nil {
			m.failure = err
			m.env.logger().Error("session failed", "error", err)
			m.env.dropCorrupt()
		}
		return m, nil
	}

	m.resizeHost()

	view, seq, final := m.sess.frames.load()
	if seq != m.seq {
		m.view, m.seq = view, seq
		if final && !m.final && view.SinglePlayer && view.Score > m.high {
			m.high = view.Score
		}
		m.final = final
		m.draw()
	}

	return m, tickCmd(m.tickRate, m.gen)
}

// stop ends the session and waits for it to save.
func (m *GameModel) stop() {
	if err := m.sess.stop(); err != nil && m.failure == nil {
		m.env.logger().Warn("session stopped with error", "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	if m.env.ScreenshotDir == "" {
		return
	}
	m.draw()

	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(m.env.ScreenshotDir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.env.ScreenshotDir, fmt.Sprintf("pong_%s.txt", timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.env.logger().Warn("could not save screenshot", "error", err)
		return
	}
	m.env.logger().Info("screenshot saved", "path", path)
}

func (m *GameModel) draw() {
	hint := hintPlaying
	if m.final {
		hint = hintFinished
	}
	clipped := DrawView(m.screen, m.viewport, Frame{View: m.view, HighScore: m.high, Hint: hint})
	if clipped && !m.clipped {
		m.env.logger().Warn("text does not fit the terminal", "width", m.screen.Width(), "height", m.screen.Height())
	}
	m.clipped = clipped
}

// View renders the current frame.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	if m.failure != nil {
		return fmt.Sprintf("\n  The game stopped: %v\n\n  The saved game was discarded. Press any key.\n", m.failure)
	}
	if m.seq == 0 {
		return "\n  Loading..."
	}
	return RenderScreen(m.screen)
}
