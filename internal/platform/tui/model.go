package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Navigation messages emitted by the screens.
type (
	startMsg  struct{ settings Settings }
	menuMsg   struct{}
	scoresMsg struct{}
)

func navigate(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

type screenID int

const (
	screenMenu screenID = iota
	screenGame
	screenScores
)

// Model is the top-level Bubble Tea model: it routes between the menu, the
// game and the scoreboard.
type Model struct {
	env    *Env
	screen screenID
	menu   MenuModel
	game   GameModel
	scores ScoreboardModel
	width  int
	height int
	gen    int
}

// NewModel creates the app model, starting on the menu.
func NewModel(env *Env, width, height int) Model {
	return Model{
		env:    env,
		screen: screenMenu,
		menu:   NewMenuModel(env, width, height),
		width:  width,
		height: height,
	}
}

// NewModelPlaying creates the app model with a session already started.
func NewModelPlaying(env *Env, s Settings, width, height int) Model {
	m := NewModel(env, width, height)
	m.gen = 1
	m.screen = screenGame
	m.game = NewGameModel(env, s, width, height, m.gen)
	return m
}

// Init initializes the active screen.
func (m Model) Init() tea.Cmd {
	if m.screen == screenGame {
		return m.game.Init()
	}
	return nil
}

// Update handles navigation and forwards everything else to the active
// screen.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case startMsg:
		m.gen++
		m.screen = screenGame
		m.game = NewGameModel(m.env, msg.settings, m.width, m.height, m.gen)
		return m, m.game.Init()

	case menuMsg:
		m.screen = screenMenu
		m.menu = NewMenuModel(m.env, m.width, m.height)
		return m, nil

	case scoresMsg:
		m.screen = screenScores
		m.scores = NewScoreboardModel(m.env.DB, m.env.Config.LevelNames(), m.width, m.height)
		return m, nil
	}

	var cmd tea.Cmd
	switch m.screen {
	case screenGame:
		m.game, cmd = m.game.Update(msg)
	case screenScores:
		m.scores, cmd = m.scores.Update(msg)
	default:
		m.menu, cmd = m.menu.Update(msg)
	}
	return m, cmd
}

// View renders the active screen.
func (m Model) View() string {
	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scores.View()
	default:
		return m.menu.View()
	}
}

// Run starts the Bubble Tea program on the local terminal. When play is
// set a session starts right away instead of showing the menu.
func Run(env *Env, play *Settings, width, height int) error {
	model := NewModel(env, width, height)
	if play != nil {
		model = NewModelPlaying(env, *play, width, height)
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),      // Use alternate screen buffer
		tea.WithMouseAllMotion(), // Pointer steers the paddles
	)

	_, err := p.Run()
	env.Close()
	return err
}
