package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type menuItem int

const (
	itemResume menuItem = iota
	itemSinglePlayer
	itemTwoPlayer
	itemDifficulty
	itemScores
	itemQuit
)

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	env       *Env
	items     []menuItem
	cursor    int
	width     int
	height    int
	settings  Settings
	high      int
	keyMapper *KeyMapper
	quitting  bool
}

// NewMenuModel creates a new menu model.
func NewMenuModel(env *Env, width, height int) MenuModel {
	m := MenuModel{
		env:       env,
		width:     width,
		height:    height,
		settings:  env.LoadSettings(),
		high:      env.HighScore(),
		keyMapper: NewKeyMapper(),
	}
	m.refresh()
	return m
}

// refresh rebuilds the item list; Resume only shows with a suspended game.
// The cursor stays on the same item when it is still listed.
func (m *MenuModel) refresh() {
	current := menuItem(-1)
	if m.cursor < len(m.items) {
		current = m.items[m.cursor]
	}

	m.items = m.items[:0]
	if m.env.CanResume() {
		m.items = append(m.items, itemResume)
	}
	m.items = append(m.items, itemSinglePlayer, itemTwoPlayer, itemDifficulty, itemScores, itemQuit)

	m.cursor = 0
	for i, item := range m.items {
		if item == current {
			m.cursor = i
		}
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (MenuModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (MenuModel, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionLeft, MenuActionRight:
		if m.items[m.cursor] == itemDifficulty {
			step := 1
			if action == MenuActionLeft {
				step = -1
			}
			m.changeDifficulty(step)
		}

	case MenuActionScoreboard:
		return m, navigate(scoresMsg{})

	case MenuActionSelect:
		return m.selectItem()
	}

	return m, nil
}

func (m MenuModel) selectItem() (MenuModel, tea.Cmd) {
	switch m.items[m.cursor] {
	case itemResume:
		return m, navigate(startMsg{settings: m.env.ResumeSettings(m.settings)})

	case itemSinglePlayer, itemTwoPlayer:
		m.settings.SinglePlayer = m.items[m.cursor] == itemSinglePlayer
		m.env.SaveSettings(m.settings)
		m.env.Discard(m.settings)
		return m, navigate(startMsg{settings: m.settings})

	case itemDifficulty:
		m.changeDifficulty(1)

	case itemScores:
		return m, navigate(scoresMsg{})

	case itemQuit:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// changeDifficulty cycles the difficulty. Tunables change with it, so a
// suspended game is discarded.
func (m *MenuModel) changeDifficulty(step int) {
	n := len(m.env.Config.Difficulties)
	if n == 0 {
		return
	}
	old := m.settings
	m.settings.Difficulty = ((m.settings.Difficulty+step)%n + n) % n
	m.env.SaveSettings(m.settings)
	m.env.Discard(old)
	m.refresh()
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	menuMutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerStyled("  P O N G  ", menuTitleStyle, m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(fmt.Sprintf("High score %05d", m.high), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := "  " + m.label(item)
		if i == m.cursor {
			b.WriteString(centerStyled("> "+m.label(item), menuCursorStyle, m.width))
		} else {
			b.WriteString(centerText(line, m.width))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.env.CanResume() {
		b.WriteString(centerStyled("Changing difficulty discards the saved game", menuMutedStyle, m.width))
		b.WriteString("\n")
	}
	controls := "Up/Down: Navigate  |  Left/Right: Difficulty  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerStyled(controls, menuMutedStyle, m.width))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) label(item menuItem) string {
	switch item {
	case itemResume:
		return "Resume"
	case itemSinglePlayer:
		return "New game - vs CPU"
	case itemTwoPlayer:
		return "New game - 2 players"
	case itemDifficulty:
		return fmt.Sprintf("Difficulty < %s >", m.env.LevelName(m.settings.Difficulty))
	case itemScores:
		return "High scores"
	case itemQuit:
		return "Quit"
	}
	return ""
}

// Settings returns the current menu choices.
func (m MenuModel) Settings() Settings {
	return m.settings
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	padding := (width - n) / 2
	return strings.Repeat(" ", padding) + text
}

func centerStyled(text string, style lipgloss.Style, width int) string {
	return centerText(style.Render(text), width)
}
