package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/blockpong/internal/registry"
)

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuActive     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuDim        = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuLevel is a level offered by the picker.
type MenuLevel struct {
	ID   string
	Name string
}

// MenuModel is the Bubble Tea model for the mode and level picker.
type MenuModel struct {
	modes          []registry.GameInfo
	levels         []MenuLevel
	cursor         int
	levelCursor    int
	width          int
	height         int
	keys           MenuKeyMap
	help           help.Model
	quitting       bool
	selected       bool
	openScoreboard bool // True if user pressed Tab for match history
}

// NewMenuModel creates a picker over the registered modes. startLevel
// preselects a level by ID when present.
func NewMenuModel(levels []MenuLevel, startLevel string, width, height int) MenuModel {
	m := MenuModel{
		modes:  registry.List(),
		levels: levels,
		width:  width,
		height: height,
		keys:   DefaultMenuKeyMap(),
		help:   help.New(),
	}
	for i, l := range levels {
		if l.ID == startLevel {
			m.levelCursor = i
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.modes)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Left):
		if len(m.levels) > 0 {
			m.levelCursor = (m.levelCursor - 1 + len(m.levels)) % len(m.levels)
		}

	case key.Matches(msg, m.keys.Right):
		if len(m.levels) > 0 {
			m.levelCursor = (m.levelCursor + 1) % len(m.levels)
		}

	case key.Matches(msg, m.keys.Select):
		if len(m.modes) > 0 {
			m.selected = true
			return m, tea.Quit
		}

	case key.Matches(msg, m.keys.Scores):
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("B L O C K P O N G"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(menuDim.Render("Select a mode"), m.width))
	b.WriteString("\n\n")

	for i, mode := range m.modes {
		line := fmt.Sprintf("  %-8s %s", mode.Title, menuDim.Render(mode.Description))
		if i == m.cursor {
			line = menuActive.Render("> "+fmt.Sprintf("%-8s", mode.Title)) + " " + menuDim.Render(mode.Description)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if l, ok := m.level(); ok {
		b.WriteString("\n")
		name := l.Name
		if name == "" {
			name = l.ID
		}
		b.WriteString(centerText(fmt.Sprintf("Level: < %s >", menuActive.Render(name)), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(helpStyle.Render(m.help.View(m.keys)), m.width))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) level() (MenuLevel, bool) {
	if len(m.levels) == 0 {
		return MenuLevel{}, false
	}
	return m.levels[m.levelCursor], true
}

// Selection returns the chosen mode and level IDs.
func (m MenuModel) Selection() (mode, level string, ok bool) {
	if !m.selected || len(m.modes) == 0 {
		return "", "", false
	}
	l, _ := m.level()
	return m.modes[m.cursor].ID, l.ID, true
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested match history.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Size returns the last known terminal size.
func (m MenuModel) Size() (width, height int) {
	return m.width, m.height
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	ModeID          string
	LevelID         string
	Width, Height   int
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(levels []MenuLevel, startLevel string, width, height int) (MenuResult, error) {
	model := NewMenuModel(levels, startLevel, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Width: width, Height: height}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Width: width, Height: height, Quit: true}, nil
	}

	result := MenuResult{}
	result.Width, result.Height = m.Size()

	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.IsQuitting():
		result.Quit = true
	default:
		mode, level, ok := m.Selection()
		result.ModeID, result.LevelID, result.Quit = mode, level, !ok
	}

	return result, nil
}
