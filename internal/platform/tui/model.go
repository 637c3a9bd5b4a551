package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockpong/internal/core"
	"github.com/vovakirdan/blockpong/internal/registry"
	"github.com/vovakirdan/blockpong/internal/storage"
)

// ReasonAbandoned marks matches the player quit before the end.
const ReasonAbandoned = "abandoned"

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// RunOptions holds the collaborators of a play session.
type RunOptions struct {
	Store  *storage.Store // nil disables match history
	Logger *log.Logger    // nil discards
	Versus bool           // Two humans share the keyboard
}

// Model is the Bubble Tea model for running a match.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keys       KeyMap
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	saved      bool // Whether the current match has been recorded
}

// NewModel creates a new Bubble Tea model for the given game and starts
// the match.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts RunOptions) (Model, error) {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	if err := game.Reset(cfg); err != nil {
		return Model{}, err
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 1)),
		store:      opts.Store,
		logger:     logger,
		config:     cfg,
		keys:       DefaultKeyMap(opts.Versus),
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
		gameState:  game.State(),
	}, nil
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.fit()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		if !m.gameState.GameOver && m.gameState.Elapsed > 0 {
			m.saveMatch(ReasonAbandoned)
		}
		m.quitting = true
		return m, tea.Quit
	}
	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize processes window resize events. The field is resolution
// independent, so only the buffer changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width
	m.fit()
	return m, nil
}

// fit sizes the game screen to leave room for the help footer.
func (m *Model) fit() {
	rows := 1
	if m.help.ShowAll {
		rows = len(m.keys.FullHelp()[0])
	}
	m.screen.Resize(m.config.ScreenW, max(m.config.ScreenH-rows, 1))
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Record the match once when it ends; a restart arms it again
	if m.gameState.GameOver && !m.saved {
		m.saveMatch(m.gameState.Reason)
	} else if !m.gameState.GameOver {
		m.saved = false
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// saveMatch records the current match. Failures are logged and play goes on.
func (m *Model) saveMatch(reason string) {
	m.saved = true
	if m.store == nil {
		return
	}
	st := m.gameState
	winner := st.Winner
	if reason == ReasonAbandoned {
		winner = leader(st.Score1, st.Score2)
	}
	id, err := m.store.SaveMatch(storage.MatchRecord{
		Mode:     m.game.ID(),
		Level:    st.Level,
		Score1:   st.Score1,
		Score2:   st.Score2,
		Winner:   int(winner),
		Reason:   reason,
		Duration: st.Elapsed,
		AILevel:  st.AILevel,
	})
	if err != nil {
		m.logger.Warn("could not save match", "err", err)
		return
	}
	m.logger.Debug("match saved", "id", id, "reason", reason)
}

func leader(score1, score2 int) core.PlayerID {
	switch {
	case score1 > score2:
		return core.Player1
	case score2 > score1:
		return core.Player2
	default:
		return core.NoPlayer
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".blockpong", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Run starts the Bubble Tea program for game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts RunOptions) error {
	model, err := NewModel(game, cfg, opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err = p.Run()
	return err
}
