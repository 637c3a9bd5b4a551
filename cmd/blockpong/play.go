package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockpong/internal/arena"
	"github.com/vovakirdan/blockpong/internal/config"
	"github.com/vovakirdan/blockpong/internal/core"
	"github.com/vovakirdan/blockpong/internal/platform/tui"
	"github.com/vovakirdan/blockpong/internal/registry"
	"github.com/vovakirdan/blockpong/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a match",
	Long: `Start a match in the given mode. Without a mode, a menu lets you
pick the mode and level and returns there after each match.

Modes:
  arena   - You (left) against the CPU
  versus  - Two players on one keyboard
  demo    - CPU against CPU

Controls:
  W/S        - Left paddle (arrows too when playing alone)
  Up/Down    - Right paddle in versus
  P/Esc      - Pause
  R          - Restart (after the match ends)
  ?          - More help
  Q/Ctrl+C   - Quit

Difficulty options:
  easy    - CPU level 2, slower ball, taller paddles
  normal  - CPU level 5
  hard    - CPU level 8
  expert  - CPU level 10, faster ball, shorter paddles

Logs go to ~/.blockpong/blockpong.log while the game is on screen.

Examples:
  blockpong play
  blockpong play arena --difficulty hard
  blockpong play versus --level fortress
  blockpong play demo --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	if len(args) == 1 && !registry.Exists(args[0]) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", args[0])
		fmt.Fprintln(os.Stderr, "Run 'blockpong list' to see available modes.")
		os.Exit(1)
	}

	cfg, err := loadArena()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The screen belongs to the game, so logs go to a file
	var logOut io.Writer = io.Discard
	if f, err := openLogFile(); err == nil {
		defer f.Close()
		logOut = f
	}
	logger, err := newLogger(logOut)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Open match history
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open match history: %v\n", err)
		// Continue without storage - the game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	width, height := terminalSize()
	session := playSession{cfg: cfg, store: store, logger: logger}

	if len(args) == 1 {
		level, err := resolveLevel(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := session.play(args[0], level, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := session.menu(width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// playSession carries what every match of one CLI run shares.
type playSession struct {
	cfg    config.ArenaConfig
	store  *storage.Store
	logger *log.Logger
}

// play runs a single match until the player quits.
func (s playSession) play(modeID string, level arena.Level, width, height int) error {
	mode, ok := registry.Lookup(modeID)
	if !ok {
		return fmt.Errorf("unknown mode %q", modeID)
	}

	game, err := registry.Create(modeID, registry.Options{
		Arena:       s.cfg.Arena(flagSeed),
		Level:       level,
		Progression: s.cfg.AI.Progression,
		Logger:      s.logger,
	})
	if err != nil {
		return err
	}

	rt := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
	return tui.Run(game, rt, tui.RunOptions{
		Store:  s.store,
		Logger: s.logger,
		Versus: mode.Human(core.Player1) && mode.Human(core.Player2),
	})
}

// menu loops between the picker, matches and the history screen.
func (s playSession) menu(width, height int) error {
	catalog, err := levelLoader().Catalog()
	if err != nil {
		return err
	}
	menuLevels := make([]tui.MenuLevel, len(catalog))
	byID := make(map[string]arena.Level, len(catalog))
	for i, l := range catalog {
		menuLevels[i] = tui.MenuLevel{ID: l.ID, Name: l.Name}
		byID[l.ID] = l.Level
	}

	current := flagLevel
	if current == "" {
		current = s.cfg.Match.Level
	}

	for {
		result, err := tui.RunMenu(menuLevels, current, width, height)
		if err != nil {
			return err
		}
		width, height = result.Width, result.Height

		switch {
		case result.Quit:
			return nil

		case result.WantsScoreboard:
			goBack, err := tui.RunScoreboard(s.store, "", width, height)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}

		default:
			current = result.LevelID
			if err := s.play(result.ModeID, byID[result.LevelID], width, height); err != nil {
				return err
			}
		}
	}
}
