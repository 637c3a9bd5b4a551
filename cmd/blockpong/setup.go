package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/blockpong/internal/arena"
	"github.com/vovakirdan/blockpong/internal/config"
	"github.com/vovakirdan/blockpong/internal/levels"
)

// newLogger creates a logger honoring --log-level.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "blockpong",
		Level:           level,
	}), nil
}

// openLogFile opens the session log used while the terminal UI owns the
// screen.
func openLogFile() (*os.File, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(home, ".blockpong")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "blockpong.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
}

// loadArena reads the arena config and applies --difficulty.
func loadArena() (config.ArenaConfig, error) {
	cfg, err := config.LoadArena(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return cfg, err
		}
		config.ApplyArenaPreset(&cfg, preset)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// levelLoader reads levels from --levels-dir or the default directory.
func levelLoader() *levels.Loader {
	root := flagLevelsDir
	if root == "" {
		root = levels.DefaultRoot()
	}
	return levels.NewLoader(root)
}

// resolveLevel picks --level, falling back to the configured level.
func resolveLevel(cfg config.ArenaConfig) (arena.Level, error) {
	id := flagLevel
	if id == "" {
		id = cfg.Match.Level
	}
	l, err := levelLoader().LoadByID(id)
	if err != nil {
		return arena.Level{}, err
	}
	return l.Level, nil
}

// terminalSize returns the size of stdout, or 80x24 when unknown.
func terminalSize() (width, height int) {
	width, height = 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return width, height
}
