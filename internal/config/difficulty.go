package config

import "github.com/vovakirdan/blockpong/internal/arena"

// ProgressionConfig defines how the CPU level rises during a match.
type ProgressionConfig struct {
	Type     string `yaml:"type"`      // "score", "time", or "none"
	MaxAt    int    `yaml:"max_at"`    // Total points or seconds at which MaxLevel is reached
	MaxLevel int    `yaml:"max_level"` // Upper CPU level, 1-10
}

// DifficultyManager calculates the CPU level from match progress.
type DifficultyManager struct {
	cfg          ProgressionConfig
	initialLevel int
}

// NewDifficultyManager creates a new difficulty manager starting at initial.
func NewDifficultyManager(cfg ProgressionConfig, initial int) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampLevel(initial),
	}
}

// SetInitialLevel overrides the starting CPU level.
func (d *DifficultyManager) SetInitialLevel(level int) {
	d.initialLevel = clampLevel(level)
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Type == "score" || d.cfg.Type == "time"
}

// Level returns the CPU level for the given total points and elapsed seconds.
func (d *DifficultyManager) Level(points int, seconds float64) int {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	var progress float64
	switch d.cfg.Type {
	case "score":
		progress = float64(points) / maxAt
	case "time":
		progress = seconds / maxAt
	}
	progress = min(max(progress, 0), 1)

	top := max(clampLevel(d.cfg.MaxLevel), d.initialLevel)
	// Interpolate from the initial level to the top level
	return d.initialLevel + int(progress*float64(top-d.initialLevel))
}

func clampLevel(level int) int {
	return min(max(level, arena.MinAILevel), arena.MaxAILevel)
}
