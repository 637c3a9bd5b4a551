package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadArena loads arena configuration.
// Search order: customPath -> ~/.blockpong/configs/arena.yaml -> ./configs/arena.yaml -> embedded default
//
// Files are decoded over the defaults, so a file may set only the keys it
// cares about.
func LoadArena(customPath string) (ArenaConfig, error) {
	cfg := DefaultArenaConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath("arena.yaml"); userCfgPath != "" {
		if c, ok := tryLoad(userCfgPath); ok {
			return c, nil
		}
	}

	// Try local configs directory
	if c, ok := tryLoad(filepath.Join("configs", "arena.yaml")); ok {
		return c, nil
	}

	// Use embedded default YAML
	embedded := DefaultArenaConfig()
	if err := yaml.Unmarshal(defaultArenaYAML, &embedded); err != nil {
		return DefaultArenaConfig(), nil // Fallback to hardcoded if embed fails
	}
	return embedded, nil
}

// tryLoad reads an optional config file. Missing, broken or invalid files
// are skipped.
func tryLoad(path string) (ArenaConfig, bool) {
	cfg := DefaultArenaConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	if err := cfg.Validate(); err != nil {
		return cfg, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".blockpong", "configs", filename)
}

// ApplyArenaPreset modifies the config based on a difficulty preset.
func ApplyArenaPreset(cfg *ArenaConfig, preset DifficultyPreset) {
	cfg.AI.Level = AILevelForPreset(preset)
	if cfg.AI.Progression.MaxLevel < cfg.AI.Level {
		cfg.AI.Progression.MaxLevel = cfg.AI.Level
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Ball.Speed = 240
		cfg.Paddles.HalfHeight = 60
	case DifficultyExpert:
		cfg.Ball.Speed = 380
		cfg.Paddles.HalfHeight = 40
	}
	if cfg.Ball.Speed > cfg.Ball.MaxSpeed {
		cfg.Ball.Speed = cfg.Ball.MaxSpeed
	}
}
