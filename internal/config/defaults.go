package config

import (
	_ "embed"
)

//go:embed defaults/arena.yaml
var defaultArenaYAML []byte

// DefaultArenaConfig returns the default arena configuration.
func DefaultArenaConfig() ArenaConfig {
	cfg := ArenaConfig{
		Field: FieldConfig{
			Width:  800,
			Height: 600,
		},
		Ball: BallConfig{
			Radius:   8,
			Speed:    300,
			MaxSpeed: 900,
		},
		Paddles: PaddlesConfig{
			Offset:     30,
			HalfHeight: 50,
			Thickness:  12,
			Speed:      360,
			Margin:     0,
		},
		Physics: PhysicsConfig{
			Acceleration:     1.05,
			MaxDeflectionDeg: 60,
			MaxDelta:         0.1,
		},
		Match: MatchConfig{
			Duration: 180,
			Level:    "wall",
		},
		AI: AIConfig{
			Enabled: true,
			Player:  2,
			Level:   5,
			Progression: ProgressionConfig{
				Type:     "score",
				MaxAt:    10,
				MaxLevel: 8,
			},
		},
		Items: ItemsConfig{
			SpeedFactor:    1.5,
			ResizeFactor:   1.5,
			SpeedDuration:  8,
			FogDuration:    6,
			ResizeDuration: 10,
		},
	}
	cfg.Items.Weights.Speed = 40
	cfg.Items.Weights.Fog = 25
	cfg.Items.Weights.Resize = 35
	return cfg
}

// GetDefaultYAML returns the embedded default YAML for a config file name.
func GetDefaultYAML(name string) []byte {
	switch name {
	case "arena", "arena.yaml":
		return defaultArenaYAML
	default:
		return nil
	}
}
