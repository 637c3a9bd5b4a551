// Package config provides YAML-based arena configuration loading and
// difficulty management for blockpong.
package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/blockpong/internal/arena"
	"github.com/vovakirdan/blockpong/internal/core"
)

// ArenaConfig contains all configuration for a match.
type ArenaConfig struct {
	Field   FieldConfig   `yaml:"field"`
	Ball    BallConfig    `yaml:"ball"`
	Paddles PaddlesConfig `yaml:"paddles"`
	Physics PhysicsConfig `yaml:"physics"`
	Match   MatchConfig   `yaml:"match"`
	AI      AIConfig      `yaml:"ai"`
	Items   ItemsConfig   `yaml:"items"`
}

// FieldConfig is the playfield size in pixels.
type FieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// BallConfig defines the ball at serve time.
type BallConfig struct {
	Radius   float64 `yaml:"radius"`
	Speed    float64 `yaml:"speed"`     // Pixels per second
	MaxSpeed float64 `yaml:"max_speed"` // Cap enforced after every paddle hit
}

// PaddlesConfig defines both paddles.
type PaddlesConfig struct {
	Offset     float64 `yaml:"offset"` // Distance of the collision plane from its wall
	HalfHeight float64 `yaml:"half_height"`
	Thickness  float64 `yaml:"thickness"`
	Speed      float64 `yaml:"speed"`
	Margin     float64 `yaml:"margin"` // Gap between travel limits and the field edge
}

// PhysicsConfig tunes collision response.
type PhysicsConfig struct {
	Acceleration     float64 `yaml:"acceleration"`
	MaxDeflectionDeg float64 `yaml:"max_deflection_deg"`
	MaxDelta         float64 `yaml:"max_delta"` // Largest tick in seconds
}

// MatchConfig defines match length and starting level.
type MatchConfig struct {
	Duration float64 `yaml:"duration"` // Seconds
	Level    string  `yaml:"level"`
}

// AIConfig defines the CPU opponent.
type AIConfig struct {
	Enabled     bool              `yaml:"enabled"`
	Player      int               `yaml:"player"` // 1 = left, 2 = right
	Level       int               `yaml:"level"`  // 1 (easy) to 10 (hard)
	Progression ProgressionConfig `yaml:"progression"`
}

// ItemsConfig tunes power-ups dropped by bonus blocks.
type ItemsConfig struct {
	SpeedFactor    float64 `yaml:"speed_factor"`
	ResizeFactor   float64 `yaml:"resize_factor"`
	SpeedDuration  float64 `yaml:"speed_duration"`
	FogDuration    float64 `yaml:"fog_duration"`
	ResizeDuration float64 `yaml:"resize_duration"`
	Weights        struct {
		Speed  int `yaml:"speed"`
		Fog    int `yaml:"fog"`
		Resize int `yaml:"resize"`
	} `yaml:"weights"`
}

// Arena converts the file representation into the simulation's config.
func (c ArenaConfig) Arena(seed int64) arena.Config {
	return arena.Config{
		FieldWidth:       c.Field.Width,
		FieldHeight:      c.Field.Height,
		BallRadius:       c.Ball.Radius,
		BallSpeed:        c.Ball.Speed,
		BallMaxSpeed:     c.Ball.MaxSpeed,
		PaddleOffset:     c.Paddles.Offset,
		PaddleHalfHeight: c.Paddles.HalfHeight,
		PaddleThickness:  c.Paddles.Thickness,
		PaddleSpeed:      c.Paddles.Speed,
		PaddleMargin:     c.Paddles.Margin,
		Acceleration:     c.Physics.Acceleration,
		MaxDeflection:    c.Physics.MaxDeflectionDeg * math.Pi / 180,
		MaxDelta:         c.Physics.MaxDelta,
		MatchDuration:    c.Match.Duration,
		AIEnabled:        c.AI.Enabled,
		AIPlayer:         core.PlayerID(c.AI.Player),
		AILevel:          c.AI.Level,
		Items: arena.ItemConfig{
			SpeedFactor:    c.Items.SpeedFactor,
			ResizeFactor:   c.Items.ResizeFactor,
			SpeedDuration:  c.Items.SpeedDuration,
			FogDuration:    c.Items.FogDuration,
			ResizeDuration: c.Items.ResizeDuration,
			WeightSpeed:    c.Items.Weights.Speed,
			WeightFog:      c.Items.Weights.Fog,
			WeightResize:   c.Items.Weights.Resize,
		},
		Seed: seed,
	}
}

// Validate reports the first invalid value, wrapped in arena.ErrInvalidConfig.
func (c ArenaConfig) Validate() error {
	if err := c.Arena(0).Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if p := c.AI.Progression; p.Type != "" && p.Type != "none" && p.Type != "score" && p.Type != "time" {
		return fmt.Errorf("config: %w: unknown progression type %q", arena.ErrInvalidConfig, p.Type)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyExpert DifficultyPreset = "expert"
)

// Presets lists every preset in increasing difficulty.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyExpert}
}

// ParsePreset accepts a preset name in any case.
func ParsePreset(name string) (DifficultyPreset, error) {
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Presets() {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or expert)", name)
}

// AILevelForPreset returns the CPU table level for a difficulty preset.
func AILevelForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 2
	case DifficultyHard:
		return 8
	case DifficultyExpert:
		return 10
	default:
		return 5
	}
}
