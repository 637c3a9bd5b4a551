package arena

import (
	"fmt"
	"math"

	"github.com/vovakirdan/blockpong/internal/core"
)

// Physics constants that the rules fix rather than tune.
const (
	DefaultAcceleration  = 1.05        // Speed multiplier on every paddle hit
	DefaultMaxDeflection = math.Pi / 3 // 60 degrees
	DefaultMaxDelta      = 0.1         // Largest step a single tick may integrate
)

// ItemConfig tunes the power-up items spawned by bonus blocks.
type ItemConfig struct {
	SpeedFactor    float64 // Multiplier applied by a speed boost
	ResizeFactor   float64 // Multiplier applied to paddle half-height
	SpeedDuration  float64 // Seconds
	FogDuration    float64 // Seconds
	ResizeDuration float64 // Seconds

	// Relative spawn weights for the default factory.
	WeightSpeed  int
	WeightFog    int
	WeightResize int
}

// Config is everything the simulation needs, passed explicitly at construction.
type Config struct {
	FieldWidth  float64
	FieldHeight float64

	BallRadius   float64
	BallSpeed    float64 // Pixels per second at serve
	BallMaxSpeed float64

	PaddleOffset     float64 // Distance of each collision plane from its wall
	PaddleHalfHeight float64
	PaddleThickness  float64
	PaddleSpeed      float64 // Pixels per second
	PaddleMargin     float64 // Gap between travel limits and the field edge

	Acceleration  float64
	MaxDeflection float64 // Radians
	MaxDelta      float64 // Seconds

	MatchDuration float64 // Seconds

	AIEnabled bool
	AIPlayer  core.PlayerID
	AILevel   int

	Items ItemConfig
	Seed  int64
}

// DefaultConfig returns an 800x600 arena with a level-5 CPU on the right.
func DefaultConfig() Config {
	return Config{
		FieldWidth:       800,
		FieldHeight:      600,
		BallRadius:       8,
		BallSpeed:        300,
		BallMaxSpeed:     900,
		PaddleOffset:     30,
		PaddleHalfHeight: 50,
		PaddleThickness:  12,
		PaddleSpeed:      360,
		PaddleMargin:     0,
		Acceleration:     DefaultAcceleration,
		MaxDeflection:    DefaultMaxDeflection,
		MaxDelta:         DefaultMaxDelta,
		MatchDuration:    180,
		AIEnabled:        true,
		AIPlayer:         core.Player2,
		AILevel:          5,
		Items: ItemConfig{
			SpeedFactor:    1.5,
			ResizeFactor:   1.5,
			SpeedDuration:  8,
			FogDuration:    6,
			ResizeDuration: 10,
			WeightSpeed:    40,
			WeightFog:      25,
			WeightResize:   35,
		},
	}
}

// Validate checks the configuration as a whole. Paddle geometry is checked
// again per paddle when entities are built.
func (c Config) Validate() error {
	switch {
	case c.FieldWidth <= 0 || c.FieldHeight <= 0:
		return fmt.Errorf("%w: field must be positive, got %vx%v", ErrInvalidConfig, c.FieldWidth, c.FieldHeight)
	case c.BallRadius <= 0:
		return fmt.Errorf("%w: ball radius must be positive, got %v", ErrInvalidConfig, c.BallRadius)
	case c.BallMaxSpeed <= 0 || c.BallSpeed < 0 || c.BallSpeed > c.BallMaxSpeed:
		return fmt.Errorf("%w: ball speed %v must be within [0, %v]", ErrInvalidConfig, c.BallSpeed, c.BallMaxSpeed)
	case c.PaddleSpeed < 0:
		return fmt.Errorf("%w: paddle speed must not be negative, got %v", ErrInvalidConfig, c.PaddleSpeed)
	case c.PaddleOffset < 0 || c.PaddleOffset*2 >= c.FieldWidth:
		return fmt.Errorf("%w: paddle offset %v does not fit a field of width %v", ErrInvalidConfig, c.PaddleOffset, c.FieldWidth)
	case c.Acceleration < 1:
		return fmt.Errorf("%w: acceleration must be >= 1, got %v", ErrInvalidConfig, c.Acceleration)
	case c.MaxDeflection <= 0 || c.MaxDeflection >= math.Pi/2:
		return fmt.Errorf("%w: max deflection must be within (0, pi/2), got %v", ErrInvalidConfig, c.MaxDeflection)
	case c.MaxDelta <= 0:
		return fmt.Errorf("%w: max delta must be positive, got %v", ErrInvalidConfig, c.MaxDelta)
	case c.MatchDuration <= 0:
		return fmt.Errorf("%w: match duration must be positive, got %v", ErrInvalidConfig, c.MatchDuration)
	case c.AIEnabled && !c.AIPlayer.Valid():
		return fmt.Errorf("%w: ai player must be 1 or 2, got %d", ErrInvalidConfig, c.AIPlayer)
	}
	if c.AIEnabled {
		if _, err := DifficultyForLevel(c.AILevel); err != nil {
			return err
		}
	}
	return c.Items.validate()
}

func (c ItemConfig) validate() error {
	if c.SpeedFactor <= 0 || c.ResizeFactor <= 0 {
		return fmt.Errorf("%w: item factors must be positive", ErrInvalidConfig)
	}
	if c.SpeedDuration <= 0 || c.FogDuration <= 0 || c.ResizeDuration <= 0 {
		return fmt.Errorf("%w: item durations must be positive", ErrInvalidConfig)
	}
	if c.WeightSpeed < 0 || c.WeightFog < 0 || c.WeightResize < 0 {
		return fmt.Errorf("%w: item weights must not be negative", ErrInvalidConfig)
	}
	return nil
}
