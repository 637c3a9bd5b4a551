package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// TickDelta returns the fixed simulation step in seconds.
func (c RuntimeConfig) TickDelta() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.TickRate)
}

// GameState represents the current state of a game as seen by the platform.
type GameState struct {
	Score1   int  // Left player score
	Score2   int  // Right player score
	Winner   PlayerID
	GameOver bool // Whether the match has ended
	Paused   bool // Whether the game is paused

	Level   string  // Level ID being played
	Reason  string  // Why the match ended, empty while running
	Elapsed float64 // Seconds of play
	AILevel int     // Current CPU level, 0 without a CPU paddle
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
