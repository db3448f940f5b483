package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in columns
	ScreenH  int   // Screen height in rows
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for reproducible deals; 0 means time-based
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0,
	}
}

// TicksPerSecond returns the tick rate, falling back to 60 when unset.
func (c RuntimeConfig) TicksPerSecond() int {
	if c.TickRate <= 0 {
		return 60
	}
	return c.TickRate
}

// GameState is the coarse status a game reports to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
