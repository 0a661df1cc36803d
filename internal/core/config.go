package core

import "time"

// RuntimeConfig contains configuration passed to scenes at initialization.
type RuntimeConfig struct {
	ScreenW  int    // Screen width in characters
	ScreenH  int    // Screen height in characters
	TickRate int    // Simulation ticks per second (default 60)
	Seed     int64  // RNG seed for deterministic enemy behaviour
	Player   string // Player name recorded with run results
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

// GameState is the status a scene reports to the platform after each tick.
type GameState struct {
	Coins    int           // Coins collected so far
	Health   int           // Current player health
	Elapsed  time.Duration // Time spent in the level (excluding pauses)
	Paused   bool          // Whether the level is paused
	Finished bool          // Whether the run has ended
	Won      bool          // Whether the run ended with all coins collected
}
