package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second requested from the platform (default 60)
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

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score      int    // Survival seconds so far, or final survival on round end
	Running    bool   // Whether a round is in progress
	RoundEnded bool   // Whether the last round ended in a collision
	Mode       string // Display name of the active or selected mode
}

// StepResult is returned by Game.Step() after each frame.
type StepResult struct {
	State GameState
	Ended bool // True only on the frame where the round ended
}
