package core

// RuntimeConfig is handed to the game on every Reset.
type RuntimeConfig struct {
	ScreenW       int  // Screen width in characters
	ScreenH       int  // Screen height in characters
	TickRate      int  // UI frames per second
	AutoTick      bool // Advance the simulation on a timer as well as on Confirm
	AutoTickEvery int  // Frames between automatic advances
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:       80,
		ScreenH:       24,
		TickRate:      30,
		AutoTickEvery: 15,
	}
}

// GameState is what the platform needs to know about the game.
type GameState struct {
	Score    int    // Ticks survived plus destroyed entity bonus
	GameOver bool   // True once every level is cleared
	Paused   bool
	Status   string // Short status word for the footer
}

// StepResult is returned by Game.Step after each frame.
type StepResult struct {
	State    GameState
	Advanced bool // The simulation applied a tick this frame
}
