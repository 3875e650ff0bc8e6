package core

import "time"

// RuntimeConfig is handed to a game when a session starts.
type RuntimeConfig struct {
	ScreenW    int    // Screen width in characters
	ScreenH    int    // Screen height in characters
	TickRate   int    // Simulation ticks per second (default 60)
	Seed       int64  // RNG seed for deterministic gameplay
	Difficulty string // Difficulty preset name, empty for the config default
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

// GameState is the summary the platform layer needs after each tick.
type GameState struct {
	Score      int
	Hearts     int
	Elapsed    time.Duration // Survival time, paused time excluded
	GameOver   bool
	Paused     bool
	Difficulty string // Resolved difficulty preset
}

// Event is a notable thing that happened during a tick.
// The platform uses events for side effects such as sound.
type Event string

const (
	EventJump     Event = "jump"
	EventCoin     Event = "coin"
	EventStomp    Event = "stomp"
	EventDamage   Event = "damage"
	EventGameOver Event = "game_over"
)

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State  GameState
	Events []Event
}
