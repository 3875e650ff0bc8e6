package platformer

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

// GameID identifies the platformer in the registry, storage and CLI.
const GameID = "platformer"

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// Game adapts a Session to the platform's registry.Game interface.
// It owns the session clock: wall time minus time spent paused.
type Game struct {
	session  *Session
	runtime  core.RuntimeConfig
	override *config.PlatformerConfig

	clock       func() time.Time
	paused      bool
	pausedAt    time.Time
	pausedTotal time.Duration
}

// New creates a new platformer game instance.
func New() *Game {
	return &Game{clock: time.Now}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Sky Runner"
}

// SetClock replaces the wall clock, for tests and replays.
func (g *Game) SetClock(clock func() time.Time) {
	g.clock = clock
}

// SetConfig makes the next Reset use cfg instead of loading from disk.
// Used for hot reloads; the running session keeps its config.
func (g *Game) SetConfig(cfg config.PlatformerConfig) {
	g.override = &cfg
}

// Reset starts a new session, replacing the previous one entirely.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	var cfg config.PlatformerConfig
	if g.override != nil {
		cfg = *g.override
	} else {
		loaded, err := config.LoadPlatformer(configPath)
		if err != nil {
			loaded = config.DefaultPlatformerConfig()
		}
		cfg = loaded
	}

	// Unknown names fall back to the config default
	preset, _ := config.ParsePreset(runtime.Difficulty)

	g.paused = false
	g.pausedTotal = 0

	vw := float64(runtime.ScreenW) * cfg.Viewport.CellWidth
	vh := float64(runtime.ScreenH) * cfg.Viewport.CellHeight
	rng := rand.New(rand.NewSource(runtime.Seed))
	g.session = NewSession(cfg, preset, rng, vw, vh, g.now())
}

// now returns the session clock. It stands still while paused.
func (g *Game) now() time.Time {
	if g.paused {
		return g.pausedAt.Add(-g.pausedTotal)
	}
	return g.clock().Add(-g.pausedTotal)
}

func (g *Game) togglePause() {
	if g.paused {
		g.pausedTotal += g.clock().Sub(g.pausedAt)
		g.paused = false
		return
	}
	g.pausedAt = g.clock()
	g.paused = true
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.session.GameOver() {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.togglePause()
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	events := g.session.Tick(InputFromFrame(in), g.now())
	return core.StepResult{State: g.State(), Events: events}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := g.session.State(g.now())
	st.Paused = g.paused
	return st
}

// Session exposes the running session.
func (g *Game) Session() *Session {
	return g.session
}

// Scene returns the drawable scene at the session clock.
func (g *Game) Scene() Scene {
	return g.session.Scene(g.now())
}

// Register the game with the registry
func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}
