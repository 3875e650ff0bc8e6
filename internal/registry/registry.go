// Package registry maps game IDs to factories. Games register themselves in
// init() so the terminal platform and the CLI can create them by name.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// ErrUnknownGame is returned by Create for IDs nobody registered.
var ErrUnknownGame = errors.New("registry: unknown game")

// Game is what the platform drives. Implementations hold pure simulation
// state; the platform owns input mapping, timing, audio and drawing.
type Game interface {
	// ID is the stable identifier used by the CLI and score storage.
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts a new run, discarding the previous one.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one tick. Events in the result
	// report what happened during the tick (jumps, pickups, damage).
	Step(in core.InputFrame) core.StepResult

	// Render draws the current frame. dst is cleared by the game.
	Render(dst *core.Screen)

	// State returns the current game state.
	State() core.GameState
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a fresh game instance.
type Factory func() Game

// Registry is a concurrency-safe set of game factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	titles    map[string]string
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		titles:    make(map[string]string),
	}
}

// Register adds a factory. Registering an ID twice panics.
func (r *Registry) Register(id string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	r.factories[id] = f
	r.titles[id] = f().Title()
}

// List returns every registered game sorted by ID.
func (r *Registry) List() []GameInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]GameInfo, 0, len(r.factories))
	for id := range r.factories {
		result = append(result, GameInfo{ID: id, Title: r.titles[id]})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates the game registered under id.
func (r *Registry) Create(id string) (Game, error) {
	r.mu.RLock()
	f, ok := r.factories[id]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}
	return f(), nil
}

// Exists reports whether id is registered.
func (r *Registry) Exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[id]
	return ok
}

var defaultRegistry = New()

// Register adds a factory to the process-wide registry.
func Register(id string, f Factory) { defaultRegistry.Register(id, f) }

// List lists the process-wide registry.
func List() []GameInfo { return defaultRegistry.List() }

// Create instantiates a game from the process-wide registry.
func Create(id string) (Game, error) { return defaultRegistry.Create(id) }

// Exists checks the process-wide registry.
func Exists(id string) bool { return defaultRegistry.Exists(id) }
