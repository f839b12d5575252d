// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, so the CLI can discover
// and instantiate them without importing game packages directly.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/lane-dodge/internal/core"
)

// Game is the interface the platform drives. Games contain pure logic with
// no Bubble Tea dependency; the platform owns the frame loop, input mapping
// and terminal output.
type Game interface {
	// ID returns a unique identifier for this game (e.g., "lanedodge").
	// Used for CLI commands.
	ID() string

	// Title returns a human-readable name for display (e.g., "Lane Dodge").
	Title() string

	// Reset initializes or resets the game state.
	// The RuntimeConfig provides screen dimensions and RNG seed.
	Reset(cfg core.RuntimeConfig)

	// Step applies the input collected since the last frame and advances the
	// simulation to timestampMs, a monotonic frame time in milliseconds.
	Step(timestampMs float64, in core.MultiInputFrame) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	Render(dst *core.Screen)

	// State returns the current game state.
	State() core.GameState
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f

	// Get title by creating a temporary instance
	g := f()
	titles[id] = g.Title()
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// ErrUnknownGame is returned by Create for unregistered IDs.
var ErrUnknownGame = errors.New("registry: unknown game")

// Create instantiates a new game by its ID.
// Returns an error wrapping ErrUnknownGame if the ID is not registered.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}

	return f(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
