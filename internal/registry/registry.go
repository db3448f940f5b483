// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, allowing the platform
// to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"fmt"
	"slices"
	"sync"

	"github.com/oscarklm/matchmoji/internal/core"
)

// Game is the interface every playable board implements.
// Games contain pure logic with no Bubble Tea dependency; the platform
// handles input mapping, timing, and rendering.
type Game interface {
	// ID returns a unique identifier (e.g., "memory_easy").
	// Used for CLI commands and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes or restarts the game.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	Render(dst *core.Screen)

	// State returns the current coarse game state.
	State() core.GameState
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

type entry struct {
	info    GameInfo
	factory Factory
	seq     int
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds a game factory to the registry.
// Games are listed in the order they were registered.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	entries[id] = entry{
		info:    GameInfo{ID: id, Title: f().Title()},
		factory: f,
		seq:     len(entries),
	}
}

// List returns information about all registered games in registration order.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	sorted := make([]entry, 0, len(entries))
	for _, e := range entries {
		sorted = append(sorted, e)
	}
	slices.SortFunc(sorted, func(a, b entry) int { return a.seq - b.seq })

	result := make([]GameInfo, len(sorted))
	for i, e := range sorted {
		result[i] = e.info
	}
	return result
}

// Create instantiates a new game by its ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}

// Unregister removes a game. Intended for tests and for reloading levels.
func Unregister(id string) {
	mu.Lock()
	defer mu.Unlock()

	delete(entries, id)
}
