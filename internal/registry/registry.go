// Package registry provides a global registry for game engine factories.
// Games register themselves in init() functions, allowing the platform
// to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/turn-arcade/internal/engine"
)

// Kind groups engines by how they are played, so the UI can pick an input
// adapter and renderer.
type Kind string

const (
	KindMarks    Kind = "marks"    // place a mark on a grid cell
	KindChoice   Kind = "choice"   // pick from a finite choice set
	KindMovement Kind = "movement" // steer a single agent
)

// Info contains metadata about a registered game.
type Info struct {
	ID       string
	Title    string
	Kind     Kind
	Defaults engine.Config
}

// VsComputer reports whether the default configuration has a computer opponent.
func (i Info) VsComputer() bool {
	return i.Defaults.Opponent == engine.OpponentRandom || i.Defaults.Opponent == engine.OpponentGreedy
}

// Factory is a function that creates a new engine instance.
type Factory func() engine.Engine

type entry struct {
	info    Info
	factory Factory
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds a game factory to the registry.
// Panics if a game with the same ID is already registered.
func Register(info Info, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[info.ID]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", info.ID))
	}
	entries[info.ID] = entry{info: info, factory: f}
}

// List returns information about all registered games, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Lookup returns the metadata of a registered game.
func Lookup(id string) (Info, bool) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	return e.info, ok
}

// Create instantiates a new engine by its ID.
// Returns an error if the game ID is not registered.
func Create(id string) (engine.Engine, error) {
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

// unregister removes a game; tests use it to clean up fixtures.
func unregister(id string) {
	mu.Lock()
	defer mu.Unlock()
	delete(entries, id)
}
