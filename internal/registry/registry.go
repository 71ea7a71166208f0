// Package registry provides a global registry for match factories.
// Match modes register themselves in init() functions so the platform
// can list and start them without importing each one by name.
package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/vovakirdan/blockfall/internal/core"
)

// ErrUnknown is returned by Create for an unregistered ID.
var ErrUnknown = errors.New("registry: unknown mode")

// Game is the interface every playable mode implements.
// Games hold pure logic with no Bubble Tea dependency; the platform maps
// keys to actions, drives the tick and paints the screen buffer.
type Game interface {
	// ID returns the mode identifier used by the CLI and score storage.
	ID() string

	// Title returns a human-readable name.
	Title() string

	// Reset loads configuration and prepares a fresh match.
	// Called once at start and again for a new match after game over.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick with Player1's input.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into a screen buffer.
	Render(dst *core.Screen)

	// State returns score, game over and pause flags.
	State() core.GameState
}

// MultiGame is a Game that accepts input for both players in one tick.
type MultiGame interface {
	Game
	StepMulti(in core.MultiInputFrame) core.StepResult
}

// GameInfo contains metadata about a registered mode.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new game instance.
type Factory func() Game

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
	order     []GameInfo
)

// Register adds a factory. Panics if the ID is already taken.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: mode %q already registered", id))
	}
	factories[id] = f
	order = append(order, GameInfo{ID: id, Title: f().Title()})
}

// List returns every registered mode in registration order.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, len(order))
	copy(out, order)
	return out
}

// Create instantiates a mode by ID.
func Create(id string) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknown, id)
	}
	return f(), nil
}

// Exists checks if a mode is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// StepInput advances g one tick. Both players' input reaches a MultiGame;
// any other game only sees Player1's.
func StepInput(g Game, in core.MultiInputFrame) core.StepResult {
	if mg, ok := g.(MultiGame); ok {
		return mg.StepMulti(in)
	}
	return g.Step(in.Player1())
}
