// Package registry maps run-mode IDs to game factories. Modes register in
// init(), so the CLI and the TUI can list and start them by name.
package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/owl-run/internal/core"
)

// Game is what the platform drives: fixed ticks in, a cell buffer out.
// Implementations hold no terminal or network state.
type Game interface {
	// ID is the stable mode identifier used on the CLI and in the score table.
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts a new run with the given screen size, tick rate and seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws into dst.
	Render(dst *core.Screen)

	// State returns score, game over and paused flags.
	State() core.GameState
}

// ModeInfo describes a registered mode.
type ModeInfo struct {
	ID    string
	Title string
}

// Factory creates a fresh game for a mode.
type Factory func() Game

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
)

// Register adds a mode. Panics on a duplicate ID.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: mode %q already registered", id))
	}
	factories[id] = f
	titles[id] = f().Title()
}

// List returns every mode sorted by ID.
func List() []ModeInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]ModeInfo, 0, len(factories))
	for id := range factories {
		out = append(out, ModeInfo{ID: id, Title: titles[id]})
	}
	slices.SortFunc(out, func(a, b ModeInfo) int { return strings.Compare(a.ID, b.ID) })
	return out
}

// Create instantiates the mode with the given ID.
func Create(id string) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown mode %q", id)
	}
	return f(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
