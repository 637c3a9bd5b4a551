// Package registry provides a global registry of playable modes.
// Game packages register themselves in init() functions, allowing the
// platform to discover and instantiate matches without hardcoded
// dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockpong/internal/arena"
	"github.com/vovakirdan/blockpong/internal/config"
	"github.com/vovakirdan/blockpong/internal/core"
)

// Game is the interface the platform drives. Implementations wrap the
// simulation and hold no terminal state; the platform handles input
// mapping, timing and rendering.
type Game interface {
	// ID returns the mode identifier (e.g., "arena", "versus").
	// Used for CLI commands and match history.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset starts a new match sized for the given runtime.
	// Called once at start and again after a resize.
	Reset(cfg core.RuntimeConfig) error

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current match into the provided screen buffer.
	Render(dst *core.Screen)

	// State returns the current match state as seen by the platform.
	State() core.GameState
}

// Mode describes who steers each paddle.
type Mode struct {
	ID          string
	Title       string
	Description string
	Sources     [2]arena.MovementSource // Indexed by player - 1
}

// Human reports whether player's paddle takes keyboard input in this mode.
func (m Mode) Human(player core.PlayerID) bool {
	return player.Valid() && m.Sources[player-1] == arena.SourceHuman
}

// Built-in modes.
var (
	ModeArena = Mode{
		ID:          "arena",
		Title:       "Arena",
		Description: "You on the left against the CPU",
		Sources:     [2]arena.MovementSource{arena.SourceHuman, arena.SourceAI},
	}
	ModeVersus = Mode{
		ID:          "versus",
		Title:       "Versus",
		Description: "Two players on one keyboard",
		Sources:     [2]arena.MovementSource{arena.SourceHuman, arena.SourceHuman},
	}
	ModeDemo = Mode{
		ID:          "demo",
		Title:       "Demo",
		Description: "CPU against CPU",
		Sources:     [2]arena.MovementSource{arena.SourceAI, arena.SourceAI},
	}
)

// Options carries everything a factory needs to build a match.
type Options struct {
	Arena       arena.Config
	Level       arena.Level
	Progression config.ProgressionConfig
	Logger      *log.Logger    // nil discards
	OnEvent     arena.Listener // Optional extra subscriber
}

// GameInfo contains metadata about a registered mode.
type GameInfo struct {
	ID          string
	Title       string
	Description string
}

// Factory creates a new match for mode.
type Factory func(mode Mode, opts Options) (Game, error)

type entry struct {
	mode    Mode
	factory Factory
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds a mode to the registry.
// Typically called from a game package's init() function.
// Panics if a mode with the same ID is already registered.
func Register(mode Mode, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[mode.ID]; exists {
		panic(fmt.Sprintf("registry: mode %q already registered", mode.ID))
	}
	entries[mode.ID] = entry{mode: mode, factory: f}
}

// List returns information about all registered modes, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		result = append(result, GameInfo{
			ID:          e.mode.ID,
			Title:       e.mode.Title,
			Description: e.mode.Description,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Lookup returns the mode registered under id.
func Lookup(id string) (Mode, bool) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	return e.mode, ok
}

// Create instantiates a new match for the mode id.
// Returns an error if the mode is not registered or the options are invalid.
func Create(id string, opts Options) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown mode %q", id)
	}

	g, err := e.factory(e.mode, opts)
	if err != nil {
		return nil, fmt.Errorf("registry: create %s: %w", id, err)
	}
	return g, nil
}

// Exists checks if a mode with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
