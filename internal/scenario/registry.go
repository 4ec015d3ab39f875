// Package scenario provides named starting arrangements for the simulation.
// Built-in scenarios register themselves in init(); more can be loaded from
// YAML files.
package scenario

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/ballcore/internal/config"
	"github.com/vovakirdan/ballcore/internal/sim"
)

// ErrUnknown is returned when a scenario ID is not registered.
var ErrUnknown = errors.New("scenario: unknown")

// Scenario populates a fresh world.
type Scenario struct {
	ID          string
	Title       string
	Description string

	// Auto starts the world with the paddle autopilot on.
	Auto bool

	// Level overrides the configured initial speed level when >= 0.
	Level int

	// Setup spawns the balls.
	Setup func(w *sim.World) error
}

// Info contains metadata about a registered scenario.
type Info struct {
	ID          string
	Title       string
	Description string
}

var (
	scenarios = make(map[string]Scenario)
	mu        sync.RWMutex
)

// Register adds a scenario. Panics if the ID is already registered.
func Register(s Scenario) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := scenarios[s.ID]; exists {
		panic(fmt.Sprintf("scenario: %q already registered", s.ID))
	}
	scenarios[s.ID] = s
}

// List returns all registered scenarios, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(scenarios))
	for _, s := range scenarios {
		result = append(result, Info{ID: s.ID, Title: s.Title, Description: s.Description})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Get returns a registered scenario by ID.
func Get(id string) (Scenario, error) {
	mu.RLock()
	defer mu.RUnlock()

	s, ok := scenarios[id]
	if !ok {
		return Scenario{}, fmt.Errorf("%w: %q", ErrUnknown, id)
	}
	return s, nil
}

// Exists checks if a scenario with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := scenarios[id]
	return ok
}

// Create builds a world for a registered scenario.
func Create(id string, cfg config.Config, seed int64) (*sim.World, error) {
	s, err := Get(id)
	if err != nil {
		return nil, err
	}
	return s.Build(cfg, seed)
}

// Build creates a world from cfg and runs the scenario's setup on it.
func (s Scenario) Build(cfg config.Config, seed int64) (*sim.World, error) {
	w := sim.New(cfg, seed)
	w.SetAuto(s.Auto)
	if s.Level >= 0 {
		w.SpeedManager().SetInitialLevel(s.Level)
	}
	if s.Setup != nil {
		if err := s.Setup(w); err != nil {
			return nil, fmt.Errorf("scenario: %s: %w", s.ID, err)
		}
	}
	return w, nil
}
