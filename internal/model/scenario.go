package model

import (
	"time"

	"github.com/google/uuid"
)

// Scenario is a named target configuration used by the tuning tools.
type Scenario struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	CreatedAt   string        `json:"created_at"`
	Targets     []TargetPoint `json:"targets"`
}

// NewScenario creates a scenario from screen points in role order.
func NewScenario(name string, points ...Point) Scenario {
	return Scenario{
		ID:        uuid.New().String()[:8],
		Name:      name,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Targets:   NewTargets(points...),
	}
}

// HasAction reports whether the scenario includes the optional role 4 target.
func (s Scenario) HasAction() bool {
	return len(s.Targets) == MaxRoles
}

// Clone returns a copy whose target slice is independent of s.
func (s Scenario) Clone() Scenario {
	cp := s
	cp.Targets = copyTargets(s.Targets)
	return cp
}

// SampleScenarios returns the reference configurations the engine is tuned against.
func SampleScenarios() []Scenario {
	three := NewScenario("Three joints",
		Point{X: 100, Y: 100}, Point{X: 300, Y: 100}, Point{X: 300, Y: 180})
	three.Description = "Arm stretched across the screen, no action target"

	four := NewScenario("Joints plus action",
		Point{X: 100, Y: 100}, Point{X: 300, Y: 100}, Point{X: 300, Y: 180}, Point{X: 200, Y: 140})
	four.Description = "Action target in the middle of the arm"

	folded := NewScenario("Folded arm",
		Point{X: 200, Y: 120}, Point{X: 260, Y: 120}, Point{X: 210, Y: 130})
	folded.Description = "Both wrists close to each other near the screen centre"

	return []Scenario{three, four, folded}
}

// ScenarioStore holds the scenario library.
type ScenarioStore struct {
	Scenarios []Scenario `json:"scenarios"`
}

// NewScenarioStore creates an empty scenario store.
func NewScenarioStore() ScenarioStore {
	return ScenarioStore{
		Scenarios: []Scenario{},
	}
}

// Add appends a scenario to the store.
func (ss *ScenarioStore) Add(s Scenario) {
	ss.Scenarios = append(ss.Scenarios, s)
}

// Remove removes a scenario by ID. Returns true if found and removed.
func (ss *ScenarioStore) Remove(id string) bool {
	for i, s := range ss.Scenarios {
		if s.ID == id {
			ss.Scenarios = append(ss.Scenarios[:i], ss.Scenarios[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the scenario with the given ID, or nil.
func (ss *ScenarioStore) FindByID(id string) *Scenario {
	for i := range ss.Scenarios {
		if ss.Scenarios[i].ID == id {
			return &ss.Scenarios[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first scenario with the given name, or nil.
func (ss *ScenarioStore) FindByName(name string) *Scenario {
	for i := range ss.Scenarios {
		if ss.Scenarios[i].Name == name {
			return &ss.Scenarios[i]
		}
	}
	return nil
}

// Names returns the scenario names for UI dropdowns.
func (ss *ScenarioStore) Names() []string {
	names := make([]string, len(ss.Scenarios))
	for i, s := range ss.Scenarios {
		names[i] = s.Name
	}
	return names
}

func copyTargets(targets []TargetPoint) []TargetPoint {
	if targets == nil {
		return []TargetPoint{}
	}
	cp := make([]TargetPoint, len(targets))
	copy(cp, targets)
	return cp
}
