package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/piwi3910/CrankHint/internal/model"
)

// DefaultScenarioPath returns the default file path for the scenario library.
// This is located at ~/.crankhint/scenarios.json.
func DefaultScenarioPath() string {
	return filepath.Join(DefaultConfigDir(), "scenarios.json")
}

// SaveScenarios writes the scenario store to a JSON file.
func SaveScenarios(path string, store model.ScenarioStore) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadScenarios reads a scenario store from a JSON file.
// If the file does not exist, returns a store seeded with the sample scenarios.
func LoadScenarios(path string) (model.ScenarioStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			store := model.NewScenarioStore()
			for _, s := range model.SampleScenarios() {
				store.Add(s)
			}
			return store, nil
		}
		return model.ScenarioStore{}, err
	}
	var store model.ScenarioStore
	if err := json.Unmarshal(data, &store); err != nil {
		return model.ScenarioStore{}, err
	}
	if store.Scenarios == nil {
		store.Scenarios = []model.Scenario{}
	}
	return store, nil
}
