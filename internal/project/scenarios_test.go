package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/CrankHint/internal/model"
)

func TestSaveAndLoadScenarios(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenarios.json")

	store := model.NewScenarioStore()
	s := model.NewScenario("Reach", model.Point{X: 10, Y: 20}, model.Point{X: 30, Y: 40}, model.Point{X: 50, Y: 60})
	s.Description = "long reach"
	store.Add(s)

	if err := SaveScenarios(path, store); err != nil {
		t.Fatalf("SaveScenarios: %v", err)
	}

	loaded, err := LoadScenarios(path)
	if err != nil {
		t.Fatalf("LoadScenarios: %v", err)
	}
	if len(loaded.Scenarios) != 1 {
		t.Fatalf("expected 1 scenario, got %d", len(loaded.Scenarios))
	}
	got := loaded.Scenarios[0]
	if got.ID != s.ID || got.Name != "Reach" || got.Description != "long reach" {
		t.Errorf("scenario mismatch: %+v", got)
	}
	if len(got.Targets) != 3 || got.Targets[2] != (model.TargetPoint{Role: 3, X: 50, Y: 60}) {
		t.Errorf("targets mismatch: %+v", got.Targets)
	}
}

func TestLoadScenariosMissingFileSeedsSamples(t *testing.T) {
	store, err := LoadScenarios(filepath.Join(t.TempDir(), "none.json"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(store.Scenarios) != len(model.SampleScenarios()) {
		t.Errorf("expected %d sample scenarios, got %d", len(model.SampleScenarios()), len(store.Scenarios))
	}
}

func TestLoadScenariosNullList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenarios.json")
	if err := os.WriteFile(path, []byte(`{"scenarios":null}`), 0644); err != nil {
		t.Fatal(err)
	}
	store, err := LoadScenarios(path)
	if err != nil {
		t.Fatalf("LoadScenarios: %v", err)
	}
	if store.Scenarios == nil {
		t.Error("Scenarios should not be nil")
	}
}

func TestLoadScenariosInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenarios.json")
	if err := os.WriteFile(path, []byte("[oops"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadScenarios(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}
