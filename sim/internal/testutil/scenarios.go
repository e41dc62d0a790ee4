// Package testutil provides shared test infrastructure for the hospital simulator.
// It holds the scenario fixture types and assertion helpers used by the sim/ and
// cmd/ test packages.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// ScenarioDataset represents the structure of testdata/scenarios.json.
type ScenarioDataset struct {
	Scenarios []Scenario `json:"scenarios"`
}

// ScenarioCategory is one entry of a scenario's category registry.
type ScenarioCategory struct {
	Name     string  `json:"name"`
	Severity float64 `json:"severity"`
}

// Scenario is a hospital configuration whose outcome is known without running it.
type Scenario struct {
	Name         string                        `json:"name"`
	Seed         int64                         `json:"seed"`
	Horizon      float64                       `json:"horizon"`
	Categories   []ScenarioCategory            `json:"categories"`
	Beds         map[string]int                `json:"bed_distribution"`
	ArrivalRates map[string]float64            `json:"arrival_rates"`
	StayMeans    map[string]float64            `json:"stay_means"`
	Relocation   map[string]map[string]float64 `json:"relocation_matrix,omitempty"`
	Expect       ScenarioExpectation           `json:"expect"`
}

// ScenarioExpectation lists the properties a scenario's run must show.
// Zero values are unchecked.
type ScenarioExpectation struct {
	Events      int     `json:"events,omitempty"`
	AllLost     bool    `json:"all_lost,omitempty"`
	NoneLost    bool    `json:"none_lost,omitempty"`
	LossRate    float64 `json:"loss_rate,omitempty"`
	Relocations bool    `json:"relocations,omitempty"`
}

// LoadScenarioDataset loads the scenario fixtures from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadScenarioDataset(t *testing.T) *ScenarioDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "scenarios.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read scenario dataset: %v", err)
	}

	var dataset ScenarioDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse scenario dataset: %v", err)
	}
	if len(dataset.Scenarios) == 0 {
		t.Fatal("Scenario dataset is empty")
	}

	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
