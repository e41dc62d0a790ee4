package sim

import "testing"

// singleWardConfig builds a one-category hospital without relocation.
func singleWardConfig(beds int, rate, stayMean float64) Config {
	return Config{
		Categories:   Registry{{Name: "X", Severity: 3.0}},
		Beds:         map[Category]int{"X": beds},
		ArrivalRates: map[Category]float64{"X": rate},
		StayMeans:    map[Category]float64{"X": stayMean},
		Horizon:      10,
	}
}

// overflowConfig builds X (no beds) overflowing into Y with probability 1.
// Y overflows back into X, which can never admit.
func overflowConfig(yBeds int) Config {
	return Config{
		Categories:   Registry{{Name: "X", Severity: 2.0}, {Name: "Y", Severity: 4.0}},
		Beds:         map[Category]int{"X": 0, "Y": yBeds},
		ArrivalRates: map[Category]float64{"X": 2.0, "Y": 0.5},
		StayMeans:    map[Category]float64{"X": 50.0, "Y": 50.0},
		Relocation: RelocationMatrix{
			"X": {"Y": 1.0},
			"Y": {"X": 1.0},
		},
		Horizon: 20,
	}
}

func mustSimulator(t *testing.T, cfg Config, seed int64) *Simulator {
	t.Helper()
	s, err := NewSimulator(cfg, seed)
	if err != nil {
		t.Fatalf("NewSimulator: %v", err)
	}
	return s
}

func mustHospital(t *testing.T, cfg Config, policy *RelocationPolicy) *Hospital {
	t.Helper()
	h, err := NewHospital(cfg.Categories, cfg.Beds, policy)
	if err != nil {
		t.Fatalf("NewHospital: %v", err)
	}
	h.Initialize()
	return h
}
