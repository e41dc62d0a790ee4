package sim

import (
	"fmt"
	"maps"
	"math"
)

// DefaultHorizon is the default simulated duration (days).
const DefaultHorizon = 365.0

// Config is everything a run needs besides its seed.
// Relocation == nil or empty means no relocation policy: a patient whose home ward is
// full is lost.
type Config struct {
	Categories   Registry             `yaml:"categories,omitempty" json:"categories,omitempty"`
	Beds         map[Category]int     `yaml:"bed_distribution,omitempty" json:"bed_distribution,omitempty"`
	ArrivalRates map[Category]float64 `yaml:"arrival_rates,omitempty" json:"arrival_rates,omitempty"`
	StayMeans    map[Category]float64 `yaml:"stay_means,omitempty" json:"stay_means,omitempty"`
	Relocation   RelocationMatrix     `yaml:"relocation_matrix,omitempty" json:"relocation_matrix,omitempty"`
	Horizon      float64              `yaml:"horizon,omitempty" json:"time,omitempty"`
}

// DefaultConfig returns the standard six-ward hospital. Every call builds fresh maps,
// so callers may modify the result freely.
func DefaultConfig() Config {
	return Config{
		Categories: DefaultRegistry(),
		Beds: map[Category]int{
			"A": 55, "B": 40, "C": 30, "D": 20, "E": 20, "F": 0,
		},
		ArrivalRates: map[Category]float64{
			"A": 14.5, "B": 11.0, "C": 8.0, "D": 6.5, "E": 5.0, "F": 13.0,
		},
		StayMeans: map[Category]float64{
			"A": 2.9, "B": 4.0, "C": 4.5, "D": 1.4, "E": 3.9, "F": 2.2,
		},
		Relocation: DefaultRelocationMatrix(),
		Horizon:    DefaultHorizon,
	}
}

// DefaultRelocationMatrix returns the standard overflow policy for the A-F registry.
// No category relocates to itself and nobody is relocated into F.
func DefaultRelocationMatrix() RelocationMatrix {
	return RelocationMatrix{
		"A": {"B": 0.05, "C": 0.10, "D": 0.05, "E": 0.80},
		"B": {"A": 0.20, "C": 0.50, "D": 0.15, "E": 0.15},
		"C": {"A": 0.30, "B": 0.20, "D": 0.20, "E": 0.30},
		"D": {"A": 0.35, "B": 0.30, "C": 0.05, "E": 0.30},
		"E": {"A": 0.20, "B": 0.10, "C": 0.60, "D": 0.10},
		"F": {"A": 0.20, "B": 0.20, "C": 0.20, "D": 0.20, "E": 0.20},
	}
}

// Merge returns the defaults overlaid with override, key by key. A category missing
// from an override map keeps its default value. The default relocation matrix only
// applies when override keeps the default registry; an empty non-nil override matrix
// disables relocation.
func Merge(defaults, override Config) Config {
	out := Config{
		Categories: defaults.Categories,
		Horizon:    defaults.Horizon,
		Relocation: defaults.Relocation,
	}
	if len(override.Categories) > 0 {
		out.Categories = override.Categories
		out.Relocation = nil
	}
	if override.Horizon > 0 {
		out.Horizon = override.Horizon
	}
	if override.Relocation != nil {
		out.Relocation = override.Relocation
	}
	out.Beds = overlay(out.Categories, defaults.Beds, override.Beds)
	out.ArrivalRates = overlay(out.Categories, defaults.ArrivalRates, override.ArrivalRates)
	out.StayMeans = overlay(out.Categories, defaults.StayMeans, override.StayMeans)
	return out
}

func overlay[V any](registry Registry, base, top map[Category]V) map[Category]V {
	out := make(map[Category]V, len(registry))
	for _, c := range registry.Categories() {
		if v, ok := base[c]; ok {
			out[c] = v
		}
	}
	maps.Copy(out, top)
	return out
}

// Validate checks the parameters that keep the state machine well-defined.
func (c Config) Validate() error {
	if err := c.Categories.Validate(); err != nil {
		return err
	}
	for _, cat := range c.Categories.Categories() {
		beds, ok := c.Beds[cat]
		if !ok || beds < 0 {
			return fmt.Errorf("%w: bed count for %s must be >= 0", ErrInvalidConfig, cat)
		}
		if rate := c.ArrivalRates[cat]; !(rate > 0) || math.IsInf(rate, 0) {
			return fmt.Errorf("%w: arrival rate for %s must be a positive number, got %g", ErrInvalidConfig, cat, rate)
		}
		if mean := c.StayMeans[cat]; !(mean > 0) || math.IsInf(mean, 0) {
			return fmt.Errorf("%w: stay mean for %s must be a positive number, got %g", ErrInvalidConfig, cat, mean)
		}
	}
	for _, unknown := range []Category{
		unknownKey(c.Categories, c.Beds),
		unknownKey(c.Categories, c.ArrivalRates),
		unknownKey(c.Categories, c.StayMeans),
	} {
		if unknown != "" {
			return fmt.Errorf("%w: unknown category %q", ErrInvalidConfig, unknown)
		}
	}
	if c.Horizon < 0 || math.IsNaN(c.Horizon) || math.IsInf(c.Horizon, 0) {
		return fmt.Errorf("%w: horizon must be a finite number >= 0, got %g", ErrInvalidConfig, c.Horizon)
	}
	return nil
}

// unknownKey returns a key of m that is not in the registry, or "".
func unknownKey[V any](registry Registry, m map[Category]V) Category {
	for c := range m {
		if !registry.Contains(c) {
			return c
		}
	}
	return ""
}
