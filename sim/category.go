package sim

import "fmt"

// Category is a patient's clinical class. It selects the home ward, the arrival stream,
// the stay distribution and the severity weight of a rejection.
type Category string

// PatientID identifies one arrival for the lifetime of a run.
type PatientID int

// CategorySpec pairs a category label with the penalty charged per rejection.
type CategorySpec struct {
	Name     Category `yaml:"name" json:"name"`
	Severity float64  `yaml:"severity" json:"severity"`
}

// Registry is the closed, ordered set of categories known to a run.
// The order is the enumeration order used for seeding arrivals and for reports.
type Registry []CategorySpec

// DefaultRegistry returns the six standard categories A-F.
// F has no beds in the default bed plan, so all of its patients go through relocation.
func DefaultRegistry() Registry {
	return Registry{
		{Name: "A", Severity: 7.0},
		{Name: "B", Severity: 5.0},
		{Name: "C", Severity: 2.0},
		{Name: "D", Severity: 10.0},
		{Name: "E", Severity: 5.0},
		{Name: "F", Severity: 0.0},
	}
}

// Categories returns the category labels in registry order.
func (r Registry) Categories() []Category {
	out := make([]Category, len(r))
	for i, spec := range r {
		out[i] = spec.Name
	}
	return out
}

// Index returns the position of c in the registry, or -1 if c is unknown.
func (r Registry) Index(c Category) int {
	for i, spec := range r {
		if spec.Name == c {
			return i
		}
	}
	return -1
}

// Contains reports whether c belongs to the registry.
func (r Registry) Contains(c Category) bool {
	return r.Index(c) >= 0
}

// Severity returns the rejection weight of c (0 for unknown categories).
func (r Registry) Severity(c Category) float64 {
	if i := r.Index(c); i >= 0 {
		return r[i].Severity
	}
	return 0
}

// Validate checks that labels are non-empty and unique and severities are non-negative.
func (r Registry) Validate() error {
	if len(r) == 0 {
		return fmt.Errorf("%w: registry has no categories", ErrInvalidConfig)
	}
	seen := make(map[Category]bool, len(r))
	for _, spec := range r {
		if spec.Name == "" {
			return fmt.Errorf("%w: empty category label", ErrInvalidConfig)
		}
		if seen[spec.Name] {
			return fmt.Errorf("%w: duplicate category %q", ErrInvalidConfig, spec.Name)
		}
		if spec.Severity < 0 {
			return fmt.Errorf("%w: category %q has negative severity %g", ErrInvalidConfig, spec.Name, spec.Severity)
		}
		seen[spec.Name] = true
	}
	return nil
}
