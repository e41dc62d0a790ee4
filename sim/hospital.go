package sim

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"gonum.org/v1/gonum/stat/distuv"
)

// Rejected is the outcome label of a patient that was turned away with no placement.
const Rejected = "Rejected"

// rowSumTolerance bounds how far a relocation row may drift from summing to 1.
const rowSumTolerance = 1e-9

// Outcome is the result of an admission attempt or a release.
type Outcome struct {
	Placed    Category // ward that holds the patient; empty when not admitted
	Admitted  bool
	Relocated bool     // the home ward was full and a relocation draw was taken
	Target    Category // drawn relocation destination, set when Relocated
}

// Label returns the placed category, or the Rejected sentinel.
func (o Outcome) Label() string {
	if !o.Admitted {
		return Rejected
	}
	return string(o.Placed)
}

// RelocationMatrix maps a home category to a probability distribution over destination
// categories. Missing destinations have probability 0.
type RelocationMatrix map[Category]map[Category]float64

// RelocationPolicy samples a destination ward for patients whose home ward is full.
type RelocationPolicy struct {
	registry Registry
	rows     map[Category]distuv.Categorical
}

// NewRelocationPolicy validates matrix against registry and prepares one categorical
// sampler per row, all drawing from src.
func NewRelocationPolicy(registry Registry, matrix RelocationMatrix, src rand.Source) (*RelocationPolicy, error) {
	p := &RelocationPolicy{
		registry: registry,
		rows:     make(map[Category]distuv.Categorical, len(matrix)),
	}
	for from, row := range matrix {
		if !registry.Contains(from) {
			return nil, fmt.Errorf("%w: relocation row for unknown category %q", ErrInvalidConfig, from)
		}
		weights := make([]float64, len(registry))
		sum := 0.0
		for to, prob := range row {
			i := registry.Index(to)
			if i < 0 {
				return nil, fmt.Errorf("%w: relocation %s→%s targets unknown category", ErrInvalidConfig, from, to)
			}
			if prob < 0 || math.IsNaN(prob) {
				return nil, fmt.Errorf("%w: relocation %s→%s has probability %g", ErrInvalidConfig, from, to, prob)
			}
			weights[i] = prob
			sum += prob
		}
		if math.Abs(sum-1) > rowSumTolerance {
			return nil, fmt.Errorf("%w: relocation row %s sums to %g, want 1", ErrInvalidConfig, from, sum)
		}
		p.rows[from] = distuv.NewCategorical(weights, src)
	}
	return p, nil
}

// Destination draws a destination for a patient of category c.
func (p *RelocationPolicy) Destination(c Category) (Category, bool) {
	row, ok := p.rows[c]
	if !ok {
		return "", false
	}
	return p.registry[int(row.Rand())].Name, true
}

// Hospital holds one ward per category, the optional relocation policy, and the
// allocation of active patients to the wards holding them.
type Hospital struct {
	registry   Registry
	wards      map[Category]*Ward
	relocation *RelocationPolicy

	allocation map[PatientID]Category
	Lost       int // patients rejected with no further recourse
}

// NewHospital creates wards from beds (one per registry category). relocation may be nil,
// in which case a full home ward loses the patient outright.
func NewHospital(registry Registry, beds map[Category]int, relocation *RelocationPolicy) (*Hospital, error) {
	if err := registry.Validate(); err != nil {
		return nil, err
	}
	h := &Hospital{
		registry:   registry,
		wards:      make(map[Category]*Ward, len(registry)),
		relocation: relocation,
		allocation: make(map[PatientID]Category),
	}
	for _, spec := range registry {
		capacity, ok := beds[spec.Name]
		if !ok {
			return nil, fmt.Errorf("%w: no bed count for category %q", ErrInvalidConfig, spec.Name)
		}
		if capacity < 0 {
			return nil, fmt.Errorf("%w: category %q has %d beds", ErrInvalidConfig, spec.Name, capacity)
		}
		h.wards[spec.Name] = NewWard(spec.Name, capacity, spec.Severity)
	}
	return h, nil
}

// Initialize resets every ward, the allocation table and the lost counter.
func (h *Hospital) Initialize() {
	h.Lost = 0
	h.allocation = make(map[PatientID]Category)
	for _, w := range h.wards {
		w.Reset()
	}
}

// Ward returns the ward of category c, or nil.
func (h *Hospital) Ward(c Category) *Ward {
	return h.wards[c]
}

// Wards returns the wards in registry order.
func (h *Hospital) Wards() []*Ward {
	out := make([]*Ward, 0, len(h.registry))
	for _, spec := range h.registry {
		out = append(out, h.wards[spec.Name])
	}
	return out
}

// Active returns the number of patients currently holding a bed.
func (h *Hospital) Active() int {
	return len(h.allocation)
}

// HasRelocation reports whether a relocation policy is configured.
func (h *Hospital) HasRelocation() bool {
	return h.relocation != nil
}

// EnterPatient runs the two-stage admission decision for patient id of category c:
// home ward first, then (if configured) a single relocation draw.
func (h *Hospital) EnterPatient(id PatientID, c Category) (Outcome, error) {
	home, ok := h.wards[c]
	if !ok {
		return Outcome{}, fmt.Errorf("%w: patient %d has unknown category %q", ErrInvariantViolation, id, c)
	}
	if held, dup := h.allocation[id]; dup {
		return Outcome{}, fmt.Errorf("%w: patient %d already admitted to %s", ErrInvariantViolation, id, held)
	}

	if home.HasCapacity() {
		if err := home.Admit(); err != nil {
			return Outcome{}, err
		}
		h.allocation[id] = c
		return Outcome{Placed: c, Admitted: true}, nil
	}

	home.Reject()
	if h.relocation == nil {
		h.Lost++
		return Outcome{}, nil
	}
	return h.relocatePatient(id, c)
}

func (h *Hospital) relocatePatient(id PatientID, c Category) (Outcome, error) {
	if h.relocation == nil {
		return Outcome{}, fmt.Errorf("%w: patient %d of %s", ErrNoRelocationPolicy, id, c)
	}
	dest, ok := h.relocation.Destination(c)
	if !ok {
		return Outcome{}, fmt.Errorf("%w: no relocation row for %s (patient %d)", ErrNoRelocationPolicy, c, id)
	}

	target := h.wards[dest]
	if !target.HasCapacity() {
		target.Reject()
		h.Lost++
		return Outcome{Relocated: true, Target: dest}, nil
	}
	if err := target.Admit(); err != nil {
		return Outcome{}, err
	}
	h.allocation[id] = dest
	return Outcome{Placed: dest, Admitted: true, Relocated: true, Target: dest}, nil
}

// ReleasePatient frees the bed held by id and returns the ward's category.
func (h *Hospital) ReleasePatient(id PatientID) (Category, error) {
	c, ok := h.allocation[id]
	if !ok {
		return "", fmt.Errorf("%w: release of patient %d with no allocation", ErrInvariantViolation, id)
	}
	if err := h.wards[c].Release(); err != nil {
		return "", err
	}
	delete(h.allocation, id)
	return c, nil
}

func (h *Hospital) String() string {
	var sb strings.Builder
	sb.WriteString("Hospital Status:\n")
	for _, w := range h.Wards() {
		for _, line := range strings.Split(w.String(), "\n") {
			sb.WriteString("\t")
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	fmt.Fprintf(&sb, "Lost Patients: %d", h.Lost)
	return sb.String()
}
