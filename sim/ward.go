package sim

import "fmt"

// Ward is the bed pool of a single category. It has a fixed capacity and only ever
// mutates its own counters.
type Ward struct {
	Category Category
	Capacity int     // beds, fixed at construction
	Severity float64 // penalty charged per rejection

	Occupied      int     // patients currently in a bed, 0 <= Occupied <= Capacity
	Accepted      int     // admissions since the last Reset
	Rejected      int     // rejections since the last Reset
	PenaltyPoints float64 // Severity summed over every rejection
}

// NewWard creates an empty ward.
func NewWard(c Category, capacity int, severity float64) *Ward {
	return &Ward{Category: c, Capacity: capacity, Severity: severity}
}

// Reset zeroes occupancy and counters for a new run.
func (w *Ward) Reset() {
	w.Occupied = 0
	w.Accepted = 0
	w.Rejected = 0
	w.PenaltyPoints = 0
}

// HasCapacity reports whether a free bed exists.
func (w *Ward) HasCapacity() bool {
	return w.Occupied < w.Capacity
}

// Admit takes a bed. Admitting into a full ward is an invariant violation.
func (w *Ward) Admit() error {
	if !w.HasCapacity() {
		return fmt.Errorf("%w: admit into full ward %s (%d/%d)", ErrInvariantViolation, w.Category, w.Occupied, w.Capacity)
	}
	w.Occupied++
	w.Accepted++
	return nil
}

// Reject counts a turned-away patient and charges the ward's severity.
func (w *Ward) Reject() {
	w.Rejected++
	w.PenaltyPoints += w.Severity
}

// Release frees a bed. Releasing from an empty ward is an invariant violation.
func (w *Ward) Release() error {
	if w.Occupied <= 0 {
		return fmt.Errorf("%w: release from empty ward %s", ErrInvariantViolation, w.Category)
	}
	w.Occupied--
	return nil
}

func (w *Ward) String() string {
	return fmt.Sprintf("Ward %s:\n"+
		"  Capacity: %d\n"+
		"  Current Patients: %d\n"+
		"  Accepted: %d, Rejected: %d\n"+
		"  Penalty Points: %g (per rejection: %g)",
		w.Category, w.Capacity, w.Occupied, w.Accepted, w.Rejected, w.PenaltyPoints, w.Severity)
}
