package sim

import "errors"

// Error kinds returned by the simulation core. Callers distinguish them with errors.Is;
// any of them aborts the run that produced it.
var (
	// ErrInvalidConfig reports a configuration the state machine cannot run with
	// (negative beds, non-positive rates, malformed relocation rows, ...).
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNoRelocationPolicy reports a relocation attempt with no policy (or no policy row)
	// for the patient's category.
	ErrNoRelocationPolicy = errors.New("relocation attempted without a relocation policy")

	// ErrInvariantViolation reports bookkeeping that must never happen: releasing an
	// unknown patient, admitting into a full ward, releasing from an empty ward.
	ErrInvariantViolation = errors.New("invariant violation")

	// ErrUnknownEvent reports an event that is neither an arrival nor a departure.
	ErrUnknownEvent = errors.New("unrecognized event")
)
