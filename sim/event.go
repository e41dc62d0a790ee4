package sim

import "fmt"

// EventKind tags the two kinds of simulation events.
type EventKind int

const (
	KindArrival EventKind = iota + 1
	KindDeparture
)

func (k EventKind) String() string {
	switch k {
	case KindArrival:
		return "Arrival"
	case KindDeparture:
		return "Departure"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is a timestamped occurrence in simulated time.
// The set of implementations is closed: ArrivalEvent and DepartureEvent.
type Event interface {
	Timestamp() float64
	Kind() EventKind
	Patient() PatientID
	Category() Category
	isEvent()
}

// ArrivalEvent represents a new patient of some category reaching the hospital.
type ArrivalEvent struct {
	time     float64
	patient  PatientID
	category Category
}

// NewArrivalEvent creates an arrival for patient id of category c at time t.
func NewArrivalEvent(t float64, id PatientID, c Category) *ArrivalEvent {
	return &ArrivalEvent{time: t, patient: id, category: c}
}

func (e *ArrivalEvent) Timestamp() float64 { return e.time }
func (e *ArrivalEvent) Kind() EventKind    { return KindArrival }
func (e *ArrivalEvent) Patient() PatientID { return e.patient }
func (e *ArrivalEvent) isEvent()           {}

// Category returns the patient's home category.
func (e *ArrivalEvent) Category() Category { return e.category }

func (e *ArrivalEvent) String() string {
	return fmt.Sprintf("%s, %g, %d, %s", KindArrival, e.time, e.patient, e.category)
}

// DepartureEvent represents an admitted patient leaving the ward that holds them.
type DepartureEvent struct {
	time    float64
	patient PatientID
	ward    Category
}

// NewDepartureEvent creates a departure of patient id from ward at time t.
func NewDepartureEvent(t float64, id PatientID, ward Category) *DepartureEvent {
	return &DepartureEvent{time: t, patient: id, ward: ward}
}

func (e *DepartureEvent) Timestamp() float64 { return e.time }
func (e *DepartureEvent) Kind() EventKind    { return KindDeparture }
func (e *DepartureEvent) Patient() PatientID { return e.patient }
func (e *DepartureEvent) isEvent()           {}

// Category returns the ward the patient was admitted to, which differs from the
// home category when the patient was relocated.
func (e *DepartureEvent) Category() Category { return e.ward }

func (e *DepartureEvent) String() string {
	return fmt.Sprintf("%s, %g, %d, %s", KindDeparture, e.time, e.patient, e.ward)
}
