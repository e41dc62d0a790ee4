// sim/simulator.go
package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/hospital-sim/hospital-sim/sim/trace"
)

// Simulator is the core object that holds simulation time, hospital state, and the event loop.
// A Simulator is single-threaded and owns all of its state; concurrent callers must each
// use their own instance.
type Simulator struct {
	Clock   float64
	Horizon float64
	// EventQueue holds pending arrivals and departures, earliest first
	EventQueue *EventQueue
	Hospital   *Hospital
	// History is every processed event with its outcome, in processing order
	History History
	// Trace records admission decisions; nil disables tracing
	Trace *trace.SimulationTrace

	registry     Registry
	arrivalRates map[Category]float64
	stayMeans    map[Category]float64
	rng          *PartitionedRNG
	nextPatient  PatientID
}

// NewSimulator validates cfg and builds the hospital for a run seeded with seed.
func NewSimulator(cfg Config, seed int64) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rng := NewPartitionedRNG(seed)

	var policy *RelocationPolicy
	if len(cfg.Relocation) > 0 {
		p, err := NewRelocationPolicy(cfg.Categories, cfg.Relocation, rng.ForSubsystem(SubsystemRelocation))
		if err != nil {
			return nil, err
		}
		policy = p
	}
	hospital, err := NewHospital(cfg.Categories, cfg.Beds, policy)
	if err != nil {
		return nil, err
	}

	return &Simulator{
		Horizon:      cfg.Horizon,
		EventQueue:   NewEventQueue(),
		Hospital:     hospital,
		registry:     cfg.Categories,
		arrivalRates: cfg.ArrivalRates,
		stayMeans:    cfg.StayMeans,
		rng:          rng,
	}, nil
}

// Seed returns the master seed of the run.
func (sim *Simulator) Seed() int64 {
	return sim.rng.Seed()
}

// Initialize resets the clock, patient counter, queue, history, random streams and
// every hospital counter.
func (sim *Simulator) Initialize() {
	sim.Clock = 0
	sim.nextPatient = 0
	sim.EventQueue = NewEventQueue()
	sim.History = make(History, 0)
	sim.rng.Reset()
	sim.Hospital.Initialize()
	if sim.Trace != nil {
		sim.Trace.Reset()
	}
}

// Schedule pushes an event into the simulator's EventQueue.
func (sim *Simulator) Schedule(ev Event) {
	sim.EventQueue.Schedule(ev)
}

// Run simulates until the clock passes horizon or no event is left. The loop condition
// is checked before each event, so the last processed event may lie past horizon.
// Any error aborts the run: the returned history is nil, never a partial one.
func (sim *Simulator) Run(horizon float64) (history History, err error) {
	sim.Initialize()
	sim.Horizon = horizon

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic during run: %v", ErrInvariantViolation, r)
		}
		if err != nil {
			logrus.Errorf("[t=%.4f] Simulation aborted: %v", sim.Clock, err)
			sim.History = nil
			history = nil
		}
	}()

	logrus.Infof("Starting simulation: %d wards, horizon=%g, seed=%d, relocation=%v",
		len(sim.registry), horizon, sim.Seed(), sim.Hospital.HasRelocation())

	for _, c := range sim.registry.Categories() {
		sim.scheduleArrival(c)
	}

	for sim.Clock <= horizon && sim.EventQueue.Len() > 0 {
		ev := sim.EventQueue.PopMin()
		sim.Clock = ev.Timestamp()
		logrus.Debugf("[t=%.4f] Executing %s patient=%d category=%s", sim.Clock, ev.Kind(), ev.Patient(), ev.Category())

		outcome, err := sim.dispatch(ev)
		if err != nil {
			return nil, fmt.Errorf("%s of patient %d at t=%g: %w", ev.Kind(), ev.Patient(), sim.Clock, err)
		}
		sim.History = append(sim.History, Record{Event: ev, Outcome: outcome})
	}

	logrus.Infof("[t=%.4f] Simulation ended: %d events, %d lost", sim.Clock, len(sim.History), sim.Hospital.Lost)
	return sim.History, nil
}

// dispatch is the single place where event kinds are told apart.
func (sim *Simulator) dispatch(ev Event) (Outcome, error) {
	switch e := ev.(type) {
	case *ArrivalEvent:
		return sim.handleArrival(e)
	case *DepartureEvent:
		return sim.handleDeparture(e)
	default:
		return Outcome{}, fmt.Errorf("%w: %T", ErrUnknownEvent, ev)
	}
}

// handleArrival admits (or rejects) the patient, books the departure of an admitted
// patient using the stay mean of the ward that took them, and regenerates the arrival
// stream of the patient's home category regardless of the outcome.
func (sim *Simulator) handleArrival(e *ArrivalEvent) (Outcome, error) {
	outcome, err := sim.Hospital.EnterPatient(e.Patient(), e.Category())
	if err != nil {
		return Outcome{}, err
	}
	if outcome.Admitted {
		sim.scheduleDeparture(e.Patient(), outcome.Placed)
	}
	sim.scheduleArrival(e.Category())
	sim.recordDecision(e, outcome)
	return outcome, nil
}

func (sim *Simulator) handleDeparture(e *DepartureEvent) (Outcome, error) {
	c, err := sim.Hospital.ReleasePatient(e.Patient())
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Placed: c, Admitted: true}, nil
}

// scheduleArrival books the next arrival of category c after an exponential
// inter-arrival time and assigns it a fresh patient id.
func (sim *Simulator) scheduleArrival(c Category) {
	gap := sampleExponential(sim.rng.ForSubsystem(SubsystemArrivals), sim.arrivalRates[c])
	sim.Schedule(NewArrivalEvent(sim.Clock+gap, sim.nextPatient, c))
	sim.nextPatient++
}

// scheduleDeparture books the departure of patient id from ward after an exponential
// stay with mean stayMeans[ward].
func (sim *Simulator) scheduleDeparture(id PatientID, ward Category) {
	stay := sampleExponential(sim.rng.ForSubsystem(SubsystemStays), 1.0/sim.stayMeans[ward])
	sim.Schedule(NewDepartureEvent(sim.Clock+stay, id, ward))
}

func (sim *Simulator) recordDecision(e *ArrivalEvent, o Outcome) {
	if sim.Trace == nil {
		return
	}
	reason := trace.ReasonHome
	switch {
	case o.Admitted && o.Relocated:
		reason = trace.ReasonRelocated
	case !o.Admitted && o.Relocated:
		reason = trace.ReasonRelocationFull
	case !o.Admitted:
		reason = trace.ReasonNoPolicy
	}
	sim.Trace.RecordAdmission(trace.AdmissionRecord{
		PatientID: int(e.Patient()),
		Clock:     sim.Clock,
		Home:      string(e.Category()),
		Placed:    string(o.Placed),
		Admitted:  o.Admitted,
		Relocated: o.Relocated,
		Target:    string(o.Target),
		Reason:    reason,
	})
}
