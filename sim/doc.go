// Package sim provides the discrete-event simulation engine for hospital admissions.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - ward.go: a single category's bed pool and its counters
//   - hospital.go: the admission state machine (home ward, then one relocation draw)
//   - event.go / event_queue.go: Arrival and Departure events, ordered by (time, insertion)
//   - simulator.go: the event loop and the exponential arrival/stay generation
//
// # Randomness
//
// All draws come from a PartitionedRNG seeded once per Simulator, with separate streams
// for arrivals, stays and relocation decisions. The same seed and Config reproduce the
// same History bit for bit.
//
// Sub-package sim/trace records admission decisions for later analysis.
package sim
