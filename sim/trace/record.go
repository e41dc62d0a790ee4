// Package trace provides decision-trace recording for admission and relocation analysis.
// This package has no dependencies on sim/ — it stores pure data types.
package trace

// AdmissionRecord captures a single admission decision.
type AdmissionRecord struct {
	PatientID int
	Clock     float64
	Home      string // category the patient arrived with
	Placed    string // ward that admitted the patient; empty when lost
	Admitted  bool
	Relocated bool   // home ward was full and a relocation draw was taken
	Target    string // drawn relocation destination (empty if no draw)
	Reason    string
}

// Decision reasons recorded by the simulator.
const (
	ReasonHome           = "home-ward"
	ReasonRelocated      = "relocated"
	ReasonNoPolicy       = "home-full-no-policy"
	ReasonRelocationFull = "relocation-target-full"
)
