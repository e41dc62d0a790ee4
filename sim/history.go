package sim

import (
	"encoding/csv"
	"io"
	"strconv"
)

// Record pairs a processed event with its outcome. For arrivals the outcome is the
// admission decision; for departures it is the ward that released the patient.
type Record struct {
	Event   Event
	Outcome Outcome
}

// History is the ordered, append-only result of a run.
type History []Record

// LostCount returns the number of records whose outcome is a rejection.
func (h History) LostCount() int {
	n := 0
	for _, r := range h {
		if !r.Outcome.Admitted {
			n++
		}
	}
	return n
}

// EventRecord is the serialized form of an Event.
type EventRecord struct {
	Time      float64 `json:"time" yaml:"time"`
	EventType string  `json:"event_type" yaml:"event_type"`
	PatientID int     `json:"patient_id" yaml:"patient_id"`
	Category  string  `json:"patient_disease" yaml:"patient_disease"`
}

// HistoryRecord is the serialized form of a Record. Allocation is the placed category
// or "Rejected".
type HistoryRecord struct {
	Event      EventRecord `json:"event" yaml:"event"`
	Allocation string      `json:"allocation" yaml:"allocation"`
}

// Records converts the history into its serializable form.
func (h History) Records() []HistoryRecord {
	out := make([]HistoryRecord, len(h))
	for i, r := range h {
		out[i] = HistoryRecord{
			Event: EventRecord{
				Time:      r.Event.Timestamp(),
				EventType: r.Event.Kind().String(),
				PatientID: int(r.Event.Patient()),
				Category:  string(r.Event.Category()),
			},
			Allocation: r.Outcome.Label(),
		}
	}
	return out
}

// WriteCSV writes one row per record: type, patient_id, time, category, allocation.
// Rejected outcomes are written as REJECTED.
func (h History) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"type", "patient_id", "time", "category", "allocation"}); err != nil {
		return err
	}
	for _, r := range h {
		allocation := r.Outcome.Label()
		if !r.Outcome.Admitted {
			allocation = "REJECTED"
		}
		row := []string{
			r.Event.Kind().String(),
			strconv.Itoa(int(r.Event.Patient())),
			strconv.FormatFloat(r.Event.Timestamp(), 'g', -1, 64),
			string(r.Event.Category()),
			allocation,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
