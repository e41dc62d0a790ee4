// Tracks run-wide and per-ward admission metrics such as:
// acceptance and rejection counts, lost patients and severity-weighted penalty points.

package sim

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/stat"
)

// WardMetrics is the end-of-run state of one ward.
type WardMetrics struct {
	Category      Category `json:"category"`
	Capacity      int      `json:"capacity"`
	Occupied      int      `json:"occupied"`
	Accepted      int      `json:"accepted"`
	Rejected      int      `json:"rejected"`
	PenaltyPoints float64  `json:"penalty_points"`
}

// Metrics aggregates statistics about a finished run for final reporting.
type Metrics struct {
	Seed        int64   `json:"seed"`
	Horizon     float64 `json:"horizon"`
	EndClock    float64 `json:"end_clock"` // timestamp of the last processed event
	TotalEvents int     `json:"total_events"`
	Arrivals    int     `json:"arrivals"`
	Departures  int     `json:"departures"`
	Relocations int     `json:"relocations"` // arrivals admitted outside their home ward
	Lost        int     `json:"lost"`
	Active      int     `json:"active"` // patients still holding a bed at the end
	// LossRate is Lost / Arrivals (0 when nothing arrived)
	LossRate     float64       `json:"loss_rate"`
	TotalPenalty float64       `json:"total_penalty"`
	Wards        []WardMetrics `json:"wards"`
}

// CollectMetrics derives the aggregates of the simulator's last run.
func CollectMetrics(sim *Simulator) Metrics {
	m := Metrics{
		Seed:        sim.Seed(),
		Horizon:     sim.Horizon,
		EndClock:    sim.Clock,
		TotalEvents: len(sim.History),
		Lost:        sim.Hospital.Lost,
		Active:      sim.Hospital.Active(),
	}
	for _, r := range sim.History {
		switch r.Event.Kind() {
		case KindArrival:
			m.Arrivals++
			if r.Outcome.Admitted && r.Outcome.Placed != r.Event.Category() {
				m.Relocations++
			}
		case KindDeparture:
			m.Departures++
		}
	}
	if m.Arrivals > 0 {
		m.LossRate = float64(m.Lost) / float64(m.Arrivals)
	}
	for _, w := range sim.Hospital.Wards() {
		m.Wards = append(m.Wards, WardMetrics{
			Category:      w.Category,
			Capacity:      w.Capacity,
			Occupied:      w.Occupied,
			Accepted:      w.Accepted,
			Rejected:      w.Rejected,
			PenaltyPoints: w.PenaltyPoints,
		})
		m.TotalPenalty += w.PenaltyPoints
	}
	return m
}

// Print writes a human-readable report of the metrics to w.
func (m Metrics) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Simulation Metrics ===")
	fmt.Fprintf(w, "Seed                 : %d\n", m.Seed)
	fmt.Fprintf(w, "Horizon              : %g (last event at %.4f)\n", m.Horizon, m.EndClock)
	fmt.Fprintf(w, "Total Events         : %d\n", m.TotalEvents)
	fmt.Fprintf(w, "Arrivals / Departures: %d / %d\n", m.Arrivals, m.Departures)
	fmt.Fprintf(w, "Relocated Admissions : %d\n", m.Relocations)
	fmt.Fprintf(w, "Lost Patients        : %d (%.2f%%)\n", m.Lost, 100*m.LossRate)
	fmt.Fprintf(w, "Total Penalty Points : %g\n", m.TotalPenalty)
	fmt.Fprintln(w, "--- Wards ---")
	for _, wm := range m.Wards {
		fmt.Fprintf(w, "%-3s beds=%-4d occupied=%-4d accepted=%-6d rejected=%-6d penalty=%g\n",
			wm.Category, wm.Capacity, wm.Occupied, wm.Accepted, wm.Rejected, wm.PenaltyPoints)
	}
}

// ReplicationSummary reports the spread of key metrics over independent runs.
type ReplicationSummary struct {
	Runs               int     `json:"runs"`
	LostMean           float64 `json:"lost_mean"`
	LostStdDev         float64 `json:"lost_stddev"`
	LossRateMean       float64 `json:"loss_rate_mean"`
	LossRateStdDev     float64 `json:"loss_rate_stddev"`
	TotalPenaltyMean   float64 `json:"total_penalty_mean"`
	TotalPenaltyStdDev float64 `json:"total_penalty_stddev"`
}

// SummarizeReplications computes mean and sample standard deviation of lost patients,
// loss rate and total penalty. The standard deviations are 0 for fewer than two runs.
func SummarizeReplications(runs []Metrics) ReplicationSummary {
	s := ReplicationSummary{Runs: len(runs)}
	if len(runs) == 0 {
		return s
	}
	lost := make([]float64, len(runs))
	rate := make([]float64, len(runs))
	penalty := make([]float64, len(runs))
	for i, m := range runs {
		lost[i] = float64(m.Lost)
		rate[i] = m.LossRate
		penalty[i] = m.TotalPenalty
	}
	s.LostMean, s.LostStdDev = meanStdDev(lost)
	s.LossRateMean, s.LossRateStdDev = meanStdDev(rate)
	s.TotalPenaltyMean, s.TotalPenaltyStdDev = meanStdDev(penalty)
	return s
}

func meanStdDev(x []float64) (float64, float64) {
	if len(x) < 2 {
		return stat.Mean(x, nil), 0
	}
	return stat.MeanStdDev(x, nil)
}

// Print writes the replication summary to w.
func (s ReplicationSummary) Print(w io.Writer) {
	fmt.Fprintf(w, "=== Replications (%d runs) ===\n", s.Runs)
	fmt.Fprintf(w, "Lost Patients        : %.2f ± %.2f\n", s.LostMean, s.LostStdDev)
	fmt.Fprintf(w, "Loss Rate            : %.4f ± %.4f\n", s.LossRateMean, s.LossRateStdDev)
	fmt.Fprintf(w, "Total Penalty Points : %.2f ± %.2f\n", s.TotalPenaltyMean, s.TotalPenaltyStdDev)
}
