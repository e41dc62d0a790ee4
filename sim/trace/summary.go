package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalDecisions int
	AdmittedCount  int
	RejectedCount  int
	RelocatedCount int // decisions that took a relocation draw
	// RelocationSuccessRate is the fraction of relocation draws that found a bed.
	RelocationSuccessRate float64
	// TargetDistribution counts relocation draws per destination category.
	TargetDistribution map[string]int
	// PlacementByHome counts, per home category, where its patients ended up
	// ("Rejected" for lost patients).
	PlacementByHome map[string]map[string]int
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		TargetDistribution: make(map[string]int),
		PlacementByHome:    make(map[string]map[string]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalDecisions = len(st.Admissions)
	relocatedAdmitted := 0
	for _, a := range st.Admissions {
		placed := a.Placed
		if a.Admitted {
			summary.AdmittedCount++
		} else {
			summary.RejectedCount++
			placed = "Rejected"
		}
		if a.Relocated {
			summary.RelocatedCount++
			summary.TargetDistribution[a.Target]++
			if a.Admitted {
				relocatedAdmitted++
			}
		}
		if summary.PlacementByHome[a.Home] == nil {
			summary.PlacementByHome[a.Home] = make(map[string]int)
		}
		summary.PlacementByHome[a.Home][placed]++
	}
	if summary.RelocatedCount > 0 {
		summary.RelocationSuccessRate = float64(relocatedAdmitted) / float64(summary.RelocatedCount)
	}

	return summary
}
