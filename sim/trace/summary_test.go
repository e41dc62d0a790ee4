package trace

import "testing"

func TestSummarize_EmptyTrace_ZeroValues(t *testing.T) {
	// GIVEN an empty trace
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN summarized
	summary := Summarize(st)

	// THEN all counts are zero
	if summary.TotalDecisions != 0 || summary.AdmittedCount != 0 || summary.RejectedCount != 0 {
		t.Errorf("expected zero counts, got %+v", summary)
	}
	if summary.RelocationSuccessRate != 0 {
		t.Errorf("expected 0 success rate, got %f", summary.RelocationSuccessRate)
	}
	if len(summary.TargetDistribution) != 0 {
		t.Error("expected empty target distribution")
	}
}

func TestSummarize_NilTrace(t *testing.T) {
	if s := Summarize(nil); s.TotalDecisions != 0 {
		t.Errorf("expected 0 decisions for nil trace, got %d", s.TotalDecisions)
	}
}

func TestSummarize_PopulatedTrace_CorrectCounts(t *testing.T) {
	// GIVEN a trace with home admissions, relocations and losses
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})
	st.RecordAdmission(AdmissionRecord{PatientID: 1, Home: "A", Placed: "A", Admitted: true, Reason: ReasonHome})
	st.RecordAdmission(AdmissionRecord{PatientID: 2, Home: "F", Placed: "B", Admitted: true, Relocated: true, Target: "B", Reason: ReasonRelocated})
	st.RecordAdmission(AdmissionRecord{PatientID: 3, Home: "F", Relocated: true, Target: "C", Reason: ReasonRelocationFull})
	st.RecordAdmission(AdmissionRecord{PatientID: 4, Home: "F", Placed: "B", Admitted: true, Relocated: true, Target: "B", Reason: ReasonRelocated})
	st.RecordAdmission(AdmissionRecord{PatientID: 5, Home: "A", Reason: ReasonNoPolicy})

	// WHEN summarized
	summary := Summarize(st)

	// THEN counts match
	if summary.TotalDecisions != 5 {
		t.Errorf("expected 5 total decisions, got %d", summary.TotalDecisions)
	}
	if summary.AdmittedCount != 3 || summary.RejectedCount != 2 {
		t.Errorf("expected 3 admitted / 2 rejected, got %d / %d", summary.AdmittedCount, summary.RejectedCount)
	}
	if summary.RelocatedCount != 3 {
		t.Errorf("expected 3 relocations, got %d", summary.RelocatedCount)
	}
	want := 2.0 / 3.0
	if summary.RelocationSuccessRate < want-1e-9 || summary.RelocationSuccessRate > want+1e-9 {
		t.Errorf("expected success rate %.4f, got %.4f", want, summary.RelocationSuccessRate)
	}
	if summary.TargetDistribution["B"] != 2 || summary.TargetDistribution["C"] != 1 {
		t.Errorf("unexpected target distribution %v", summary.TargetDistribution)
	}
	if summary.PlacementByHome["F"]["B"] != 2 || summary.PlacementByHome["F"]["Rejected"] != 1 {
		t.Errorf("unexpected F placements %v", summary.PlacementByHome["F"])
	}
	if summary.PlacementByHome["A"]["A"] != 1 || summary.PlacementByHome["A"]["Rejected"] != 1 {
		t.Errorf("unexpected A placements %v", summary.PlacementByHome["A"])
	}
}
