package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	sim "github.com/hospital-sim/hospital-sim/sim"
	"github.com/hospital-sim/hospital-sim/sim/trace"
)

// Output formats accepted by --output.
const (
	OutputSummary = "summary"
	OutputJSON    = "json"
	OutputCSV     = "csv"
)

var validOutputs = map[string]bool{OutputSummary: true, OutputJSON: true, OutputCSV: true}

// RunOutcome is one finished replication.
type RunOutcome struct {
	RunID   string
	History sim.History
	Metrics sim.Metrics
	Trace   *trace.TraceSummary // nil when tracing is off
}

// RunResult is the JSON document written for a run.
type RunResult struct {
	RunID        string              `json:"run_id"`
	Success      bool                `json:"success"`
	TotalEvents  int                 `json:"total_events"`
	EventHistory []sim.HistoryRecord `json:"event_history"`
	Parameters   sim.Config          `json:"parameters"`
	Metrics      sim.Metrics         `json:"metrics"`
	TraceSummary *trace.TraceSummary `json:"trace_summary,omitempty"`
}

// ResultDocument wraps every replication plus their summary.
type ResultDocument struct {
	Runs    []RunResult             `json:"runs"`
	Summary *sim.ReplicationSummary `json:"summary,omitempty"`
}

// runReplications runs n independent simulations one after another, seeding the i-th
// with seed+i. The first failure aborts the batch; no partial results are returned.
func runReplications(cfg sim.Config, seed int64, n int, traceLevel trace.TraceLevel) ([]RunOutcome, error) {
	outcomes := make([]RunOutcome, 0, n)
	for i := 0; i < n; i++ {
		s, err := sim.NewSimulator(cfg, seed+int64(i))
		if err != nil {
			return nil, err
		}
		if traceLevel == trace.TraceLevelDecisions {
			s.Trace = trace.NewSimulationTrace(trace.TraceConfig{Level: traceLevel})
		}
		history, err := s.Run(cfg.Horizon)
		if err != nil {
			return nil, fmt.Errorf("replication %d (seed %d): %w", i, seed+int64(i), err)
		}
		out := RunOutcome{
			RunID:   uuid.NewString(),
			History: history,
			Metrics: sim.CollectMetrics(s),
		}
		if s.Trace != nil {
			out.Trace = trace.Summarize(s.Trace)
		}
		outcomes = append(outcomes, out)
	}
	return outcomes, nil
}

// writeResults renders outcomes to w in the requested format.
func writeResults(w io.Writer, format string, cfg sim.Config, outcomes []RunOutcome) error {
	switch format {
	case OutputCSV:
		if len(outcomes) != 1 {
			return fmt.Errorf("csv output supports a single replication, got %d", len(outcomes))
		}
		return outcomes[0].History.WriteCSV(w)

	case OutputJSON:
		doc := ResultDocument{Runs: make([]RunResult, len(outcomes))}
		for i, o := range outcomes {
			doc.Runs[i] = RunResult{
				RunID:        o.RunID,
				Success:      true,
				TotalEvents:  len(o.History),
				EventHistory: o.History.Records(),
				Parameters:   cfg,
				Metrics:      o.Metrics,
				TraceSummary: o.Trace,
			}
		}
		if len(outcomes) > 1 {
			summary := summarize(outcomes)
			doc.Summary = &summary
		}
		return writeJSON(w, doc)

	case OutputSummary:
		for _, o := range outcomes {
			fmt.Fprintf(w, "Run %s\n", o.RunID)
			o.Metrics.Print(w)
			if o.Trace != nil {
				printTraceSummary(w, o.Trace)
			}
			fmt.Fprintln(w)
		}
		if len(outcomes) > 1 {
			summarize(outcomes).Print(w)
		}
		return nil

	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// writeResultsFile writes outcomes to path. A failed Close is reported as an error.
func writeResultsFile(path, format string, cfg sim.Config, outcomes []RunOutcome) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create results file: %w", err)
	}
	if err := writeResults(f, format, cfg, outcomes); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close results file %s: %w", path, err)
	}
	return nil
}

func summarize(outcomes []RunOutcome) sim.ReplicationSummary {
	metrics := make([]sim.Metrics, len(outcomes))
	for i, o := range outcomes {
		metrics[i] = o.Metrics
	}
	return sim.SummarizeReplications(metrics)
}

func printTraceSummary(w io.Writer, s *trace.TraceSummary) {
	fmt.Fprintln(w, "--- Decisions ---")
	fmt.Fprintf(w, "Decisions            : %d (admitted %d, rejected %d)\n", s.TotalDecisions, s.AdmittedCount, s.RejectedCount)
	fmt.Fprintf(w, "Relocation Draws     : %d (%.2f%% found a bed)\n", s.RelocatedCount, 100*s.RelocationSuccessRate)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
