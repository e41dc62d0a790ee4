package sim

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectMetrics_ConsistentWithHistory(t *testing.T) {
	s := mustSimulator(t, DefaultConfig(), 42)
	history, err := s.Run(30)
	require.NoError(t, err)

	m := CollectMetrics(s)

	assert.Equal(t, len(history), m.TotalEvents)
	assert.Equal(t, m.TotalEvents, m.Arrivals+m.Departures)
	assert.Equal(t, history.LostCount(), m.Lost)
	assert.Equal(t, int64(42), m.Seed)
	assert.Equal(t, 30.0, m.Horizon)
	assert.Equal(t, s.Clock, m.EndClock)
	require.Len(t, m.Wards, 6)

	penalty, accepted := 0.0, 0
	for _, w := range m.Wards {
		penalty += w.PenaltyPoints
		accepted += w.Accepted
	}
	assert.InDelta(t, penalty, m.TotalPenalty, 1e-9)
	assert.Equal(t, m.Arrivals-m.Lost, accepted, "every non-lost arrival took exactly one bed")
	assert.Equal(t, accepted-m.Departures, m.Active)
	assert.InDelta(t, float64(m.Lost)/float64(m.Arrivals), m.LossRate, 1e-12)
	assert.Positive(t, m.Relocations, "F patients are only ever admitted via relocation")
}

func TestMetrics_Print(t *testing.T) {
	m := Metrics{
		Seed: 1, Horizon: 10, TotalEvents: 3, Arrivals: 2, Departures: 1, Lost: 1, LossRate: 0.5,
		TotalPenalty: 7,
		Wards:        []WardMetrics{{Category: "A", Capacity: 1, Accepted: 1, Rejected: 1, PenaltyPoints: 7}},
	}
	var buf bytes.Buffer

	m.Print(&buf)

	out := buf.String()
	assert.Contains(t, out, "=== Simulation Metrics ===")
	assert.Contains(t, out, "Lost Patients        : 1 (50.00%)")
	assert.Contains(t, out, "penalty=7")
}

func TestSummarizeReplications_MeanAndStdDev(t *testing.T) {
	runs := []Metrics{
		{Lost: 2, LossRate: 0.1, TotalPenalty: 10},
		{Lost: 4, LossRate: 0.3, TotalPenalty: 30},
	}

	s := SummarizeReplications(runs)

	assert.Equal(t, 2, s.Runs)
	assert.InDelta(t, 3.0, s.LostMean, 1e-12)
	assert.InDelta(t, math.Sqrt2, s.LostStdDev, 1e-12)
	assert.InDelta(t, 0.2, s.LossRateMean, 1e-12)
	assert.InDelta(t, 20.0, s.TotalPenaltyMean, 1e-12)
	assert.InDelta(t, 10*math.Sqrt2, s.TotalPenaltyStdDev, 1e-9)
}

func TestSummarizeReplications_SingleAndEmpty(t *testing.T) {
	one := SummarizeReplications([]Metrics{{Lost: 5, LossRate: 0.5, TotalPenalty: 9}})
	assert.Equal(t, 5.0, one.LostMean)
	assert.Zero(t, one.LostStdDev)

	none := SummarizeReplications(nil)
	assert.Equal(t, ReplicationSummary{}, none)
}
