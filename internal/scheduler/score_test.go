package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/horarium/timetable-api/internal/models"
)

func metricsFixture() []candidate {
	return []candidate{
		{metrics: models.CombinationMetrics{AvgRank: 0, WindowMinutes: 0, FreeDays: 3, VetoCount: 0, SlotViolations: 0}},
		{metrics: models.CombinationMetrics{AvgRank: 2, WindowMinutes: 120, FreeDays: 1, VetoCount: 1, SlotViolations: 2}},
		{metrics: models.CombinationMetrics{AvgRank: 1, WindowMinutes: 60, FreeDays: 2, VetoCount: 0, SlotViolations: 1}},
	}
}

func TestScoreAllNormalizedBounds(t *testing.T) {
	scored := scoreAll(metricsFixture(), defaultWeights(), models.PolicyWeightedMean)
	require.Len(t, scored, 3)
	for _, s := range scored {
		assert.GreaterOrEqual(t, s.Score, 0.0)
		assert.LessOrEqual(t, s.Score, 1.0)
	}
	// The dominant candidate normalizes to all ones and must rank first.
	assert.Equal(t, 1.0, scored[0].Score)
	assert.Equal(t, 3, scored[0].Metrics.FreeDays)
}

func TestScoreAllDescendingOrder(t *testing.T) {
	scored := scoreAll(metricsFixture(), defaultWeights(), models.PolicyWeightedMean)
	for i := 1; i < len(scored); i++ {
		assert.GreaterOrEqual(t, scored[i-1].Score, scored[i].Score)
	}
}

func TestScoreAllZeroMaximaFlooredToOne(t *testing.T) {
	items := []candidate{
		{metrics: models.CombinationMetrics{}},
		{metrics: models.CombinationMetrics{}},
	}
	scored := scoreAll(items, defaultWeights(), models.PolicyWeightedMean)
	require.Len(t, scored, 2)
	// All metrics zero: rank/window/veto/slot normalize to 1, free days to 0.
	expected := (3 + 3 + 0 + 3 + 3) / 15.0
	assert.InDelta(t, expected, scored[0].Score, 1e-9)
	assert.InDelta(t, expected, scored[1].Score, 1e-9)
}

func TestScoreAllStableOnTies(t *testing.T) {
	a := candidate{combo: models.Combination{sec("A", "x", "p")}}
	b := candidate{combo: models.Combination{sec("B", "x", "p")}}
	scored := scoreAll([]candidate{a, b}, defaultWeights(), models.PolicyWeightedMean)
	require.Len(t, scored, 2)
	assert.Equal(t, "A", scored[0].Sections[0].ID)
	assert.Equal(t, "B", scored[1].Sections[0].ID)
}

func TestScoreAllDistanceToIdealBoundsAndOrder(t *testing.T) {
	scored := scoreAll(metricsFixture(), defaultWeights(), models.PolicyDistanceToIdeal)
	require.Len(t, scored, 3)
	for _, s := range scored {
		assert.GreaterOrEqual(t, s.Score, 0.0)
		assert.LessOrEqual(t, s.Score, 1.0)
	}
	assert.Equal(t, 1.0, scored[0].Score)
	for i := 1; i < len(scored); i++ {
		assert.GreaterOrEqual(t, scored[i-1].Score, scored[i].Score)
	}
}

func TestScoreAllWeightIncreaseFavoursMetricLeader(t *testing.T) {
	items := []candidate{
		// Leader on free days, weak on window.
		{metrics: models.CombinationMetrics{WindowMinutes: 120, FreeDays: 3}},
		// Leader on window, weak on free days.
		{metrics: models.CombinationMetrics{WindowMinutes: 0, FreeDays: 1}},
	}

	even := models.Weights{Rank: 1, Window: 1, FreeDays: 1, Veto: 1, Slot: 1}
	tilted := even
	tilted.FreeDays = 5

	rankOfFreeDayLeader := func(w models.Weights) int {
		scored := scoreAll(items, w, models.PolicyWeightedMean)
		for i, s := range scored {
			if s.Metrics.FreeDays == 3 {
				return i
			}
		}
		return -1
	}

	assert.LessOrEqual(t, rankOfFreeDayLeader(tilted), rankOfFreeDayLeader(even))
	assert.Equal(t, 0, rankOfFreeDayLeader(tilted))
}

func TestScoreAllEmptyInput(t *testing.T) {
	assert.Nil(t, scoreAll(nil, defaultWeights(), models.PolicyWeightedMean))
}

func TestScoreAllZeroWeightsDoNotPanic(t *testing.T) {
	scored := scoreAll(metricsFixture(), models.Weights{}, models.PolicyWeightedMean)
	require.Len(t, scored, 3)
	for _, s := range scored {
		assert.Zero(t, s.Score)
	}
}
