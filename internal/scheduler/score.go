package scheduler

import (
	"math"
	"sort"

	"github.com/horarium/timetable-api/internal/models"
)

type candidate struct {
	combo   models.Combination
	metrics models.CombinationMetrics
}

// normalized holds per-combination metrics rescaled to [0,1] where 1 is
// always "better".
type normalized struct {
	rank     float64
	window   float64
	freeDays float64
	veto     float64
	slot     float64
}

// scoreAll normalizes the raw metrics against the maxima observed across the
// surviving result set (each maximum floored at 1 so empty criteria divide
// cleanly) and ranks every candidate under the selected policy. The sort is
// stable on enumeration order, keeping repeated runs byte-identical.
func scoreAll(items []candidate, w models.Weights, policy models.ScoringPolicy) []models.ScoredCombination {
	if len(items) == 0 {
		return nil
	}

	maxRank, maxWindow, maxFree, maxVeto, maxSlot := 1.0, 1.0, 1.0, 1.0, 1.0
	for _, item := range items {
		maxRank = math.Max(maxRank, item.metrics.AvgRank)
		maxWindow = math.Max(maxWindow, float64(item.metrics.WindowMinutes))
		maxFree = math.Max(maxFree, float64(item.metrics.FreeDays))
		maxVeto = math.Max(maxVeto, float64(item.metrics.VetoCount))
		maxSlot = math.Max(maxSlot, float64(item.metrics.SlotViolations))
	}

	scored := make([]models.ScoredCombination, 0, len(items))
	for _, item := range items {
		n := normalized{
			rank:     1 - item.metrics.AvgRank/maxRank,
			window:   1 - float64(item.metrics.WindowMinutes)/maxWindow,
			freeDays: float64(item.metrics.FreeDays) / maxFree,
			veto:     1 - float64(item.metrics.VetoCount)/maxVeto,
			slot:     1 - float64(item.metrics.SlotViolations)/maxSlot,
		}
		scored = append(scored, models.ScoredCombination{
			Score:    score(n, w, policy),
			Sections: item.combo,
			Metrics:  item.metrics,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

func score(n normalized, w models.Weights, policy models.ScoringPolicy) float64 {
	total := w.Total()
	if total <= 0 {
		total = 1
	}
	if policy == models.PolicyDistanceToIdeal {
		// Weighted Euclidean distance to the all-ones vector, folded back
		// into a similarity so higher remains better.
		dist := math.Sqrt(w.Rank*sq(1-n.rank) +
			w.Window*sq(1-n.window) +
			w.FreeDays*sq(1-n.freeDays) +
			w.Veto*sq(1-n.veto) +
			w.Slot*sq(1-n.slot))
		return 1 - dist/math.Sqrt(total)
	}
	return (w.Rank*n.rank +
		w.Window*n.window +
		w.FreeDays*n.freeDays +
		w.Veto*n.veto +
		w.Slot*n.slot) / total
}

func sq(v float64) float64 { return v * v }
