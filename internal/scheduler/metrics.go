package scheduler

import "github.com/horarium/timetable-api/internal/models"

// computeMetrics derives the raw criterion values for one combination.
//
// Teachers absent from the ranking are assigned a rank equal to the ranking's
// size: worse than every ranked teacher, but not an exclusion. Slot
// violations are only counted when the slot constraint is soft — under a
// hard slot constraint the violating sections never entered the product.
func computeMetrics(combo models.Combination, p Params) models.CombinationMetrics {
	rankSum := 0
	vetoCount := 0
	slotViolations := 0
	for _, section := range combo {
		rank, ok := p.Ranking[section.Teacher]
		if !ok {
			rank = len(p.Ranking)
		}
		rankSum += rank
		if _, banned := p.Banned[section.Teacher]; banned {
			vetoCount++
		}
		if p.SlotMode != models.ConstraintHard && p.Slot != models.SlotBoth {
			for _, meeting := range section.Meetings {
				if !MeetingInSlot(meeting, p.Slot) {
					slotViolations++
				}
			}
		}
	}

	avgRank := 0.0
	if len(combo) > 0 {
		avgRank = float64(rankSum) / float64(len(combo))
	}

	return models.CombinationMetrics{
		AvgRank:        avgRank,
		WindowMinutes:  MaxGap(combo),
		FreeDays:       models.NumWeekdays - occupiedDays(combo),
		VetoCount:      vetoCount,
		SlotViolations: slotViolations,
	}
}
