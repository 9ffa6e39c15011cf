// Package scheduler implements the combination search and multi-criteria
// scoring engine: it enumerates all conflict-free section combinations
// across the selected courses, derives per-combination metrics, normalizes
// them against the result set, and produces a weighted ranking.
//
// The package is pure and deterministic: a Run is a function of its Params
// alone, performs no I/O, and returns identical output for identical input.
package scheduler

import "github.com/horarium/timetable-api/internal/models"

// CourseCandidates is one factor of the product: a course and the sections
// competing to represent it.
type CourseCandidates struct {
	Course   string
	Sections []models.Section
}

// Params configures one enumeration and scoring run.
type Params struct {
	// Courses lists the selected courses in selection order, which is also
	// the section order inside every produced combination.
	Courses []CourseCandidates
	// Ranking maps teacher name to preference position, 0 being the most
	// preferred. Unranked teachers rank at len(Ranking).
	Ranking map[string]int
	// Banned is the vetoed-teacher set.
	Banned map[string]struct{}

	Slot     models.SlotPreference
	SlotMode models.ConstraintMode
	VetoMode models.ConstraintMode

	// MinFreeDays rejects combinations leaving fewer free weekdays.
	MinFreeDays int

	Weights models.Weights
	Policy  models.ScoringPolicy

	// MaxCombinations bounds the enumeration; 0 means unbounded. The search
	// space is the product of the per-course candidate counts and nothing
	// else caps it, so servers should always set this.
	MaxCombinations int
}

// Result carries the ranked combinations and enumeration statistics.
type Result struct {
	Combinations []models.ScoredCombination
	// Enumerated counts the conflict-free combinations visited, including
	// ones later rejected by hard constraints.
	Enumerated int
	// Truncated is set when MaxCombinations stopped the walk early.
	Truncated bool
}

// Run enumerates, filters, and ranks. An empty result is a normal outcome
// ("no solutions"), never an error: it arises from an empty candidate list,
// from slot pre-filtering emptying one, or from every combination failing
// the overlap or hard-constraint checks.
func Run(p Params) Result {
	candidates := make([][]models.Section, len(p.Courses))
	for i, course := range p.Courses {
		sections := course.Sections
		if p.SlotMode == models.ConstraintHard && p.Slot != models.SlotBoth {
			// Hard slot preference shrinks the factors before the product
			// is formed instead of penalising afterwards.
			kept := make([]models.Section, 0, len(sections))
			for _, section := range sections {
				if SectionInSlot(section, p.Slot) {
					kept = append(kept, section)
				}
			}
			sections = kept
		}
		if len(sections) == 0 {
			return Result{}
		}
		candidates[i] = sections
	}

	var result Result
	var kept []candidate
	enumerate(candidates, func(combo models.Combination) bool {
		result.Enumerated++
		if accepted(combo, p) {
			kept = append(kept, candidate{combo: combo, metrics: computeMetrics(combo, p)})
		}
		if p.MaxCombinations > 0 && result.Enumerated >= p.MaxCombinations {
			result.Truncated = true
			return false
		}
		return true
	})

	result.Combinations = scoreAll(kept, p.Weights, p.Policy)
	return result
}

// accepted applies the cheap hard filters ahead of metric computation.
func accepted(combo models.Combination, p Params) bool {
	if p.MinFreeDays > 0 && models.NumWeekdays-occupiedDays(combo) < p.MinFreeDays {
		return false
	}
	if p.VetoMode == models.ConstraintHard && len(p.Banned) > 0 {
		for _, section := range combo {
			if _, banned := p.Banned[section.Teacher]; banned {
				return false
			}
		}
	}
	return true
}
