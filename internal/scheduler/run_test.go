package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/horarium/timetable-api/internal/models"
)

func defaultWeights() models.Weights {
	return models.Weights{Rank: 3, Window: 3, FreeDays: 3, Veto: 3, Slot: 3}
}

func baseParams(courses ...CourseCandidates) Params {
	return Params{
		Courses:  courses,
		Ranking:  map[string]int{},
		Banned:   map[string]struct{}{},
		Slot:     models.SlotBoth,
		SlotMode: models.ConstraintSoft,
		VetoMode: models.ConstraintSoft,
		Weights:  defaultWeights(),
		Policy:   models.PolicyWeightedMean,
	}
}

func TestRunSingleNonConflictingCombination(t *testing.T) {
	p := baseParams(
		CourseCandidates{Course: "Algebra", Sections: []models.Section{
			sec("A-1", "Algebra", "Rojas", mtg(models.Monday, 9, 0, 10, 0)),
		}},
		CourseCandidates{Course: "Fisica", Sections: []models.Section{
			sec("F-1", "Fisica", "Soto", mtg(models.Tuesday, 9, 0, 10, 0)),
		}},
	)

	result := Run(p)
	require.Len(t, result.Combinations, 1)
	assert.Equal(t, 1, result.Enumerated)
	assert.False(t, result.Truncated)
	assert.Equal(t, 3, result.Combinations[0].Metrics.FreeDays)
	assert.Equal(t, "A-1", result.Combinations[0].Sections[0].ID)
	assert.Equal(t, "F-1", result.Combinations[0].Sections[1].ID)
}

func TestRunRejectsOverlappingCombinations(t *testing.T) {
	p := baseParams(
		CourseCandidates{Course: "Algebra", Sections: []models.Section{
			sec("A-1", "Algebra", "Rojas", mtg(models.Monday, 9, 0, 10, 30)),
		}},
		CourseCandidates{Course: "Fisica", Sections: []models.Section{
			sec("F-1", "Fisica", "Soto", mtg(models.Monday, 10, 0, 11, 0)),
			sec("F-2", "Fisica", "Soto", mtg(models.Monday, 10, 30, 11, 30)),
		}},
	)

	result := Run(p)
	// F-1 intersects A-1, F-2 merely touches it.
	require.Len(t, result.Combinations, 1)
	assert.Equal(t, "F-2", result.Combinations[0].Sections[1].ID)
}

func TestRunEmptyCourseYieldsNoSolutions(t *testing.T) {
	p := baseParams(
		CourseCandidates{Course: "Algebra", Sections: []models.Section{
			sec("A-1", "Algebra", "Rojas", mtg(models.Monday, 9, 0, 10, 0)),
		}},
		CourseCandidates{Course: "Fisica", Sections: nil},
	)

	result := Run(p)
	assert.Empty(t, result.Combinations)
	assert.Equal(t, 0, result.Enumerated)
}

func TestRunMinFreeDaysFilter(t *testing.T) {
	p := baseParams(
		CourseCandidates{Course: "Algebra", Sections: []models.Section{
			sec("A-1", "Algebra", "Rojas", mtg(models.Monday, 9, 0, 10, 0)),
		}},
		CourseCandidates{Course: "Fisica", Sections: []models.Section{
			sec("F-1", "Fisica", "Soto", mtg(models.Tuesday, 9, 0, 10, 0)),
			sec("F-2", "Fisica", "Soto", mtg(models.Monday, 11, 0, 12, 0)),
		}},
	)
	p.MinFreeDays = 4

	result := Run(p)
	// Only the single-day combination leaves four weekdays free.
	require.Len(t, result.Combinations, 1)
	assert.Equal(t, "F-2", result.Combinations[0].Sections[1].ID)
	assert.Equal(t, 4, result.Combinations[0].Metrics.FreeDays)
}

func TestRunHardVetoExcludesBannedTeacher(t *testing.T) {
	p := baseParams(
		CourseCandidates{Course: "Algebra", Sections: []models.Section{
			// The banned teacher's section would dominate every metric.
			sec("A-1", "Algebra", "Vetado", mtg(models.Monday, 9, 0, 10, 0)),
			sec("A-2", "Algebra", "Rojas",
				mtg(models.Monday, 9, 0, 10, 0),
				mtg(models.Friday, 9, 0, 10, 0)),
		}},
	)
	p.Banned = map[string]struct{}{"Vetado": {}}
	p.VetoMode = models.ConstraintHard
	p.Ranking = map[string]int{"Vetado": 0, "Rojas": 1}

	result := Run(p)
	require.Len(t, result.Combinations, 1)
	for _, combo := range result.Combinations {
		for _, section := range combo.Sections {
			assert.NotEqual(t, "Vetado", section.Teacher)
		}
	}
}

func TestRunSoftVetoKeepsButCounts(t *testing.T) {
	p := baseParams(
		CourseCandidates{Course: "Algebra", Sections: []models.Section{
			sec("A-1", "Algebra", "Vetado", mtg(models.Monday, 9, 0, 10, 0)),
			sec("A-2", "Algebra", "Rojas", mtg(models.Monday, 9, 0, 10, 0)),
		}},
	)
	p.Banned = map[string]struct{}{"Vetado": {}}

	result := Run(p)
	require.Len(t, result.Combinations, 2)
	// The clean section must outrank the vetoed one.
	assert.Equal(t, "A-2", result.Combinations[0].Sections[0].ID)
	assert.Equal(t, 1, result.Combinations[1].Metrics.VetoCount)
}

func TestRunHardSlotPreFiltersCandidates(t *testing.T) {
	p := baseParams(
		CourseCandidates{Course: "Algebra", Sections: []models.Section{
			sec("A-1", "Algebra", "Rojas", mtg(models.Monday, 9, 0, 10, 0)),
			sec("A-2", "Algebra", "Soto", mtg(models.Monday, 15, 0, 16, 30)),
		}},
	)
	p.Slot = models.SlotMorning
	p.SlotMode = models.ConstraintHard

	result := Run(p)
	require.Len(t, result.Combinations, 1)
	assert.Equal(t, "A-1", result.Combinations[0].Sections[0].ID)
	assert.Zero(t, result.Combinations[0].Metrics.SlotViolations)
}

func TestRunHardSlotEmptyingACourseYieldsNoSolutions(t *testing.T) {
	p := baseParams(
		CourseCandidates{Course: "Algebra", Sections: []models.Section{
			sec("A-1", "Algebra", "Rojas", mtg(models.Monday, 15, 0, 16, 30)),
		}},
	)
	p.Slot = models.SlotMorning
	p.SlotMode = models.ConstraintHard

	result := Run(p)
	assert.Empty(t, result.Combinations)
}

func TestRunSoftSlotCountsViolations(t *testing.T) {
	p := baseParams(
		CourseCandidates{Course: "Algebra", Sections: []models.Section{
			sec("A-1", "Algebra", "Rojas",
				mtg(models.Monday, 9, 0, 10, 0),
				mtg(models.Wednesday, 15, 0, 16, 30)),
		}},
	)
	p.Slot = models.SlotMorning

	result := Run(p)
	require.Len(t, result.Combinations, 1)
	assert.Equal(t, 1, result.Combinations[0].Metrics.SlotViolations)
}

func TestRunTruncatesAtMaxCombinations(t *testing.T) {
	many := make([]models.Section, 0, 10)
	for i := 0; i < 10; i++ {
		many = append(many, sec(string(rune('a'+i)), "Algebra", "Rojas",
			mtg(models.Monday, 8+i, 0, 8+i, 30)))
	}
	p := baseParams(
		CourseCandidates{Course: "Algebra", Sections: many},
		CourseCandidates{Course: "Fisica", Sections: []models.Section{
			sec("F-1", "Fisica", "Soto", mtg(models.Friday, 9, 0, 10, 0)),
		}},
	)
	p.MaxCombinations = 4

	result := Run(p)
	assert.True(t, result.Truncated)
	assert.Equal(t, 4, result.Enumerated)
	assert.Len(t, result.Combinations, 4)
}

func TestRunDeterministicAcrossRepeats(t *testing.T) {
	p := baseParams(
		CourseCandidates{Course: "Algebra", Sections: []models.Section{
			sec("A-1", "Algebra", "Rojas", mtg(models.Monday, 9, 0, 10, 0)),
			sec("A-2", "Algebra", "Soto", mtg(models.Tuesday, 9, 0, 10, 0)),
		}},
		CourseCandidates{Course: "Fisica", Sections: []models.Section{
			sec("F-1", "Fisica", "Lagos", mtg(models.Wednesday, 9, 0, 10, 0)),
			sec("F-2", "Fisica", "Vidal", mtg(models.Thursday, 9, 0, 10, 0)),
		}},
	)
	p.Ranking = map[string]int{"Rojas": 0, "Soto": 1, "Lagos": 2, "Vidal": 3}

	first := Run(p)
	second := Run(p)
	require.Equal(t, len(first.Combinations), len(second.Combinations))
	for i := range first.Combinations {
		assert.Equal(t, first.Combinations[i].Score, second.Combinations[i].Score)
		assert.Equal(t, first.Combinations[i].Sections, second.Combinations[i].Sections)
	}
}
