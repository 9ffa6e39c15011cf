package scheduler

import "github.com/horarium/timetable-api/internal/models"

// enumerate walks the Cartesian product of the per-course candidate lists,
// yielding one conflict-free combination at a time in lexicographic order of
// the candidate lists. Subtrees rooted at a section that conflicts with an
// already-chosen one are pruned without materialization. The walk stops when
// yield returns false.
//
// An empty candidate list collapses the product: nothing is yielded.
func enumerate(candidates [][]models.Section, yield func(models.Combination) bool) {
	if len(candidates) == 0 {
		return
	}
	partial := make([]models.Section, 0, len(candidates))
	expand(candidates, partial, yield)
}

func expand(candidates [][]models.Section, partial models.Combination, yield func(models.Combination) bool) bool {
	depth := len(partial)
	if depth == len(candidates) {
		combo := make(models.Combination, depth)
		copy(combo, partial)
		return yield(combo)
	}

next:
	for _, section := range candidates[depth] {
		for _, chosen := range partial {
			if Overlaps(section, chosen) {
				continue next
			}
		}
		if !expand(candidates, append(partial, section), yield) {
			return false
		}
	}
	return true
}
