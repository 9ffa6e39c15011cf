package scheduler

import "github.com/horarium/timetable-api/internal/models"

// Overlaps reports whether any meeting of a intersects any meeting of b.
// Meetings only conflict on the same day, and intervals compare half-open:
// a meeting ending exactly when another starts does not overlap it.
func Overlaps(a, b models.Section) bool {
	for _, m1 := range a.Meetings {
		for _, m2 := range b.Meetings {
			if m1.Day == m2.Day && m1.Start < m2.End && m2.Start < m1.End {
				return true
			}
		}
	}
	return false
}
