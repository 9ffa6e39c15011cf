package scheduler

import (
	"sort"

	"github.com/horarium/timetable-api/internal/models"
)

// MaxGap returns the largest idle gap, in minutes, between two consecutive
// meetings on the same day across the whole combination. Days with fewer
// than two meetings contribute nothing; a combination with no such day
// scores 0. This is a worst-single-gap metric, not total idle time.
func MaxGap(combo models.Combination) int {
	byDay := make(map[models.Day][]models.Meeting)
	for _, section := range combo {
		for _, meeting := range section.Meetings {
			byDay[meeting.Day] = append(byDay[meeting.Day], meeting)
		}
	}

	maxGap := 0
	for _, meetings := range byDay {
		sort.Slice(meetings, func(i, j int) bool {
			return meetings[i].Start < meetings[j].Start
		})
		for i := 0; i < len(meetings)-1; i++ {
			gap := int(meetings[i+1].Start) - int(meetings[i].End)
			if gap > maxGap {
				maxGap = gap
			}
		}
	}
	return maxGap
}

// occupiedDays counts the distinct weekdays touched by any meeting.
func occupiedDays(combo models.Combination) int {
	days := make(map[models.Day]struct{})
	for _, section := range combo {
		for _, meeting := range section.Meetings {
			days[meeting.Day] = struct{}{}
		}
	}
	return len(days)
}
