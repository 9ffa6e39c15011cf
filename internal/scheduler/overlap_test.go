package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/horarium/timetable-api/internal/models"
)

func mtg(day models.Day, startH, startM, endH, endM int) models.Meeting {
	return models.Meeting{
		Day:   day,
		Start: models.MinuteOfDay(startH, startM),
		End:   models.MinuteOfDay(endH, endM),
	}
}

func sec(id, course, teacher string, meetings ...models.Meeting) models.Section {
	return models.Section{ID: id, Course: course, Teacher: teacher, Meetings: meetings}
}

func TestOverlapsTouchingIntervalsDoNotConflict(t *testing.T) {
	a := sec("1", "algebra", "rojas", mtg(models.Monday, 9, 0, 10, 0))
	b := sec("2", "fisica", "soto", mtg(models.Monday, 10, 0, 11, 0))
	assert.False(t, Overlaps(a, b))
	assert.False(t, Overlaps(b, a))
}

func TestOverlapsIntersectingIntervalsConflict(t *testing.T) {
	a := sec("1", "algebra", "rojas", mtg(models.Monday, 9, 0, 10, 30))
	b := sec("2", "fisica", "soto", mtg(models.Monday, 10, 0, 11, 0))
	assert.True(t, Overlaps(a, b))
	assert.True(t, Overlaps(b, a))
}

func TestOverlapsDifferentDaysNeverConflict(t *testing.T) {
	a := sec("1", "algebra", "rojas", mtg(models.Monday, 9, 0, 12, 0))
	b := sec("2", "fisica", "soto", mtg(models.Tuesday, 9, 0, 12, 0))
	assert.False(t, Overlaps(a, b))
}

func TestOverlapsEmptySectionNeverConflicts(t *testing.T) {
	a := sec("1", "algebra", "rojas")
	b := sec("2", "fisica", "soto", mtg(models.Monday, 0, 0, 23, 59))
	assert.False(t, Overlaps(a, b))
}
