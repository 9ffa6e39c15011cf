package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/horarium/timetable-api/internal/models"
)

func TestMaxGapBetweenMorningAndLateMeeting(t *testing.T) {
	combo := models.Combination{
		sec("1", "algebra", "rojas", mtg(models.Monday, 9, 0, 10, 0)),
		sec("2", "fisica", "soto", mtg(models.Monday, 11, 0, 12, 0)),
	}
	assert.Equal(t, 60, MaxGap(combo))
}

func TestMaxGapPicksWorstDay(t *testing.T) {
	combo := models.Combination{
		sec("1", "algebra", "rojas",
			mtg(models.Monday, 9, 0, 10, 0),
			mtg(models.Tuesday, 8, 0, 9, 0)),
		sec("2", "fisica", "soto",
			mtg(models.Monday, 10, 30, 11, 30),
			mtg(models.Tuesday, 14, 0, 15, 0)),
	}
	// Monday gap is 30 minutes, Tuesday gap is 300.
	assert.Equal(t, 300, MaxGap(combo))
}

func TestMaxGapZeroWithoutConsecutiveMeetings(t *testing.T) {
	combo := models.Combination{
		sec("1", "algebra", "rojas", mtg(models.Monday, 9, 0, 10, 0)),
		sec("2", "fisica", "soto", mtg(models.Tuesday, 9, 0, 10, 0)),
	}
	assert.Equal(t, 0, MaxGap(combo))
	assert.Equal(t, 0, MaxGap(models.Combination{}))
}

func TestOccupiedDaysCountsDistinctDays(t *testing.T) {
	combo := models.Combination{
		sec("1", "algebra", "rojas",
			mtg(models.Monday, 9, 0, 10, 0),
			mtg(models.Monday, 11, 0, 12, 0)),
		sec("2", "fisica", "soto", mtg(models.Thursday, 9, 0, 10, 0)),
	}
	assert.Equal(t, 2, occupiedDays(combo))
}
