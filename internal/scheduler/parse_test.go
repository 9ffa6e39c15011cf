package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/horarium/timetable-api/internal/models"
)

func TestParseMeetingsAccentedAndPlain(t *testing.T) {
	meetings := ParseMeetings("Miércoles 08:30 - 10:00; viernes 10:15 - 11:45")
	require.Len(t, meetings, 2)
	assert.Equal(t, models.Wednesday, meetings[0].Day)
	assert.Equal(t, models.MinuteOfDay(8, 30), meetings[0].Start)
	assert.Equal(t, models.MinuteOfDay(10, 0), meetings[0].End)
	assert.Equal(t, models.Friday, meetings[1].Day)
}

func TestParseMeetingsSecondsAndSeparatorVariants(t *testing.T) {
	meetings := ParseMeetings("Lunes 08:30:00 a 10:00:00")
	require.Len(t, meetings, 1)
	assert.Equal(t, models.Monday, meetings[0].Day)
	assert.Equal(t, models.MinuteOfDay(8, 30), meetings[0].Start)
	assert.Equal(t, models.MinuteOfDay(10, 0), meetings[0].End)
}

func TestParseMeetingsClippedDayNames(t *testing.T) {
	meetings := ParseMeetings("Lu 9:00-10:30 Ju 9:00-10:30")
	require.Len(t, meetings, 2)
	assert.Equal(t, models.Monday, meetings[0].Day)
	assert.Equal(t, models.Thursday, meetings[1].Day)
}

func TestParseMeetingsUnrecognizableYieldsNothing(t *testing.T) {
	assert.Nil(t, ParseMeetings("modalidad online, sin horario"))
	assert.Nil(t, ParseMeetings(""))
}

func TestParseMeetingsDiscardsInvertedInterval(t *testing.T) {
	assert.Nil(t, ParseMeetings("Lunes 12:00 - 10:00"))
}

func TestParseMeetingsSkipsUnknownDayWords(t *testing.T) {
	meetings := ParseMeetings("Aula 10:00 - 11:00 Martes 10:00 - 11:00")
	require.Len(t, meetings, 1)
	assert.Equal(t, models.Tuesday, meetings[0].Day)
}
