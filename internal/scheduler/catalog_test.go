package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/horarium/timetable-api/internal/models"
)

func TestBuildSectionsGroupsRowsBySectionID(t *testing.T) {
	rows := []models.CatalogRow{
		{SectionID: "A-1", Course: "Algebra", Teacher: "Rojas", RawSchedule: "Lunes 08:30 - 10:00"},
		{SectionID: "A-1", Course: "Algebra", Teacher: "Rojas", RawSchedule: "Jueves 08:30 - 10:00"},
		{SectionID: "A-2", Course: "Algebra", Teacher: "Soto", RawSchedule: "Martes 10:15 - 11:45"},
		{SectionID: "F-1", Course: "Fisica", Teacher: "Lagos", RawSchedule: "Viernes 08:30 - 10:00"},
	}

	courses, order := BuildSections(rows)
	require.Len(t, courses, 2)
	assert.Equal(t, []string{"Algebra", "Fisica"}, order)
	require.Len(t, courses["Algebra"], 2)
	assert.Len(t, courses["Algebra"][0].Meetings, 2)
	assert.Equal(t, "Rojas", courses["Algebra"][0].Teacher)
	assert.Equal(t, "A-2", courses["Algebra"][1].ID)
}

func TestBuildSectionsDeduplicatesMeetingsByValue(t *testing.T) {
	rows := []models.CatalogRow{
		{SectionID: "A-1", Course: "Algebra", Teacher: "Rojas", RawSchedule: "Lunes 08:30 - 10:00"},
		{SectionID: "A-1", Course: "Algebra", Teacher: "Rojas", RawSchedule: "Lunes 08:30 - 10:00"},
	}

	courses, _ := BuildSections(rows)
	require.Len(t, courses["Algebra"], 1)
	assert.Len(t, courses["Algebra"][0].Meetings, 1)
}

func TestBuildSectionsFirstRowWinsWithinGroup(t *testing.T) {
	rows := []models.CatalogRow{
		{SectionID: "A-1", Course: "Algebra", Teacher: "Rojas", RawSchedule: "Lunes 08:30 - 10:00"},
		{SectionID: "A-1", Course: "Algebra II", Teacher: "Soto", RawSchedule: "Martes 08:30 - 10:00"},
	}

	courses, order := BuildSections(rows)
	assert.Equal(t, []string{"Algebra"}, order)
	section := courses["Algebra"][0]
	assert.Equal(t, "Rojas", section.Teacher)
	assert.Len(t, section.Meetings, 2)
}

func TestBuildSectionsKeepsMeetinglessSections(t *testing.T) {
	rows := []models.CatalogRow{
		{SectionID: "O-1", Course: "Online Seminar", Teacher: "Vidal", RawSchedule: "asincronico"},
	}

	courses, _ := BuildSections(rows)
	require.Len(t, courses["Online Seminar"], 1)
	assert.Empty(t, courses["Online Seminar"][0].Meetings)
}
