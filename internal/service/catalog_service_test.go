package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/horarium/timetable-api/internal/models"
	apperrors "github.com/horarium/timetable-api/pkg/errors"
)

const catalogCSV = `NRC,Asignatura,Docente,Horario
1001,Algebra,Rojas,Lunes 08:30 - 10:00
1001,Algebra,Rojas,Jueves 08:30 - 10:00
1002,Algebra,Soto,Martes 10:15 - 11:45
2001,Fisica,Lagos,Viernes 08:30 - 10:00
`

func testMapping() models.ColumnMapping {
	return models.ColumnMapping{Section: "NRC", Course: "Asignatura", Teacher: "Docente", Schedule: "Horario"}
}

func newCatalogFixture(t *testing.T, ttl time.Duration) (CatalogService, *models.Catalog) {
	t.Helper()
	svc := NewCatalogService(ttl, zap.NewNop())
	catalog, _, err := svc.UploadCSV(strings.NewReader(catalogCSV), testMapping())
	require.NoError(t, err)
	return svc, catalog
}

func TestCatalogServiceUploadAndGet(t *testing.T) {
	svc, catalog := newCatalogFixture(t, time.Hour)

	assert.Equal(t, []string{"Algebra", "Fisica"}, catalog.Courses)
	assert.Equal(t, []string{"Rojas", "Soto", "Lagos"}, catalog.Teachers)
	assert.Equal(t, 4, catalog.RowCount)
	assert.Equal(t, 3, catalog.SectionCount())

	fetched, expiresAt, err := svc.Get(catalog.ID)
	require.NoError(t, err)
	assert.Equal(t, catalog.ID, fetched.ID)
	assert.True(t, expiresAt.After(time.Now()))
}

func TestCatalogServiceGetUnknownID(t *testing.T) {
	svc := NewCatalogService(time.Hour, zap.NewNop())
	_, _, err := svc.Get("missing")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestCatalogServiceExpiry(t *testing.T) {
	svc, catalog := newCatalogFixture(t, -time.Minute)

	_, _, err := svc.Get(catalog.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCatalogExpired.Code, apperrors.FromError(err).Code)
}

func TestCatalogServiceCourses(t *testing.T) {
	svc, catalog := newCatalogFixture(t, time.Hour)

	courses, err := svc.Courses(catalog.ID)
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, models.CourseSummary{Name: "Algebra", SectionCount: 2}, courses[0])
	assert.Equal(t, models.CourseSummary{Name: "Fisica", SectionCount: 1}, courses[1])
}

func TestCatalogServiceTeachers(t *testing.T) {
	svc, catalog := newCatalogFixture(t, time.Hour)

	teachers, err := svc.Teachers(catalog.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Rojas", "Soto", "Lagos"}, teachers)
}

func TestCatalogServiceUploadRejectsBadMapping(t *testing.T) {
	svc := NewCatalogService(time.Hour, zap.NewNop())
	mapping := testMapping()
	mapping.Schedule = "NoSuchColumn"

	_, _, err := svc.UploadCSV(strings.NewReader(catalogCSV), mapping)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrColumnMapping.Code, apperrors.FromError(err).Code)
}
