package csvio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/horarium/timetable-api/internal/models"
	apperrors "github.com/horarium/timetable-api/pkg/errors"
)

func singleColumnMapping() models.ColumnMapping {
	return models.ColumnMapping{
		Section:  "NRC",
		Course:   "Asignatura",
		Teacher:  "Docente",
		Schedule: "Horario",
	}
}

func TestLoadSingleScheduleColumn(t *testing.T) {
	csv := strings.Join([]string{
		"NRC,Asignatura,Docente,Horario",
		"1001,Algebra,Rojas,Lunes 08:30 - 10:00",
		"1001,Algebra,Rojas,Jueves 08:30 - 10:00",
		"2001,Fisica,Soto,Ma. 10:15 a 11:45",
	}, "\n")

	rows, err := Load(strings.NewReader(csv), singleColumnMapping())
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "1001", rows[0].SectionID)
	assert.Equal(t, "Algebra", rows[0].Course)
	assert.Equal(t, "Lunes 08:30 - 10:00", rows[0].RawSchedule)
	assert.Equal(t, "Ma. 10:15 a 11:45", rows[2].RawSchedule)
}

func TestLoadPreSplitColumnsRecomposeSchedule(t *testing.T) {
	csv := strings.Join([]string{
		"NRC,Asignatura,Docente,Dia,Inicio,Fin",
		"1001,Algebra,Rojas,Lunes,08:30,10:00",
	}, "\n")
	mapping := models.ColumnMapping{
		Section: "NRC",
		Course:  "Asignatura",
		Teacher: "Docente",
		Day:     "Dia",
		Start:   "Inicio",
		End:     "Fin",
	}

	rows, err := Load(strings.NewReader(csv), mapping)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Lunes 08:30 - 10:00", rows[0].RawSchedule)
}

func TestLoadSkipsRowsWithoutSectionOrCourse(t *testing.T) {
	csv := strings.Join([]string{
		"NRC,Asignatura,Docente,Horario",
		"1001,Algebra,Rojas,Lunes 08:30 - 10:00",
		",Algebra,Rojas,Martes 08:30 - 10:00",
		"3001,,Lagos,Viernes 08:30 - 10:00",
	}, "\n")

	rows, err := Load(strings.NewReader(csv), singleColumnMapping())
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestLoadMissingColumnFails(t *testing.T) {
	csv := strings.Join([]string{
		"NRC,Asignatura,Horario",
		"1001,Algebra,Lunes 08:30 - 10:00",
	}, "\n")

	_, err := Load(strings.NewReader(csv), singleColumnMapping())
	require.Error(t, err)
	appErr := apperrors.FromError(err)
	assert.Equal(t, apperrors.ErrColumnMapping.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "Docente")
}

func TestLoadIncompleteMappingFails(t *testing.T) {
	mapping := models.ColumnMapping{Section: "NRC", Course: "Asignatura", Teacher: "Docente"}
	_, err := Load(strings.NewReader("NRC,Asignatura,Docente\n"), mapping)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrColumnMapping.Code, apperrors.FromError(err).Code)
}

func TestLoadEmptyPayloadFails(t *testing.T) {
	_, err := Load(strings.NewReader("NRC,Asignatura,Docente,Horario\n"), singleColumnMapping())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrValidation.Code, apperrors.FromError(err).Code)
}

func TestLoadKeepsMeetinglessRows(t *testing.T) {
	csv := strings.Join([]string{
		"NRC,Asignatura,Docente,Horario",
		"9001,Seminario Online,Vidal,",
	}, "\n")

	rows, err := Load(strings.NewReader(csv), singleColumnMapping())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Empty(t, rows[0].RawSchedule)
}
