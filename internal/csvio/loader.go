// Package csvio ingests section catalogs from CSV uploads and maps the
// source columns onto the logical catalog fields.
package csvio

import (
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/horarium/timetable-api/internal/models"
	apperrors "github.com/horarium/timetable-api/pkg/errors"
)

// Load reads a catalog CSV and maps each record onto a CatalogRow using the
// provided column mapping. With a pre-split mapping the day/start/end columns
// are recomposed into a single schedule text so both layouts share one parse
// path downstream.
func Load(r io.Reader, mapping models.ColumnMapping) ([]models.CatalogRow, error) {
	if err := validateMapping(mapping); err != nil {
		return nil, err
	}

	records, err := gocsv.CSVToMaps(r)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrValidation.Code, apperrors.ErrValidation.Status, "malformed CSV payload")
	}
	if len(records) == 0 {
		return nil, apperrors.Clone(apperrors.ErrValidation, "catalog CSV contains no data rows")
	}

	if err := checkColumns(records[0], mapping); err != nil {
		return nil, err
	}

	rows := make([]models.CatalogRow, 0, len(records))
	for _, record := range records {
		row := models.CatalogRow{
			SectionID: strings.TrimSpace(record[mapping.Section]),
			Course:    strings.TrimSpace(record[mapping.Course]),
			Teacher:   strings.TrimSpace(record[mapping.Teacher]),
		}
		if row.SectionID == "" || row.Course == "" {
			continue
		}
		if mapping.PreSplit() {
			row.RawSchedule = composeSchedule(record, mapping)
		} else {
			row.RawSchedule = strings.TrimSpace(record[mapping.Schedule])
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, apperrors.Clone(apperrors.ErrValidation, "catalog CSV contains no usable rows")
	}
	return rows, nil
}

// composeSchedule rebuilds a schedule text from separate day/start/end
// columns so it parses like the single-column layout.
func composeSchedule(record map[string]string, mapping models.ColumnMapping) string {
	day := strings.TrimSpace(record[mapping.Day])
	start := strings.TrimSpace(record[mapping.Start])
	end := strings.TrimSpace(record[mapping.End])
	if day == "" || start == "" || end == "" {
		return ""
	}
	return fmt.Sprintf("%s %s - %s", day, start, end)
}

func validateMapping(mapping models.ColumnMapping) error {
	if mapping.Section == "" || mapping.Course == "" || mapping.Teacher == "" {
		return apperrors.Clone(apperrors.ErrColumnMapping, "section, course and teacher columns are required")
	}
	if mapping.Schedule == "" && !mapping.PreSplit() {
		return apperrors.Clone(apperrors.ErrColumnMapping, "either a schedule column or day/start/end columns are required")
	}
	return nil
}

// checkColumns verifies every mapped column exists in the parsed header.
func checkColumns(record map[string]string, mapping models.ColumnMapping) error {
	required := []string{mapping.Section, mapping.Course, mapping.Teacher}
	if mapping.PreSplit() {
		required = append(required, mapping.Day, mapping.Start, mapping.End)
	} else {
		required = append(required, mapping.Schedule)
	}
	for _, column := range required {
		if _, ok := record[column]; !ok {
			return apperrors.Clone(apperrors.ErrColumnMapping, fmt.Sprintf("column %q not found in CSV header", column))
		}
	}
	return nil
}
