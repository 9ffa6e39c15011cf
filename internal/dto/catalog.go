package dto

import (
	"time"

	"github.com/horarium/timetable-api/internal/models"
)

// UploadCatalogRequest carries the column mapping submitted alongside the
// CSV payload. Fields mirror models.ColumnMapping for direct binding.
type UploadCatalogRequest struct {
	Section  string `form:"section" json:"section" validate:"required"`
	Course   string `form:"course" json:"course" validate:"required"`
	Teacher  string `form:"teacher" json:"teacher" validate:"required"`
	Schedule string `form:"schedule" json:"schedule"`
	Day      string `form:"day" json:"day"`
	Start    string `form:"start" json:"start"`
	End      string `form:"end" json:"end"`
}

// Mapping converts the request into the catalog column mapping.
func (r UploadCatalogRequest) Mapping() models.ColumnMapping {
	return models.ColumnMapping{
		Section:  r.Section,
		Course:   r.Course,
		Teacher:  r.Teacher,
		Schedule: r.Schedule,
		Day:      r.Day,
		Start:    r.Start,
		End:      r.End,
	}
}

// CatalogResponse summarises an ingested catalog.
type CatalogResponse struct {
	ID           string    `json:"id"`
	Courses      []string  `json:"courses"`
	Teachers     []string  `json:"teachers"`
	RowCount     int       `json:"rowCount"`
	SectionCount int       `json:"sectionCount"`
	LoadedAt     time.Time `json:"loadedAt"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// NewCatalogResponse builds the upload/read response for a catalog.
func NewCatalogResponse(catalog *models.Catalog, expiresAt time.Time) CatalogResponse {
	return CatalogResponse{
		ID:           catalog.ID,
		Courses:      catalog.Courses,
		Teachers:     catalog.Teachers,
		RowCount:     catalog.RowCount,
		SectionCount: catalog.SectionCount(),
		LoadedAt:     catalog.LoadedAt,
		ExpiresAt:    expiresAt,
	}
}
