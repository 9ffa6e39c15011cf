package models

// Section is one offering of a course: a section identifier, the teacher
// giving it, and its weekly meetings. Immutable once the catalog is built.
type Section struct {
	ID       string    `json:"id"`
	Course   string    `json:"course"`
	Teacher  string    `json:"teacher"`
	Meetings []Meeting `json:"meetings"`
}

// Combination is one full candidate schedule: exactly one section per
// selected course, in course-selection order.
type Combination []Section

// CatalogRow is the logical shape of one ingested catalog record after
// column mapping. RawSchedule carries the free-text meeting description.
type CatalogRow struct {
	SectionID   string
	Course      string
	Teacher     string
	RawSchedule string
}

// ColumnMapping binds source CSV headers to the logical catalog fields.
// Either Schedule, or the Day/Start/End triple, must be provided.
type ColumnMapping struct {
	Section  string `json:"section" validate:"required"`
	Course   string `json:"course" validate:"required"`
	Teacher  string `json:"teacher" validate:"required"`
	Schedule string `json:"schedule"`
	Day      string `json:"day"`
	Start    string `json:"start"`
	End      string `json:"end"`
}

// PreSplit reports whether the mapping uses separate day/start/end columns
// instead of a single schedule-text column.
func (m ColumnMapping) PreSplit() bool {
	return m.Schedule == "" && m.Day != "" && m.Start != "" && m.End != ""
}
