package models

import "time"

// Catalog is a parsed section catalog held in memory for the lifetime of a
// session. Courses preserves first-seen order for stable listings.
type Catalog struct {
	ID       string               `json:"id"`
	Sections map[string][]Section `json:"-"`
	Courses  []string             `json:"courses"`
	Teachers []string             `json:"teachers"`
	RowCount int                  `json:"rowCount"`
	LoadedAt time.Time            `json:"loadedAt"`
}

// SectionCount returns the total number of sections across all courses.
func (c *Catalog) SectionCount() int {
	total := 0
	for _, sections := range c.Sections {
		total += len(sections)
	}
	return total
}

// CourseSummary describes one course offering for listing endpoints.
type CourseSummary struct {
	Name         string `json:"name"`
	SectionCount int    `json:"sectionCount"`
}
