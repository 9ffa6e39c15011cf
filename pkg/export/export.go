// Package export renders scored schedule combinations into downloadable
// artifacts: a flat CSV listing and a weekly timetable PDF.
package export

import "github.com/horarium/timetable-api/internal/models"

// Timetable is the render input: one combination flattened into meeting
// blocks, with its score and metrics for the summary line.
type Timetable struct {
	Title   string
	Score   float64
	Metrics models.CombinationMetrics
	Blocks  []models.MeetingBlock
}
