package export

import (
	"bytes"

	"github.com/gocarina/gocsv"
)

type csvRow struct {
	Day     string `csv:"day"`
	Start   string `csv:"start"`
	End     string `csv:"end"`
	Course  string `csv:"course"`
	Section string `csv:"section"`
	Teacher string `csv:"teacher"`
}

// RenderCSV writes the timetable as a flat CSV, one meeting per row, in the
// block order provided (day then start time).
func RenderCSV(t Timetable) ([]byte, error) {
	rows := make([]csvRow, 0, len(t.Blocks))
	for _, block := range t.Blocks {
		rows = append(rows, csvRow{
			Day:     block.Day.String(),
			Start:   block.Start.String(),
			End:     block.End.String(),
			Course:  block.Course,
			Section: block.SectionID,
			Teacher: block.Teacher,
		})
	}

	var buf bytes.Buffer
	if err := gocsv.Marshal(rows, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
