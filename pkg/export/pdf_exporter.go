package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/horarium/timetable-api/internal/models"
)

const (
	gridFirstHour = 8
	gridLastHour  = 22

	gridLeft      = 22.0
	gridTop       = 34.0
	dayColWidth   = 50.0
	hourRowHeight = 15.0
)

// RenderPDF draws the timetable as a weekly grid, days across the top and
// hours down the side, with one shaded cell per meeting.
func RenderPDF(t Timetable) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(t.Title, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, t.Title, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	summary := fmt.Sprintf("score %.3f   avg rank %.2f   window %d min   free days %d   vetoes %d   slot violations %d",
		t.Score, t.Metrics.AvgRank, t.Metrics.WindowMinutes, t.Metrics.FreeDays, t.Metrics.VetoCount, t.Metrics.SlotViolations)
	pdf.CellFormat(0, 6, summary, "", 1, "L", false, 0, "")

	drawGrid(pdf)
	for _, block := range t.Blocks {
		drawBlock(pdf, block)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawGrid(pdf *gofpdf.Fpdf) {
	pdf.SetDrawColor(180, 180, 180)
	pdf.SetTextColor(60, 60, 60)
	pdf.SetFont("Helvetica", "B", 9)

	for day := 0; day < models.NumWeekdays; day++ {
		x := gridLeft + float64(day)*dayColWidth
		pdf.SetXY(x, gridTop-7)
		pdf.CellFormat(dayColWidth, 6, models.Day(day).String(), "1", 0, "C", false, 0, "")
	}

	pdf.SetFont("Helvetica", "", 7)
	gridHeight := float64(gridLastHour-gridFirstHour) * hourRowHeight
	gridWidth := float64(models.NumWeekdays) * dayColWidth
	for hour := gridFirstHour; hour <= gridLastHour; hour++ {
		y := hourY(models.MinuteOfDay(hour, 0))
		pdf.Line(gridLeft, y, gridLeft+gridWidth, y)
		pdf.SetXY(gridLeft-14, y-2)
		pdf.CellFormat(12, 4, fmt.Sprintf("%02d:00", hour), "", 0, "R", false, 0, "")
	}
	for day := 0; day <= models.NumWeekdays; day++ {
		x := gridLeft + float64(day)*dayColWidth
		pdf.Line(x, gridTop, x, gridTop+gridHeight)
	}
}

func drawBlock(pdf *gofpdf.Fpdf, block models.MeetingBlock) {
	start, end := clampToGrid(block.Start), clampToGrid(block.End)
	if end <= start {
		return
	}

	x := gridLeft + float64(block.Day)*dayColWidth
	y := hourY(start)
	height := hourY(end) - y

	pdf.SetFillColor(205, 222, 244)
	pdf.SetDrawColor(90, 120, 160)
	pdf.Rect(x+0.5, y, dayColWidth-1, height, "FD")

	pdf.SetTextColor(20, 40, 70)
	pdf.SetFont("Helvetica", "B", 7)
	pdf.SetXY(x+1, y+1)
	pdf.CellFormat(dayColWidth-2, 3.5, block.Course, "", 2, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 6.5)
	pdf.CellFormat(dayColWidth-2, 3, fmt.Sprintf("%s  %s", block.SectionID, block.Teacher), "", 2, "L", false, 0, "")
	pdf.CellFormat(dayColWidth-2, 3, fmt.Sprintf("%s - %s", block.Start, block.End), "", 2, "L", false, 0, "")
}

func hourY(t models.TimeOfDay) float64 {
	return gridTop + (float64(t)/60.0-gridFirstHour)*hourRowHeight
}

// clampToGrid keeps out-of-range meetings drawable instead of dropping them.
func clampToGrid(t models.TimeOfDay) models.TimeOfDay {
	min, max := models.MinuteOfDay(gridFirstHour, 0), models.MinuteOfDay(gridLastHour, 0)
	if t < min {
		return min
	}
	if t > max {
		return max
	}
	return t
}
