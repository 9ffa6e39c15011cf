package scheduler

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/horarium/timetable-api/internal/models"
)

// meetingPattern matches one "day start end" occurrence inside a raw schedule
// cell after accent folding and lowercasing. Catalog exports disagree on the
// separator ("-" or "a") and on whether times carry seconds, so both are
// accepted. The day token is captured loosely and resolved by prefix, since
// sources mix full names ("miercoles") and clipped ones ("mie.", "Mi").
var meetingPattern = regexp.MustCompile(
	`\b([a-z]+)\.?\s*(\d{1,2}:\d{2}(?::\d{2})?)\s*(?:-|a)\s*(\d{1,2}:\d{2}(?::\d{2})?)`)

// dayPrefixes resolves the first two letters of a Spanish weekday name.
var dayPrefixes = map[string]models.Day{
	"lu": models.Monday,
	"ma": models.Tuesday,
	"mi": models.Wednesday,
	"ju": models.Thursday,
	"vi": models.Friday,
}

var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func foldAccents(s string) string {
	folded, _, err := transform.String(accentStripper, s)
	if err != nil {
		return s
	}
	return folded
}

// ParseMeetings extracts structured meetings from a free-text schedule field.
// Parsing is best-effort: unrecognizable fragments are skipped, and a cell
// with no recognizable pattern yields zero meetings rather than an error —
// sections without meetings (online/asynchronous offerings) are valid data.
// Records violating start < end are discarded.
func ParseMeetings(raw string) []models.Meeting {
	normalized := strings.ToLower(foldAccents(raw))
	matches := meetingPattern.FindAllStringSubmatch(normalized, -1)
	if len(matches) == 0 {
		return nil
	}

	meetings := make([]models.Meeting, 0, len(matches))
	for _, match := range matches {
		day, ok := resolveDay(match[1])
		if !ok {
			continue
		}
		start, ok := parseClock(match[2])
		if !ok {
			continue
		}
		end, ok := parseClock(match[3])
		if !ok {
			continue
		}
		if start >= end {
			continue
		}
		meetings = append(meetings, models.Meeting{Day: day, Start: start, End: end})
	}
	if len(meetings) == 0 {
		return nil
	}
	return meetings
}

func resolveDay(token string) (models.Day, bool) {
	if len(token) < 2 {
		return 0, false
	}
	day, ok := dayPrefixes[token[:2]]
	return day, ok
}

// parseClock reads HH:MM or HH:MM:SS; seconds are ignored.
func parseClock(raw string) (models.TimeOfDay, bool) {
	parts := strings.Split(raw, ":")
	if len(parts) < 2 {
		return 0, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour > 23 {
		return 0, false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute > 59 {
		return 0, false
	}
	return models.MinuteOfDay(hour, minute), true
}
