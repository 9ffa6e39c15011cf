package scheduler

import "github.com/horarium/timetable-api/internal/models"

// Slot boundaries in minutes since midnight. Morning meetings must lie
// entirely within [08:30, 14:30]; afternoon meetings must start at or
// after 14:31.
const (
	morningStart   = 8*60 + 30
	morningEnd     = 14*60 + 30
	afternoonStart = 14*60 + 31
)

// MeetingInSlot reports whether a single meeting respects the preference.
func MeetingInSlot(m models.Meeting, slot models.SlotPreference) bool {
	switch slot {
	case models.SlotMorning:
		return m.Start >= morningStart && m.Start <= morningEnd &&
			m.End >= morningStart && m.End <= morningEnd
	case models.SlotAfternoon:
		return m.Start >= afternoonStart
	}
	return true
}

// SectionInSlot reports whether every meeting of the section respects the
// preference. A section with no meetings trivially qualifies.
func SectionInSlot(section models.Section, slot models.SlotPreference) bool {
	for _, meeting := range section.Meetings {
		if !MeetingInSlot(meeting, slot) {
			return false
		}
	}
	return true
}
