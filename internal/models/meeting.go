package models

import "fmt"

// Day identifies a weekday. The scheduling week is Monday through Friday;
// free-day accounting is always relative to this five day span.
type Day int

const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
)

// NumWeekdays is the size of the scheduling week.
const NumWeekdays = 5

var dayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

func (d Day) String() string {
	if d < Monday || d > Friday {
		return fmt.Sprintf("Day(%d)", int(d))
	}
	return dayNames[d]
}

// MarshalText encodes the day as its English name.
func (d Day) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText decodes an English day name.
func (d *Day) UnmarshalText(text []byte) error {
	name := string(text)
	for i, candidate := range dayNames {
		if candidate == name {
			*d = Day(i)
			return nil
		}
	}
	return fmt.Errorf("unknown day %q", name)
}

// TimeOfDay is a clock time expressed as minutes since midnight.
type TimeOfDay int

// MinuteOfDay builds a TimeOfDay from hour and minute components.
func MinuteOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*60 + minute)
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// MarshalText encodes the time as HH:MM.
func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes an HH:MM clock time.
func (t *TimeOfDay) UnmarshalText(text []byte) error {
	var hour, minute int
	if _, err := fmt.Sscanf(string(text), "%d:%d", &hour, &minute); err != nil {
		return fmt.Errorf("invalid time of day %q", string(text))
	}
	*t = MinuteOfDay(hour, minute)
	return nil
}

// Meeting is one recurring class session. Start is strictly before End;
// the parser discards records violating that invariant.
type Meeting struct {
	Day   Day       `json:"day"`
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

// MeetingBlock is the flat rendering record for one meeting of a combination,
// consumed by the visualization and export layers.
type MeetingBlock struct {
	Day       Day       `json:"day"`
	Start     TimeOfDay `json:"start"`
	End       TimeOfDay `json:"end"`
	Course    string    `json:"course"`
	SectionID string    `json:"sectionId"`
	Teacher   string    `json:"teacher"`
}
