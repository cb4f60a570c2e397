package models

import "fmt"

// DisplayMode selects how many days the timetable shows at once.
type DisplayMode string

const (
	ModeWeek     DisplayMode = "week"
	ModeDay      DisplayMode = "day"
	ModeThreeDay DisplayMode = "3day"
)

// DefaultDisplayMode is used when no preference has been persisted.
const DefaultDisplayMode = ModeThreeDay

// DayCount returns the number of days visible in this mode.
func (m DisplayMode) DayCount() int {
	switch m {
	case ModeWeek:
		return 7
	case ModeDay:
		return 1
	case ModeThreeDay:
		return 3
	default:
		return DefaultDisplayMode.DayCount()
	}
}

// Next returns the mode that follows in the toggle cycle: week, day,
// three-day, back to week.
func (m DisplayMode) Next() DisplayMode {
	switch m {
	case ModeWeek:
		return ModeDay
	case ModeDay:
		return ModeThreeDay
	default:
		return ModeWeek
	}
}

// ParseDisplayMode parses a persisted mode preference.
func ParseDisplayMode(s string) (DisplayMode, error) {
	switch DisplayMode(s) {
	case ModeWeek, ModeDay, ModeThreeDay:
		return DisplayMode(s), nil
	default:
		return DefaultDisplayMode, fmt.Errorf("unknown display mode: %q", s)
	}
}
