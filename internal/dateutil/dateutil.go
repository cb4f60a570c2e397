// Package dateutil provides date-key arithmetic for the timetable: week
// computation (weeks start Monday), visible-range and prefetch-range windows,
// and conversion between time.Time and YYYY-MM-DD date strings.
package dateutil

import (
	"sort"
	"time"

	"github.com/julianstephens/timegrid/internal/models"
)

// Layout is the date-key format used throughout the app. Lexical order on
// date strings in this layout matches chronological order.
const Layout = "2006-01-02"

// PrefetchMarginDays is the flat margin eagerly warmed around the pivot.
const PrefetchMarginDays = 7

// Format converts a time to its date-key string.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Parse converts a date-key string back to a time.
func Parse(s string) (time.Time, error) {
	return time.Parse(Layout, s)
}

// Today returns today's date-key string.
func Today() string {
	return Format(time.Now())
}

// MondayOf returns the Monday of the week containing t.
func MondayOf(t time.Time) time.Time {
	// time.Weekday: 0=Sunday .. 6=Saturday
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

// WeekDates returns the Monday-start week containing t as seven dates.
func WeekDates(t time.Time) []time.Time {
	monday := MondayOf(t)
	dates := make([]time.Time, 7)
	for i := range dates {
		dates[i] = monday.AddDate(0, 0, i)
	}
	return dates
}

// WeekDateStrings returns the Monday-start week containing t as date keys.
func WeekDateStrings(t time.Time) []string {
	week := WeekDates(t)
	keys := make([]string, len(week))
	for i, d := range week {
		keys[i] = Format(d)
	}
	return keys
}

// DateStrings returns count consecutive date keys starting at base.
func DateStrings(base time.Time, count int) []string {
	keys := make([]string, 0, count)
	for i := 0; i < count; i++ {
		keys = append(keys, Format(base.AddDate(0, 0, i)))
	}
	return keys
}

// LastNDays returns the count date keys ending at base, ascending.
func LastNDays(count int, base time.Time) []string {
	keys := make([]string, 0, count)
	for i := count - 1; i >= 0; i-- {
		keys = append(keys, Format(base.AddDate(0, 0, -i)))
	}
	return keys
}

// VisibleRange computes the date keys currently in view for a pivot date.
// Week mode shows the Monday-start week containing the pivot, three-day mode
// the window centered on the pivot, day mode the pivot alone.
func VisibleRange(pivot time.Time, mode models.DisplayMode) []string {
	switch mode {
	case models.ModeWeek:
		return WeekDateStrings(pivot)
	case models.ModeThreeDay:
		return DateStrings(pivot.AddDate(0, 0, -1), 3)
	default:
		return []string{Format(pivot)}
	}
}

// PrefetchRange computes the date keys that should be resident in cache for a
// pivot date: the visible range, the full week containing the pivot, and a
// flat margin of PrefetchMarginDays either side of the pivot. Covers mode
// switches without a refetch and smooths paging latency. Result is
// deduplicated and sorted ascending.
func PrefetchRange(pivot time.Time, mode models.DisplayMode) []string {
	seen := make(map[string]struct{})
	for _, key := range VisibleRange(pivot, mode) {
		seen[key] = struct{}{}
	}
	for _, key := range WeekDateStrings(pivot) {
		seen[key] = struct{}{}
	}
	for _, key := range DateStrings(pivot.AddDate(0, 0, -PrefetchMarginDays), 2*PrefetchMarginDays+1) {
		seen[key] = struct{}{}
	}

	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
