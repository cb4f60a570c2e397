package dateutil

import (
	"testing"
	"time"

	"github.com/julianstephens/timegrid/internal/models"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", s, err)
	}
	return parsed
}

func TestMondayOf(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"monday stays", "2025-01-13", "2025-01-13"},
		{"wednesday", "2025-01-15", "2025-01-13"},
		{"sunday belongs to previous monday", "2025-01-19", "2025-01-13"},
		{"saturday", "2025-01-18", "2025-01-13"},
		{"year boundary", "2025-01-01", "2024-12-30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format(MondayOf(date(t, tt.input)))
			if got != tt.want {
				t.Errorf("MondayOf(%s) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestWeekDateStrings(t *testing.T) {
	// 2025-01-15 is a Wednesday
	got := WeekDateStrings(date(t, "2025-01-15"))

	want := []string{
		"2025-01-13", "2025-01-14", "2025-01-15", "2025-01-16",
		"2025-01-17", "2025-01-18", "2025-01-19",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d dates, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("week[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestVisibleRange(t *testing.T) {
	pivot := date(t, "2025-01-15") // Wednesday

	tests := []struct {
		mode models.DisplayMode
		want []string
	}{
		{models.ModeDay, []string{"2025-01-15"}},
		{models.ModeThreeDay, []string{"2025-01-14", "2025-01-15", "2025-01-16"}},
		{models.ModeWeek, []string{
			"2025-01-13", "2025-01-14", "2025-01-15", "2025-01-16",
			"2025-01-17", "2025-01-18", "2025-01-19",
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			got := VisibleRange(pivot, tt.mode)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d dates, got %d: %v", len(tt.want), len(got), got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("range[%d] = %s, want %s", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestPrefetchRange_SortedAndDeduplicated(t *testing.T) {
	pivot := date(t, "2025-01-13") // Monday

	got := PrefetchRange(pivot, models.ModeWeek)

	seen := make(map[string]bool)
	for i, key := range got {
		if seen[key] {
			t.Errorf("duplicate date key %s", key)
		}
		seen[key] = true
		if i > 0 && got[i-1] >= key {
			t.Errorf("not sorted ascending at %d: %s >= %s", i, got[i-1], key)
		}
	}
}

func TestPrefetchRange_WeekModeFromMonday(t *testing.T) {
	// Pivot Monday 2025-01-13: visible week is Jan 13-19, the flat margin
	// covers Jan 6-20, so the union spans Jan 6 through Jan 20.
	pivot := date(t, "2025-01-13")

	got := PrefetchRange(pivot, models.ModeWeek)

	if got[0] != "2025-01-06" {
		t.Errorf("first prefetch date = %s, want 2025-01-06", got[0])
	}
	if got[len(got)-1] != "2025-01-20" {
		t.Errorf("last prefetch date = %s, want 2025-01-20", got[len(got)-1])
	}
	if len(got) != 15 {
		t.Errorf("expected 15 dates, got %d: %v", len(got), got)
	}
}

func TestPrefetchRange_CoversVisibleAndWeek(t *testing.T) {
	// A Sunday pivot in day mode: the prefetch range must still include the
	// whole Monday-start week so a mode toggle needs no refetch.
	pivot := date(t, "2025-01-19")

	got := PrefetchRange(pivot, models.ModeDay)

	want := make(map[string]bool)
	for _, key := range VisibleRange(pivot, models.ModeDay) {
		want[key] = true
	}
	for _, key := range WeekDateStrings(pivot) {
		want[key] = true
	}
	have := make(map[string]bool)
	for _, key := range got {
		have[key] = true
	}
	for key := range want {
		if !have[key] {
			t.Errorf("prefetch range missing %s", key)
		}
	}
}

func TestLastNDays(t *testing.T) {
	got := LastNDays(3, date(t, "2025-01-15"))

	want := []string{"2025-01-13", "2025-01-14", "2025-01-15"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("LastNDays[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}
