package models

import (
	"sort"

	"github.com/google/uuid"
)

// Slot is one schedulable unit within a day, optionally assigned to a subject.
// Slots for a date are addressed by DisplayOrder; order values are unique per
// date and dense (0..N-1) after any reorder.
type Slot struct {
	ID           string  `json:"id"`
	DateString   string  `json:"date_string"` // YYYY-MM-DD format
	DisplayOrder int     `json:"display_order"`
	SubjectID    *string `json:"subject_id,omitempty"`
	Minutes      int     `json:"minutes"`
	IsCompleted  bool    `json:"is_completed"`
}

// NewSlot returns an unassigned slot for the given date and position.
func NewSlot(dateString string, displayOrder int) Slot {
	return Slot{
		ID:           uuid.NewString(),
		DateString:   dateString,
		DisplayOrder: displayOrder,
	}
}

// DailyRecord is the dense, UI-facing view of one date's slots.
// Identity is the date string.
type DailyRecord struct {
	DateString string `json:"date_string"` // YYYY-MM-DD format
	Slots      []Slot `json:"slots"`
}

// NewDailyRecord builds a record with slots sorted by display order.
func NewDailyRecord(dateString string, slots []Slot) DailyRecord {
	sorted := make([]Slot, len(slots))
	copy(sorted, slots)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DisplayOrder < sorted[j].DisplayOrder
	})
	return DailyRecord{DateString: dateString, Slots: sorted}
}

// CompletedCount returns the number of completed slots.
func (r DailyRecord) CompletedCount() int {
	count := 0
	for _, slot := range r.Slots {
		if slot.IsCompleted {
			count++
		}
	}
	return count
}
