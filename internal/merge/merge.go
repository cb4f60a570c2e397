// Package merge reconciles sparse persisted slot records against the
// configured slots-per-day count. Storage keeps only subject-assigned slots;
// the UI always sees a dense record with exactly slotsPerDay entries.
package merge

import "github.com/julianstephens/timegrid/internal/models"

// Merge produces the dense daily record for a date from a possibly-absent or
// sparse persisted record. Persisted display orders are taken as-is, not
// re-indexed: positions without a persisted slot are filled with fresh
// unassigned slots, and persisted slots at orders >= slotsPerDay are dropped
// from the view. Dropped slots are not deleted from storage until the date is
// next saved.
func Merge(dateString string, saved *models.DailyRecord, slotsPerDay int) models.DailyRecord {
	byOrder := make(map[int]models.Slot)
	if saved != nil {
		for _, slot := range saved.Slots {
			byOrder[slot.DisplayOrder] = slot
		}
	}

	slots := make([]models.Slot, 0, slotsPerDay)
	for order := 0; order < slotsPerDay; order++ {
		if slot, ok := byOrder[order]; ok {
			slots = append(slots, slot)
		} else {
			slots = append(slots, models.NewSlot(dateString, order))
		}
	}

	return models.DailyRecord{DateString: dateString, Slots: slots}
}

// FilterForSave strips unassigned slots before persistence. A day whose slots
// are all unassigned saves as an empty slot set, which reads back as absent.
func FilterForSave(record models.DailyRecord) models.DailyRecord {
	kept := make([]models.Slot, 0, len(record.Slots))
	for _, slot := range record.Slots {
		if slot.SubjectID != nil {
			kept = append(kept, slot)
		}
	}
	return models.DailyRecord{DateString: record.DateString, Slots: kept}
}
