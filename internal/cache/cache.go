// Package cache holds the in-memory timetable state the UI reads
// synchronously. It is the single authoritative mapping from date key to
// daily record: reads never trigger fetches, ingests replace whole entries
// last-write-wins, and mutations apply optimistically before any persist.
package cache

import (
	"sort"
	"sync"

	"github.com/julianstephens/timegrid/internal/models"
)

// Cache maps date strings to resident daily records. Safe for concurrent
// use; the mutex guards only map operations and is never held across I/O.
type Cache struct {
	mu      sync.Mutex
	records map[string]models.DailyRecord
}

func New() *Cache {
	return &Cache{
		records: make(map[string]models.DailyRecord),
	}
}

// Lookup returns the resident record for a date, if any.
func (c *Cache) Lookup(dateString string) (models.DailyRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	record, ok := c.records[dateString]
	return record, ok
}

// Get returns the resident records for the given dates in order. Absent
// dates yield nil entries; Get never triggers a fetch.
func (c *Cache) Get(dateStrings []string) []*models.DailyRecord {
	c.mu.Lock()
	defer c.mu.Unlock()

	results := make([]*models.DailyRecord, len(dateStrings))
	for i, dateString := range dateStrings {
		if record, ok := c.records[dateString]; ok {
			results[i] = &record
		}
	}
	return results
}

// MissingDates returns the subset of dateStrings not resident in cache,
// preserving order.
func (c *Cache) MissingDates(dateStrings []string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	var missing []string
	for _, dateString := range dateStrings {
		if _, ok := c.records[dateString]; !ok {
			missing = append(missing, dateString)
		}
	}
	return missing
}

// Ingest upserts records by date key. Each record fully replaces any
// resident entry for its date; there is no slot-level merging between old
// and new entries, so ingest is idempotent and last-write-wins.
func (c *Cache) Ingest(records []models.DailyRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, record := range records {
		c.records[record.DateString] = record
	}
}

// MutateSlot applies update to one slot and replaces the date's entry. The
// change is visible to readers immediately; the caller is responsible for
// scheduling a persist of the returned record. A missing date or slot is a
// silent no-op, reported by the second return value.
func (c *Cache) MutateSlot(dateString, slotID string, update func(*models.Slot)) (models.DailyRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	record, ok := c.records[dateString]
	if !ok {
		return models.DailyRecord{}, false
	}

	index := -1
	for i, slot := range record.Slots {
		if slot.ID == slotID {
			index = i
			break
		}
	}
	if index < 0 {
		return models.DailyRecord{}, false
	}

	slots := make([]models.Slot, len(record.Slots))
	copy(slots, record.Slots)
	update(&slots[index])

	updated := models.DailyRecord{DateString: dateString, Slots: slots}
	c.records[dateString] = updated
	return updated, true
}

// ReorderSlots moves the slots at fromIndices to the destination position,
// then renumbers every slot for that date to a dense 0..N-1 display order.
// This is the only place display orders are renumbered. The destination is
// interpreted against the pre-removal ordering. A missing date is a silent
// no-op.
func (c *Cache) ReorderSlots(dateString string, fromIndices []int, toIndex int) (models.DailyRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	record, ok := c.records[dateString]
	if !ok {
		return models.DailyRecord{}, false
	}

	from := make([]int, 0, len(fromIndices))
	for _, i := range fromIndices {
		if i >= 0 && i < len(record.Slots) {
			from = append(from, i)
		}
	}
	sort.Ints(from)

	moving := make(map[int]bool, len(from))
	moved := make([]models.Slot, 0, len(from))
	for _, i := range from {
		if moving[i] {
			continue
		}
		moving[i] = true
		moved = append(moved, record.Slots[i])
	}

	remaining := make([]models.Slot, 0, len(record.Slots)-len(moved))
	insertAt := 0
	for i, slot := range record.Slots {
		if moving[i] {
			continue
		}
		if i < toIndex {
			insertAt++
		}
		remaining = append(remaining, slot)
	}
	if insertAt > len(remaining) {
		insertAt = len(remaining)
	}

	slots := make([]models.Slot, 0, len(record.Slots))
	slots = append(slots, remaining[:insertAt]...)
	slots = append(slots, moved...)
	slots = append(slots, remaining[insertAt:]...)
	for i := range slots {
		slots[i].DisplayOrder = i
	}

	updated := models.DailyRecord{DateString: dateString, Slots: slots}
	c.records[dateString] = updated
	return updated, true
}

// Len returns the number of resident dates.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.records)
}
