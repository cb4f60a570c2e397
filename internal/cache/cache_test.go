package cache

import (
	"testing"

	"github.com/julianstephens/timegrid/internal/models"
)

func strPtr(s string) *string {
	return &s
}

func record(dateString string, slotIDs ...string) models.DailyRecord {
	slots := make([]models.Slot, len(slotIDs))
	for i, id := range slotIDs {
		slots[i] = models.Slot{ID: id, DateString: dateString, DisplayOrder: i}
	}
	return models.DailyRecord{DateString: dateString, Slots: slots}
}

func TestGet_NeverFetchesAndPreservesOrder(t *testing.T) {
	c := New()
	c.Ingest([]models.DailyRecord{record("2025-01-14", "b")})

	got := c.Get([]string{"2025-01-13", "2025-01-14", "2025-01-15"})

	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
	if got[0] != nil || got[2] != nil {
		t.Error("absent dates must yield nil entries")
	}
	if got[1] == nil || got[1].DateString != "2025-01-14" {
		t.Errorf("resident date not returned: %+v", got[1])
	}
	if c.Len() != 1 {
		t.Errorf("Get must not create entries, cache has %d", c.Len())
	}
}

func TestIngest_LastWriteWins(t *testing.T) {
	c := New()
	c.Ingest([]models.DailyRecord{record("2025-01-13", "old-a", "old-b")})
	c.Ingest([]models.DailyRecord{record("2025-01-13", "new-a")})

	got, ok := c.Lookup("2025-01-13")
	if !ok {
		t.Fatal("record missing after ingest")
	}
	if len(got.Slots) != 1 || got.Slots[0].ID != "new-a" {
		t.Errorf("ingest must fully replace the entry, got %+v", got.Slots)
	}
}

func TestMutateSlot_UncachedDateIsNoOp(t *testing.T) {
	c := New()

	_, ok := c.MutateSlot("2025-01-13", "slot-1", func(s *models.Slot) {
		s.IsCompleted = true
	})

	if ok {
		t.Error("mutating an uncached date must report no-op")
	}
	if c.Len() != 0 {
		t.Error("cache must remain unchanged")
	}
}

func TestMutateSlot_UnknownSlotIsNoOp(t *testing.T) {
	c := New()
	c.Ingest([]models.DailyRecord{record("2025-01-13", "slot-1")})

	_, ok := c.MutateSlot("2025-01-13", "missing", func(s *models.Slot) {
		s.IsCompleted = true
	})

	if ok {
		t.Error("mutating an unknown slot must report no-op")
	}
	got, _ := c.Lookup("2025-01-13")
	if got.Slots[0].IsCompleted {
		t.Error("existing slots must be untouched")
	}
}

func TestMutateSlot_AppliesOptimistically(t *testing.T) {
	c := New()
	c.Ingest([]models.DailyRecord{record("2025-01-13", "slot-1", "slot-2")})

	updated, ok := c.MutateSlot("2025-01-13", "slot-2", func(s *models.Slot) {
		s.SubjectID = strPtr("s1")
		s.Minutes = 45
	})

	if !ok {
		t.Fatal("expected mutation to apply")
	}
	if updated.Slots[1].Minutes != 45 || updated.Slots[1].SubjectID == nil {
		t.Errorf("returned record missing mutation: %+v", updated.Slots[1])
	}
	// The change is immediately visible to readers.
	got, _ := c.Lookup("2025-01-13")
	if got.Slots[1].Minutes != 45 {
		t.Error("mutation not visible in cache")
	}
}

func TestReorderSlots_DenseRenumbering(t *testing.T) {
	c := New()
	c.Ingest([]models.DailyRecord{record("2025-01-13", "a", "b", "c", "d")})

	updated, ok := c.ReorderSlots("2025-01-13", []int{0}, 3)

	if !ok {
		t.Fatal("expected reorder to apply")
	}
	wantOrder := []string{"b", "c", "a", "d"}
	for i, want := range wantOrder {
		if updated.Slots[i].ID != want {
			t.Errorf("position %d = %s, want %s", i, updated.Slots[i].ID, want)
		}
		if updated.Slots[i].DisplayOrder != i {
			t.Errorf("position %d has display order %d, want %d", i, updated.Slots[i].DisplayOrder, i)
		}
	}
}

func TestReorderSlots_MoveToFront(t *testing.T) {
	c := New()
	c.Ingest([]models.DailyRecord{record("2025-01-13", "a", "b", "c")})

	updated, _ := c.ReorderSlots("2025-01-13", []int{2}, 0)

	wantOrder := []string{"c", "a", "b"}
	for i, want := range wantOrder {
		if updated.Slots[i].ID != want {
			t.Errorf("position %d = %s, want %s", i, updated.Slots[i].ID, want)
		}
	}
}

func TestReorderSlots_PreservesSlotIdentity(t *testing.T) {
	c := New()
	rec := models.DailyRecord{
		DateString: "2025-01-13",
		Slots: []models.Slot{
			{ID: "a", DisplayOrder: 0, SubjectID: strPtr("s1"), Minutes: 60, IsCompleted: true},
			{ID: "b", DisplayOrder: 1, Minutes: 30},
			{ID: "c", DisplayOrder: 2, SubjectID: strPtr("s2")},
		},
	}
	c.Ingest([]models.DailyRecord{rec})

	updated, _ := c.ReorderSlots("2025-01-13", []int{1}, 0)

	byID := make(map[string]models.Slot)
	for _, slot := range updated.Slots {
		byID[slot.ID] = slot
	}
	if a := byID["a"]; a.Minutes != 60 || !a.IsCompleted || a.SubjectID == nil {
		t.Errorf("slot a changed under reorder: %+v", a)
	}
	if b := byID["b"]; b.Minutes != 30 || b.IsCompleted {
		t.Errorf("slot b changed under reorder: %+v", b)
	}
	seen := make(map[int]bool)
	for _, slot := range updated.Slots {
		if seen[slot.DisplayOrder] {
			t.Errorf("duplicate display order %d", slot.DisplayOrder)
		}
		seen[slot.DisplayOrder] = true
	}
	for i := 0; i < len(updated.Slots); i++ {
		if !seen[i] {
			t.Errorf("display order %d missing, orders must be 0..N-1", i)
		}
	}
}

func TestReorderSlots_UncachedDateIsNoOp(t *testing.T) {
	c := New()

	_, ok := c.ReorderSlots("2025-01-13", []int{0}, 1)

	if ok {
		t.Error("reordering an uncached date must report no-op")
	}
}
