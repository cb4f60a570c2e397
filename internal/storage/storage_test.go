package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/julianstephens/timegrid/internal/models"
)

func strPtr(s string) *string {
	return &s
}

func newStores(t *testing.T) map[string]Provider {
	t.Helper()
	dir := t.TempDir()

	sqlite := NewSQLiteStore(filepath.Join(dir, "timegrid.db"))
	if err := sqlite.Init(); err != nil {
		t.Fatalf("sqlite Init failed: %v", err)
	}
	t.Cleanup(func() { sqlite.Close() })

	jsonStore := NewJSONStore(filepath.Join(dir, "timegrid.json"))
	if err := jsonStore.Init(); err != nil {
		t.Fatalf("json Init failed: %v", err)
	}

	return map[string]Provider{"sqlite": sqlite, "json": jsonStore}
}

func TestDayRoundTrip(t *testing.T) {
	ctx := context.Background()

	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			record := models.DailyRecord{
				DateString: "2025-01-13",
				Slots: []models.Slot{
					{ID: "a", DateString: "2025-01-13", DisplayOrder: 0, SubjectID: strPtr("s1"), Minutes: 60, IsCompleted: true},
					{ID: "b", DateString: "2025-01-13", DisplayOrder: 2, SubjectID: strPtr("s2"), Minutes: 30},
				},
			}

			if err := store.SaveDay(ctx, "user1", record); err != nil {
				t.Fatalf("SaveDay failed: %v", err)
			}

			got, ok, err := store.FetchDay(ctx, "user1", "2025-01-13")
			if err != nil {
				t.Fatalf("FetchDay failed: %v", err)
			}
			if !ok {
				t.Fatal("expected record to be present")
			}
			if len(got.Slots) != 2 {
				t.Fatalf("expected 2 slots, got %d", len(got.Slots))
			}
			if got.Slots[0].ID != "a" || got.Slots[0].Minutes != 60 || !got.Slots[0].IsCompleted {
				t.Errorf("slot a not round-tripped: %+v", got.Slots[0])
			}
			if got.Slots[1].ID != "b" || got.Slots[1].DisplayOrder != 2 {
				t.Errorf("slot b not round-tripped: %+v", got.Slots[1])
			}
		})
	}
}

func TestFetchDay_AbsentDate(t *testing.T) {
	ctx := context.Background()

	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := store.FetchDay(ctx, "user1", "2025-01-13")
			if err != nil {
				t.Fatalf("FetchDay failed: %v", err)
			}
			if ok {
				t.Error("unsaved date must read back as absent")
			}
		})
	}
}

func TestSaveDay_EmptySlotsReadsBackAbsent(t *testing.T) {
	ctx := context.Background()

	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			record := models.DailyRecord{DateString: "2025-01-13"}
			if err := store.SaveDay(ctx, "user1", record); err != nil {
				t.Fatalf("SaveDay failed: %v", err)
			}

			_, ok, err := store.FetchDay(ctx, "user1", "2025-01-13")
			if err != nil {
				t.Fatalf("FetchDay failed: %v", err)
			}
			if ok {
				t.Error("a day saved with an empty slot set must read back as absent")
			}
		})
	}
}

func TestFetchMany_SkipsAbsentDates(t *testing.T) {
	ctx := context.Background()

	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			record := models.DailyRecord{
				DateString: "2025-01-14",
				Slots:      []models.Slot{{ID: "a", DisplayOrder: 0, SubjectID: strPtr("s1")}},
			}
			if err := store.SaveDay(ctx, "user1", record); err != nil {
				t.Fatalf("SaveDay failed: %v", err)
			}

			got, err := store.FetchMany(ctx, "user1", []string{"2025-01-13", "2025-01-14", "2025-01-15"})
			if err != nil {
				t.Fatalf("FetchMany failed: %v", err)
			}
			if len(got) != 1 {
				t.Fatalf("expected 1 record, got %d", len(got))
			}
			if _, ok := got["2025-01-14"]; !ok {
				t.Error("saved date missing from batch result")
			}
		})
	}
}

func TestUsersAreIsolated(t *testing.T) {
	ctx := context.Background()

	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			record := models.DailyRecord{
				DateString: "2025-01-13",
				Slots:      []models.Slot{{ID: "a", DisplayOrder: 0, SubjectID: strPtr("s1")}},
			}
			if err := store.SaveDay(ctx, "user1", record); err != nil {
				t.Fatalf("SaveDay failed: %v", err)
			}

			_, ok, err := store.FetchDay(ctx, "user2", "2025-01-13")
			if err != nil {
				t.Fatalf("FetchDay failed: %v", err)
			}
			if ok {
				t.Error("records must be scoped per user")
			}
		})
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	ctx := context.Background()

	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := store.FetchSlotsPerDay(ctx, "user1")
			if err != nil {
				t.Fatalf("FetchSlotsPerDay failed: %v", err)
			}
			if ok {
				t.Error("slots per day should be absent before first save")
			}

			if err := store.SaveSlotsPerDay(ctx, "user1", 4); err != nil {
				t.Fatalf("SaveSlotsPerDay failed: %v", err)
			}
			count, ok, err := store.FetchSlotsPerDay(ctx, "user1")
			if err != nil || !ok {
				t.Fatalf("FetchSlotsPerDay after save: ok=%v err=%v", ok, err)
			}
			if count != 4 {
				t.Errorf("slots per day = %d, want 4", count)
			}

			if err := store.SaveDisplayMode(ctx, "user1", models.ModeWeek); err != nil {
				t.Fatalf("SaveDisplayMode failed: %v", err)
			}
			mode, ok, err := store.FetchDisplayMode(ctx, "user1")
			if err != nil || !ok {
				t.Fatalf("FetchDisplayMode after save: ok=%v err=%v", ok, err)
			}
			if mode != models.ModeWeek {
				t.Errorf("display mode = %s, want week", mode)
			}
		})
	}
}

func TestSubjectLifecycle(t *testing.T) {
	ctx := context.Background()

	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			english := models.Subject{ID: "s1", Name: "English", ColorIndex: 0}
			reading := models.Subject{ID: "s2", Name: "Reading", ColorIndex: 1}

			for _, subject := range []models.Subject{english, reading} {
				if err := store.SaveSubject(ctx, "user1", subject); err != nil {
					t.Fatalf("SaveSubject failed: %v", err)
				}
			}

			// Update keeps position and identity.
			english.Name = "English Conversation"
			if err := store.SaveSubject(ctx, "user1", english); err != nil {
				t.Fatalf("SaveSubject update failed: %v", err)
			}

			subjects, err := store.FetchSubjects(ctx, "user1")
			if err != nil {
				t.Fatalf("FetchSubjects failed: %v", err)
			}
			if len(subjects) != 2 {
				t.Fatalf("expected 2 subjects, got %d", len(subjects))
			}
			if subjects[0].Name != "English Conversation" {
				t.Errorf("subject update lost or reordered: %+v", subjects)
			}

			if err := store.DeleteSubject(ctx, "user1", "s1"); err != nil {
				t.Fatalf("DeleteSubject failed: %v", err)
			}
			subjects, err = store.FetchSubjects(ctx, "user1")
			if err != nil {
				t.Fatalf("FetchSubjects failed: %v", err)
			}
			if len(subjects) != 1 || subjects[0].ID != "s2" {
				t.Errorf("expected only s2 to remain, got %+v", subjects)
			}

			if err := store.DeleteSubject(ctx, "user1", "missing"); err == nil {
				t.Error("deleting an unknown subject should fail")
			}
		})
	}
}

func TestJSONStore_PersistsAcrossLoads(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "timegrid.json")

	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	record := models.DailyRecord{
		DateString: "2025-01-13",
		Slots:      []models.Slot{{ID: "a", DisplayOrder: 0, SubjectID: strPtr("s1"), Minutes: 25}},
	}
	if err := store.SaveDay(ctx, "user1", record); err != nil {
		t.Fatalf("SaveDay failed: %v", err)
	}

	reopened := NewJSONStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	got, ok, err := reopened.FetchDay(ctx, "user1", "2025-01-13")
	if err != nil || !ok {
		t.Fatalf("FetchDay after reload: ok=%v err=%v", ok, err)
	}
	if got.Slots[0].Minutes != 25 {
		t.Errorf("slot not persisted: %+v", got.Slots[0])
	}
}

func TestSQLiteStore_LoadRequiresInit(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "missing.db"))

	if err := store.Load(); err == nil {
		t.Error("Load on an uninitialized store should fail")
	}
}
