// Package tui renders the interactive timetable grid. It drives the sync
// coordinator for navigation, mode toggling, and slot edits, and shows the
// review aggregates on a separate tab.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/timegrid/internal/cache"
	"github.com/julianstephens/timegrid/internal/models"
	"github.com/julianstephens/timegrid/internal/stats"
	"github.com/julianstephens/timegrid/internal/storage"
	"github.com/julianstephens/timegrid/internal/syncer"
)

type SessionState int

const (
	StateGrid SessionState = iota
	StateData
	StateSubjectForm
	StateMinutesForm
)

// unassignedOption is the huh select value standing in for "no subject".
const unassignedOption = ""

type Model struct {
	store storage.Provider
	co    *syncer.Coordinator
	user  string

	state    SessionState
	keys     KeyMap
	help     help.Model
	subjects []models.Subject

	// Cursor position within the visible grid.
	dayIdx  int
	slotIdx int

	form        *huh.Form
	formDate    string
	formSlotID  string
	formSubject string
	formMinutes string

	summary  *stats.Summary
	quitting bool
	width    int
	height   int
}

// NewModel builds the model and performs the initial period load. A failed
// initial load is not fatal; the failure lands on the coordinator's error
// slot and the grid renders empty days until a later fetch succeeds.
func NewModel(store storage.Provider, user string) (Model, error) {
	co := syncer.New(store, cache.New(), user, syncer.WithPivot(time.Now()))

	// A failed initial load lands on the coordinator's error slot and is
	// rendered there; the grid stays usable with empty days.
	_ = co.Start(context.Background())

	subjects, err := store.FetchSubjects(context.Background(), user)
	if err != nil {
		co.Close()
		return Model{}, err
	}

	return Model{
		store:    store,
		co:       co,
		user:     user,
		state:    StateGrid,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		subjects: subjects,
	}, nil
}

// Shutdown drains pending persists and stops the coordinator.
func (m Model) Shutdown() {
	m.co.Close()
}

func (m Model) Init() tea.Cmd {
	return nil
}

// selectedSlot returns the slot under the cursor, or false when the cursor
// is out of range for the current grid.
func (m Model) selectedSlot() (models.DailyRecord, models.Slot, bool) {
	records := m.co.VisibleRecords()
	if m.dayIdx < 0 || m.dayIdx >= len(records) {
		return models.DailyRecord{}, models.Slot{}, false
	}
	record := records[m.dayIdx]
	if m.slotIdx < 0 || m.slotIdx >= len(record.Slots) {
		return models.DailyRecord{}, models.Slot{}, false
	}
	return record, record.Slots[m.slotIdx], true
}

// clampCursor keeps the cursor inside the visible grid after mode or
// slot-count changes shrink it.
func (m *Model) clampCursor() {
	dayCount := m.co.Mode().DayCount()
	if m.dayIdx >= dayCount {
		m.dayIdx = dayCount - 1
	}
	if m.dayIdx < 0 {
		m.dayIdx = 0
	}
	slotCount := m.co.SlotsPerDay()
	if m.slotIdx >= slotCount {
		m.slotIdx = slotCount - 1
	}
	if m.slotIdx < 0 {
		m.slotIdx = 0
	}
}
