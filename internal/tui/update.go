package tui

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/timegrid/internal/models"
	"github.com/julianstephens/timegrid/internal/stats"
	"github.com/julianstephens/timegrid/internal/syncer"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	ctx := context.Background()

	switch m.state {
	case StateSubjectForm, StateMinutesForm:
		return m.updateForm(ctx, msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll

		case key.Matches(msg, m.keys.ClearError):
			m.co.ClearErr()

		case key.Matches(msg, m.keys.Data):
			summary, err := stats.Load(ctx, m.store, m.user, m.co.Pivot())
			if err != nil {
				m.co.SetErr(err)
				return m, nil
			}
			m.summary = &summary
			m.state = StateData

		case key.Matches(msg, m.keys.Grid):
			m.state = StateGrid
		}

		if m.state == StateGrid {
			return m.updateGrid(ctx, msg)
		}
	}

	return m, nil
}

func (m Model) updateGrid(ctx context.Context, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Prev):
		m.co.Navigate(ctx, syncer.Backward)
		m.clampCursor()

	case key.Matches(msg, m.keys.Next):
		m.co.Navigate(ctx, syncer.Forward)
		m.clampCursor()

	case key.Matches(msg, m.keys.Today):
		m.co.GoToToday(ctx)
		m.clampCursor()

	case key.Matches(msg, m.keys.Mode):
		m.co.ToggleMode(ctx)
		m.clampCursor()

	case key.Matches(msg, m.keys.Up):
		if m.slotIdx > 0 {
			m.slotIdx--
		}

	case key.Matches(msg, m.keys.Down):
		if m.slotIdx < m.co.SlotsPerDay()-1 {
			m.slotIdx++
		}

	case key.Matches(msg, m.keys.Left):
		if m.dayIdx > 0 {
			m.dayIdx--
		}

	case key.Matches(msg, m.keys.Right):
		if m.dayIdx < m.co.Mode().DayCount()-1 {
			m.dayIdx++
		}

	case key.Matches(msg, m.keys.Toggle):
		if record, slot, ok := m.selectedSlot(); ok {
			m.co.ToggleCompletion(ctx, record.DateString, slot.ID)
		}

	case key.Matches(msg, m.keys.MoveUp):
		if record, _, ok := m.selectedSlot(); ok && m.slotIdx > 0 {
			m.co.ReorderSlots(ctx, record.DateString, []int{m.slotIdx}, m.slotIdx-1)
			m.slotIdx--
		}

	case key.Matches(msg, m.keys.MoveDown):
		if record, _, ok := m.selectedSlot(); ok && m.slotIdx < len(record.Slots)-1 {
			// Target is expressed in pre-removal coordinates, so moving one
			// position down means inserting past the next element.
			m.co.ReorderSlots(ctx, record.DateString, []int{m.slotIdx}, m.slotIdx+2)
			m.slotIdx++
		}

	case key.Matches(msg, m.keys.Subject):
		if record, slot, ok := m.selectedSlot(); ok {
			m.openSubjectForm(record.DateString, slot)
			m.state = StateSubjectForm
			return m, m.form.Init()
		}

	case key.Matches(msg, m.keys.Minutes):
		if record, slot, ok := m.selectedSlot(); ok {
			m.openMinutesForm(record.DateString, slot)
			m.state = StateMinutesForm
			return m, m.form.Init()
		}
	}

	return m, nil
}

func (m Model) updateForm(ctx context.Context, msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = StateGrid
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.applyForm(ctx)
		m.state = StateGrid
	case huh.StateAborted:
		m.state = StateGrid
	}

	return m, cmd
}

func (m *Model) openSubjectForm(dateString string, slot models.Slot) {
	m.formDate = dateString
	m.formSlotID = slot.ID
	m.formSubject = unassignedOption
	if slot.SubjectID != nil {
		m.formSubject = *slot.SubjectID
	}

	options := make([]huh.Option[string], 0, len(m.subjects)+1)
	options = append(options, huh.NewOption("unassigned", unassignedOption))
	for _, s := range m.subjects {
		options = append(options, huh.NewOption(s.Name, s.ID))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Subject").
				Options(options...).
				Value(&m.formSubject),
		),
	)
}

func (m *Model) openMinutesForm(dateString string, slot models.Slot) {
	m.formDate = dateString
	m.formSlotID = slot.ID
	m.formMinutes = strconv.Itoa(slot.Minutes)

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Minutes").
				Value(&m.formMinutes).
				Validate(func(s string) error {
					_, err := strconv.Atoi(strings.TrimSpace(s))
					return err
				}),
		),
	)
}

func (m *Model) applyForm(ctx context.Context) {
	switch m.state {
	case StateSubjectForm:
		var subjectID *string
		if m.formSubject != unassignedOption {
			id := m.formSubject
			subjectID = &id
		}
		m.co.SetSubject(ctx, m.formDate, m.formSlotID, subjectID)

	case StateMinutesForm:
		if minutes, err := strconv.Atoi(strings.TrimSpace(m.formMinutes)); err == nil {
			m.co.SetMinutes(ctx, m.formDate, m.formSlotID, minutes)
		}
	}
}
