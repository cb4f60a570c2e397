package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/timegrid/internal/dateutil"
	"github.com/julianstephens/timegrid/internal/models"
	"github.com/julianstephens/timegrid/internal/stats"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case StateSubjectForm, StateMinutesForm:
		return m.form.View()
	case StateData:
		return m.dataView()
	default:
		return m.gridView()
	}
}

func (m Model) gridView() string {
	records := m.co.VisibleRecords()
	today := time.Now().Format(dateutil.Layout)

	columns := make([]string, 0, len(records))
	for dayIdx, record := range records {
		columns = append(columns, m.dayColumn(record, dayIdx, record.DateString == today))
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(m.periodLabel()))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, columns...))
	b.WriteString("\n")

	if err := m.co.Err(); err != nil {
		b.WriteString(errorStyle.Render("✗ " + err.Error()))
		b.WriteString("  ")
		b.WriteString(statusStyle.Render("(esc to dismiss)"))
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) dayColumn(record models.DailyRecord, dayIdx int, isToday bool) string {
	header := headerStyle
	if isToday {
		header = todayHeaderStyle
	}

	lines := []string{header.Render(dayLabel(record.DateString))}
	for slotIdx, slot := range record.Slots {
		lines = append(lines, m.slotLine(slot, dayIdx == m.dayIdx && slotIdx == m.slotIdx))
	}

	column := columnStyle
	if dayIdx == m.dayIdx {
		column = selectedColumnStyle
	}
	return column.Render(strings.Join(lines, "\n"))
}

func (m Model) slotLine(slot models.Slot, selected bool) string {
	mark := " "
	if slot.IsCompleted {
		mark = doneMarkStyle.Render("✓")
	}

	name := models.SubjectName(m.subjects, slot.SubjectID)
	var label string
	if colorIndex, ok := models.SubjectColorIndex(m.subjects, slot.SubjectID); ok {
		label = lipgloss.NewStyle().Foreground(subjectColor(colorIndex)).Render(name)
	} else {
		label = unassignedStyle.Render(name)
	}

	line := fmt.Sprintf("%s %-14s %3dm", mark, label, slot.Minutes)
	if selected {
		return selectedSlotStyle.Render(line)
	}
	return slotStyle.Render(line)
}

func (m Model) periodLabel() string {
	dates := dateutil.VisibleRange(m.co.Pivot(), m.co.Mode())
	if len(dates) == 0 {
		return ""
	}
	label := dates[0]
	if len(dates) > 1 {
		label += " – " + dates[len(dates)-1]
	}
	return fmt.Sprintf("%s  [%s, %d slots/day]", label, m.co.Mode(), m.co.SlotsPerDay())
}

func (m Model) dataView() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Review"))
	b.WriteString("\n\n")

	if m.summary == nil {
		b.WriteString(statusStyle.Render("no data loaded"))
		b.WriteString("\n")
		b.WriteString(m.help.View(m.keys))
		return b.String()
	}

	b.WriteString(contributionGrid(m.summary.Days))
	b.WriteString("\n")

	if len(m.summary.Subjects) == 0 {
		b.WriteString(statusStyle.Render("No completed time recorded yet."))
		b.WriteString("\n")
	} else {
		for _, subject := range m.summary.Subjects {
			name := lipgloss.NewStyle().
				Foreground(subjectColor(subject.ColorIndex)).
				Render(fmt.Sprintf("%-20s", subject.Name))
			b.WriteString(fmt.Sprintf("  %s %3dh %02dm\n",
				name, subject.TotalMinutes/60, subject.TotalMinutes%60))
		}
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// contributionGrid renders the history seven days per row, weeks as rows,
// oldest first.
func contributionGrid(days []stats.DayData) string {
	var b strings.Builder
	for i, day := range days {
		if i%7 == 0 {
			b.WriteString("  ")
		}
		b.WriteString(contributionCell(day.CompletedCount, day.TotalSlots))
		if i%7 == 6 {
			b.WriteString("\n")
		}
	}
	if len(days)%7 != 0 {
		b.WriteString("\n")
	}
	return b.String()
}

func contributionCell(completed, total int) string {
	if completed <= 0 {
		return statusStyle.Render("░░")
	}
	level := "▒▒"
	if total > 0 && completed*2 >= total {
		level = "▓▓"
	}
	if total > 0 && completed >= total {
		level = "██"
	}
	return doneMarkStyle.Render(level)
}

func dayLabel(dateString string) string {
	t, err := time.Parse(dateutil.Layout, dateString)
	if err != nil {
		return dateString
	}
	return fmt.Sprintf("%s %s", t.Format("Mon"), t.Format("Jan 2"))
}
