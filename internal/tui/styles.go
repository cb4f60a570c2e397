package tui

import "github.com/charmbracelet/lipgloss"

// subjectPalette maps Subject.ColorIndex to terminal colors. Indexes wrap.
var subjectPalette = []lipgloss.Color{
	lipgloss.Color("203"), // red
	lipgloss.Color("214"), // orange
	lipgloss.Color("221"), // yellow
	lipgloss.Color("114"), // green
	lipgloss.Color("75"),  // blue
	lipgloss.Color("176"), // purple
}

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true).
			Padding(0, 1)

	todayHeaderStyle = headerStyle.
				Foreground(lipgloss.Color("205"))

	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	selectedColumnStyle = columnStyle.
				BorderForeground(lipgloss.Color("205"))

	slotStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	selectedSlotStyle = slotStyle.
				Background(lipgloss.Color("236")).
				Bold(true)

	unassignedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	doneMarkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

func subjectColor(colorIndex int) lipgloss.Color {
	if colorIndex < 0 {
		colorIndex = 0
	}
	return subjectPalette[colorIndex%len(subjectPalette)]
}
