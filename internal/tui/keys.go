package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit       key.Binding
	Help       key.Binding
	Prev       key.Binding
	Next       key.Binding
	Today      key.Binding
	Mode       key.Binding
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Toggle     key.Binding
	Subject    key.Binding
	Minutes    key.Binding
	MoveUp     key.Binding
	MoveDown   key.Binding
	Data       key.Binding
	Grid       key.Binding
	ClearError key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Mode, k.Toggle, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Today, k.Mode},
		{k.Up, k.Down, k.Left, k.Right},
		{k.Toggle, k.Subject, k.Minutes, k.MoveUp, k.MoveDown},
		{k.Data, k.Grid, k.ClearError, k.Help, k.Quit},
	}
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Prev: key.NewBinding(
			key.WithKeys("H", "pgup"),
			key.WithHelp("H", "previous period"),
		),
		Next: key.NewBinding(
			key.WithKeys("L", "pgdown"),
			key.WithHelp("L", "next period"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today"),
		),
		Mode: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "toggle view mode"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "slot up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "slot down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous day"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next day"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle done"),
		),
		Subject: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "assign subject"),
		),
		Minutes: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "set minutes"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "move slot up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "move slot down"),
		),
		Data: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "data tab"),
		),
		Grid: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "timetable tab"),
		),
		ClearError: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "dismiss error"),
		),
	}
}
