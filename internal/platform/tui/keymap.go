package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// Camera turn per key press, in radians.
const aimStep = 0.05

// TableKeyMap defines the key bindings at the table.
type TableKeyMap struct {
	Throw   key.Binding
	Start   key.Binding
	Style   key.Binding
	Collect key.Binding
	Reset   key.Binding
	Lose    key.Binding
	Shot    key.Binding
	Left    key.Binding
	Right   key.Binding
	Up      key.Binding
	Down    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k TableKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Throw, k.Style, k.Reset, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k TableKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Throw, k.Style, k.Collect},
		{k.Left, k.Right, k.Up, k.Down},
		{k.Reset, k.Lose, k.Shot},
		{k.Help, k.Quit},
	}
}

// DefaultTableKeyMap returns default key bindings.
func DefaultTableKeyMap() TableKeyMap {
	return TableKeyMap{
		Throw: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "throw"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start"),
		),
		Style: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "dice style"),
		),
		Collect: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "pick up dice"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Lose: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "lose tracking"),
		),
		Shot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("left/a", "aim left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("right/d", "aim right"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("up/w", "aim far"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("down/s", "aim near"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
