package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the terminal UI.
type KeyMap struct {
	Up   key.Binding
	Down key.Binding

	// Edit opens the selected text field or flips the selected toggle.
	Edit   key.Binding
	Toggle key.Binding
	Cancel key.Binding // Leave a field without saving, or abort a run.

	Execute      key.Binding
	FetchDevices key.Binding
	ClearLogs    key.Binding

	LogUp   key.Binding
	LogDown key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Edit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "edit"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "toggle"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Execute: key.NewBinding(
		key.WithKeys("x", "ctrl+r"),
		key.WithHelp("x", "execute"),
	),
	FetchDevices: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "fetch devices"),
	),
	ClearLogs: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "clear logs"),
	),
	LogUp: key.NewBinding(
		key.WithKeys("pgup", "ctrl+u"),
		key.WithHelp("pgup", "scroll logs"),
	),
	LogDown: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+d"),
		key.WithHelp("pgdn", "scroll logs"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
