package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the application-level key bindings.
// Grid navigation keys live in components.GridKeyMap.
type KeyMap struct {
	Quit            key.Binding
	Help            key.Binding
	Escape          key.Binding
	Search          key.Binding
	Accept          key.Binding
	SwitchScreen    key.Binding
	Toggle          key.Binding
	Refresh         key.Binding
	ToggleInspector key.Binding
	ClearShortlist  key.Binding
	Open            key.Binding

	// Confirmations
	Confirm key.Binding
	Deny    key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "leave input/clear"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search/filter"),
		),
		Accept: key.NewBinding(
			key.WithKeys("enter", "down"),
			key.WithHelp("enter", "back to grid"),
		),
		SwitchScreen: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "browse/shortlist"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "s"),
			key.WithHelp("space", "shortlist"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		ToggleInspector: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "toggle inspector"),
		),
		ClearShortlist: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "clear shortlist"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open in browser"),
		),

		// Confirmations
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "confirm"),
		),
		Deny: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n/esc", "cancel"),
		),
	}
}

// Keys is the global key bindings instance
var Keys = DefaultKeyMap()
