package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Screens
	Today   key.Binding
	Profile key.Binding
	Metrics key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Back    key.Binding
	Enter   key.Binding

	// Today
	Dismiss      key.Binding
	QuickWorkout key.Binding

	// Profile menu
	History     key.Binding
	Exercises   key.Binding
	Photo       key.Binding
	Steps       key.Binding
	DemoWorkout key.Binding
	Logout      key.Binding

	// Metrics
	Add    key.Binding
	LogAll key.Binding

	// Global
	Theme key.Binding
	Quit  key.Binding
	Help  key.Binding

	// Confirmations
	Confirm key.Binding
	Deny    key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Screens
		Today: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "today"),
		),
		Profile: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "profile"),
		),
		Metrics: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "metrics"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next screen"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous screen"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "h", "left"),
			key.WithHelp("esc", "back"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter", "l", "right"),
			key.WithHelp("enter", "open"),
		),

		// Today
		Dismiss: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "dismiss alert"),
		),
		QuickWorkout: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "quick workout"),
		),

		// Profile menu
		History: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "activity history"),
		),
		Exercises: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "your exercises"),
		),
		Photo: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "progress photo"),
		),
		Steps: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "steps"),
		),
		DemoWorkout: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "add demo workout"),
		),
		Logout: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "logout"),
		),

		// Metrics
		Add: key.NewBinding(
			key.WithKeys("a", "+"),
			key.WithHelp("a", "add reading"),
		),
		LogAll: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "log all"),
		),

		// Global
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle theme"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),

		// Confirmations
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "yes"),
		),
		Deny: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "no"),
		),
	}
}

// Keys is the global keymap instance
var Keys = DefaultKeyMap()
