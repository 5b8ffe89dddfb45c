package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keyboard shortcuts of the home screen.
type KeyMap struct {
	Check key.Binding
	Theme key.Binding
	Quit  key.Binding
}

// DefaultKeyMap returns the default home screen bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Check: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "Check for updates"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "Next theme"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),
	}
}

// dialogKeyMap defines the keys handled by modal dialogs.
// Confirm dialogs use Yes/No, error dialogs use Dismiss.
type dialogKeyMap struct {
	Yes     key.Binding
	No      key.Binding
	Dismiss key.Binding
	Copy    key.Binding
}

func defaultDialogKeys() dialogKeyMap {
	return dialogKeyMap{
		Yes: key.NewBinding(
			key.WithKeys("y", "Y", "enter"),
			key.WithHelp("y/enter", "Update now"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "N", "esc", "q", "ctrl+c"),
			key.WithHelp("n/esc", "Later"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("enter", "esc", "q", "ctrl+c"),
			key.WithHelp("enter/esc", "Close"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Copy"),
		),
	}
}
