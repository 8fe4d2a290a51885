package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the application-level bindings. Everything else goes to the
// editor.
type KeyMap struct {
	Save           key.Binding
	Run            key.Binding
	ToggleReadOnly key.Binding
	Help           key.Binding
	Quit           key.Binding

	Confirm key.Binding
	Cancel  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Save:           key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Run:            key.NewBinding(key.WithKeys("f5"), key.WithHelp("f5", "save and open in browser")),
		ToggleReadOnly: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "toggle read-only")),
		Help:           key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "help")),
		Quit:           key.NewBinding(key.WithKeys("ctrl+q", "ctrl+c"), key.WithHelp("ctrl+q", "quit")),

		Confirm: key.NewBinding(key.WithKeys("y", "Y", "enter"), key.WithHelp("y", "confirm")),
		Cancel:  key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "cancel")),
	}
}
