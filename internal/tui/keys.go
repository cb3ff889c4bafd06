package tui

import "charm.land/bubbles/v2/key"

type keyMap struct {
	Quit    key.Binding
	Dismiss key.Binding
	Back    key.Binding
	Help    key.Binding
	Info    key.Binding
}

func newKeyMap(modal bool) keyMap {
	km := keyMap{
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Dismiss: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Back:    key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Info:    key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "info")),
	}
	km.Dismiss.SetEnabled(modal)
	return km
}
