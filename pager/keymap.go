package pager

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the pager key bindings.
type KeyMap struct {
	Down, Up             key.Binding
	ScrollDown, ScrollUp key.Binding

	HalfPageDown, HalfPageUp key.Binding
	PageDown, PageUp         key.Binding

	Top, Bottom key.Binding

	Quit key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Down: key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		Up:   key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),

		ScrollDown: key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "scroll down")),
		ScrollUp:   key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "scroll up")),

		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "half page down")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "half page up")),
		PageDown:     key.NewBinding(key.WithKeys("ctrl+f", "pgdown", " "), key.WithHelp("ctrl+f/space", "page down")),
		PageUp:       key.NewBinding(key.WithKeys("ctrl+b", "pgup"), key.WithHelp("ctrl+b", "page up")),

		Top:    key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom: key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),

		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}
