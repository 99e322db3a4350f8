package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/sokinpui/threeside.go/internal/partial"
)

type keyMap struct {
	Next     key.Binding
	Prev     key.Binding
	Down     key.Binding
	Up       key.Binding
	PageDown key.Binding
	PageUp   key.Binding
	Partial  map[partial.Mode]key.Binding
	Close    key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	km := keyMap{
		Next:     key.NewBinding(key.WithKeys("tab", "l", "right"), key.WithHelp("tab", "next side")),
		Prev:     key.NewBinding(key.WithKeys("shift+tab", "h", "left"), key.WithHelp("shift+tab", "prev side")),
		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/k", "scroll")),
		Up:       key.NewBinding(key.WithKeys("k", "up")),
		PageDown: key.NewBinding(key.WithKeys("ctrl+d", "pgdown")),
		PageUp:   key.NewBinding(key.WithKeys("ctrl+u", "pgup")),
		Partial:  make(map[partial.Mode]key.Binding),
		Close:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
	for _, a := range partial.Actions() {
		km.Partial[a.Mode] = key.NewBinding(key.WithKeys(a.Key), key.WithHelp(a.Key, a.Icon.Glyph()+" "+a.Label))
	}
	return km
}
