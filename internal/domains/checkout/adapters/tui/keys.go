package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	More     key.Binding
	Less     key.Binding
	Delete   key.Binding
	Delivery key.Binding
	Render   key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		More:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "qty +1")),
		Less:     key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "qty -1")),
		Delete:   key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "delete")),
		Delivery: key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "delivery")),
		Render:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "re-render")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.More, k.Less, k.Delete, k.Delivery, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.More, k.Less, k.Delete, k.Delivery},
		{k.Render, k.Quit},
	}
}
