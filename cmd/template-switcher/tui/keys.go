package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines keybindings for the switcher.
type keyMap struct {
	Toggle     key.Binding
	Up         key.Binding
	Down       key.Binding
	Select     key.Binding
	New        key.Binding
	Close      key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Help       key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	Toggle:     key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "switch template")),
	Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Select:     key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")),
	New:        key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new template")),
	Close:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	ScrollUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "scroll preview")),
	ScrollDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "scroll preview")),
	Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.New, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Up, k.Down, k.Select},
		{k.New, k.Close, k.ScrollUp, k.ScrollDown},
		{k.Help, k.Quit},
	}
}
