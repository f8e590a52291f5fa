package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds every binding; Model decides which ones the help bar shows
// for the active tab
type KeyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Quit     key.Binding
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Enter    key.Binding
	Help     key.Binding
	Refresh  key.Binding
	Generate key.Binding
	Edit     key.Binding
	Next     key.Binding
}

func bind(helpKey, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(helpKey, desc))
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Tab:      bind("tab", "next tab", "tab"),
		ShiftTab: bind("shift+tab", "prev tab", "shift+tab"),
		Quit:     bind("q", "quit", "q", "ctrl+c"),
		Up:       bind("↑/k", "up", "up", "k"),
		Down:     bind("↓/j", "down", "down", "j"),
		Left:     bind("←/h", "prev month", "left", "h"),
		Right:    bind("→/l", "next month", "right", "l"),
		Enter:    bind("enter", "complete mission", "enter"),
		Help:     bind("?", "toggle help", "?"),
		Refresh:  bind("r", "refresh", "r"),
		Generate: bind("g", "generate missions", "g"),
		Edit:     bind("e", "edit day", "e"),
		Next:     bind("n", "next pick", "n"),
	}
}
