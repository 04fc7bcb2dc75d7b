package app

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Digits    key.Binding
	Decimal   key.Binding
	Add       key.Binding
	Subtract  key.Binding
	Multiply  key.Binding
	Divide    key.Binding
	Equals    key.Binding
	Clear     key.Binding
	Light     key.Binding
	Dark      key.Binding
	Vibration key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Digits:    key.NewBinding(key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("0-9", "digit")),
		Decimal:   key.NewBinding(key.WithKeys(".", ","), key.WithHelp(".", "point")),
		Add:       key.NewBinding(key.WithKeys("+"), key.WithHelp("+", "add")),
		Subtract:  key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "subtract")),
		Multiply:  key.NewBinding(key.WithKeys("*", "x"), key.WithHelp("*", "multiply")),
		Divide:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "divide")),
		Equals:    key.NewBinding(key.WithKeys("=", "enter"), key.WithHelp("=/enter", "equals")),
		Clear:     key.NewBinding(key.WithKeys("c", "esc", "delete"), key.WithHelp("c/esc", "clear")),
		Light:     key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "light theme")),
		Dark:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dark theme")),
		Vibration: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "vibration")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Equals, k.Clear, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Digits, k.Decimal, k.Equals, k.Clear},
		{k.Add, k.Subtract, k.Multiply, k.Divide},
		{k.Light, k.Dark, k.Vibration},
		{k.Help, k.Quit},
	}
}
