package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts
type KeyMap struct {
	Mode     key.Binding
	Vertex   key.Binding
	Edge     key.Binding
	Machine  key.Binding
	Optimize key.Binding
	Play     key.Binding
	Program  key.Binding
	Reload   key.Binding
	Example1 key.Binding
	Example2 key.Binding
	Example3 key.Binding
	Clear    key.Binding
	Delete   key.Binding
	Back     key.Binding
	Help     key.Binding
	Quit     key.Binding

	Yes key.Binding
	No  key.Binding
}

var DefaultKeyMap = KeyMap{
	Mode: key.NewBinding(
		key.WithKeys("tab", "m"),
		key.WithHelp("tab", "mode"),
	),
	Vertex: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add point"),
	),
	Edge: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "add edge"),
	),
	Machine: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "machine"),
	),
	Optimize: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "optimize"),
	),
	Play: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "play/stop"),
	),
	Program: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "program"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Example1: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "rectangle"),
	),
	Example2: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "star"),
	),
	Example3: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "grid"),
	),
	Clear: key.NewBinding(
		key.WithKeys("C"),
		key.WithHelp("C", "clear all"),
	),
	Delete: key.NewBinding(
		key.WithKeys("delete", "backspace"),
		key.WithHelp("del", "delete selected"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "q"),
		key.WithHelp("q", "quit"),
	),
	Yes: key.NewBinding(
		key.WithKeys("y", "enter"),
		key.WithHelp("y", "confirm"),
	),
	No: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n", "cancel"),
	),
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Mode, k.Optimize, k.Play, k.Delete, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Mode, k.Vertex, k.Edge, k.Delete},
		{k.Machine, k.Optimize, k.Play, k.Program},
		{k.Example1, k.Example2, k.Example3, k.Reload, k.Clear},
		{k.Back, k.Help, k.Quit},
	}
}
