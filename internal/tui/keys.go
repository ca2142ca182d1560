package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	MoveUp      key.Binding
	MoveDown    key.Binding
	Collapse    key.Binding
	Toggle      key.Binding
	Difficulty  key.Binding
	AddTopic    key.Binding
	AddSubTopic key.Binding
	AddQuestion key.Binding
	Edit        key.Binding
	Delete      key.Binding
	Save        key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:          key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:        key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		MoveUp:      key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "move up")),
		MoveDown:    key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "move down")),
		Collapse:    key.NewBinding(key.WithKeys("enter", "tab"), key.WithHelp("enter", "collapse")),
		Toggle:      key.NewBinding(key.WithKeys("x", " ", "space"), key.WithHelp("x/space", "solved")),
		Difficulty:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "difficulty")),
		AddTopic:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add topic")),
		AddSubTopic: key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "add sub-topic")),
		AddQuestion: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "add question")),
		Edit:        key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit title")),
		Delete:      key.NewBinding(key.WithKeys("D", "delete"), key.WithHelp("D", "delete")),
		Save:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.MoveDown, k.MoveUp, k.Toggle, k.AddQuestion, k.Save, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.MoveUp, k.MoveDown, k.Collapse},
		{k.Toggle, k.Difficulty, k.Edit, k.Delete},
		{k.AddTopic, k.AddSubTopic, k.AddQuestion},
		{k.Save, k.Help, k.Quit},
	}
}
