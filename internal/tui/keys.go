package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up, Down, Left, Right key.Binding

	Add, Check, CheckAll, History, Delete key.Binding
	Toggle, Export, Reload, Help, Quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),

		Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Check:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "check price")),
		CheckAll: key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "check all")),
		History:  key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "history")),
		Delete:   key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Toggle:   key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "grid/list")),
		Export:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export csv")),
		Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp and FullHelp implement help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Check, k.CheckAll, k.History, k.Delete, k.Toggle, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Add, k.Delete, k.Check, k.CheckAll},
		{k.History, k.Toggle, k.Export, k.Reload},
		{k.Help, k.Quit},
	}
}

// setActionsEnabled greys out the action bindings while a request runs.
func (k *keyMap) setActionsEnabled(on bool) {
	for _, b := range []*key.Binding{&k.Add, &k.Check, &k.CheckAll, &k.History, &k.Delete, &k.Export, &k.Reload} {
		b.SetEnabled(on)
	}
}
