package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Add, Edit, Toggle, Remove, ClearDone key.Binding
	All, Active, Completed, NextFilter   key.Binding
	Copy, Refresh, Quit                  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Add:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:       key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		Toggle:     key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle")),
		Remove:     key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		ClearDone:  key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear completed")),
		All:        key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "all")),
		Active:     key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "active")),
		Completed:  key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "completed")),
		NextFilter: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next filter")),
		Copy:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) short() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Toggle, k.Remove, k.ClearDone, k.NextFilter}
}

func (k keyMap) full() []key.Binding {
	return append(k.short(), k.All, k.Active, k.Completed, k.Copy, k.Refresh)
}
