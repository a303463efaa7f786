package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up      key.Binding
	down    key.Binding
	enter   key.Binding
	like    key.Binding
	refresh key.Binding
	nextTab key.Binding
	prevTab key.Binding
	submit  key.Binding
	sample  key.Binding
	mode    key.Binding
	logout  key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:      key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		down:    key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
		like:    key.NewBinding(key.WithKeys("l", " "), key.WithHelp("l", "like/unlike")),
		refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		nextTab: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next view")),
		prevTab: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev view")),
		submit:  key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "submit")),
		sample:  key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "sample photo")),
		mode:    key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "login/register")),
		logout:  key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "logout")),
		quit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.nextTab, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter},
		{k.like, k.refresh, k.submit, k.sample},
		{k.nextTab, k.prevTab, k.mode, k.logout, k.quit},
	}
}
