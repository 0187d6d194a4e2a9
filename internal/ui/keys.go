package ui

import "github.com/charmbracelet/bubbles/key"

// GlobalKeyMap defines keys available in navigation mode regardless of focused panel.
type GlobalKeyMap struct {
	Quit        key.Binding
	Help        key.Binding
	Tab         key.Binding
	Refresh     key.Binding
	Decline     key.Binding
	Claim       key.Binding
	Unassign    key.Binding
	OpenResolve key.Binding
	ToggleOlder key.Binding
}

var GlobalKeys = GlobalKeyMap{
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "switch panel"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh queue"),
	),
	Decline: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "decline (close)"),
	),
	Claim: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "claim"),
	),
	Unassign: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "unassign"),
	),
	OpenResolve: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open in browser"),
	),
	ToggleOlder: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "show/hide older comments"),
	),
}

// QueueKeyMap defines keys for the queue panel.
type QueueKeyMap struct {
	Up               key.Binding
	Down             key.Binding
	Select           key.Binding
	SelectAndAdvance key.Binding
}

var QueueKeys = QueueKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("Space", "select"),
	),
	SelectAndAdvance: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "select + focus comments"),
	),
}

// CommentsKeyMap defines keys for the comments panel.
type CommentsKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	EnterInsert key.Binding
	ExitInsert  key.Binding
	Submit      key.Binding
}

var CommentsKeys = CommentsKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k", "scroll up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j", "scroll down"),
	),
	EnterInsert: key.NewBinding(
		key.WithKeys("i", "enter"),
		key.WithHelp("i", "write comment"),
	),
	ExitInsert: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "normal mode"),
	),
	Submit: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("Ctrl+S", "submit comment"),
	),
}
