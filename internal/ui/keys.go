package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the console's key bindings outside of text inputs.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PagePrev key.Binding
	PageNext key.Binding

	// Route switching.
	GoDashboard key.Binding
	GoEvents    key.Binding
	GoUsers     key.Binding
	GoAnalytics key.Binding
	GoSettings  key.Binding

	// List actions.
	Open    key.Binding // Details for the row under the cursor.
	New     key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Search  key.Binding
	Sort    key.Binding // Cycle the sort column.
	Reverse key.Binding // Flip the sort order.
	Reload  key.Binding

	Back   key.Binding
	Logout key.Binding
	Quit   key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// (j/k) alongside standard arrow keys.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PagePrev: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "prev page"),
	),
	PageNext: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "next page"),
	),

	GoDashboard: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "dashboard"),
	),
	GoEvents: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "events"),
	),
	GoUsers: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "users"),
	),
	GoAnalytics: key.NewBinding(
		key.WithKeys("4"),
		key.WithHelp("4", "analytics"),
	),
	GoSettings: key.NewBinding(
		key.WithKeys("5"),
		key.WithHelp("5", "settings"),
	),

	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "details"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Sort: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "sort"),
	),
	Reverse: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "order"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),

	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Logout: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("C-l", "logout"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
