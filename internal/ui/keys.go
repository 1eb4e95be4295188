package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Escape     key.Binding

	// View switching
	ViewHome          key.Binding
	ViewSubscriptions key.Binding
	ViewHistory       key.Binding
	ViewWatchLater    key.Binding
	ViewPlaylists     key.Binding
	ViewLiked         key.Binding
	ViewDashboard     key.Binding
	Search            key.Binding
	SignIn            key.Binding

	// List navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Open   key.Binding

	// Engagement actions
	Like       key.Binding
	Subscribe  key.Binding
	WatchLater key.Binding
	Channel    key.Binding

	// Watch view
	Comment      key.Binding
	MoreComments key.Binding
	MoreReplies  key.Binding
	CopyURL      key.Binding

	// History view
	RemoveEntry  key.Binding
	ClearHistory key.Binding

	// Input
	Confirm key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back to home"),
		),

		ViewHome: key.NewBinding(
			key.WithKeys("1", "f"),
			key.WithHelp("f", "Home feed"),
		),
		ViewSubscriptions: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Subscriptions"),
		),
		ViewHistory: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "Watch history"),
		),
		ViewWatchLater: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "Watch later"),
		),
		ViewPlaylists: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "Playlists"),
		),
		ViewLiked: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Liked videos"),
		),
		ViewDashboard: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Your uploads"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search"),
		),
		SignIn: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "Sign in / out"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open video"),
		),

		Like: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "Like"),
		),
		Subscribe: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "Subscribe"),
		),
		WatchLater: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "Save for later"),
		),
		Channel: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Open channel"),
		),

		Comment: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Add comment"),
		),
		MoreComments: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "More comments"),
		),
		MoreReplies: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "More replies"),
		),
		CopyURL: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "Show play URL"),
		),

		RemoveEntry: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "Remove from history"),
		),
		ClearHistory: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "Clear history"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ViewHome, k.Search, k.ViewSubscriptions, k.ViewHistory, k.ViewWatchLater, k.ViewPlaylists, k.ViewLiked, k.ViewDashboard},
		{k.Up, k.Down, k.Top, k.Bottom, k.Open},
		{k.Like, k.Subscribe, k.WatchLater, k.Channel, k.Comment, k.MoreComments, k.MoreReplies},
		{k.RemoveEntry, k.ClearHistory},
		{k.SignIn, k.CycleTheme, k.Help, k.Quit},
	}
}
