package model

import "charm.land/bubbles/v2/key"

type KeyMap struct {
	Feed struct {
		Up         key.Binding
		Down       key.Binding
		PageUp     key.Binding
		PageDown   key.Binding
		Top        key.Binding
		Bottom     key.Binding
		SwipeLeft  key.Binding
		SwipeRight key.Binding
		Open       key.Binding
		Comments   key.Binding
		Menu       key.Binding
	}

	// Global key maps
	Quit      key.Binding
	Interrupt key.Binding
	Refresh   key.Binding
	Help      key.Binding
}

func DefaultKeyMap() KeyMap {
	km := KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Interrupt: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
	}

	km.Feed.Up = key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	)
	km.Feed.Down = key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	)
	km.Feed.PageUp = key.NewBinding(
		key.WithKeys("pgup", "b"),
		key.WithHelp("pgup/b", "page up"),
	)
	km.Feed.PageDown = key.NewBinding(
		key.WithKeys("pgdown", "f"),
		key.WithHelp("pgdn/f", "page down"),
	)
	km.Feed.Top = key.NewBinding(
		key.WithKeys("home", "g"),
		key.WithHelp("g", "top"),
	)
	km.Feed.Bottom = key.NewBinding(
		key.WithKeys("end", "G"),
		key.WithHelp("G", "bottom"),
	)
	km.Feed.SwipeLeft = key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "swipe left"),
	)
	km.Feed.SwipeRight = key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "swipe right"),
	)
	km.Feed.Open = key.NewBinding(
		key.WithKeys("enter", "o"),
		key.WithHelp("enter", "open"),
	)
	km.Feed.Comments = key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "comments"),
	)
	km.Feed.Menu = key.NewBinding(
		key.WithKeys("space", "m"),
		key.WithHelp("space", "actions"),
	)

	return km
}
