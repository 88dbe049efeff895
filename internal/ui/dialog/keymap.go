package dialog

import "charm.land/bubbles/v2/key"

// ConfirmKeyMap represents key bindings for yes/no dialogs.
type ConfirmKeyMap struct {
	LeftRight,
	EnterSpace,
	Yes,
	No,
	Tab,
	Close key.Binding
}

// DefaultConfirmKeyMap returns the default key bindings for yes/no dialogs.
func DefaultConfirmKeyMap() ConfirmKeyMap {
	return ConfirmKeyMap{
		LeftRight: key.NewBinding(
			key.WithKeys("left", "right", "h", "l"),
			key.WithHelp("←/→", "switch options"),
		),
		EnterSpace: key.NewBinding(
			key.WithKeys("enter", "space"),
			key.WithHelp("enter/space", "confirm"),
		),
		Yes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "yes"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "N"),
			key.WithHelp("n", "no"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch options"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc", "alt+esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// ListKeyMap represents key bindings for dialogs with a selectable list.
type ListKeyMap struct {
	Select,
	Next,
	Previous,
	Close key.Binding
}

// DefaultListKeyMap returns the default key bindings for list dialogs.
func DefaultListKeyMap() ListKeyMap {
	closeKey := CloseKey
	closeKey.SetHelp("esc", "cancel")
	return ListKeyMap{
		Select: key.NewBinding(
			key.WithKeys("enter", "ctrl+y"),
			key.WithHelp("enter", "confirm"),
		),
		Next: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "next item"),
		),
		Previous: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "previous item"),
		),
		Close: closeKey,
	}
}
