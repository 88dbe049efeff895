package dialog

import (
	tea "charm.land/bubbletea/v2"

	"github.com/charmbracelet/flick/internal/post"
	"github.com/charmbracelet/flick/internal/swipe"
)

// ActionClose is a message to close the current dialog.
type ActionClose struct{}

// ActionQuit is a message to quit the application.
type ActionQuit = tea.QuitMsg

// ActionCmd represents an action that carries a [tea.Cmd] to be passed to the
// Bubble Tea program loop. The dialog stays open.
type ActionCmd struct {
	Cmd tea.Cmd
}

// ActionAccept closes the current dialog and then runs Cmd.
type ActionAccept struct {
	Cmd tea.Cmd
}

// ActionSelectKind is emitted by the action menu when an entry is chosen.
type ActionSelectKind struct {
	Kind swipe.Kind
	Post *post.Post
}
