package model

import (
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/flick/internal/post"
	"github.com/charmbracelet/flick/internal/remote"
)

// ItemSelected implements [action.SelectionListener]. The post is opened in
// the browser and marked read.
func (m *UI) ItemSelected(p *post.Post) tea.Cmd {
	return tea.Batch(m.markRead(p), m.OpenURL(p.URL))
}

// ItemSecondaryActionSelected implements [action.SelectionListener]. The
// comments of the post are opened in the browser and the post is marked
// read.
func (m *UI) ItemSecondaryActionSelected(p *post.Post) tea.Cmd {
	return tea.Batch(m.markRead(p), m.OpenURL(p.Comments()))
}

func (m *UI) markRead(p *post.Post) tea.Cmd {
	if p.Flags().Read || !m.dispatcher.Authenticated() {
		return nil
	}
	return m.mutator.Perform(p, remote.MarkRead)
}
