// Package action turns resolved swipe and menu actions into effects: remote
// mutations, host requests and selection notifications.
package action

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/charmbracelet/flick/internal/post"
	"github.com/charmbracelet/flick/internal/remote"
	"github.com/charmbracelet/flick/internal/swipe"
	"github.com/charmbracelet/flick/internal/uiutil"
)

const (
	// ReportPrompt is the question asked before reporting a post.
	ReportPrompt = "Are you sure you want to report this post?"
	// LoginRequired is shown when an account action is attempted without
	// credentials.
	LoginRequired = "You must be logged in to do that"
)

// Host is implemented by the application shell and presents everything that
// is not a remote mutation.
type Host interface {
	OpenURL(url string) tea.Cmd
	Share(title, url string) tea.Cmd
	ShowProfile(author string) tea.Cmd
	ShowProperties(p *post.Post) tea.Cmd
	// Confirm asks the user a yes/no question and runs onYes only when the
	// user agrees.
	Confirm(title, message string, onYes tea.Cmd) tea.Cmd
}

// SelectionListener is notified when a post, or its comments, are selected.
type SelectionListener interface {
	ItemSelected(p *post.Post) tea.Cmd
	ItemSecondaryActionSelected(p *post.Post) tea.Cmd
}

// Dispatcher performs actions. It never changes post flags itself; toggles
// go through the [remote.Mutator], which applies them once confirmed.
type Dispatcher struct {
	mutator  remote.Mutator
	host     Host
	listener SelectionListener
}

// NewDispatcher creates a dispatcher.
func NewDispatcher(m remote.Mutator, h Host, l SelectionListener) *Dispatcher {
	return &Dispatcher{mutator: m, host: h, listener: l}
}

// Authenticated reports whether account actions are available.
func (d *Dispatcher) Authenticated() bool {
	return d.mutator != nil && d.mutator.Authenticated()
}

// Dispatch returns the command carrying out kind on p.
func (d *Dispatcher) Dispatch(kind swipe.Kind, p *post.Post) tea.Cmd {
	if p == nil {
		return nil
	}
	if ra, ok := RemoteAction(kind); ok {
		if !d.Authenticated() {
			return uiutil.ReportWarn(LoginRequired)
		}
		return d.mutator.Perform(p, ra)
	}
	switch kind {
	case swipe.Report:
		if !d.Authenticated() {
			return uiutil.ReportWarn(LoginRequired)
		}
		return d.host.Confirm("Report", ReportPrompt, d.mutator.Perform(p, remote.Report))
	case swipe.External:
		return d.host.OpenURL(p.URL)
	case swipe.Share:
		return d.host.Share(p.Title, p.URL)
	case swipe.UserProfile:
		return d.host.ShowProfile(p.Author)
	case swipe.Properties:
		return d.host.ShowProperties(p)
	case swipe.Comments:
		return d.listener.ItemSecondaryActionSelected(p)
	case swipe.Link:
		return d.listener.ItemSelected(p)
	}
	panic(fmt.Sprintf("action: cannot dispatch %s", kind))
}

// RemoteAction maps a toggle kind to its remote action.
func RemoteAction(kind swipe.Kind) (remote.Action, bool) {
	switch kind {
	case swipe.Upvote:
		return remote.Upvote, true
	case swipe.Downvote:
		return remote.Downvote, true
	case swipe.Unvote:
		return remote.Unvote, true
	case swipe.Save:
		return remote.Save, true
	case swipe.Unsave:
		return remote.Unsave, true
	case swipe.Hide:
		return remote.Hide, true
	case swipe.Unhide:
		return remote.Unhide, true
	}
	return 0, false
}
