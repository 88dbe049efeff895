// Package remote is the post mutation API: it performs account actions
// (votes, saves, hides, reports) against a backend and, once the backend
// confirmed them, applies the resulting flags to the post.
package remote

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/flick/internal/post"
)

// Action is a remote account action.
type Action uint8

// Remote actions.
const (
	_ Action = iota
	Upvote
	Downvote
	Unvote
	Save
	Unsave
	Hide
	Unhide
	Report
	MarkRead
)

// ErrUnknownAction is returned when parsing an unrecognized action name.
var ErrUnknownAction = errors.New("unknown action")

var actionNames = map[Action]string{
	Upvote:   "upvote",
	Downvote: "downvote",
	Unvote:   "unvote",
	Save:     "save",
	Unsave:   "unsave",
	Hide:     "hide",
	Unhide:   "unhide",
	Report:   "report",
	MarkRead: "mark_read",
}

// Actions returns every remote action in declaration order.
func Actions() []Action {
	return []Action{Upvote, Downvote, Unvote, Save, Unsave, Hide, Unhide, Report, MarkRead}
}

// ParseAction parses the textual name of an action.
func ParseAction(s string) (Action, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for a, name := range actionNames {
		if name == s {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Action(%d)", a)
}

// Apply returns flags as they are after the action succeeded. Votes are
// mutually exclusive.
func (a Action) Apply(f post.Flags) post.Flags {
	switch a {
	case Upvote:
		f.Upvoted, f.Downvoted = true, false
	case Downvote:
		f.Upvoted, f.Downvoted = false, true
	case Unvote:
		f.Upvoted, f.Downvoted = false, false
	case Save:
		f.Saved = true
	case Unsave:
		f.Saved = false
	case Hide:
		f.Hidden = true
	case Unhide:
		f.Hidden = false
	case MarkRead:
		f.Read = true
	}
	return f
}

// Past returns a short past-tense description used in status messages.
func (a Action) Past() string {
	switch a {
	case Upvote:
		return "Upvoted"
	case Downvote:
		return "Downvoted"
	case Unvote:
		return "Vote removed"
	case Save:
		return "Saved"
	case Unsave:
		return "Unsaved"
	case Hide:
		return "Hidden"
	case Unhide:
		return "Unhidden"
	case Report:
		return "Reported"
	case MarkRead:
		return "Marked as read"
	}
	return a.String()
}
