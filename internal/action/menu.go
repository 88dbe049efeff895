package action

import (
	"github.com/charmbracelet/flick/internal/post"
	"github.com/charmbracelet/flick/internal/swipe"
)

// MenuEntry is one entry of the context action menu.
type MenuEntry struct {
	Label string
	Kind  swipe.Kind
}

// Menu builds the context action menu for a post with the given flags.
// Account actions are only offered when authenticated.
func Menu(flags post.Flags, authenticated bool) []MenuEntry {
	var entries []MenuEntry
	if authenticated {
		entries = append(entries,
			voteUp(flags),
			voteDown(flags),
			toggle(flags.Saved, swipe.Save, swipe.Unsave),
			toggle(flags.Hidden, swipe.Hide, swipe.Unhide),
			entry(swipe.Report),
		)
	}
	return append(entries,
		entry(swipe.External),
		entry(swipe.Share),
		entry(swipe.UserProfile),
		entry(swipe.Properties),
	)
}

func voteUp(flags post.Flags) MenuEntry {
	if flags.Upvoted {
		return MenuEntry{Label: "Remove upvote", Kind: swipe.Unvote}
	}
	return entry(swipe.Upvote)
}

func voteDown(flags post.Flags) MenuEntry {
	if flags.Downvoted {
		return MenuEntry{Label: "Remove downvote", Kind: swipe.Unvote}
	}
	return entry(swipe.Downvote)
}

func toggle(set bool, on, off swipe.Kind) MenuEntry {
	if set {
		return entry(off)
	}
	return entry(on)
}

func entry(k swipe.Kind) MenuEntry {
	return MenuEntry{Label: k.MenuLabel(), Kind: k}
}
