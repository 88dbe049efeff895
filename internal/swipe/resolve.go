package swipe

import (
	"fmt"

	"github.com/charmbracelet/flick/internal/post"
)

// Resolve returns the concrete action a preference stands for, given the
// current flags of the post. Vote, save and hide preferences turn into their
// undo action when the flag is already set.
//
// Resolve panics when pref is not a known [Preference]: configuration is
// validated when loaded, so an unknown value here is a programming error.
func Resolve(pref Preference, flags post.Flags) Resolved {
	switch pref {
	case PrefUpvote:
		if flags.Upvoted {
			return resolved(Unvote)
		}
		return resolved(Upvote)
	case PrefDownvote:
		if flags.Downvoted {
			return resolved(Unvote)
		}
		return resolved(Downvote)
	case PrefSave:
		if flags.Saved {
			return resolved(Unsave)
		}
		return resolved(Save)
	case PrefHide:
		if flags.Hidden {
			return resolved(Unhide)
		}
		return resolved(Hide)
	case PrefComments:
		return resolved(Comments)
	case PrefLink:
		return resolved(Link)
	case PrefBrowser:
		return resolved(External)
	}
	panic(fmt.Sprintf("swipe: cannot resolve %s", pref))
}
