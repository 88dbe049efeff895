// Package post defines the feed post shown by a feed row, together with the
// mutable per-post flags that account actions change.
package post

import (
	"sync"
	"time"

	"github.com/charmbracelet/flick/internal/csync"
)

// Flags holds the account state of a post. Flags are only ever changed by the
// mutation API once a change has been confirmed; the UI reads snapshots.
type Flags struct {
	Upvoted   bool
	Downvoted bool
	Saved     bool
	Hidden    bool
	Read      bool
}

// Post is a single feed item. Identity fields are immutable after creation;
// account flags are accessed through [Post.Flags] and [Post.SetFlags].
type Post struct {
	ID           string
	URL          string
	Title        string
	Author       string
	CommentCount int

	FeedTitle    string
	CommentsURL  string
	Description  string
	ThumbnailURL string
	Published    time.Time

	once  sync.Once
	flags *csync.Value[Flags]
}

// New creates a post with the given identity and initial flags.
func New(id, url, title, author string, comments int, flags Flags) *Post {
	return &Post{
		ID:           id,
		URL:          url,
		Title:        title,
		Author:       author,
		CommentCount: comments,
		flags:        csync.NewValue(flags),
	}
}

// Flags returns a snapshot of the post's current flags.
func (p *Post) Flags() Flags {
	return p.state().Get()
}

// SetFlags replaces the post's flags. It is meant to be called by the
// mutation API after the backend confirmed a change.
func (p *Post) SetFlags(f Flags) {
	p.state().Set(f)
}

// UpdateFlags atomically applies fn to the post's flags and returns the
// result.
func (p *Post) UpdateFlags(fn func(Flags) Flags) Flags {
	return p.state().Update(fn)
}

// state returns the flag container, creating it once for zero-value posts.
func (p *Post) state() *csync.Value[Flags] {
	p.once.Do(func() {
		if p.flags == nil {
			p.flags = csync.NewValue(Flags{})
		}
	})
	return p.flags
}

// HasThumbnail reports whether the post advertises a thumbnail image.
func (p *Post) HasThumbnail() bool {
	return p.ThumbnailURL != ""
}

// Comments returns the URL of the post's discussion, falling back to the
// post link.
func (p *Post) Comments() string {
	if p.CommentsURL != "" {
		return p.CommentsURL
	}
	return p.URL
}
