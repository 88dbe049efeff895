package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/charmbracelet/flick/internal/post"
	"github.com/charmbracelet/flick/internal/remote"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	conn, err := Connect(t.Context(), t.TempDir())
	require.NoError(t, err)
	s := NewStore(conn)
	t.Cleanup(func() { s.Close() })
	return s
}

func samplePost(id string, published time.Time) *post.Post {
	p := post.New(id, "https://example.com/"+id, "Post "+id, "alice", 4, post.Flags{})
	p.FeedTitle = "Example"
	p.Published = published
	return p
}

func TestStore_SaveAndList(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, s.SavePosts(t.Context(), []*post.Post{
		samplePost("a", base),
		samplePost("b", base.Add(time.Hour)),
	}))

	posts, err := s.Posts(t.Context(), ListOptions{})
	require.NoError(t, err)
	require.Len(t, posts, 2)
	require.Equal(t, "b", posts[0].ID)
	require.Equal(t, "a", posts[1].ID)
	require.Equal(t, "Example", posts[0].FeedTitle)
	require.True(t, posts[0].Published.Equal(base.Add(time.Hour)))

	p, err := s.Post(t.Context(), "a")
	require.NoError(t, err)
	require.Equal(t, "Post a", p.Title)

	_, err = s.Post(t.Context(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStore_PerformKeepsFlagsAcrossRefresh(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	now := time.Now()
	require.NoError(t, s.SavePosts(t.Context(), []*post.Post{samplePost("a", now)}))

	require.NoError(t, s.Perform(t.Context(), "a", remote.Upvote))
	require.NoError(t, s.Perform(t.Context(), "a", remote.Save))

	// A refresh brings the post back with empty flags; the stored ones win.
	fresh := samplePost("a", now)
	fresh.Title = "Edited"
	require.NoError(t, s.SavePosts(t.Context(), []*post.Post{fresh}))
	require.Equal(t, post.Flags{Upvoted: true, Saved: true}, fresh.Flags())

	p, err := s.Post(t.Context(), "a")
	require.NoError(t, err)
	require.Equal(t, "Edited", p.Title)
	require.Equal(t, post.Flags{Upvoted: true, Saved: true}, p.Flags())

	history, err := s.History(t.Context(), "a")
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, remote.Upvote, history[0].Action)
	require.Equal(t, remote.Save, history[1].Action)
}

func TestStore_PerformUnknownPost(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	require.ErrorIs(t, s.Perform(t.Context(), "nope", remote.Hide), ErrNotFound)
}

func TestStore_ListFilters(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	now := time.Now()
	require.NoError(t, s.SavePosts(t.Context(), []*post.Post{
		samplePost("a", now),
		samplePost("b", now.Add(-time.Minute)),
		samplePost("c", now.Add(-2*time.Minute)),
	}))
	require.NoError(t, s.Perform(t.Context(), "a", remote.Hide))
	require.NoError(t, s.Perform(t.Context(), "b", remote.Save))

	visible, err := s.Posts(t.Context(), ListOptions{})
	require.NoError(t, err)
	require.Len(t, visible, 2)

	all, err := s.Posts(t.Context(), ListOptions{IncludeHidden: true})
	require.NoError(t, err)
	require.Len(t, all, 3)

	saved, err := s.Posts(t.Context(), ListOptions{OnlySaved: true})
	require.NoError(t, err)
	require.Len(t, saved, 1)
	require.Equal(t, "b", saved[0].ID)

	limited, err := s.Posts(t.Context(), ListOptions{IncludeHidden: true, Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	require.Equal(t, "a", limited[0].ID)
}

func TestStore_Prune(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	old := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return old }
	require.NoError(t, s.SavePosts(t.Context(), []*post.Post{
		samplePost("keep", old),
		samplePost("drop", old),
	}))
	require.NoError(t, s.Perform(t.Context(), "keep", remote.Save))

	n, err := s.Prune(t.Context(), old.Add(time.Hour))
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	_, err = s.Post(t.Context(), "drop")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStore_WithService(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	p := samplePost("a", time.Now())
	require.NoError(t, s.SavePosts(t.Context(), []*post.Post{p}))

	svc := remote.NewService(s)
	flags, err := svc.Do(t.Context(), p, remote.Downvote)
	require.NoError(t, err)
	require.Equal(t, post.Flags{Downvoted: true}, flags)
	require.Equal(t, post.Flags{Downvoted: true}, p.Flags())
}

func TestConnect_Reopen(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	conn, err := Connect(t.Context(), dir)
	require.NoError(t, err)
	require.NoError(t, NewStore(conn).SavePosts(t.Context(), []*post.Post{samplePost("a", time.Now())}))
	require.NoError(t, conn.Close())

	conn, err = Connect(t.Context(), dir)
	require.NoError(t, err)
	defer conn.Close()
	p, err := NewStore(conn).Post(t.Context(), "a")
	require.NoError(t, err)
	require.Equal(t, "a", p.ID)

	_, err = Connect(t.Context(), "")
	require.Error(t, err)
}
