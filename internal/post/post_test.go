package post

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPost_Flags(t *testing.T) {
	t.Parallel()

	p := New("t3_1", "https://example.com", "Title", "alice", 3, Flags{Saved: true})
	require.Equal(t, Flags{Saved: true}, p.Flags())

	p.SetFlags(Flags{Upvoted: true})
	require.Equal(t, Flags{Upvoted: true}, p.Flags())

	got := p.UpdateFlags(func(f Flags) Flags {
		f.Read = true
		return f
	})
	require.Equal(t, Flags{Upvoted: true, Read: true}, got)
}

func TestPost_ZeroValueFlags(t *testing.T) {
	t.Parallel()

	var p Post
	require.Equal(t, Flags{}, p.Flags())

	p.SetFlags(Flags{Hidden: true})
	require.True(t, p.Flags().Hidden)
}

func TestPost_ZeroValueConcurrentFlags(t *testing.T) {
	t.Parallel()

	var p Post
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			p.UpdateFlags(func(f Flags) Flags {
				f.Saved = true
				return f
			})
		}()
		go func() {
			defer wg.Done()
			_ = p.Flags()
		}()
	}
	wg.Wait()
	require.True(t, p.Flags().Saved)
}

func TestPost_Comments(t *testing.T) {
	t.Parallel()

	p := New("1", "https://example.com/a", "A", "", 0, Flags{})
	require.Equal(t, "https://example.com/a", p.Comments())

	p.CommentsURL = "https://example.com/a#comments"
	require.Equal(t, "https://example.com/a#comments", p.Comments())
	require.False(t, p.HasThumbnail())
}
