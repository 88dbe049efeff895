package feed

import (
	"fmt"
	"image"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/flick/internal/config"
	"github.com/charmbracelet/flick/internal/post"
	"github.com/charmbracelet/flick/internal/swipe"
	"github.com/charmbracelet/flick/internal/thumb"
	"github.com/charmbracelet/flick/internal/ui/common"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

type dispatched struct {
	kind swipe.Kind
	post *post.Post
}

type mockDispatcher struct {
	calls []dispatched
}

func (m *mockDispatcher) Dispatch(kind swipe.Kind, p *post.Post) tea.Cmd {
	m.calls = append(m.calls, dispatched{kind, p})
	return nil
}

type mockThumbs struct {
	cached map[string]*thumb.Image
	loads  []string
}

func (m *mockThumbs) Cached(url string) (*thumb.Image, bool) {
	img, ok := m.cached[url]
	return img, ok
}

func (m *mockThumbs) Load(postID, url string, generation uint64) tea.Cmd {
	m.loads = append(m.loads, postID)
	return func() tea.Msg { return nil }
}

func testCommon(t *testing.T, disableThumbs bool) *common.Common {
	t.Helper()
	cfg := config.Defaults()
	cfg.Options.DisableThumbnails = disableThumbs
	return common.DefaultCommon(cfg)
}

func testPosts(n int) []*post.Post {
	posts := make([]*post.Post, n)
	for i := range posts {
		p := post.New(fmt.Sprintf("p%d", i), fmt.Sprintf("https://example.com/%d", i),
			fmt.Sprintf("Post number %d", i), "alice", i, post.Flags{})
		p.FeedTitle = "Example"
		p.ThumbnailURL = fmt.Sprintf("https://img.example.com/%d.png", i)
		posts[i] = p
	}
	return posts
}

func newTestRow(t *testing.T) *Row {
	t.Helper()
	com := testCommon(t, true)
	tracker := swipe.NewTracker(swipe.PrefDownvote, swipe.PrefUpvote, swipe.DefaultThresholds())
	return NewRow(com.Styles, tracker, 10, 0)
}

func testImage(t *testing.T) *thumb.Image {
	t.Helper()
	return thumb.New("test", image.NewRGBA(image.Rect(0, 0, 12, 12)), ThumbCols, RowHeight)
}

func click(x, y int) tea.MouseClickMsg {
	return tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft}
}

func motion(x, y int) tea.MouseMotionMsg {
	return tea.MouseMotionMsg{X: x, Y: y, Button: tea.MouseLeft}
}

func release(x, y int) tea.MouseReleaseMsg {
	return tea.MouseReleaseMsg{X: x, Y: y, Button: tea.MouseLeft}
}

func TestRowBindBumpsGeneration(t *testing.T) {
	t.Parallel()

	r := newTestRow(t)
	p := testPosts(1)[0]
	g1 := r.Bind(p, 0, nil)
	g2 := r.Bind(p, 0, nil)
	require.Greater(t, g2, g1)
	require.Equal(t, p, r.Post())

	r.Unbind()
	require.Nil(t, r.Post())
	require.Equal(t, -1, r.Index())
}

func TestRowDropsStaleThumbnail(t *testing.T) {
	t.Parallel()

	r := newTestRow(t)
	posts := testPosts(2)
	stale := r.Bind(posts[0], 0, nil)
	current := r.Bind(posts[1], 1, nil)

	img := testImage(t)
	require.False(t, r.ThumbnailReady(img, stale))
	require.Nil(t, r.Thumbnail())
	require.True(t, r.ThumbnailReady(img, current))
	require.Same(t, img, r.Thumbnail())
}

func TestRowDragFiresOnce(t *testing.T) {
	t.Parallel()

	r := newTestRow(t)
	r.Bind(testPosts(1)[0], 0, nil)
	r.BeginDrag(50)
	require.Equal(t, swipe.Idle, r.State().Phase)

	_, fired := r.Drag(48)
	require.False(t, fired)
	require.Equal(t, swipe.Tracking, r.State().Phase)

	_, fired = r.Drag(38)
	require.False(t, fired)
	require.Equal(t, swipe.Armed, r.State().Phase)
	require.Contains(t, ansi.Strip(r.Render(80, false)), "Downvote")

	res, fired := r.Drag(30)
	require.True(t, fired)
	require.Equal(t, swipe.Downvote, res.Kind)

	_, fired = r.Drag(10)
	require.False(t, fired)
	require.Contains(t, ansi.Strip(r.Render(80, false)), "✓")

	r.EndDrag()
	require.Equal(t, swipe.Idle, r.State().Phase)
}

func TestRowLateFirstSampleDegrades(t *testing.T) {
	t.Parallel()

	r := newTestRow(t)
	r.Bind(testPosts(1)[0], 0, nil)
	r.BeginDrag(50)

	// vertical jitter does not start the gesture
	_, fired := r.Drag(50)
	require.False(t, fired)
	require.Equal(t, swipe.Idle, r.State().Phase)

	_, fired = r.Drag(30)
	require.False(t, fired)
	require.Equal(t, swipe.Degraded, r.State().Phase)

	_, fired = r.Drag(0)
	require.False(t, fired)
	require.NotContains(t, ansi.Strip(r.Render(80, false)), "Downvote")
}

func TestRowDragWithoutPress(t *testing.T) {
	t.Parallel()

	r := newTestRow(t)
	r.Bind(testPosts(1)[0], 0, nil)
	_, fired := r.Drag(0)
	require.False(t, fired)
	require.Equal(t, swipe.Idle, r.State().Phase)
}

func TestRowRenderWidth(t *testing.T) {
	t.Parallel()

	r := newTestRow(t)
	r.Bind(testPosts(1)[0], 0, nil)
	check := func() {
		out := r.Render(60, true)
		lines := strings.Split(out, "\n")
		require.Len(t, lines, RowHeight)
		for _, l := range lines {
			require.Equal(t, 60, lipgloss.Width(l), "line %q", ansi.Strip(l))
		}
	}
	check()

	r.BeginDrag(30)
	r.Drag(35)
	check()
	r.Drag(25)
	check()
}

func TestRowRenderContent(t *testing.T) {
	t.Parallel()

	r := newTestRow(t)
	p := testPosts(4)[3]
	p.SetFlags(post.Flags{Saved: true})
	r.Bind(p, 0, nil)
	out := ansi.Strip(r.Render(80, false))
	require.Contains(t, out, "Post number 3")
	require.Contains(t, out, "Example · alice")
	require.Contains(t, out, "◆ 3")
	require.Contains(t, out, "★")
	require.Contains(t, out, "example.com")
}

func TestRowTapRegion(t *testing.T) {
	t.Parallel()

	r := newTestRow(t)
	r.Bind(testPosts(1)[0], 0, nil)
	require.Equal(t, RegionPrimary, r.TapRegion(0, 80))
	require.Equal(t, RegionSecondary, r.TapRegion(79, 80))
}

func TestRowReplay(t *testing.T) {
	t.Parallel()

	r := newTestRow(t)
	r.Bind(testPosts(1)[0], 0, nil)
	res, fired := r.Replay(true, swipe.DefaultThresholds())
	require.True(t, fired)
	require.Equal(t, swipe.Upvote, res.Kind)
	require.Equal(t, swipe.Fired, r.State().Phase)

	res, fired = r.Replay(false, swipe.DefaultThresholds())
	require.True(t, fired)
	require.Equal(t, swipe.Downvote, res.Kind)
}

func TestViewBindsVisibleRows(t *testing.T) {
	t.Parallel()

	thumbs := &mockThumbs{cached: map[string]*thumb.Image{
		"https://img.example.com/1.png": testImage(t),
	}}
	v := New(testCommon(t, false), &mockDispatcher{}, thumbs)
	v.SetSize(80, 3*RowHeight)
	v.SetPosts(testPosts(10))

	rows := v.Rows()
	require.Len(t, rows, 3)
	require.Equal(t, "p0", rows[0].Post().ID)
	require.NotNil(t, rows[1].Thumbnail())
	// cached thumbnails are not loaded again
	require.Equal(t, []string{"p0", "p2"}, thumbs.loads)
}

func TestViewRecyclesRows(t *testing.T) {
	t.Parallel()

	v := New(testCommon(t, true), &mockDispatcher{}, nil)
	v.SetSize(80, 3*RowHeight)
	v.SetPosts(testPosts(10))

	kept := v.Rows()[2]
	gen := kept.Generation()

	v.MoveSelection(3)
	require.Equal(t, 3, v.SelectedIndex())
	rows := v.Rows()
	require.Equal(t, "p1", rows[0].Post().ID)
	require.Equal(t, "p3", rows[2].Post().ID)
	require.Same(t, kept, rows[1])
	require.Equal(t, gen, kept.Generation())
}

func TestViewDropsStaleThumbnail(t *testing.T) {
	t.Parallel()

	v := New(testCommon(t, false), &mockDispatcher{}, &mockThumbs{})
	v.SetSize(80, RowHeight)
	v.SetPosts(testPosts(5))

	gen := v.Rows()[0].Generation()
	v.MoveSelection(1)
	require.False(t, v.ThumbnailReady(thumb.ReadyMsg{PostID: "p0", Generation: gen, Image: testImage(t)}))

	row := v.Rows()[0]
	require.True(t, v.ThumbnailReady(thumb.ReadyMsg{PostID: "p1", Generation: row.Generation(), Image: testImage(t)}))
	require.NotNil(t, row.Thumbnail())
}

func TestViewMouseSwipe(t *testing.T) {
	t.Parallel()

	d := &mockDispatcher{}
	v := New(testCommon(t, true), d, nil)
	v.SetSize(80, 3*RowHeight)
	posts := testPosts(3)
	v.SetPosts(posts)

	y := RowHeight + 1 // second row
	v.Update(click(40, y))
	require.Equal(t, 1, v.SelectedIndex())
	v.Update(motion(37, y))
	require.Empty(t, d.calls)
	v.Update(motion(20, y))
	v.Update(motion(10, y))
	v.Update(release(10, y))

	require.Equal(t, []dispatched{{swipe.Downvote, posts[1]}}, d.calls)
	require.Equal(t, swipe.Idle, v.Rows()[1].State().Phase)
}

func TestViewTap(t *testing.T) {
	t.Parallel()

	d := &mockDispatcher{}
	v := New(testCommon(t, true), d, nil)
	v.SetSize(80, 3*RowHeight)
	posts := testPosts(3)
	v.SetPosts(posts)

	v.Update(click(5, 0))
	v.Update(release(5, 0))
	v.Update(click(79, RowHeight*2))
	v.Update(release(79, RowHeight*2))

	require.Equal(t, []dispatched{
		{swipe.Link, posts[0]},
		{swipe.Comments, posts[2]},
	}, d.calls)

	v.Tap(true)
	require.Equal(t, dispatched{swipe.Comments, posts[2]}, d.calls[2])
}

func TestViewRightClickOpensMenu(t *testing.T) {
	t.Parallel()

	v := New(testCommon(t, true), &mockDispatcher{}, nil)
	v.SetSize(80, 3*RowHeight)
	posts := testPosts(3)
	v.SetPosts(posts)

	cmd := v.Update(tea.MouseClickMsg{X: 3, Y: RowHeight, Button: tea.MouseRight})
	require.NotNil(t, cmd)
	require.Equal(t, OpenMenuMsg{Post: posts[1]}, cmd())
}

func TestViewKeyboardSwipe(t *testing.T) {
	t.Parallel()

	d := &mockDispatcher{}
	v := New(testCommon(t, true), d, nil)
	v.SetSize(80, 3*RowHeight)
	posts := testPosts(3)
	v.SetPosts(posts)

	require.NotNil(t, v.Swipe(true))
	require.Equal(t, []dispatched{{swipe.Upvote, posts[0]}}, d.calls)

	row := v.Rows()[0]
	require.Equal(t, swipe.Fired, row.State().Phase)
	v.Update(settleMsg{row: row, generation: row.Generation(), gesture: row.Gesture()})
	require.Equal(t, swipe.Idle, row.State().Phase)
}

func TestViewFastFlingNeverFires(t *testing.T) {
	t.Parallel()

	d := &mockDispatcher{}
	v := New(testCommon(t, true), d, nil)
	v.SetSize(80, 3*RowHeight)
	v.SetPosts(testPosts(3))

	v.Update(click(40, 0))
	v.Update(motion(20, 0))
	require.Equal(t, swipe.Degraded, v.Rows()[0].State().Phase)
	v.Update(motion(5, 0))
	v.Update(release(5, 0))

	require.Empty(t, d.calls)
	require.Equal(t, swipe.Idle, v.Rows()[0].State().Phase)
}

func TestViewSettleSparesNewGesture(t *testing.T) {
	t.Parallel()

	d := &mockDispatcher{}
	v := New(testCommon(t, true), d, nil)
	v.SetSize(80, 3*RowHeight)
	posts := testPosts(3)
	v.SetPosts(posts)

	row := v.Rows()[0]
	require.NotNil(t, v.Swipe(true))
	settle := settleMsg{row: row, generation: row.Generation(), gesture: row.Gesture()}

	v.Update(click(40, 0))
	v.Update(motion(38, 0))
	require.Equal(t, swipe.Armed, row.State().Phase)

	// the keyboard swipe's settle tick lands mid-drag
	v.Update(settle)
	require.Equal(t, swipe.Armed, row.State().Phase)

	v.Update(motion(20, 0))
	v.Update(release(20, 0))
	require.Equal(t, []dispatched{
		{swipe.Upvote, posts[0]},
		{swipe.Downvote, posts[0]},
	}, d.calls)
}

func TestViewWheelScroll(t *testing.T) {
	t.Parallel()

	v := New(testCommon(t, true), &mockDispatcher{}, nil)
	v.SetSize(80, 2*RowHeight)
	v.SetPosts(testPosts(5))

	v.Update(tea.MouseWheelMsg{Button: tea.MouseWheelDown})
	v.Update(tea.MouseWheelMsg{Button: tea.MouseWheelDown})
	require.Equal(t, "p2", v.Rows()[0].Post().ID)
	require.Equal(t, 2, v.SelectedIndex())

	for range 10 {
		v.Update(tea.MouseWheelMsg{Button: tea.MouseWheelDown})
	}
	require.Equal(t, "p3", v.Rows()[0].Post().ID)

	v.Update(tea.MouseWheelMsg{Button: tea.MouseWheelUp})
	require.Equal(t, "p2", v.Rows()[0].Post().ID)
}

func TestViewSetPostsKeepsSelection(t *testing.T) {
	t.Parallel()

	v := New(testCommon(t, true), &mockDispatcher{}, nil)
	v.SetSize(80, 2*RowHeight)
	posts := testPosts(5)
	v.SetPosts(posts)
	v.MoveSelection(2)

	v.SetPosts([]*post.Post{posts[4], posts[2], posts[0]})
	require.Equal(t, "p2", v.Selected().ID)
}

func TestViewEmpty(t *testing.T) {
	t.Parallel()

	v := New(testCommon(t, true), &mockDispatcher{}, nil)
	v.SetSize(80, 10)
	require.Nil(t, v.Selected())
	require.Nil(t, v.Swipe(true))
	require.Nil(t, v.OpenMenu())
	require.Contains(t, ansi.Strip(v.Render()), "Nothing to show")
}
