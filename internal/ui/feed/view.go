package feed

import (
	"log/slog"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/flick/internal/post"
	"github.com/charmbracelet/flick/internal/swipe"
	"github.com/charmbracelet/flick/internal/thumb"
	"github.com/charmbracelet/flick/internal/ui/common"
	uv "github.com/charmbracelet/ultraviolet"
)

// settleDelay is how long a row replayed from the keyboard stays in its
// fired position.
const settleDelay = 250 * time.Millisecond

// Dispatcher carries out resolved swipe actions.
type Dispatcher interface {
	Dispatch(kind swipe.Kind, p *post.Post) tea.Cmd
}

// Thumbnails provides cached thumbnails and loads missing ones.
type Thumbnails interface {
	Cached(url string) (*thumb.Image, bool)
	Load(postID, url string, generation uint64) tea.Cmd
}

// OpenMenuMsg asks the application to show the action menu for Post.
type OpenMenuMsg struct {
	Post *post.Post
}

type settleMsg struct {
	row        *Row
	generation uint64
	gesture    uint64
}

// View is the scrollable feed. It keeps a small pool of rows sized to the
// viewport and rebinds them as the list scrolls.
type View struct {
	com        *common.Common
	dispatcher Dispatcher
	thumbs     Thumbnails

	prefs      [2]swipe.Preference
	thresholds swipe.Thresholds
	cellWidth  int
	thumbCols  int

	posts    []*post.Post
	pool     []*Row
	top      int
	selected int

	width, height int

	// drag is the row under an active mouse drag.
	drag *Row
	// dragMoved is set once the pointer left the starting column.
	dragMoved  bool
	dragStartX int
}

// New creates a feed view configured from com.Config.
func New(com *common.Common, d Dispatcher, thumbs Thumbnails) *View {
	cfg := com.Config
	thumbCols := 0
	if !cfg.Options.DisableThumbnails && thumbs != nil {
		thumbCols = ThumbCols
	}
	return &View{
		com:        com,
		dispatcher: d,
		thumbs:     thumbs,
		prefs:      [2]swipe.Preference{cfg.Swipe.Left, cfg.Swipe.Right},
		thresholds: cfg.Swipe.Thresholds(),
		cellWidth:  cfg.Swipe.CellWidth,
		thumbCols:  thumbCols,
	}
}

// ThumbCols is the width of row thumbnails in cells.
const ThumbCols = thumb.DefaultCols

// SetSize resizes the viewport, growing or shrinking the row pool.
func (v *View) SetSize(width, height int) tea.Cmd {
	v.width, v.height = width, height
	n := max(0, height/RowHeight)
	for len(v.pool) < n {
		tracker := swipe.NewTracker(v.prefs[0], v.prefs[1], v.thresholds)
		v.pool = append(v.pool, NewRow(v.com.Styles, tracker, v.cellWidth, v.thumbCols))
	}
	for len(v.pool) > n {
		last := v.pool[len(v.pool)-1]
		if last == v.drag {
			v.drag = nil
		}
		last.Unbind()
		v.pool = v.pool[:len(v.pool)-1]
	}
	v.clampScroll()
	return v.layout()
}

// SetPosts replaces the listed posts, keeping the selection on the same
// post when it is still present.
func (v *View) SetPosts(posts []*post.Post) tea.Cmd {
	var selectedID string
	if p := v.Selected(); p != nil {
		selectedID = p.ID
	}
	v.posts = posts
	v.selected = 0
	for i, p := range posts {
		if p.ID == selectedID {
			v.selected = i
			break
		}
	}
	// all bindings are stale
	for _, r := range v.pool {
		r.Unbind()
	}
	v.drag = nil
	v.clampScroll()
	return v.layout()
}

// Posts returns the listed posts.
func (v *View) Posts() []*post.Post {
	return v.posts
}

// Selected returns the selected post, or nil when the feed is empty.
func (v *View) Selected() *post.Post {
	if v.selected < 0 || v.selected >= len(v.posts) {
		return nil
	}
	return v.posts[v.selected]
}

// SelectedIndex returns the position of the selected post.
func (v *View) SelectedIndex() int {
	return v.selected
}

// Rows returns the bound rows in display order.
func (v *View) Rows() []*Row {
	rows := make([]*Row, 0, len(v.pool))
	for i := v.top; i < min(len(v.posts), v.top+len(v.pool)); i++ {
		if r := v.rowFor(i); r != nil {
			rows = append(rows, r)
		}
	}
	return rows
}

// MoveSelection moves the selection by delta, scrolling as needed.
func (v *View) MoveSelection(delta int) tea.Cmd {
	if len(v.posts) == 0 {
		return nil
	}
	v.selected = max(0, min(len(v.posts)-1, v.selected+delta))
	v.clampScroll()
	return v.layout()
}

// Scroll moves the viewport by delta rows without changing the selection
// unless it would leave the viewport.
func (v *View) Scroll(delta int) tea.Cmd {
	v.top += delta
	maxTop := max(0, len(v.posts)-len(v.pool))
	v.top = max(0, min(maxTop, v.top))
	if v.selected < v.top {
		v.selected = v.top
	}
	if n := len(v.pool); n > 0 && v.selected >= v.top+n {
		v.selected = v.top + n - 1
	}
	return v.layout()
}

func (v *View) clampScroll() {
	n := len(v.pool)
	if v.selected < v.top {
		v.top = v.selected
	}
	if n > 0 && v.selected >= v.top+n {
		v.top = v.selected - n + 1
	}
	maxTop := max(0, len(v.posts)-n)
	v.top = max(0, min(maxTop, v.top))
}

// layout binds pool rows to the visible posts. Rows already showing a
// visible post keep their binding; the rest are recycled. It returns the
// thumbnail loads for newly bound rows.
func (v *View) layout() tea.Cmd {
	end := min(len(v.posts), v.top+len(v.pool))
	var free []*Row
	bound := make(map[int]*Row, len(v.pool))
	for _, r := range v.pool {
		idx := r.Index()
		if idx >= v.top && idx < end && r.Post() == v.posts[idx] {
			bound[idx] = r
			continue
		}
		free = append(free, r)
	}

	var cmds []tea.Cmd
	for i := v.top; i < end; i++ {
		if _, ok := bound[i]; ok {
			continue
		}
		r := free[0]
		free = free[1:]
		if r == v.drag {
			v.drag = nil
		}
		cmds = append(cmds, v.bind(r, v.posts[i], i))
	}
	for _, r := range free {
		if r == v.drag {
			v.drag = nil
		}
		if r.Post() != nil {
			r.Unbind()
		}
	}
	return tea.Batch(cmds...)
}

func (v *View) bind(r *Row, p *post.Post, index int) tea.Cmd {
	if v.thumbCols == 0 || !p.HasThumbnail() {
		r.Bind(p, index, nil)
		return nil
	}
	cached, ok := v.thumbs.Cached(p.ThumbnailURL)
	gen := r.Bind(p, index, cached)
	if ok {
		return nil
	}
	return v.thumbs.Load(p.ID, p.ThumbnailURL, gen)
}

// rowFor returns the row bound to list position index.
func (v *View) rowFor(index int) *Row {
	for _, r := range v.pool {
		if r.Index() == index && r.Post() != nil {
			return r
		}
	}
	return nil
}

// rowAt returns the row drawn at screen line y relative to the view.
func (v *View) rowAt(y int) *Row {
	if y < 0 {
		return nil
	}
	return v.rowFor(v.top + y/RowHeight)
}

// ThumbnailReady routes a loaded thumbnail to the row bound to its post.
// Deliveries for rows that were rebound in the meantime are dropped.
func (v *View) ThumbnailReady(msg thumb.ReadyMsg) bool {
	for _, r := range v.pool {
		if p := r.Post(); p != nil && p.ID == msg.PostID {
			if r.ThumbnailReady(msg.Image, msg.Generation) {
				return true
			}
		}
	}
	slog.Debug("Dropped stale thumbnail", "post", msg.PostID, "generation", msg.Generation)
	return false
}

// Update handles input for the feed. Mouse coordinates must be relative to
// the view's origin.
func (v *View) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case settleMsg:
		if msg.row.Generation() == msg.generation && msg.row.Gesture() == msg.gesture {
			msg.row.EndDrag()
		}
	case thumb.ReadyMsg:
		v.ThumbnailReady(msg)
	case tea.MouseClickMsg:
		return v.mouseDown(msg.Mouse())
	case tea.MouseMotionMsg:
		return v.mouseMove(msg.Mouse())
	case tea.MouseReleaseMsg:
		return v.mouseUp(msg.Mouse())
	case tea.MouseWheelMsg:
		switch msg.Mouse().Button {
		case tea.MouseWheelUp:
			return v.Scroll(-1)
		case tea.MouseWheelDown:
			return v.Scroll(1)
		}
	}
	return nil
}

func (v *View) mouseDown(m tea.Mouse) tea.Cmd {
	r := v.rowAt(m.Y)
	if r == nil {
		return nil
	}
	v.selected = r.Index()
	switch m.Button {
	case tea.MouseLeft:
		v.drag = r
		v.dragMoved = false
		v.dragStartX = m.X
		r.BeginDrag(m.X)
	case tea.MouseRight:
		return v.OpenMenu()
	}
	return nil
}

func (v *View) mouseMove(m tea.Mouse) tea.Cmd {
	if v.drag == nil {
		return nil
	}
	if m.X != v.dragStartX {
		v.dragMoved = true
	}
	resolved, fired := v.drag.Drag(m.X)
	if !fired {
		return nil
	}
	return v.dispatch(resolved, v.drag.Post())
}

func (v *View) mouseUp(m tea.Mouse) tea.Cmd {
	r := v.drag
	if r == nil {
		return nil
	}
	v.drag = nil
	r.EndDrag()
	if v.dragMoved {
		return nil
	}
	return v.tap(r, r.TapRegion(m.X, v.width))
}

// Tap selects the selected post, or its comments when secondary is set.
func (v *View) Tap(secondary bool) tea.Cmd {
	r := v.rowFor(v.selected)
	if r == nil {
		return nil
	}
	region := RegionPrimary
	if secondary {
		region = RegionSecondary
	}
	return v.tap(r, region)
}

func (v *View) tap(r *Row, region Region) tea.Cmd {
	kind := swipe.Link
	if region == RegionSecondary {
		kind = swipe.Comments
	}
	return v.dispatcher.Dispatch(kind, r.Post())
}

// Swipe replays a full swipe on the selected row, in the positive direction
// when positive is set.
func (v *View) Swipe(positive bool) tea.Cmd {
	r := v.rowFor(v.selected)
	if r == nil {
		return nil
	}
	resolved, fired := r.Replay(positive, v.thresholds)
	if !fired {
		r.EndDrag()
		return nil
	}
	gen, gesture := r.Generation(), r.Gesture()
	settle := tea.Tick(settleDelay, func(time.Time) tea.Msg {
		return settleMsg{row: r, generation: gen, gesture: gesture}
	})
	return tea.Batch(v.dispatch(resolved, r.Post()), settle)
}

// OpenMenu asks for the action menu of the selected post.
func (v *View) OpenMenu() tea.Cmd {
	p := v.Selected()
	if p == nil {
		return nil
	}
	return func() tea.Msg { return OpenMenuMsg{Post: p} }
}

func (v *View) dispatch(r swipe.Resolved, p *post.Post) tea.Cmd {
	slog.Debug("Swipe fired", "post", p.ID, "action", r.Kind)
	return v.dispatcher.Dispatch(r.Kind, p)
}

// Render renders the visible rows.
func (v *View) Render() string {
	if len(v.posts) == 0 {
		return v.com.Styles.Feed.Empty.Render("Nothing to show. Add feeds with `flick config set feeds`.")
	}
	var lines []string
	for _, r := range v.Rows() {
		lines = append(lines, r.Render(v.width, r.Index() == v.selected))
	}
	return strings.Join(lines, "\n")
}

// Draw draws the feed into area.
func (v *View) Draw(scr uv.Screen, area uv.Rectangle) {
	uv.NewStyledString(v.Render()).Draw(scr, area)
}
