// Package feed renders the scrollable list of posts and turns mouse drags
// and keys on its rows into swipe gestures.
package feed

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/flick/internal/post"
	"github.com/charmbracelet/flick/internal/swipe"
	"github.com/charmbracelet/flick/internal/thumb"
	"github.com/charmbracelet/flick/internal/ui/common"
	"github.com/charmbracelet/flick/internal/ui/styles"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
)

// RowHeight is the number of lines a row occupies.
const RowHeight = 3

const (
	gutterWidth = 2
	subtitleSep = " · "
)

// Region is a tap target inside a row.
type Region int

const (
	// RegionPrimary selects the post itself.
	RegionPrimary Region = iota
	// RegionSecondary is the comment counter; it selects the comments.
	RegionSecondary
)

// Row is a recyclable list row. It is bound to one post at a time and owns
// the gesture tracker for it; rebinding abandons any gesture and bumps the
// generation used to match async thumbnail deliveries.
type Row struct {
	styles    *styles.Styles
	tracker   *swipe.Tracker
	cellWidth int
	thumbCols int

	post  *post.Post
	index int
	thumb *thumb.Image
	now   func() time.Time

	// pressed is set between a press and its release. started is set once
	// the first horizontal motion began the gesture.
	pressed    bool
	started    bool
	dragStartX int
	// gesture counts presses and replays so delayed work can tell whether
	// the gesture it belongs to is still current.
	gesture uint64
}

// NewRow creates an unbound row. thumbCols is the width reserved for the
// thumbnail; zero disables thumbnails.
func NewRow(t *styles.Styles, tracker *swipe.Tracker, cellWidth, thumbCols int) *Row {
	return &Row{
		styles:    t,
		tracker:   tracker,
		cellWidth: max(1, cellWidth),
		thumbCols: thumbCols,
		index:     -1,
		now:       time.Now,
	}
}

// Bind attaches the row to p at list position index. cached is shown
// immediately; a better thumbnail may arrive later through
// [Row.ThumbnailReady] tagged with the returned generation.
func (r *Row) Bind(p *post.Post, index int, cached *thumb.Image) uint64 {
	r.tracker.Rebind()
	r.post = p
	r.index = index
	r.thumb = cached
	r.resetDrag()
	return r.tracker.Generation()
}

// Unbind detaches the row from its post.
func (r *Row) Unbind() {
	r.tracker.Rebind()
	r.post = nil
	r.index = -1
	r.thumb = nil
	r.resetDrag()
}

func (r *Row) resetDrag() {
	r.pressed = false
	r.started = false
	r.dragStartX = 0
}

// Post returns the bound post or nil.
func (r *Row) Post() *post.Post {
	return r.post
}

// Index returns the list position of the bound post, or -1.
func (r *Row) Index() int {
	return r.index
}

// Generation returns the binding generation.
func (r *Row) Generation() uint64 {
	return r.tracker.Generation()
}

// Gesture returns the counter of the current gesture.
func (r *Row) Gesture() uint64 {
	return r.gesture
}

// State returns the gesture state of the row.
func (r *Row) State() swipe.State {
	return r.tracker.State()
}

// Thumbnail returns the image currently shown, if any.
func (r *Row) Thumbnail() *thumb.Image {
	return r.thumb
}

// ThumbnailReady installs img if generation matches the current binding.
// It reports whether the image was accepted.
func (r *Row) ThumbnailReady(img *thumb.Image, generation uint64) bool {
	if r.post == nil || generation != r.tracker.Generation() {
		return false
	}
	r.thumb = img
	return true
}

// BeginDrag records a press at terminal column x. The gesture itself
// begins with the first horizontal motion, so a drag whose first sample
// arrives past the begin threshold is tracked in degraded mode.
func (r *Row) BeginDrag(x int) {
	if r.post == nil {
		return
	}
	r.tracker.Cancel()
	r.gesture++
	r.pressed = true
	r.started = false
	r.dragStartX = x
}

// Drag feeds the pointer position. It returns the action to dispatch when
// the gesture fires.
func (r *Row) Drag(x int) (swipe.Resolved, bool) {
	if r.post == nil || !r.pressed {
		return swipe.Resolved{}, false
	}
	offset := (x - r.dragStartX) * r.cellWidth
	if !r.started {
		if offset == 0 {
			return swipe.Resolved{}, false
		}
		r.started = true
		r.tracker.Begin(offset, r.post.Flags())
	}
	return r.tracker.Update(offset)
}

// EndDrag finishes the gesture.
func (r *Row) EndDrag() {
	r.tracker.Cancel()
	r.resetDrag()
}

// Replay runs a complete swipe in one direction, as if the user dragged
// past the action threshold. The row stays in its fired position until
// [Row.EndDrag].
func (r *Row) Replay(positive bool, th swipe.Thresholds) (swipe.Resolved, bool) {
	if r.post == nil {
		return swipe.Resolved{}, false
	}
	offset := th.Action + r.cellWidth
	if !positive {
		offset = -offset
	}
	r.resetDrag()
	r.gesture++
	r.tracker.Begin(0, r.post.Flags())
	r.tracker.Update(offset / 2)
	return r.tracker.Update(offset)
}

// shift returns how many columns the row content is displaced.
func (r *Row) shift(width int) int {
	s := r.tracker.State().Offset / r.cellWidth
	return max(-width, min(width, s))
}

// TapRegion returns the region under column x for a row of the given width.
func (r *Row) TapRegion(x, width int) Region {
	if r.post == nil {
		return RegionPrimary
	}
	if x >= width-lipgloss.Width(r.counter()) {
		return RegionSecondary
	}
	return RegionPrimary
}

func (r *Row) counter() string {
	if r.post == nil {
		return ""
	}
	return fmt.Sprintf(" %s %d", styles.CommentIcon, r.post.CommentCount)
}

// Render renders the row at width, displacing it by the current drag and
// drawing the revealed panel in the vacated space.
func (r *Row) Render(width int, selected bool) string {
	if r.post == nil || width <= 0 {
		return strings.Repeat("\n", RowHeight-1)
	}
	t := r.styles

	gutter := t.Feed.Unselected
	if selected {
		gutter = t.Feed.Selected
	}
	inner := max(0, width-gutterWidth)
	lines := r.body(inner)
	for i, l := range lines {
		lines[i] = gutter.Render(l)
	}

	shift := r.shift(width)
	if shift == 0 {
		return strings.Join(lines, "\n")
	}

	overlay := r.tracker.Overlay()
	side := swipe.SideNegative
	if shift < 0 {
		side = swipe.SidePositive
	}
	panel := r.renderPanel(overlay.Panel(side), side, abs(shift))
	for i, l := range lines {
		if shift < 0 {
			lines[i] = ansi.Cut(l, -shift, width) + panel[i]
		} else {
			lines[i] = panel[i] + ansi.Truncate(l, width-shift, "")
		}
	}
	return strings.Join(lines, "\n")
}

// body renders the unshifted row content, one string per line, each padded
// to width.
func (r *Row) body(width int) []string {
	t := r.styles
	p := r.post
	flags := p.Flags()

	var thumbLines []string
	textWidth := width
	if r.thumbCols > 0 && width > r.thumbCols+10 {
		var img string
		if r.thumb != nil {
			img = r.thumb.Render()
		} else {
			img = t.Feed.ThumbPlaceholder.Render(thumb.Placeholder(r.thumbCols, RowHeight))
		}
		thumbLines = strings.Split(img, "\n")
		textWidth = width - r.thumbCols - 1
	}

	counter := t.Feed.Comments.Render(r.counter())
	titleStyle := t.Feed.Title
	if flags.Read {
		titleStyle = t.Feed.TitleRead
	}
	title := titleStyle.Render(common.Truncate(p.Title, textWidth-lipgloss.Width(counter)))

	text := []string{
		pad(title, textWidth-lipgloss.Width(counter)) + counter,
		pad(t.Feed.Subtitle.Render(common.Truncate(r.subtitle(), textWidth)), textWidth),
		pad(r.meta(flags, textWidth), textWidth),
	}

	if thumbLines == nil {
		return text
	}
	out := make([]string, RowHeight)
	for i := range out {
		var img string
		if i < len(thumbLines) {
			img = thumbLines[i]
		}
		out[i] = pad(img, r.thumbCols) + " " + text[i]
	}
	return out
}

func (r *Row) subtitle() string {
	p := r.post
	var parts []string
	if p.FeedTitle != "" {
		parts = append(parts, p.FeedTitle)
	}
	if p.Author != "" {
		parts = append(parts, p.Author)
	}
	if !p.Published.IsZero() {
		parts = append(parts, humanize.RelTime(p.Published, r.now(), "ago", "from now"))
	}
	return strings.Join(parts, subtitleSep)
}

func (r *Row) meta(flags post.Flags, width int) string {
	t := r.styles
	var icons []string
	if flags.Upvoted {
		icons = append(icons, t.Feed.UpvotedIcon.String())
	}
	if flags.Downvoted {
		icons = append(icons, t.Feed.DownvoteIcon.String())
	}
	if flags.Saved {
		icons = append(icons, t.Feed.SavedIcon.String())
	}
	if flags.Hidden {
		icons = append(icons, t.Feed.HiddenIcon.String())
	}
	line := strings.Join(icons, " ")
	if host := hostOf(r.post.URL); host != "" {
		if line != "" {
			line += " "
		}
		line += t.Subtle.Render(common.Truncate(host, width-lipgloss.Width(line)))
	}
	return line
}

// renderPanel draws a swipe panel of the given width as RowHeight lines.
// The label sits on the middle line next to the direction icon.
func (r *Row) renderPanel(p swipe.Panel, side swipe.Side, width int) []string {
	t := r.styles
	// The panel on the positive side carries the negative direction's
	// action and the other way around.
	style := t.Feed.PanelPositive
	if side == swipe.SidePositive {
		style = t.Feed.PanelNegative
	}
	if p.Confirmed {
		style = t.Feed.PanelConfirmed
	}

	var label string
	if p.Visible {
		label = strings.TrimSpace(p.Icon.Glyph() + " " + p.Label)
		if p.Confirmed {
			label = styles.CheckIcon + " " + label
		}
	}
	label = ansi.Truncate(label, max(0, width-2), "")
	blank := style.Render(strings.Repeat(" ", width))

	lines := make([]string, RowHeight)
	for i := range lines {
		lines[i] = blank
	}
	if label != "" {
		text := " " + label
		if side == swipe.SidePositive {
			// right panel: keep the label against the vacated edge
			text = strings.Repeat(" ", max(0, width-lipgloss.Width(label)-1)) + label
		}
		lines[RowHeight/2] = style.Render(pad(text, width))
	}
	return lines
}

// pad right-pads s with spaces to width cells.
func pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
