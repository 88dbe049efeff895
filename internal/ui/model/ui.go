package model

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/flick/internal/action"
	"github.com/charmbracelet/flick/internal/post"
	"github.com/charmbracelet/flick/internal/remote"
	"github.com/charmbracelet/flick/internal/thumb"
	"github.com/charmbracelet/flick/internal/ui/common"
	"github.com/charmbracelet/flick/internal/ui/dialog"
	"github.com/charmbracelet/flick/internal/ui/feed"
	"github.com/charmbracelet/flick/internal/uiutil"
	uv "github.com/charmbracelet/ultraviolet"
	uvlayout "github.com/charmbracelet/ultraviolet/layout"
	"github.com/charmbracelet/ultraviolet/screen"
)

const (
	minWidth  = 40
	minHeight = 10

	headerHeight = 2
	statusHeight = 1
)

// Source provides the posts shown in the feed.
type Source interface {
	// Cached returns the posts available without network access.
	Cached(ctx context.Context) ([]*post.Post, error)
	// Refresh fetches the feeds and returns the updated posts. A non-nil
	// error may come with posts when only some feeds failed.
	Refresh(ctx context.Context) ([]*post.Post, error)
}

// postsLoadedMsg carries the result of loading the feed.
type postsLoadedMsg struct {
	posts     []*post.Post
	err       error
	refreshed bool
}

// UI is the main UI model.
type UI struct {
	com    *common.Common
	keyMap KeyMap
	help   help.Model
	dialog *dialog.Overlay

	feed       *feed.View
	dispatcher *action.Dispatcher
	mutator    remote.Mutator
	source     Source

	status     *uiutil.InfoMsg
	refreshing bool

	width, height int
	layout        layout

	openURL  func(url string) error
	copyText func(text string) error
}

var (
	_ action.Host              = (*UI)(nil)
	_ action.SelectionListener = (*UI)(nil)
)

// Option configures the [UI].
type Option func(*UI)

// WithBrowser replaces the function used to open URLs.
func WithBrowser(open func(url string) error) Option {
	return func(m *UI) { m.openURL = open }
}

// WithClipboard replaces the function used to copy shared links.
func WithClipboard(copyText func(text string) error) Option {
	return func(m *UI) { m.copyText = copyText }
}

// New creates a new instance of the [UI] model. thumbs may be nil when
// thumbnails are disabled.
func New(com *common.Common, mutator remote.Mutator, source Source, thumbs feed.Thumbnails, opts ...Option) *UI {
	ui := &UI{
		com:      com,
		keyMap:   DefaultKeyMap(),
		help:     help.New(),
		dialog:   dialog.NewOverlay(),
		mutator:  mutator,
		source:   source,
		openURL:  openBrowser,
		copyText: writeClipboard,
	}
	for _, opt := range opts {
		opt(ui)
	}
	ui.dispatcher = action.NewDispatcher(mutator, ui, ui)
	ui.feed = feed.New(com, ui.dispatcher, thumbs)
	ui.help.Styles = com.Styles.Help

	swipeCfg := com.Config.Swipe
	ui.keyMap.Feed.SwipeLeft.SetHelp("←/h", swipeCfg.Left.String())
	ui.keyMap.Feed.SwipeRight.SetHelp("→/l", swipeCfg.Right.String())
	return ui
}

// Init loads the cached posts first, then refreshes the feeds.
func (m *UI) Init() tea.Cmd {
	m.refreshing = true
	return tea.Sequence(m.loadCached(), m.refresh())
}

func (m *UI) loadCached() tea.Cmd {
	return func() tea.Msg {
		posts, err := m.source.Cached(context.Background())
		return postsLoadedMsg{posts: posts, err: err}
	}
}

func (m *UI) refresh() tea.Cmd {
	return func() tea.Msg {
		posts, err := m.source.Refresh(context.Background())
		return postsLoadedMsg{posts: posts, err: err, refreshed: true}
	}
}

// Update handles updates to the UI model.
func (m *UI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		cmds = append(cmds, m.updateLayoutAndSize())

	case postsLoadedMsg:
		if msg.refreshed {
			m.refreshing = false
		}
		if msg.err != nil {
			cmds = append(cmds, uiutil.ReportError(msg.err))
		}
		// a failed refresh keeps what is already shown
		if msg.posts != nil || msg.err == nil {
			cmds = append(cmds, m.feed.SetPosts(msg.posts))
		}

	case remote.DoneMsg:
		cmds = append(cmds, m.handleDone(msg))

	case thumb.ReadyMsg:
		m.feed.ThumbnailReady(msg)

	case feed.OpenMenuMsg:
		m.openMenu(msg.Post)

	case uiutil.InfoMsg:
		m.status = &msg
		cmds = append(cmds, uiutil.ClearStatusAfter(msg.TTL))

	case uiutil.ClearStatusMsg:
		m.status = nil

	case tea.KeyPressMsg:
		cmds = append(cmds, m.handleKeyPressMsg(msg))

	case tea.PasteMsg:
		if m.dialog.HasDialogs() {
			cmds = append(cmds, m.handleDialogAction(m.dialog.Update(msg)))
		}

	case tea.MouseClickMsg:
		if m.dialog.HasDialogs() {
			break
		}
		msg.X -= m.layout.main.Min.X
		msg.Y -= m.layout.main.Min.Y
		cmds = append(cmds, m.feed.Update(msg))

	case tea.MouseMotionMsg:
		if m.dialog.HasDialogs() {
			break
		}
		msg.X -= m.layout.main.Min.X
		msg.Y -= m.layout.main.Min.Y
		cmds = append(cmds, m.feed.Update(msg))

	case tea.MouseReleaseMsg:
		if m.dialog.HasDialogs() {
			break
		}
		msg.X -= m.layout.main.Min.X
		msg.Y -= m.layout.main.Min.Y
		cmds = append(cmds, m.feed.Update(msg))

	case tea.MouseWheelMsg:
		if m.dialog.HasDialogs() {
			break
		}
		cmds = append(cmds, m.feed.Update(msg))

	default:
		cmds = append(cmds, m.feed.Update(msg))
	}
	return m, tea.Batch(cmds...)
}

// handleDone reports a confirmed action. Hidden posts leave the feed.
func (m *UI) handleDone(msg remote.DoneMsg) tea.Cmd {
	var cmds []tea.Cmd
	if msg.Flags.Hidden {
		posts := make([]*post.Post, 0, len(m.feed.Posts()))
		for _, p := range m.feed.Posts() {
			if p.ID != msg.PostID {
				posts = append(posts, p)
			}
		}
		cmds = append(cmds, m.feed.SetPosts(posts))
	}
	// reads happen on every open and are not worth a status message
	if msg.Action != remote.MarkRead {
		cmds = append(cmds, uiutil.ReportSuccess(msg.Action.Past()))
	}
	return tea.Batch(cmds...)
}

func (m *UI) handleKeyPressMsg(msg tea.KeyPressMsg) tea.Cmd {
	// Always handle quit keys first
	if key.Matches(msg, m.keyMap.Interrupt) && !m.dialog.ContainsDialog(dialog.QuitID) ||
		key.Matches(msg, m.keyMap.Quit) && !m.dialog.HasDialogs() {
		m.dialog.AddDialog(dialog.NewQuit(m.com))
		return nil
	}

	// Route all messages to dialog if one is open.
	if m.dialog.HasDialogs() {
		return m.handleDialogAction(m.dialog.Update(msg))
	}

	k := &m.keyMap
	switch {
	case key.Matches(msg, k.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m.updateLayoutAndSize()
	case key.Matches(msg, k.Refresh):
		if m.refreshing {
			return uiutil.ReportInfo("Already refreshing")
		}
		m.refreshing = true
		return m.refresh()
	case key.Matches(msg, k.Feed.Up):
		return m.feed.MoveSelection(-1)
	case key.Matches(msg, k.Feed.Down):
		return m.feed.MoveSelection(1)
	case key.Matches(msg, k.Feed.PageUp):
		return m.feed.MoveSelection(-m.pageSize())
	case key.Matches(msg, k.Feed.PageDown):
		return m.feed.MoveSelection(m.pageSize())
	case key.Matches(msg, k.Feed.Top):
		return m.feed.MoveSelection(-len(m.feed.Posts()))
	case key.Matches(msg, k.Feed.Bottom):
		return m.feed.MoveSelection(len(m.feed.Posts()))
	case key.Matches(msg, k.Feed.SwipeLeft):
		return m.feed.Swipe(false)
	case key.Matches(msg, k.Feed.SwipeRight):
		return m.feed.Swipe(true)
	case key.Matches(msg, k.Feed.Open):
		return m.feed.Tap(false)
	case key.Matches(msg, k.Feed.Comments):
		return m.feed.Tap(true)
	case key.Matches(msg, k.Feed.Menu):
		return m.feed.OpenMenu()
	}
	return nil
}

// handleDialogAction carries out the action message returned by a dialog.
func (m *UI) handleDialogAction(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case dialog.ActionClose:
		m.dialog.RemoveFrontDialog()
	case dialog.ActionQuit:
		return tea.Quit
	case dialog.ActionCmd:
		return msg.Cmd
	case dialog.ActionAccept:
		m.dialog.RemoveFrontDialog()
		return msg.Cmd
	case dialog.ActionSelectKind:
		m.dialog.RemoveDialog(dialog.MenuID)
		slog.Debug("Menu action selected", "post", msg.Post.ID, "action", msg.Kind)
		return m.dispatcher.Dispatch(msg.Kind, msg.Post)
	}
	return nil
}

func (m *UI) openMenu(p *post.Post) {
	if p == nil {
		return
	}
	entries := action.Menu(p.Flags(), m.dispatcher.Authenticated())
	m.dialog.AddDialog(dialog.NewMenu(m.com, p, entries))
}

func (m *UI) pageSize() int {
	return max(1, m.layout.main.Dy()/feed.RowHeight)
}

// Feed returns the feed view.
func (m *UI) Feed() *feed.View {
	return m.feed
}

// Dialogs returns the dialog overlay.
func (m *UI) Dialogs() *dialog.Overlay {
	return m.dialog
}

// Draw implements [uv.Drawable] and draws the UI model.
func (m *UI) Draw(scr uv.Screen, area uv.Rectangle) {
	layout := m.generateLayout(area.Dx(), area.Dy())
	if m.layout != layout {
		m.layout = layout
		m.updateSize()
	}

	// Clear the screen first
	screen.Clear(scr)

	t := m.com.Styles
	if area.Dx() < minWidth || area.Dy() < minHeight {
		msg := t.WindowTooSmall.Render("Window too small!")
		uv.NewStyledString(msg).Draw(scr, common.CenterRect(area, lipgloss.Width(msg), 1))
		return
	}

	header := uv.NewStyledString(m.renderHeader(layout.header.Dx()))
	header.Draw(scr, layout.header)

	m.feed.Draw(scr, layout.main)

	status := uv.NewStyledString(m.renderStatus(layout.status.Dx()))
	status.Draw(scr, layout.status)

	// Add help layer
	help := uv.NewStyledString(m.help.View(m))
	help.Draw(scr, layout.help)

	// This needs to come last to overlay on top of everything
	if m.dialog.HasDialogs() {
		m.dialog.Draw(scr, area)
	}
}

// View renders the UI model's view.
func (m *UI) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.BackgroundColor = m.com.Styles.Background
	v.MouseMode = tea.MouseModeCellMotion
	v.WindowTitle = "flick"

	canvas := uv.NewScreenBuffer(m.width, m.height)
	m.Draw(canvas, canvas.Bounds())

	content := strings.ReplaceAll(canvas.Render(), "\r\n", "\n") // normalize newlines
	contentLines := strings.Split(content, "\n")
	for i, line := range contentLines {
		// Trim trailing spaces for concise rendering
		contentLines[i] = strings.TrimRight(line, " ")
	}

	v.Content = strings.Join(contentLines, "\n")
	return v
}

func (m *UI) renderHeader(width int) string {
	t := m.com.Styles
	logo := t.Header.Logo.Render("flick")
	title := t.Header.Title.Render("Feed")

	n := len(m.feed.Posts())
	count := fmt.Sprintf("%d %s", n, plural(n, "post", "posts"))
	if m.refreshing {
		count = "refreshing… " + count
	}
	count = t.Header.Count.Render(count)

	left := logo + " " + title
	gap := max(1, width-lipgloss.Width(left)-lipgloss.Width(count))
	return left + strings.Repeat(" ", gap) + count
}

func (m *UI) renderStatus(width int) string {
	if m.status == nil || m.status.Msg == "" {
		return ""
	}
	t := m.com.Styles
	var badge lipgloss.Style
	switch m.status.Type {
	case uiutil.InfoTypeSuccess:
		badge = t.Status.Success
	case uiutil.InfoTypeWarn:
		badge = t.Status.Warn
	case uiutil.InfoTypeError:
		badge = t.Status.Error
	default:
		badge = t.Status.Info
	}
	b := badge.String()
	msgWidth := max(0, width-lipgloss.Width(b))
	msg := common.Truncate(strings.ReplaceAll(m.status.Msg, "\n", " "), msgWidth-t.Status.Message.GetHorizontalFrameSize())
	return b + t.Status.Message.Width(msgWidth).Render(msg)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// ShortHelp implements [help.KeyMap].
func (m *UI) ShortHelp() []key.Binding {
	k := &m.keyMap
	return []key.Binding{
		k.Feed.SwipeLeft,
		k.Feed.SwipeRight,
		k.Feed.Open,
		k.Feed.Comments,
		k.Feed.Menu,
		k.Quit,
		k.Help,
	}
}

// FullHelp implements [help.KeyMap].
func (m *UI) FullHelp() [][]key.Binding {
	k := &m.keyMap
	help := k.Help
	help.SetHelp("?", "less")
	return [][]key.Binding{
		{
			k.Feed.Up,
			k.Feed.Down,
			k.Feed.PageUp,
			k.Feed.PageDown,
			k.Feed.Top,
			k.Feed.Bottom,
		},
		{
			k.Feed.SwipeLeft,
			k.Feed.SwipeRight,
			k.Feed.Open,
			k.Feed.Comments,
			k.Feed.Menu,
		},
		{
			k.Refresh,
			k.Quit,
			help,
		},
	}
}

// updateLayoutAndSize updates the layout and sizes of UI components.
func (m *UI) updateLayoutAndSize() tea.Cmd {
	m.layout = m.generateLayout(m.width, m.height)
	return m.updateSize()
}

// updateSize updates the sizes of UI components based on the current layout.
func (m *UI) updateSize() tea.Cmd {
	m.help.SetWidth(m.layout.help.Dx())
	return m.feed.SetSize(m.layout.main.Dx(), m.layout.main.Dy())
}

// generateLayout calculates the layout rectangles for all UI components based
// on the current terminal dimensions.
func (m *UI) generateLayout(w, h int) layout {
	// The screen area we're working with
	area := image.Rect(0, 0, w, h)

	helpHeight := 1
	var helpKeyMap help.KeyMap = m
	if m.help.ShowAll {
		for _, row := range helpKeyMap.FullHelp() {
			helpHeight = max(helpHeight, len(row))
		}
	}

	// Add app margins
	appRect := area
	appRect.Min.X += 1
	appRect.Max.X -= 1

	headerRect, appRect := uvlayout.SplitVertical(appRect, uvlayout.Fixed(headerHeight))
	appRect, helpRect := uvlayout.SplitVertical(appRect, uvlayout.Fixed(appRect.Dy()-helpHeight))
	mainRect, statusRect := uvlayout.SplitVertical(appRect, uvlayout.Fixed(appRect.Dy()-statusHeight))

	// the header keeps a blank line below it
	headerRect.Max.Y = headerRect.Min.Y + 1

	return layout{
		area:   area,
		header: headerRect,
		main:   mainRect,
		status: statusRect,
		help:   helpRect,
	}
}

// layout defines the positioning of UI elements.
type layout struct {
	// area is the overall available area.
	area uv.Rectangle

	// header shows the app name and post count.
	header uv.Rectangle

	// main is the area for the feed.
	main uv.Rectangle

	// status is the status bar line.
	status uv.Rectangle

	// help is the area for the help view.
	help uv.Rectangle
}
