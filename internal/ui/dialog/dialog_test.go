package dialog

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/flick/internal/action"
	"github.com/charmbracelet/flick/internal/config"
	"github.com/charmbracelet/flick/internal/post"
	"github.com/charmbracelet/flick/internal/swipe"
	"github.com/charmbracelet/flick/internal/ui/common"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func testCommon() *common.Common {
	return common.DefaultCommon(config.Defaults())
}

func press(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

type stubDialog struct{ id string }

func (s stubDialog) ID() string { return s.id }
func (s stubDialog) Update(tea.Msg) tea.Msg { return s.id }
func (s stubDialog) View() string { return s.id }

func TestOverlayStack(t *testing.T) {
	t.Parallel()

	o := NewOverlay()
	require.False(t, o.HasDialogs())
	require.Nil(t, o.Update(press("x")))

	o.AddDialog(stubDialog{"a"})
	o.AddDialog(stubDialog{"b"})
	require.True(t, o.IsFrontDialog("b"))
	require.True(t, o.ContainsDialog("a"))
	require.Equal(t, "b", o.Update(press("x")))

	// re-adding brings the dialog to the front without duplicating it
	o.AddDialog(stubDialog{"a"})
	require.True(t, o.IsFrontDialog("a"))

	o.RemoveFrontDialog()
	require.True(t, o.IsFrontDialog("b"))
	require.False(t, o.ContainsDialog("a"))

	o.RemoveDialog("b")
	require.False(t, o.HasDialogs())
	require.Nil(t, o.DialogLast())
	o.RemoveFrontDialog()
}

func TestOverlayDrawCentersDialog(t *testing.T) {
	t.Parallel()

	o := NewOverlay(stubDialog{"hello"})
	scr := uv.NewScreenBuffer(20, 3)
	o.Draw(scr, scr.Bounds())
	lines := ansi.Strip(scr.Render())
	require.Contains(t, lines, "hello")
}

func TestConfirmYesRunsCommand(t *testing.T) {
	t.Parallel()

	ran := false
	onYes := func() tea.Msg { ran = true; return nil }
	c := NewConfirm(testCommon(), "Report", action.ReportPrompt, onYes)
	require.Equal(t, ConfirmID, c.ID())
	require.Contains(t, ansi.Strip(c.View()), action.ReportPrompt)

	msg := c.Update(press("y"))
	accept, ok := msg.(ActionAccept)
	require.True(t, ok)
	accept.Cmd()
	require.True(t, ran)
}

func TestConfirmDecline(t *testing.T) {
	t.Parallel()

	c := NewConfirm(testCommon(), "Report", action.ReportPrompt, nil)
	require.Equal(t, ActionClose{}, c.Update(press("n")))
	require.Equal(t, ActionClose{}, c.Update(press("esc")))

	// switching to "No" and confirming declines
	require.Nil(t, c.Update(press("tab")))
	require.True(t, c.SelectedNo())
	require.Equal(t, ActionClose{}, c.Update(press("enter")))

	require.Nil(t, c.Update(press("left")))
	require.False(t, c.SelectedNo())
	_, ok := c.Update(press("enter")).(ActionAccept)
	require.True(t, ok)
}

func TestConfirmIgnoresNonKeyMessages(t *testing.T) {
	t.Parallel()

	c := NewConfirm(testCommon(), "Report", action.ReportPrompt, nil)
	require.Nil(t, c.Update(tea.WindowSizeMsg{Width: 80, Height: 24}))
	require.Nil(t, c.Update(tea.MouseClickMsg{X: 1, Y: 1, Button: tea.MouseLeft}))
	require.False(t, c.SelectedNo())
	_, ok := c.Update(press("enter")).(ActionAccept)
	require.True(t, ok)
}

func TestQuit(t *testing.T) {
	t.Parallel()

	q := NewQuit(testCommon())
	require.Equal(t, QuitID, q.ID())
	accept, ok := q.Update(press("y")).(ActionAccept)
	require.True(t, ok)
	_, isQuit := accept.Cmd().(tea.QuitMsg)
	require.True(t, isQuit)
}

func TestMenuSelectsEntry(t *testing.T) {
	t.Parallel()

	p := post.New("1", "https://example.com", "A post", "alice", 3, post.Flags{})
	m := NewMenu(testCommon(), p, action.Menu(p.Flags(), true))
	require.Equal(t, MenuID, m.ID())
	require.Len(t, m.Items(), 9)

	e, ok := m.Selected()
	require.True(t, ok)
	require.Equal(t, swipe.Upvote, e.Kind)

	m.Update(press("down"))
	m.Update(press("down"))
	msg := m.Update(press("enter"))
	require.Equal(t, ActionSelectKind{Kind: swipe.Save, Post: p}, msg)

	// wraps around
	m.Update(press("up"))
	m.Update(press("up"))
	m.Update(press("up"))
	e, _ = m.Selected()
	require.Equal(t, swipe.Properties, e.Kind)
}

func TestMenuFilters(t *testing.T) {
	t.Parallel()

	p := post.New("1", "https://example.com", "A post", "alice", 3, post.Flags{Saved: true})
	m := NewMenu(testCommon(), p, action.Menu(p.Flags(), false))
	require.Len(t, m.Items(), 4)

	for _, r := range "shar" {
		m.Update(press(string(r)))
	}
	items := m.Items()
	require.NotEmpty(t, items)
	require.Equal(t, swipe.Share, items[0].Kind)
	require.Contains(t, ansi.Strip(m.View()), "Share")

	for _, r := range "zzz" {
		m.Update(press(string(r)))
	}
	require.Empty(t, m.Items())
	require.Nil(t, m.Update(press("enter")))
	require.Contains(t, ansi.Strip(m.View()), "No matching actions")

	require.Equal(t, ActionClose{}, m.Update(press("esc")))
}

func TestHighlightMatches(t *testing.T) {
	t.Parallel()

	out := highlightMatches("Share", []int{0, 1})
	require.Equal(t, "Share", ansi.Strip(out))
	require.NotEqual(t, "Share", out)
	require.Equal(t, "Share", highlightMatches("Share", nil))
}

func TestProfile(t *testing.T) {
	t.Parallel()

	posts := []*post.Post{
		post.New("1", "u1", "First", "alice", 0, post.Flags{}),
		post.New("2", "u2", "Second", "bob", 0, post.Flags{}),
		post.New("3", "u3", "Third", "alice", 0, post.Flags{}),
	}
	posts[0].FeedTitle = "HN"
	posts[2].FeedTitle = "HN"

	d := NewProfile(testCommon(), "alice", posts)
	require.Equal(t, ProfileID, d.ID())
	require.Equal(t, [][2]string{
		{"Author", "alice"},
		{"Posts", "2 in this feed"},
		{"Feeds", "HN"},
	}, d.Rows())
	view := ansi.Strip(d.View())
	require.Contains(t, view, "First")
	require.Contains(t, view, "Third")
	require.NotContains(t, view, "Second")
	require.Equal(t, ActionClose{}, d.Update(press("esc")))
	require.Nil(t, d.Update(press("x")))
}

func TestProperties(t *testing.T) {
	t.Parallel()

	p := post.New("id-1", "https://example.com/a", "Title", "carol", 12, post.Flags{Saved: true, Read: true})
	p.Published = time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC)
	d := NewProperties(testCommon(), p)
	require.Equal(t, PropertiesID, d.ID())

	rows := map[string]string{}
	for _, r := range d.Rows() {
		rows[r[0]] = r[1]
	}
	require.Equal(t, "saved, read", rows["Flags"])
	require.Equal(t, "id-1", rows["ID"])
	require.Contains(t, rows["Published"], "2026-01-02 03:04")
	require.Contains(t, rows["Comments"], "12")
	require.Equal(t, ActionClose{}, d.Update(press("enter")))
}

func TestFlagSummary(t *testing.T) {
	t.Parallel()

	require.Equal(t, "none", FlagSummary(post.Flags{}))
	require.Equal(t, "upvoted, hidden", FlagSummary(post.Flags{Upvoted: true, Hidden: true}))
}
