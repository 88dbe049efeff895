package dialog

import (
	"fmt"
	"slices"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/flick/internal/post"
	"github.com/charmbracelet/flick/internal/ui/common"
	"github.com/dustin/go-humanize"
)

const (
	// ProfileID is the identifier for the user profile dialog.
	ProfileID = "profile"
	// PropertiesID is the identifier for the post properties dialog.
	PropertiesID = "properties"
)

const (
	infoWidth       = 64
	profileMaxPosts = 5
)

// Info is a read-only dialog listing key/value rows. It backs the profile and
// properties dialogs.
type Info struct {
	com   *common.Common
	id    string
	title string
	rows  [][2]string
	extra []string
	close key.Binding
	help  help.Model
}

var _ Dialog = (*Info)(nil)

func newInfo(com *common.Common, id, title string) *Info {
	closeKey := key.NewBinding(
		key.WithKeys("esc", "alt+esc", "enter", "q"),
		key.WithHelp("esc", "close"),
	)
	h := help.New()
	h.Styles = com.Styles.Dialog.Help
	return &Info{com: com, id: id, title: title, close: closeKey, help: h}
}

// NewProfile creates a dialog describing author, listing their posts from
// the loaded feed.
func NewProfile(com *common.Common, author string, posts []*post.Post) *Info {
	d := newInfo(com, ProfileID, "Profile")
	if author == "" {
		author = "unknown"
	}
	var feeds []string
	var titles []string
	for _, p := range posts {
		if p.Author != author {
			continue
		}
		if p.FeedTitle != "" && !slices.Contains(feeds, p.FeedTitle) {
			feeds = append(feeds, p.FeedTitle)
		}
		titles = append(titles, p.Title)
	}
	d.rows = [][2]string{
		{"Author", author},
		{"Posts", fmt.Sprintf("%d in this feed", len(titles))},
	}
	if len(feeds) > 0 {
		d.rows = append(d.rows, [2]string{"Feeds", strings.Join(feeds, ", ")})
	}
	if len(titles) > profileMaxPosts {
		titles = titles[:profileMaxPosts]
	}
	d.extra = titles
	return d
}

// NewProperties creates a dialog with the details of p.
func NewProperties(com *common.Common, p *post.Post) *Info {
	d := newInfo(com, PropertiesID, "Properties")
	published := "unknown"
	if !p.Published.IsZero() {
		published = fmt.Sprintf("%s (%s)", p.Published.Format("2006-01-02 15:04"), humanize.Time(p.Published))
	}
	d.rows = [][2]string{
		{"Title", p.Title},
		{"Feed", p.FeedTitle},
		{"Author", p.Author},
		{"Published", published},
		{"Link", p.URL},
		{"Comments", fmt.Sprintf("%d  %s", p.CommentCount, p.Comments())},
		{"Flags", FlagSummary(p.Flags())},
		{"ID", p.ID},
	}
	return d
}

// FlagSummary lists the flags that are set, or "none".
func FlagSummary(f post.Flags) string {
	var set []string
	for _, fl := range []struct {
		on   bool
		name string
	}{
		{f.Upvoted, "upvoted"},
		{f.Downvoted, "downvoted"},
		{f.Saved, "saved"},
		{f.Hidden, "hidden"},
		{f.Read, "read"},
	} {
		if fl.on {
			set = append(set, fl.name)
		}
	}
	if len(set) == 0 {
		return "none"
	}
	return strings.Join(set, ", ")
}

// ID implements [Dialog].
func (d *Info) ID() string {
	return d.id
}

// Rows returns the label/value pairs shown by the dialog.
func (d *Info) Rows() [][2]string {
	return d.rows
}

// Update implements [Dialog].
func (d *Info) Update(msg tea.Msg) tea.Msg {
	if msg, ok := msg.(tea.KeyPressMsg); ok && key.Matches(msg, d.close) {
		return ActionClose{}
	}
	return nil
}

// View implements [Dialog].
func (d *Info) View() string {
	t := d.com.Styles
	rc := NewRenderContext(t, infoWidth)
	rc.Title = d.title
	width := rc.InnerWidth()

	lines := make([]string, 0, len(d.rows))
	for _, r := range d.rows {
		lines = append(lines, common.KeyValue(t, r[0], r[1], width))
	}
	rc.AddPart(strings.Join(lines, "\n"))

	if len(d.extra) > 0 {
		extra := make([]string, 0, len(d.extra))
		for _, e := range d.extra {
			extra = append(extra, t.Subtle.Render(common.Truncate("• "+e, width)))
		}
		rc.AddPart(strings.Join(extra, "\n"))
	}
	rc.Help = d.help.View(d)
	return rc.Render()
}

// ShortHelp implements [help.KeyMap].
func (d *Info) ShortHelp() []key.Binding {
	return []key.Binding{d.close}
}

// FullHelp implements [help.KeyMap].
func (d *Info) FullHelp() [][]key.Binding {
	return [][]key.Binding{{d.close}}
}
