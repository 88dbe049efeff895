package dialog

import (
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/flick/internal/action"
	"github.com/charmbracelet/flick/internal/post"
	"github.com/charmbracelet/flick/internal/ui/common"
	"github.com/charmbracelet/x/ansi"
	"github.com/sahilm/fuzzy"
)

// MenuID is the identifier for the context action menu.
const MenuID = "actions"

const menuWidth = 44

// menuItem is a menu entry together with its current fuzzy match.
type menuItem struct {
	action.MenuEntry
	match fuzzy.Match
}

// Menu is the context action menu of a post. Entries are filtered with fuzzy
// matching as the user types.
type Menu struct {
	com    *common.Common
	post   *post.Post
	keyMap ListKeyMap

	entries  []action.MenuEntry
	items    []menuItem
	selected int

	help  help.Model
	input textinput.Model
}

var _ Dialog = (*Menu)(nil)

// NewMenu creates an action menu for p with the given entries.
func NewMenu(com *common.Common, p *post.Post, entries []action.MenuEntry) *Menu {
	m := &Menu{
		com:     com,
		post:    p,
		keyMap:  DefaultListKeyMap(),
		entries: entries,
	}

	m.help = help.New()
	m.help.Styles = com.Styles.Dialog.Help

	m.input = textinput.New()
	m.input.Placeholder = "Type to filter"
	m.input.SetStyles(com.Styles.TextInput)
	m.input.SetWidth(menuWidth - com.Styles.Dialog.View.GetHorizontalFrameSize() -
		com.Styles.Dialog.InputPrompt.GetHorizontalFrameSize() - 1)
	m.input.Focus()

	m.setFilter("")
	return m
}

// ID implements [Dialog].
func (m *Menu) ID() string {
	return MenuID
}

// Post returns the post the menu acts on.
func (m *Menu) Post() *post.Post {
	return m.post
}

// Items returns the entries currently shown, in display order.
func (m *Menu) Items() []action.MenuEntry {
	out := make([]action.MenuEntry, len(m.items))
	for i, it := range m.items {
		out[i] = it.MenuEntry
	}
	return out
}

// Selected returns the highlighted entry.
func (m *Menu) Selected() (action.MenuEntry, bool) {
	if m.selected < 0 || m.selected >= len(m.items) {
		return action.MenuEntry{}, false
	}
	return m.items[m.selected].MenuEntry, true
}

// Update implements [Dialog].
func (m *Menu) Update(msg tea.Msg) tea.Msg {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, m.keyMap.Close):
			return ActionClose{}
		case key.Matches(msg, m.keyMap.Previous):
			m.move(-1)
		case key.Matches(msg, m.keyMap.Next):
			m.move(1)
		case key.Matches(msg, m.keyMap.Select):
			if e, ok := m.Selected(); ok {
				return ActionSelectKind{Kind: e.Kind, Post: m.post}
			}
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			m.setFilter(m.input.Value())
			if cmd != nil {
				return ActionCmd{Cmd: cmd}
			}
		}
	case tea.PasteMsg:
		m.input, _ = m.input.Update(msg)
		m.setFilter(m.input.Value())
	}
	return nil
}

func (m *Menu) move(delta int) {
	if len(m.items) == 0 {
		return
	}
	m.selected = (m.selected + delta + len(m.items)) % len(m.items)
}

func (m *Menu) setFilter(q string) {
	q = strings.TrimSpace(q)
	m.selected = 0
	m.items = m.items[:0]
	if q == "" {
		for _, e := range m.entries {
			m.items = append(m.items, menuItem{MenuEntry: e})
		}
		return
	}
	labels := make([]string, len(m.entries))
	for i, e := range m.entries {
		labels[i] = e.Label
	}
	for _, match := range fuzzy.Find(q, labels) {
		m.items = append(m.items, menuItem{MenuEntry: m.entries[match.Index], match: match})
	}
}

// View implements [Dialog].
func (m *Menu) View() string {
	t := m.com.Styles
	rc := NewRenderContext(t, menuWidth)
	rc.Title = "Actions"
	if m.post != nil {
		rc.AddPart(t.Subtle.Render(common.Truncate(m.post.Title, rc.InnerWidth())))
	}
	rc.AddPart(t.Dialog.InputPrompt.Render(m.input.View()))

	lines := make([]string, 0, len(m.entries))
	for i, it := range m.items {
		lines = append(lines, m.renderItem(it, i == m.selected, rc.InnerWidth()))
	}
	if len(lines) == 0 {
		lines = append(lines, t.Muted.PaddingLeft(1).Render("No matching actions"))
	}
	// pad the list to avoid jumping while filtering
	for len(lines) < len(m.entries) {
		lines = append(lines, "")
	}
	rc.AddPart(t.Dialog.List.Render(strings.Join(lines, "\n")))
	rc.Help = m.help.View(m)
	return rc.Render()
}

func (m *Menu) renderItem(it menuItem, focused bool, width int) string {
	t := m.com.Styles
	style := t.Dialog.NormalItem
	if focused {
		style = t.Dialog.SelectedItem
	}
	width -= style.GetHorizontalFrameSize()
	title := highlightMatches(it.Label, it.match.MatchedIndexes)
	title = ansi.Truncate(title, max(0, width), "…")
	return style.Width(width + style.GetHorizontalFrameSize()).Render(
		title + strings.Repeat(" ", max(0, width-lipgloss.Width(title))),
	)
}

// highlightMatches underlines the runes of s starting at the given byte
// offsets.
func highlightMatches(s string, indexes []int) string {
	if len(indexes) == 0 {
		return s
	}
	matched := make(map[int]struct{}, len(indexes))
	for _, i := range indexes {
		matched[i] = struct{}{}
	}
	var b strings.Builder
	on := false
	for i, r := range s {
		_, hit := matched[i]
		if hit != on {
			// ansi.Style only toggles the underline attribute, leaving the
			// surrounding item style intact.
			b.WriteString(ansi.NewStyle().Underline(hit).String())
			on = hit
		}
		b.WriteRune(r)
	}
	if on {
		b.WriteString(ansi.NewStyle().Underline(false).String())
	}
	return b.String()
}

// ShortHelp implements [help.KeyMap].
func (m *Menu) ShortHelp() []key.Binding {
	return []key.Binding{
		m.keyMap.Previous,
		m.keyMap.Next,
		m.keyMap.Select,
		m.keyMap.Close,
	}
}

// FullHelp implements [help.KeyMap].
func (m *Menu) FullHelp() [][]key.Binding {
	return [][]key.Binding{m.ShortHelp()}
}
