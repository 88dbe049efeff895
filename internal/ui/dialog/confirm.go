package dialog

import (
	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/flick/internal/ui/common"
)

const (
	// ConfirmID is the identifier for generic yes/no dialogs.
	ConfirmID = "confirm"
	// QuitID is the identifier for the quit dialog.
	QuitID = "quit"
)

const quitQuestion = "Are you sure you want to quit?"

// Confirm is a yes/no dialog. Choosing yes closes the dialog and runs its
// command; anything else only closes it.
type Confirm struct {
	com        *common.Common
	id         string
	title      string
	question   string
	onYes      tea.Cmd
	keyMap     ConfirmKeyMap
	help       help.Model
	selectedNo bool // true if "No" button is selected
}

var _ Dialog = (*Confirm)(nil)

// NewConfirm creates a confirmation dialog that runs onYes when accepted.
func NewConfirm(com *common.Common, title, question string, onYes tea.Cmd) *Confirm {
	return newConfirm(com, ConfirmID, title, question, onYes)
}

// NewQuit creates a new quit confirmation dialog.
func NewQuit(com *common.Common) *Confirm {
	q := newConfirm(com, QuitID, "", quitQuestion, tea.Quit)
	q.keyMap.Yes.SetKeys("y", "Y", "ctrl+c")
	return q
}

func newConfirm(com *common.Common, id, title, question string, onYes tea.Cmd) *Confirm {
	h := help.New()
	h.Styles = com.Styles.Dialog.Help
	return &Confirm{
		com:      com,
		id:       id,
		title:    title,
		question: question,
		onYes:    onYes,
		keyMap:   DefaultConfirmKeyMap(),
		help:     h,
	}
}

// ID implements [Dialog].
func (c *Confirm) ID() string {
	return c.id
}

// SelectedNo reports whether the "No" button has focus.
func (c *Confirm) SelectedNo() bool {
	return c.selectedNo
}

// Update implements [Dialog].
func (c *Confirm) Update(msg tea.Msg) tea.Msg {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, c.keyMap.LeftRight, c.keyMap.Tab):
			c.selectedNo = !c.selectedNo
		case key.Matches(msg, c.keyMap.EnterSpace):
			if c.selectedNo {
				return ActionClose{}
			}
			return ActionAccept{Cmd: c.onYes}
		case key.Matches(msg, c.keyMap.Yes):
			return ActionAccept{Cmd: c.onYes}
		case key.Matches(msg, c.keyMap.No, c.keyMap.Close):
			return ActionClose{}
		}
	}
	return nil
}

// View implements [Dialog].
func (c *Confirm) View() string {
	t := c.com.Styles
	yesStyle, noStyle := t.ButtonFocus, t.ButtonBlur
	if c.selectedNo {
		yesStyle, noStyle = noStyle, yesStyle
	}

	const horizontalPadding = 3
	yesButton := yesStyle.PaddingLeft(horizontalPadding).Underline(true).Render("Y") +
		yesStyle.PaddingRight(horizontalPadding).Render("ep!")
	noButton := noStyle.PaddingLeft(horizontalPadding).Underline(true).Render("N") +
		noStyle.PaddingRight(horizontalPadding).Render("ope")

	question := t.Base.Render(c.question)
	width := max(lipgloss.Width(question), 30)
	buttons := lipgloss.NewStyle().Width(width).Align(lipgloss.Right).Render(
		lipgloss.JoinHorizontal(lipgloss.Center, yesButton, "  ", noButton),
	)

	rc := NewRenderContext(t, width+t.Dialog.View.GetHorizontalFrameSize())
	rc.Title = c.title
	rc.AddPart(question)
	rc.AddPart(buttons)
	rc.Help = c.help.View(c)
	return rc.Render()
}

// ShortHelp implements [help.KeyMap].
func (c *Confirm) ShortHelp() []key.Binding {
	return []key.Binding{
		c.keyMap.LeftRight,
		c.keyMap.EnterSpace,
		c.keyMap.Close,
	}
}

// FullHelp implements [help.KeyMap].
func (c *Confirm) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{c.keyMap.LeftRight, c.keyMap.EnterSpace, c.keyMap.Yes, c.keyMap.No},
		{c.keyMap.Tab, c.keyMap.Close},
	}
}
