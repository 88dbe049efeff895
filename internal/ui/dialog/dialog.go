package dialog

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/flick/internal/ui/common"
	uv "github.com/charmbracelet/ultraviolet"
)

// CloseKey is the default key binding to close dialogs.
var CloseKey = key.NewBinding(
	key.WithKeys("esc", "alt+esc"),
	key.WithHelp("esc", "exit"),
)

// Dialog is a component that can be displayed on top of the UI. Update
// returns an action message (see actions.go) or nil.
type Dialog interface {
	ID() string
	Update(msg tea.Msg) tea.Msg
	View() string
}

// Overlay manages a stack of dialogs drawn on top of the UI. Only the front
// dialog receives input.
type Overlay struct {
	dialogs []Dialog
}

// NewOverlay creates a new [Overlay] instance.
func NewOverlay(dialogs ...Dialog) *Overlay {
	return &Overlay{
		dialogs: dialogs,
	}
}

// IsFrontDialog checks if the dialog with the specified ID is at the front.
func (d *Overlay) IsFrontDialog(dialogID string) bool {
	if len(d.dialogs) == 0 {
		return false
	}
	return d.dialogs[len(d.dialogs)-1].ID() == dialogID
}

// HasDialogs checks if there are any active dialogs.
func (d *Overlay) HasDialogs() bool {
	return len(d.dialogs) > 0
}

// ContainsDialog checks if a dialog with the specified ID exists.
func (d *Overlay) ContainsDialog(dialogID string) bool {
	return d.Dialog(dialogID) != nil
}

// AddDialog pushes a dialog on top of the stack. A dialog with the same ID
// already on the stack is replaced.
func (d *Overlay) AddDialog(dialog Dialog) {
	d.RemoveDialog(dialog.ID())
	d.dialogs = append(d.dialogs, dialog)
}

// RemoveDialog removes the dialog with the specified ID from the stack.
func (d *Overlay) RemoveDialog(dialogID string) {
	for i, dialog := range d.dialogs {
		if dialog.ID() == dialogID {
			d.removeDialog(i)
			return
		}
	}
}

// RemoveFrontDialog removes the front dialog from the stack.
func (d *Overlay) RemoveFrontDialog() {
	d.removeDialog(len(d.dialogs) - 1)
}

// Dialog returns the dialog with the specified ID, or nil if not found.
func (d *Overlay) Dialog(dialogID string) Dialog {
	for _, dialog := range d.dialogs {
		if dialog.ID() == dialogID {
			return dialog
		}
	}
	return nil
}

// DialogLast returns the front dialog, or nil if there are no dialogs.
func (d *Overlay) DialogLast() Dialog {
	if len(d.dialogs) == 0 {
		return nil
	}
	return d.dialogs[len(d.dialogs)-1]
}

// Update forwards msg to the front dialog and returns its action.
func (d *Overlay) Update(msg tea.Msg) tea.Msg {
	front := d.DialogLast()
	if front == nil {
		return nil
	}
	return front.Update(msg)
}

// Draw renders the overlay and its dialogs, back to front.
func (d *Overlay) Draw(scr uv.Screen, area uv.Rectangle) {
	for _, dialog := range d.dialogs {
		view := dialog.View()
		center := common.CenterRect(area, lipgloss.Width(view), lipgloss.Height(view))
		if area.Overlaps(center) {
			uv.NewStyledString(view).Draw(scr, center.Intersect(area))
		}
	}
}

func (d *Overlay) removeDialog(idx int) {
	if idx < 0 || idx >= len(d.dialogs) {
		return
	}
	d.dialogs = append(d.dialogs[:idx], d.dialogs[idx+1:]...)
}
