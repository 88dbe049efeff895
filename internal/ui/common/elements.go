package common

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/flick/internal/ui/styles"
	"github.com/charmbracelet/x/ansi"
)

const titleFill = "╱"

// DialogTitle renders a dialog title followed by a decorative fill up to
// width cells.
func DialogTitle(t *styles.Styles, title string, width int) string {
	title = ansi.Truncate(title, max(0, width-2), "…")
	rendered := t.Dialog.TitleText.Render(title)
	remaining := width - lipgloss.Width(rendered) - 1
	if remaining <= 0 {
		return rendered
	}
	return rendered + " " + t.Dialog.TitleAccent.Render(strings.Repeat(titleFill, remaining))
}

// KeyValue renders an aligned label and value pair, truncating the value to
// fit width.
func KeyValue(t *styles.Styles, label, value string, width int) string {
	l := t.Dialog.Label.Render(label)
	value = ansi.Truncate(value, max(0, width-lipgloss.Width(l)), "…")
	return l + t.Dialog.Value.Render(value)
}

// Truncate shortens s to width cells using an ellipsis.
func Truncate(s string, width int) string {
	return ansi.Truncate(s, max(0, width), "…")
}
