package dialog

import (
	"strings"

	"github.com/charmbracelet/flick/internal/ui/common"
	"github.com/charmbracelet/flick/internal/ui/styles"
)

// RenderContext is a dialog rendering context that can be used to render
// common dialog layouts.
type RenderContext struct {
	// Styles is the styles to use for rendering.
	Styles *styles.Styles
	// Width is the total width of the dialog including any margins, borders,
	// and paddings.
	Width int
	// Title is the title of the dialog, rendered above the parts.
	Title string
	// Parts are the rendered parts of the dialog, separated by blank lines.
	Parts []string
	// Help is rendered below the parts using the dialog help style.
	Help string
}

// NewRenderContext creates a new RenderContext with the provided styles and width.
func NewRenderContext(t *styles.Styles, width int) *RenderContext {
	return &RenderContext{
		Styles: t,
		Width:  width,
	}
}

// AddPart adds a rendered part to the dialog. Empty parts are ignored.
func (rc *RenderContext) AddPart(part string) {
	if len(part) > 0 {
		rc.Parts = append(rc.Parts, part)
	}
}

// InnerWidth returns the width available to the parts.
func (rc *RenderContext) InnerWidth() int {
	return max(0, rc.Width-rc.Styles.Dialog.View.GetHorizontalFrameSize())
}

// Render renders the dialog using the provided context.
func (rc *RenderContext) Render() string {
	titleStyle := rc.Styles.Dialog.Title
	dialogStyle := rc.Styles.Dialog.View.Width(rc.Width)

	var parts []string
	if len(rc.Title) > 0 {
		title := common.DialogTitle(rc.Styles, rc.Title,
			max(0, rc.InnerWidth()-titleStyle.GetHorizontalFrameSize()))
		parts = append(parts, titleStyle.Render(title), "")
	}

	for i, p := range rc.Parts {
		parts = append(parts, p)
		if i < len(rc.Parts)-1 {
			parts = append(parts, "")
		}
	}

	if len(rc.Help) > 0 {
		parts = append(parts, "")
		helpStyle := rc.Styles.Dialog.HelpView.Width(rc.InnerWidth())
		parts = append(parts, helpStyle.Render(rc.Help))
	}

	return dialogStyle.Render(strings.Join(parts, "\n"))
}
