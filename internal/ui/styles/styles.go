package styles

import (
	"image/color"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/exp/charmtone"
)

const (
	CheckIcon   string = "✓"
	ErrorIcon   string = "×"
	WarningIcon string = "⚠"
	InfoIcon    string = "ⓘ"

	SavedIcon    string = "★"
	HiddenIcon   string = "⊘"
	UpvotedIcon  string = "▲"
	DownvoteIcon string = "▼"
	CommentIcon  string = "◆"

	BorderThick string = "▌"
)

type Styles struct {
	WindowTooSmall lipgloss.Style

	// Reusable text styles
	Base   lipgloss.Style
	Muted  lipgloss.Style
	Subtle lipgloss.Style

	Background color.Color

	// Inputs
	TextInput textinput.Styles

	// Help
	Help help.Styles

	// Buttons
	ButtonFocus lipgloss.Style
	ButtonBlur  lipgloss.Style

	// Header bar
	Header struct {
		Logo  lipgloss.Style
		Title lipgloss.Style
		Count lipgloss.Style
	}

	// Feed rows
	Feed struct {
		Title      lipgloss.Style
		TitleRead  lipgloss.Style
		Subtitle   lipgloss.Style
		Comments   lipgloss.Style
		Selected   lipgloss.Style
		Unselected lipgloss.Style
		Empty      lipgloss.Style

		SavedIcon    lipgloss.Style
		HiddenIcon   lipgloss.Style
		UpvotedIcon  lipgloss.Style
		DownvoteIcon lipgloss.Style

		// Swipe panels revealed behind a dragged row.
		PanelNegative  lipgloss.Style
		PanelPositive  lipgloss.Style
		PanelConfirmed lipgloss.Style

		ThumbPlaceholder lipgloss.Style
	}

	// Status bar
	Status struct {
		Base    lipgloss.Style
		Info    lipgloss.Style
		Success lipgloss.Style
		Warn    lipgloss.Style
		Error   lipgloss.Style
		Message lipgloss.Style
	}

	// Dialogs
	Dialog struct {
		Title        lipgloss.Style
		TitleText    lipgloss.Style
		TitleAccent  lipgloss.Style
		View         lipgloss.Style
		HelpView     lipgloss.Style
		InputPrompt  lipgloss.Style
		List         lipgloss.Style
		NormalItem   lipgloss.Style
		SelectedItem lipgloss.Style
		Label        lipgloss.Style
		Value        lipgloss.Style
		Help         help.Styles
	}
}

func DefaultStyles() Styles {
	var (
		primary   = charmtone.Charple
		secondary = charmtone.Dolly
		tertiary  = charmtone.Bok

		// Backgrounds
		bgBase        = charmtone.Pepper
		bgBaseLighter = charmtone.BBQ
		bgSubtle      = charmtone.Charcoal

		// Foregrounds
		fgBase      = charmtone.Ash
		fgMuted     = charmtone.Squid
		fgHalfMuted = charmtone.Smoke
		fgSubtle    = charmtone.Oyster
		fgSelected  = charmtone.Salt

		border      = charmtone.Charcoal
		borderFocus = charmtone.Charple

		// Status
		warning = charmtone.Zest
		info    = charmtone.Malibu

		white = charmtone.Butter

		green     = charmtone.Julep
		greenDark = charmtone.Guac

		red     = charmtone.Coral
		redDark = charmtone.Sriracha
	)

	base := lipgloss.NewStyle().Foreground(fgBase)

	s := Styles{}

	s.Background = bgBase

	s.TextInput = textinput.Styles{
		Focused: textinput.StyleState{
			Text:        base,
			Placeholder: base.Foreground(fgSubtle),
			Prompt:      base.Foreground(tertiary),
			Suggestion:  base.Foreground(fgSubtle),
		},
		Blurred: textinput.StyleState{
			Text:        base.Foreground(fgMuted),
			Placeholder: base.Foreground(fgSubtle),
			Prompt:      base.Foreground(fgMuted),
			Suggestion:  base.Foreground(fgSubtle),
		},
		Cursor: textinput.CursorStyle{
			Color: secondary,
			Shape: tea.CursorBar,
			Blink: true,
		},
	}

	s.Help = help.Styles{
		ShortKey:       base.Foreground(fgMuted),
		ShortDesc:      base.Foreground(fgSubtle),
		ShortSeparator: base.Foreground(border),
		Ellipsis:       base.Foreground(border),
		FullKey:        base.Foreground(fgMuted),
		FullDesc:       base.Foreground(fgSubtle),
		FullSeparator:  base.Foreground(border),
	}

	// text presets
	s.Base = lipgloss.NewStyle().Foreground(fgBase)
	s.Muted = lipgloss.NewStyle().Foreground(fgMuted)
	s.Subtle = lipgloss.NewStyle().Foreground(fgSubtle)

	s.WindowTooSmall = s.Muted

	// Buttons
	s.ButtonFocus = lipgloss.NewStyle().Foreground(white).Background(secondary)
	s.ButtonBlur = s.Base.Background(bgSubtle)

	// Header
	s.Header.Logo = lipgloss.NewStyle().Foreground(secondary).Bold(true)
	s.Header.Title = s.Base.Foreground(fgHalfMuted)
	s.Header.Count = s.Subtle

	// Feed
	s.Feed.Title = s.Base.Foreground(fgSelected).Bold(true)
	s.Feed.TitleRead = s.Base.Foreground(fgMuted)
	s.Feed.Subtitle = s.Subtle
	s.Feed.Comments = s.Base.Foreground(info)
	s.Feed.Selected = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderLeft(true).
		BorderForeground(primary).
		BorderStyle(lipgloss.Border{Left: BorderThick})
	s.Feed.Unselected = lipgloss.NewStyle().PaddingLeft(2)
	s.Feed.Empty = s.Muted.PaddingLeft(2)

	s.Feed.SavedIcon = lipgloss.NewStyle().Foreground(warning).SetString(SavedIcon)
	s.Feed.HiddenIcon = s.Muted.SetString(HiddenIcon)
	s.Feed.UpvotedIcon = lipgloss.NewStyle().Foreground(greenDark).SetString(UpvotedIcon)
	s.Feed.DownvoteIcon = lipgloss.NewStyle().Foreground(redDark).SetString(DownvoteIcon)

	panel := lipgloss.NewStyle().Foreground(white).Bold(true)
	s.Feed.PanelNegative = panel.Background(redDark)
	s.Feed.PanelPositive = panel.Background(greenDark)
	s.Feed.PanelConfirmed = panel.Background(primary)

	s.Feed.ThumbPlaceholder = lipgloss.NewStyle().Foreground(bgSubtle)

	// Status
	s.Status.Base = lipgloss.NewStyle().Padding(0, 1).Foreground(white)
	s.Status.Info = s.Status.Base.Background(info).SetString("OKAY!")
	s.Status.Success = s.Status.Base.Background(green).SetString("NICE!")
	s.Status.Warn = s.Status.Base.Foreground(bgBase).Background(warning).SetString("HEY!")
	s.Status.Error = s.Status.Base.Background(red).SetString("ERROR")
	s.Status.Message = s.Base.Foreground(fgHalfMuted).Background(bgBaseLighter).Padding(0, 1)

	// Dialog
	s.Dialog.Title = lipgloss.NewStyle().Padding(0, 1)
	s.Dialog.TitleText = lipgloss.NewStyle().Foreground(primary)
	s.Dialog.TitleAccent = lipgloss.NewStyle().Foreground(secondary)
	s.Dialog.View = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderFocus).
		Padding(0, 1)
	s.Dialog.HelpView = lipgloss.NewStyle().Padding(0, 1)
	s.Dialog.InputPrompt = lipgloss.NewStyle().Margin(0, 1)
	s.Dialog.List = lipgloss.NewStyle()
	s.Dialog.NormalItem = s.Base.Padding(0, 1)
	s.Dialog.SelectedItem = lipgloss.NewStyle().Padding(0, 1).Foreground(white).Background(primary)
	s.Dialog.Label = s.Muted.Width(12)
	s.Dialog.Value = s.Base
	s.Dialog.Help = s.Help

	return s
}
