package model

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/flick/internal/post"
	"github.com/charmbracelet/flick/internal/ui/dialog"
	"github.com/charmbracelet/flick/internal/uiutil"
	"github.com/pkg/browser"
)

// shareFooter ends every shared link.
const shareFooter = "Sent using flick"

func openBrowser(url string) error {
	return browser.OpenURL(url)
}

func writeClipboard(text string) error {
	return clipboard.WriteAll(text)
}

// ShareText returns the text copied when sharing url.
func ShareText(url string) string {
	return url + "\r\n\r\n" + shareFooter
}

// OpenURL implements [action.Host].
func (m *UI) OpenURL(url string) tea.Cmd {
	if url == "" {
		return uiutil.ReportWarn("This post has no link")
	}
	open := m.openURL
	return func() tea.Msg {
		if err := open(url); err != nil {
			return uiutil.ReportError(fmt.Errorf("open %s: %w", url, err))()
		}
		return nil
	}
}

// Share implements [action.Host]. The link is copied to the clipboard.
func (m *UI) Share(title, url string) tea.Cmd {
	copyText := m.copyText
	return func() tea.Msg {
		if err := copyText(ShareText(url)); err != nil {
			return uiutil.ReportError(fmt.Errorf("copy link: %w", err))()
		}
		return uiutil.ReportSuccess(fmt.Sprintf("Copied link to %q", title))()
	}
}

// ShowProfile implements [action.Host]. It lists what the author posted in
// the loaded feeds.
func (m *UI) ShowProfile(author string) tea.Cmd {
	if author == "" {
		return uiutil.ReportWarn("This post has no author")
	}
	m.dialog.AddDialog(dialog.NewProfile(m.com, author, m.feed.Posts()))
	return nil
}

// ShowProperties implements [action.Host].
func (m *UI) ShowProperties(p *post.Post) tea.Cmd {
	m.dialog.AddDialog(dialog.NewProperties(m.com, p))
	return nil
}

// Confirm implements [action.Host].
func (m *UI) Confirm(title, message string, onYes tea.Cmd) tea.Cmd {
	m.dialog.AddDialog(dialog.NewConfirm(m.com, title, message, onYes))
	return nil
}
