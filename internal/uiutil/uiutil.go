// Package uiutil provides helpers for reporting status from commands back to
// the UI.
package uiutil

import (
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"
)

// DefaultTTL is how long a status message stays on screen.
const DefaultTTL = 4 * time.Second

// CmdHandler wraps msg in a command.
func CmdHandler(msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return msg
	}
}

// ReportError logs err and returns a command showing it in the status bar.
func ReportError(err error) tea.Cmd {
	slog.Error("Error reported", "error", err)
	return CmdHandler(InfoMsg{
		Type: InfoTypeError,
		Msg:  err.Error(),
	})
}

type InfoType int

const (
	InfoTypeInfo InfoType = iota
	InfoTypeSuccess
	InfoTypeWarn
	InfoTypeError
)

func ReportInfo(info string) tea.Cmd {
	return CmdHandler(InfoMsg{
		Type: InfoTypeInfo,
		Msg:  info,
	})
}

func ReportSuccess(msg string) tea.Cmd {
	return CmdHandler(InfoMsg{
		Type: InfoTypeSuccess,
		Msg:  msg,
	})
}

func ReportWarn(warn string) tea.Cmd {
	return CmdHandler(InfoMsg{
		Type: InfoTypeWarn,
		Msg:  warn,
	})
}

// ClearStatusAfter returns a command that clears the status bar once ttl
// elapsed. A zero ttl uses [DefaultTTL].
func ClearStatusAfter(ttl time.Duration) tea.Cmd {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return tea.Tick(ttl, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

type (
	InfoMsg struct {
		Type InfoType
		Msg  string
		TTL  time.Duration
	}
	ClearStatusMsg struct{}
)
