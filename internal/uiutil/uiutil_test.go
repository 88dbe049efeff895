package uiutil

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReport(t *testing.T) {
	t.Parallel()

	msg := ReportError(errors.New("nope"))()
	require.Equal(t, InfoMsg{Type: InfoTypeError, Msg: "nope"}, msg)

	require.Equal(t, InfoMsg{Type: InfoTypeInfo, Msg: "hi"}, ReportInfo("hi")())
	require.Equal(t, InfoMsg{Type: InfoTypeSuccess, Msg: "ok"}, ReportSuccess("ok")())
	require.Equal(t, InfoMsg{Type: InfoTypeWarn, Msg: "hm"}, ReportWarn("hm")())
	require.Equal(t, "x", CmdHandler("x")())
}
