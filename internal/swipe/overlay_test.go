package swipe

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOverlay(t *testing.T) {
	t.Parallel()

	var o Overlay
	_, ok := o.Visible()
	require.False(t, ok)

	o.ShowLabel(SideNegative, "Save", IconTowardPositive)
	side, ok := o.Visible()
	require.True(t, ok)
	require.Equal(t, SideNegative, side)
	require.Equal(t, "»", o.Panel(side).Icon.Glyph())

	o.Hide(SideNegative)
	_, ok = o.Visible()
	require.False(t, ok)
	require.Equal(t, "Save", o.Panel(SideNegative).Label)

	o.MarkConfirmed(SidePositive)
	require.True(t, o.Panel(SidePositive).Confirmed)
	require.False(t, o.Panel(SidePositive).Visible)

	o.Reset()
	require.Equal(t, Overlay{}, o)
	require.Equal(t, SidePositive, SideNegative.Opposite())
	require.Equal(t, SideNegative, SidePositive.Opposite())
}
