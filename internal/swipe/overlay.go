package swipe

// Side identifies one of the two overlay panels of a row.
type Side uint8

// Overlay panel sides.
const (
	SideNegative Side = iota
	SidePositive
)

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == SideNegative {
		return SidePositive
	}
	return SideNegative
}

func (s Side) String() string {
	if s == SideNegative {
		return "negative"
	}
	return "positive"
}

// Icon is the directional glyph drawn next to a panel label.
type Icon uint8

// Panel icons.
const (
	IconNone Icon = iota
	IconTowardNegative
	IconTowardPositive
)

// Glyph returns the string drawn for the icon.
func (i Icon) Glyph() string {
	switch i {
	case IconTowardNegative:
		return "«"
	case IconTowardPositive:
		return "»"
	}
	return ""
}

// Panel is the presentation state of one overlay panel.
type Panel struct {
	Visible   bool
	Label     string
	Icon      Icon
	Confirmed bool
}

// Overlay holds the two directional panels of a row. It only records what
// should be drawn; the feed row renders it.
type Overlay struct {
	panels [2]Panel
}

// ShowLabel makes the panel on side visible with the given label and icon.
// A previous confirmation mark on that panel is kept.
func (o *Overlay) ShowLabel(side Side, label string, icon Icon) {
	p := &o.panels[side]
	p.Visible = true
	p.Label = label
	p.Icon = icon
}

// Hide hides the panel on side. The label is kept so a panel that is shown
// again without a new label still reads correctly.
func (o *Overlay) Hide(side Side) {
	o.panels[side].Visible = false
}

// MarkConfirmed adds the confirmation mark to the panel on side.
func (o *Overlay) MarkConfirmed(side Side) {
	o.panels[side].Confirmed = true
}

// Reset hides both panels and clears labels and confirmation marks.
func (o *Overlay) Reset() {
	o.panels = [2]Panel{}
}

// Panel returns a copy of the panel on side.
func (o Overlay) Panel(side Side) Panel {
	return o.panels[side]
}

// Visible returns the side of the visible panel, if any.
func (o Overlay) Visible() (Side, bool) {
	for _, side := range [...]Side{SideNegative, SidePositive} {
		if o.panels[side].Visible {
			return side, true
		}
	}
	return 0, false
}
