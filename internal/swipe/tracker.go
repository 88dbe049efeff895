package swipe

import (
	"fmt"

	"github.com/charmbracelet/flick/internal/post"
)

// Default thresholds, in virtual pixels.
const (
	DefaultBeginThreshold  = 50
	DefaultActionThreshold = 150
	DefaultDeadZone        = 5
)

// Thresholds configures when a gesture may begin, when it fires and how far
// a drag must move before a panel is revealed.
type Thresholds struct {
	Begin    int
	Action   int
	DeadZone int
}

// DefaultThresholds returns the stock thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Begin:    DefaultBeginThreshold,
		Action:   DefaultActionThreshold,
		DeadZone: DefaultDeadZone,
	}
}

// Validate checks that the thresholds describe a usable gesture.
func (t Thresholds) Validate() error {
	switch {
	case t.Begin <= 0:
		return fmt.Errorf("begin threshold must be positive, got %d", t.Begin)
	case t.Action <= t.Begin:
		return fmt.Errorf("action threshold (%d) must exceed begin threshold (%d)", t.Action, t.Begin)
	case t.DeadZone < 0 || t.DeadZone >= t.Action:
		return fmt.Errorf("dead zone must be in [0, %d), got %d", t.Action, t.DeadZone)
	}
	return nil
}

// Phase is the lifecycle stage of a gesture.
type Phase uint8

// Gesture phases.
const (
	// Idle: no gesture in progress.
	Idle Phase = iota
	// Tracking: a gesture started inside the begin threshold, no panel shown.
	Tracking
	// Armed: a panel is revealed and the gesture can still fire.
	Armed
	// Fired: the gesture dispatched its action; further updates are ignored.
	Fired
	// Degraded: the gesture started beyond the begin threshold. Panels still
	// follow the drag but nothing fires.
	Degraded
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Tracking:
		return "tracking"
	case Armed:
		return "armed"
	case Fired:
		return "fired"
	case Degraded:
		return "degraded"
	}
	return fmt.Sprintf("Phase(%d)", p)
}

// State is a snapshot of the tracker.
type State struct {
	Phase  Phase
	Offset int
	// Negative and Positive are the actions resolved for each drag direction
	// at the start of the current gesture. They are zero outside a
	// firing-capable gesture.
	Negative Resolved
	Positive Resolved
	// Generation increments on every rebind.
	Generation uint64
}

// Tracker is the gesture state machine of one feed row. It is not safe for
// concurrent use and is meant to live on the UI update loop.
type Tracker struct {
	negative   Preference
	positive   Preference
	thresholds Thresholds

	state   State
	overlay Overlay
}

// NewTracker creates a tracker binding the negative (leftward) drag to
// negative and the positive (rightward) drag to positive.
func NewTracker(negative, positive Preference, thresholds Thresholds) *Tracker {
	return &Tracker{
		negative:   negative,
		positive:   positive,
		thresholds: thresholds,
	}
}

// Begin starts a new gesture at offset, resolving both directions against
// flags. Calling Begin while a gesture is in progress restarts it.
func (t *Tracker) Begin(offset int, flags post.Flags) {
	t.overlay.Reset()
	t.state.Offset = offset
	if abs(offset) >= t.thresholds.Begin {
		t.state.Phase = Degraded
		t.state.Negative = Resolved{}
		t.state.Positive = Resolved{}
		return
	}
	t.state.Phase = Tracking
	t.state.Negative = Resolve(t.negative, flags)
	t.state.Positive = Resolve(t.positive, flags)
}

// Update feeds the current drag offset. When the gesture crosses the action
// threshold it returns the action to dispatch and true, exactly once per
// gesture.
func (t *Tracker) Update(offset int) (Resolved, bool) {
	switch t.state.Phase {
	case Idle, Fired:
		return Resolved{}, false
	}
	t.state.Offset = offset

	if t.state.Phase != Degraded && abs(offset) > t.thresholds.Action {
		t.state.Phase = Fired
		fired := t.state.Positive
		if offset < 0 {
			fired = t.state.Negative
		}
		// The revealed panel sits on the side opposite to the drag.
		side := revealedSide(offset)
		t.showFor(offset)
		t.overlay.MarkConfirmed(side)
		return fired, true
	}

	if abs(offset) <= t.thresholds.DeadZone {
		t.overlay.Hide(SideNegative)
		t.overlay.Hide(SidePositive)
		if t.state.Phase == Armed {
			t.state.Phase = Tracking
		}
		return Resolved{}, false
	}

	t.showFor(offset)
	if t.state.Phase == Tracking {
		t.state.Phase = Armed
	}
	return Resolved{}, false
}

// Cancel ends the current gesture without firing, hiding both panels. The
// confirmation mark of a fired gesture is kept until the next Begin or
// Rebind.
func (t *Tracker) Cancel() {
	if t.state.Phase != Fired {
		t.overlay.Reset()
	}
	t.state.Phase = Idle
	t.state.Offset = 0
}

// Rebind resets the tracker for a new post: any gesture is abandoned, the
// overlays are cleared and the generation increments.
func (t *Tracker) Rebind() {
	t.overlay.Reset()
	t.state = State{Generation: t.state.Generation + 1}
}

// State returns a snapshot of the tracker state.
func (t *Tracker) State() State {
	return t.state
}

// Overlay returns a snapshot of the overlay panels.
func (t *Tracker) Overlay() Overlay {
	return t.overlay
}

// Generation returns the current binding generation.
func (t *Tracker) Generation() uint64 {
	return t.state.Generation
}

// Preferences returns the preferences bound to the negative and positive
// drag directions.
func (t *Tracker) Preferences() (negative, positive Preference) {
	return t.negative, t.positive
}

// showFor reveals the panel for a drag at offset and hides the other one.
// A negative drag reveals the positive side panel labelled with the negative
// action, and the other way around.
func (t *Tracker) showFor(offset int) {
	side := revealedSide(offset)
	t.overlay.Hide(side.Opposite())
	if t.state.Phase == Degraded {
		t.overlay.ShowLabel(side, "", IconNone)
		return
	}
	if offset < 0 {
		t.overlay.ShowLabel(side, t.state.Negative.Label, IconTowardNegative)
	} else {
		t.overlay.ShowLabel(side, t.state.Positive.Label, IconTowardPositive)
	}
}

func revealedSide(offset int) Side {
	if offset < 0 {
		return SidePositive
	}
	return SideNegative
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
