package ui

import (
	"fyne.io/fyne/v2"

	"TouchBoard/internal/gesture"
)

// pointerTracker emulates touch contacts with a mouse. The primary button
// is pointer 0. While it is held, each secondary click latches one more
// pointer at the click position; latched pointers stay down until the
// primary button is released.
type pointerTracker struct {
	down    bool
	primary fyne.Position
	latched []gesture.Pointer
}

func (t *pointerTracker) reset() {
	t.down = false
	t.latched = nil
}

func (t *pointerTracker) contacts() []gesture.Pointer {
	ps := make([]gesture.Pointer, 0, 1+len(t.latched))
	ps = append(ps, gesture.Pointer{ID: 0, X: float64(t.primary.X), Y: float64(t.primary.Y)})
	return append(ps, t.latched...)
}

func (t *pointerTracker) press(pos fyne.Position) gesture.Event {
	t.down = true
	t.primary = pos
	t.latched = nil
	return gesture.Event{Action: gesture.ActionDown, Pointers: t.contacts()}
}

func (t *pointerTracker) latch(pos fyne.Position) (gesture.Event, bool) {
	if !t.down {
		return gesture.Event{}, false
	}
	t.latched = append(t.latched, gesture.Pointer{
		ID: len(t.latched) + 1,
		X:  float64(pos.X),
		Y:  float64(pos.Y),
	})
	ps := t.contacts()
	return gesture.Event{Action: gesture.ActionPointerDown, Index: len(ps) - 1, Pointers: ps}, true
}

func (t *pointerTracker) move(pos fyne.Position) (gesture.Event, bool) {
	if !t.down {
		return gesture.Event{}, false
	}
	t.primary = pos
	return gesture.Event{Action: gesture.ActionMove, Pointers: t.contacts()}, true
}

// release lifts the latched pointers, newest first, then the primary one.
func (t *pointerTracker) release(pos fyne.Position) []gesture.Event {
	if !t.down {
		return nil
	}
	t.primary = pos
	var evs []gesture.Event
	for len(t.latched) > 0 {
		ps := t.contacts()
		evs = append(evs, gesture.Event{Action: gesture.ActionPointerUp, Index: len(ps) - 1, Pointers: ps})
		t.latched = t.latched[:len(t.latched)-1]
	}
	evs = append(evs, gesture.Event{Action: gesture.ActionUp, Pointers: t.contacts()})
	t.reset()
	return evs
}
