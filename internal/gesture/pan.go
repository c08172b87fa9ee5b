package gesture

import (
	"math"

	"TouchBoard/internal/state"
)

// PanDetector recognizes drag gestures independently of shape dispatch.
// It follows the focal point of all pointers; once that point has moved
// further than the slop from where the gesture started, every move reports
// the delta since the previous report.
type PanDetector struct {
	slop      float64
	start     state.Point
	last      state.Point
	tracking  bool
	scrolling bool
}

// NewPanDetector creates a detector with the given slop.
func NewPanDetector(slop float64) *PanDetector {
	return &PanDetector{slop: slop}
}

// Scrolling reports whether the slop has been exceeded in the current gesture.
func (d *PanDetector) Scrolling() bool { return d.scrolling }

// Reset forgets the current gesture.
func (d *PanDetector) Reset() {
	d.tracking = false
	d.scrolling = false
}

// Observe feeds one event to the detector. ok is true when the event moved
// the focal point of an active scroll; dx and dy are then the translation.
func (d *PanDetector) Observe(ev Event) (dx, dy float64, ok bool) {
	switch ev.Action {
	case ActionDown:
		focal, has := ev.Focal()
		if !has {
			return 0, 0, false
		}
		d.start, d.last = focal, focal
		d.tracking, d.scrolling = true, false

	case ActionPointerDown, ActionPointerUp:
		if !d.tracking {
			return 0, 0, false
		}
		// The pointer set changed: re-anchor so the jump of the focal
		// point is not reported as a drag.
		focal, has := ev.Focal()
		if ev.Action == ActionPointerUp {
			focal, has = focalWithout(ev)
		}
		if !has {
			return 0, 0, false
		}
		d.last = focal
		if !d.scrolling {
			d.start = focal
		}

	case ActionMove:
		focal, has := ev.Focal()
		if !d.tracking || !has {
			return 0, 0, false
		}
		if !d.scrolling {
			if math.Hypot(focal.X-d.start.X, focal.Y-d.start.Y) <= d.slop {
				return 0, 0, false
			}
			d.scrolling = true
		}
		dx, dy = focal.X-d.last.X, focal.Y-d.last.Y
		d.last = focal
		return dx, dy, dx != 0 || dy != 0

	case ActionUp, ActionCancel:
		d.Reset()
	}
	return 0, 0, false
}

// focalWithout returns the focal point of ev ignoring the acting pointer.
func focalWithout(ev Event) (state.Point, bool) {
	rest := make([]Pointer, 0, len(ev.Pointers))
	for i, p := range ev.Pointers {
		if i != ev.Index {
			rest = append(rest, p)
		}
	}
	return Event{Pointers: rest}.Focal()
}
