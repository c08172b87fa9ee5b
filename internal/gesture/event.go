package gesture

import (
	"fmt"
	"strings"

	"TouchBoard/internal/state"
)

// Action is the kind of a pointer event.
type Action int

const (
	ActionDown        Action = iota // first pointer touched
	ActionPointerDown               // an additional pointer touched
	ActionMove                      // one or more pointers moved
	ActionPointerUp                 // a non-final pointer lifted
	ActionUp                        // the last pointer lifted
	ActionCancel                    // the gesture was aborted by the host
)

var actionNames = [...]string{"down", "pointer_down", "move", "pointer_up", "up", "cancel"}

func (a Action) String() string {
	if a >= 0 && int(a) < len(actionNames) {
		return actionNames[a]
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// MarshalText encodes the action by name.
func (a Action) MarshalText() ([]byte, error) {
	if a < 0 || int(a) >= len(actionNames) {
		return nil, fmt.Errorf("invalid action %d", int(a))
	}
	return []byte(actionNames[a]), nil
}

// UnmarshalText decodes an action name.
func (a *Action) UnmarshalText(b []byte) error {
	s := strings.ToLower(string(b))
	for i, name := range actionNames {
		if s == name {
			*a = Action(i)
			return nil
		}
	}
	return fmt.Errorf("unknown pointer action %q", s)
}

// Pointer is one contact of an event.
type Pointer struct {
	ID int     `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// Point returns the pointer position.
func (p Pointer) Point() state.Point { return state.Point{X: p.X, Y: p.Y} }

// Event is a pointer event. Pointers holds every contact that is down,
// Index selects the one that caused a down or up action.
type Event struct {
	Action   Action    `json:"action"`
	Index    int       `json:"index,omitempty"`
	Pointers []Pointer `json:"pointers"`
}

// Validate checks that every pointer id is in [0, state.MaxPointers).
func (e Event) Validate() error {
	for _, p := range e.Pointers {
		if p.ID < 0 || p.ID >= state.MaxPointers {
			return fmt.Errorf("pointer id %d out of range [0, %d)", p.ID, state.MaxPointers)
		}
	}
	return nil
}

// Acting returns the pointer that caused the event. For events without
// pointers it returns ok=false.
func (e Event) Acting() (p Pointer, ok bool) {
	if len(e.Pointers) == 0 {
		return Pointer{}, false
	}
	if e.Index < 0 || e.Index >= len(e.Pointers) {
		return e.Pointers[0], true
	}
	return e.Pointers[e.Index], true
}

// Focal returns the mean position of all pointers.
func (e Event) Focal() (state.Point, bool) {
	if len(e.Pointers) == 0 {
		return state.Point{}, false
	}
	var sx, sy float64
	for _, p := range e.Pointers {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(e.Pointers))
	return state.Point{X: sx / n, Y: sy / n}, true
}

// Single builds a one-pointer event for pointer id 0.
func Single(a Action, x, y float64) Event {
	return Event{Action: a, Pointers: []Pointer{{ID: 0, X: x, Y: y}}}
}
