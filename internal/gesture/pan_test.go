package gesture

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPanDetectorSlopAndDeltas(t *testing.T) {
	d := NewPanDetector(4)

	_, _, ok := d.Observe(Single(ActionDown, 0, 0))
	assert.False(t, ok)
	_, _, ok = d.Observe(Single(ActionMove, 3, 0))
	assert.False(t, ok)
	assert.False(t, d.Scrolling())

	dx, dy, ok := d.Observe(Single(ActionMove, 6, 2))
	require.True(t, ok)
	assert.Equal(t, 6.0, dx)
	assert.Equal(t, 2.0, dy)
	assert.True(t, d.Scrolling())

	dx, dy, ok = d.Observe(Single(ActionMove, 7, 1))
	require.True(t, ok)
	assert.Equal(t, 1.0, dx)
	assert.Equal(t, -1.0, dy)

	d.Observe(Single(ActionUp, 7, 1))
	assert.False(t, d.Scrolling())
	_, _, ok = d.Observe(Single(ActionMove, 50, 50))
	assert.False(t, ok, "no gesture after up")
}

func TestPanDetectorReanchorsOnPointerChange(t *testing.T) {
	d := NewPanDetector(0)
	d.Observe(multi(ActionDown, 0, Pointer{ID: 0, X: 0, Y: 0}))
	d.Observe(multi(ActionMove, 0, Pointer{ID: 0, X: 10, Y: 0}))

	// A second finger far away moves the focal point to (55, 0) without a pan.
	_, _, ok := d.Observe(multi(ActionPointerDown, 1, Pointer{ID: 0, X: 10}, Pointer{ID: 1, X: 100}))
	assert.False(t, ok)

	dx, _, ok := d.Observe(multi(ActionMove, 0, Pointer{ID: 0, X: 12}, Pointer{ID: 1, X: 102}))
	require.True(t, ok)
	assert.Equal(t, 2.0, dx)

	// Lifting the second finger re-anchors on the remaining one.
	_, _, ok = d.Observe(multi(ActionPointerUp, 1, Pointer{ID: 0, X: 12}, Pointer{ID: 1, X: 102}))
	assert.False(t, ok)
	dx, _, ok = d.Observe(multi(ActionMove, 0, Pointer{ID: 0, X: 15}))
	require.True(t, ok)
	assert.Equal(t, 3.0, dx)
}

func TestEventJSON(t *testing.T) {
	ev := Event{Action: ActionPointerDown, Index: 1, Pointers: []Pointer{{ID: 0, X: 1, Y: 2}, {ID: 1, X: 3, Y: 4}}}
	b, err := json.Marshal(ev)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"action":"pointer_down"`)

	var back Event
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, ev, back)

	assert.Error(t, json.Unmarshal([]byte(`{"action":"hover"}`), &back))
}

func TestEventActingFallsBackToFirstPointer(t *testing.T) {
	ev := multi(ActionUp, 7, Pointer{ID: 4, X: 1, Y: 1})
	p, ok := ev.Acting()
	require.True(t, ok)
	assert.Equal(t, 4, p.ID)

	_, ok = Event{Action: ActionUp}.Acting()
	assert.False(t, ok)
}
