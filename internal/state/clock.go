package state

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// GestureClock hands out ids for gestures. Ids combine a per-board session
// id with a monotonically increasing sequence number so log lines from one
// gesture can be correlated.
type GestureClock struct {
	session string
	seq     atomic.Uint64
}

// NewGestureClock creates a clock with a fresh random session id.
func NewGestureClock() *GestureClock {
	return &GestureClock{session: uuid.NewString()}
}

// Session returns the session id of the clock.
func (c *GestureClock) Session() string { return c.session }

// Next returns the id for the next gesture.
func (c *GestureClock) Next() string {
	return fmt.Sprintf("%s-%d", c.session[:8], c.seq.Add(1))
}

// Count returns how many ids have been handed out.
func (c *GestureClock) Count() uint64 { return c.seq.Load() }
