package tetris

import (
	"fmt"
	"time"
)

const DefaultDropInterval = time.Second

// DropClock accumulates frame time and tells when the active piece is due to
// fall one row. Timestamps are host time since an arbitrary origin and must
// not go backwards.
type DropClock struct {
	interval time.Duration
	counter  time.Duration
	last     time.Duration
}

func NewDropClock(interval time.Duration) *DropClock {
	if interval <= 0 {
		panic(fmt.Errorf("drop interval must be positive, got %v", interval))
	}
	return &DropClock{interval: interval}
}

// Advance moves the clock to now and reports whether a drop is due. The
// counter keeps growing until Reset is called.
func (c *DropClock) Advance(now time.Duration) bool {
	delta := now - c.last
	c.last = now
	c.counter += delta
	return c.counter > c.interval
}

func (c *DropClock) Reset() {
	c.counter = 0
}

func (c *DropClock) Elapsed() time.Duration {
	return c.counter
}

func (c *DropClock) Interval() time.Duration {
	return c.interval
}
