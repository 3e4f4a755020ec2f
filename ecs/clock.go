package ecs

import "time"

// Clock is the frame clock shared by all systems. Systems read it; only the
// game loop advances it.
type Clock struct {
	Now   time.Time
	Delta time.Duration
	Frame uint64
}

// Advance moves the clock to now and records the frame delta.
func (c *Clock) Advance(now time.Time) {
	if c == nil {
		return
	}
	if !c.Now.IsZero() {
		c.Delta = now.Sub(c.Now)
	}
	c.Now = now
	c.Frame++
}
