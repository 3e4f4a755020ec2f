package common

import "time"

// Deadline is a one-shot timer polled from the frame loop. Arming replaces
// any pending deadline, so a superseded timer can never fire.
type Deadline struct {
	at    time.Time
	armed bool
}

func (d *Deadline) Arm(now time.Time, after time.Duration) {
	d.at = now.Add(after)
	d.armed = true
}

func (d *Deadline) Cancel() {
	d.armed = false
}

func (d *Deadline) Pending() bool {
	return d.armed
}

// Fired reports true exactly once, on the first poll at or after the deadline.
func (d *Deadline) Fired(now time.Time) bool {
	if !d.armed || now.Before(d.at) {
		return false
	}
	d.armed = false
	return true
}
