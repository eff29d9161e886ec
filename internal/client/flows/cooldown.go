package flows

import "time"

// timeNow is a test seam for the cooldown clock.
var timeNow = time.Now

// Cooldown disables the resend-OTP action for a fixed duration after each
// send. It re-enables exactly when the remaining time reaches zero.
type Cooldown struct {
	duration time.Duration
	deadline time.Time
}

func NewCooldown(d time.Duration) *Cooldown {
	return &Cooldown{duration: d}
}

// Start arms (or re-arms) the cooldown.
func (c *Cooldown) Start() {
	c.deadline = timeNow().Add(c.duration)
}

// Ready reports whether the resend action is currently allowed.
func (c *Cooldown) Ready() bool {
	return !timeNow().Before(c.deadline)
}

// Remaining returns the time left, rounded up to whole seconds for display.
// Zero means ready.
func (c *Cooldown) Remaining() time.Duration {
	left := c.deadline.Sub(timeNow())
	if left <= 0 {
		return 0
	}
	if r := left % time.Second; r != 0 {
		left += time.Second - r
	}
	return left
}
