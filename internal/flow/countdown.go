package flow

import "fmt"

// WarningThreshold is the remaining-seconds mark at which the countdown
// enters its warning state.
const WarningThreshold = 120

// Countdown tracks the seconds left on a reservation hold. It is
// decremented locally once per second and never resynced with the
// server, so it drifts with the caller's clock; that matches the
// original behavior and is accepted.
type Countdown struct {
	remaining int
	expired   bool
}

func NewCountdown(seconds int) *Countdown {
	if seconds < 0 {
		seconds = 0
	}
	return &Countdown{remaining: seconds}
}

// Tick decrements the counter by one second. It reports true exactly
// once, on the tick where the counter reaches zero.
func (c *Countdown) Tick() bool {
	if c.expired || c.remaining <= 0 {
		c.expired = true
		return false
	}
	c.remaining--
	if c.remaining == 0 {
		c.expired = true
		return true
	}
	return false
}

func (c *Countdown) Remaining() int {
	return c.remaining
}

func (c *Countdown) Expired() bool {
	return c.expired
}

// Warning reports whether the display should be in its warning state.
func (c *Countdown) Warning() bool {
	return c.remaining <= WarningThreshold
}

// Format renders minutes:seconds with zero-padded seconds, e.g. "2:05".
func (c *Countdown) Format() string {
	return fmt.Sprintf("%d:%02d", c.remaining/60, c.remaining%60)
}
