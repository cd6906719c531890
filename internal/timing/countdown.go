package timing

import "time"

const (
	// WarningThreshold is the remaining time at which the countdown warns.
	WarningThreshold = 5 * time.Minute
	// CriticalThreshold is the remaining time at which the countdown turns critical.
	CriticalThreshold = time.Minute
)

// Countdown projects the remaining time of a fixed-duration exam from a
// server-supplied start instant. It holds no ticker; callers feed it ticks.
type Countdown struct {
	duration  time.Duration
	end       time.Time
	idle      bool
	remaining time.Duration
	expired   bool
}

// NewCountdown builds a countdown ending at start+duration. A nil start
// leaves the countdown idle: it never ticks and never expires.
func NewCountdown(duration time.Duration, start *time.Time) *Countdown {
	if duration < 0 {
		duration = 0
	}
	c := &Countdown{duration: duration, remaining: duration}
	if start == nil || start.IsZero() {
		c.idle = true
		return c
	}
	c.end = start.Add(duration)
	return c
}

// Idle reports whether the countdown has no start instant.
func (c *Countdown) Idle() bool {
	return c.idle
}

// End returns the instant at which the countdown reaches zero.
func (c *Countdown) End() time.Time {
	return c.end
}

// Duration returns the fixed allotted duration.
func (c *Countdown) Duration() time.Duration {
	return c.duration
}

// RemainingAt computes max(0, end-now) without mutating the countdown.
func (c *Countdown) RemainingAt(now time.Time) time.Duration {
	if c.idle {
		return c.duration
	}
	remaining := c.end.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Tick records a new observation. expiredNow is true exactly once, on the
// first tick that observes zero remaining time.
func (c *Countdown) Tick(now time.Time) (remaining time.Duration, expiredNow bool) {
	if c.idle {
		return c.remaining, false
	}
	c.remaining = c.RemainingAt(now)
	if c.remaining == 0 && !c.expired {
		c.expired = true
		return 0, true
	}
	return c.remaining, false
}

// Remaining returns the value observed on the last tick.
func (c *Countdown) Remaining() time.Duration {
	return c.remaining
}

// Expired reports whether the expiry has already fired.
func (c *Countdown) Expired() bool {
	return c.expired
}

// Warning reports whether the last observation is in the warning band. An
// idle countdown is never in a band.
func (c *Countdown) Warning() bool {
	return !c.idle && IsWarning(c.remaining)
}

// Critical reports whether the last observation is in the critical band.
func (c *Countdown) Critical() bool {
	return !c.idle && IsCritical(c.remaining)
}

// Progress returns the consumed fraction of the duration in [0, 1].
func (c *Countdown) Progress() float64 {
	if c.duration <= 0 {
		return 0
	}
	p := float64(c.duration-c.remaining) / float64(c.duration)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// IsWarning is true when 1m < remaining <= 5m.
func IsWarning(remaining time.Duration) bool {
	return remaining > CriticalThreshold && remaining <= WarningThreshold
}

// IsCritical is true when 0 < remaining <= 1m.
func IsCritical(remaining time.Duration) bool {
	return remaining > 0 && remaining <= CriticalThreshold
}
