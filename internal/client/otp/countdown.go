package otp

import "time"

// DefaultCooldown is how long resend stays locked after a code is sent.
const DefaultCooldown = 30 * time.Second

// Countdown counts whole seconds down from total. Remaining is derived from
// the start timestamp on every call.
type Countdown struct {
	start time.Time
	total time.Duration
}

func NewCountdown(start time.Time, total time.Duration) Countdown {
	return Countdown{start: start, total: total}
}

// Remaining returns total minus the whole seconds elapsed since start,
// clamped to [0, total].
func (c Countdown) Remaining(now time.Time) int {
	elapsed := now.Sub(c.start)
	if elapsed < 0 {
		elapsed = 0
	}
	left := int(c.total/time.Second) - int(elapsed/time.Second)
	if left < 0 {
		return 0
	}
	return left
}

// Done reports whether the countdown has reached zero.
func (c Countdown) Done(now time.Time) bool {
	return c.Remaining(now) == 0
}
