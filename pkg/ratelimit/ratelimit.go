// Package ratelimit gates high-frequency event callbacks behind a timer so
// that geometry checks triggered by scroll and resize stay affordable.
package ratelimit

import (
	"fmt"
	"time"

	"github.com/go-drift/lazyload/pkg/schedule"
)

// Policy selects how a Limiter coalesces bursts of calls.
type Policy int

const (
	// Debounce waits for a full quiet interval before running the
	// callback. Every call restarts the wait.
	Debounce Policy = iota
	// Throttle runs the callback immediately on the first call of a
	// window, coalescing later calls within the window into a single
	// trailing run.
	Throttle
)

// String returns a human-readable representation of the policy.
func (p Policy) String() string {
	switch p {
	case Debounce:
		return "debounce"
	case Throttle:
		return "throttle"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy converts a policy name to a Policy. Unknown names fall back
// to Throttle, the engine default.
func ParsePolicy(name string) Policy {
	if name == "debounce" {
		return Debounce
	}
	return Throttle
}

// Limiter wraps a callback so it runs at most once per interval.
//
// A Limiter is not safe for concurrent use; the engine drives it from a
// single goroutine, matching the host's cooperative event model. Timers
// come from the package clock in [schedule], so tests control firing.
//
// An interval of zero (or below) disables limiting: every Call runs the
// callback synchronously, whatever the policy.
type Limiter struct {
	fn       func()
	interval time.Duration
	policy   Policy

	timer   schedule.Timer
	lastRun time.Time
	hasRun  bool
}

// New creates a Limiter around fn with the given interval and policy.
func New(fn func(), interval time.Duration, policy Policy) *Limiter {
	return &Limiter{fn: fn, interval: interval, policy: policy}
}

// Call requests an invocation of the wrapped callback, subject to the
// policy.
func (l *Limiter) Call() {
	if l.interval <= 0 {
		l.fn()
		return
	}
	switch l.policy {
	case Debounce:
		l.debounce()
	default:
		l.throttle()
	}
}

// Cancel stops any pending timer. The wrapped callback will not run again
// until Call is invoked anew. Cancel is idempotent.
func (l *Limiter) Cancel() {
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
}

func (l *Limiter) debounce() {
	// Restart the quiet-interval wait on every call.
	if l.timer != nil {
		l.timer.Stop()
	}
	l.timer = schedule.After(l.interval, func() {
		l.timer = nil
		l.fn()
	})
}

func (l *Limiter) throttle() {
	now := schedule.Now()
	if !l.hasRun || now.Sub(l.lastRun) >= l.interval {
		l.hasRun = true
		l.lastRun = now
		l.fn()
		return
	}
	if l.timer != nil {
		// A trailing run is already scheduled; coalesce.
		return
	}
	remaining := l.interval - now.Sub(l.lastRun)
	l.timer = schedule.After(remaining, func() {
		l.timer = nil
		l.lastRun = schedule.Now()
		l.fn()
	})
}
