// Package schedule provides the time source for the lazyload engine.
//
// The package-level clock supplies current time and one-shot timers. The
// default implementation uses system time; tests and the scenario replay
// tool inject a [ManualClock] via SetClock to control timing
// deterministically.
package schedule

import "time"

// Timer is a cancellable one-shot timer handle.
type Timer interface {
	// Stop prevents the timer from firing. It reports whether the call
	// stopped the timer before it fired.
	Stop() bool
}

// Clock provides current time and one-shot timer scheduling.
type Clock interface {
	Now() time.Time
	// AfterFunc schedules fn to run once after d elapses.
	AfterFunc(d time.Duration, fn func()) Timer
}

// systemClock uses system time and the runtime timer facility.
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, fn func()) Timer {
	return systemTimer{time.AfterFunc(d, fn)}
}

type systemTimer struct {
	t *time.Timer
}

func (s systemTimer) Stop() bool { return s.t.Stop() }

// clock is the package-level time source, replaceable for testing.
var clock Clock = systemClock{}

// SetClock replaces the package clock. Returns the previous clock
// so callers can restore it during cleanup.
func SetClock(c Clock) Clock {
	prev := clock
	clock = c
	return prev
}

// Now returns the current time from the active clock.
func Now() time.Time { return clock.Now() }

// After schedules fn to run once after d elapses on the active clock.
func After(d time.Duration, fn func()) Timer { return clock.AfterFunc(d, fn) }
