package schedule

import (
	"sort"
	"sync"
	"time"
)

// ManualClock is a Clock whose time only moves when Advance or Set is
// called. Timers scheduled through AfterFunc fire during Advance, in due
// order, with Now reporting each timer's due time while its callback runs.
// All methods are safe for concurrent use; callbacks run on the goroutine
// calling Advance, which matches the engine's single-threaded model.
type ManualClock struct {
	mu      sync.Mutex
	now     time.Time
	pending []*manualTimer
	nextSeq int
}

// NewManualClock returns a ManualClock starting at the given time.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current manual time.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set sets the clock to an exact time without firing timers.
func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// AfterFunc schedules fn to run when the clock advances past d from now.
// A non-positive d fires on the next Advance call.
func (c *ManualClock) AfterFunc(d time.Duration, fn func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{
		clock: c,
		due:   c.now.Add(d),
		seq:   c.nextSeq,
		fn:    fn,
	}
	c.nextSeq++
	c.pending = append(c.pending, t)
	return t
}

// Advance moves the clock forward by d, firing every timer that becomes
// due, in due order. Timers scheduled by a firing callback are themselves
// fired if they fall within the same advance window.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	for {
		t := c.takeNextDue(target)
		if t == nil {
			break
		}
		c.now = t.due
		c.mu.Unlock()
		t.fn()
		c.mu.Lock()
	}
	c.now = target
	c.mu.Unlock()
}

// PendingTimers returns the number of timers waiting to fire. Tests use
// this to assert that disposal cancelled everything.
func (c *ManualClock) PendingTimers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// takeNextDue removes and returns the earliest timer due at or before
// target, or nil. Ties break by scheduling order. Caller holds c.mu.
func (c *ManualClock) takeNextDue(target time.Time) *manualTimer {
	if len(c.pending) == 0 {
		return nil
	}
	sort.SliceStable(c.pending, func(i, j int) bool {
		if !c.pending[i].due.Equal(c.pending[j].due) {
			return c.pending[i].due.Before(c.pending[j].due)
		}
		return c.pending[i].seq < c.pending[j].seq
	})
	if c.pending[0].due.After(target) {
		return nil
	}
	t := c.pending[0]
	c.pending = c.pending[1:]
	return t
}

// remove unregisters a timer. Reports whether it was still pending.
func (c *ManualClock) remove(t *manualTimer) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, p := range c.pending {
		if p == t {
			c.pending = append(c.pending[:i], c.pending[i+1:]...)
			return true
		}
	}
	return false
}

type manualTimer struct {
	clock *ManualClock
	due   time.Time
	seq   int
	fn    func()
}

func (t *manualTimer) Stop() bool { return t.clock.remove(t) }
