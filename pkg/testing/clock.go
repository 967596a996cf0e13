// Package testing provides test utilities for the lazyload engine,
// primarily deterministic time control for rate-limiter and detector
// tests.
package testing

import (
	"testing"
	"time"

	"github.com/go-drift/lazyload/pkg/schedule"
)

// FakeClock provides controllable time for deterministic timing tests.
// It is a [schedule.ManualClock] starting at a fixed epoch, so timer
// assertions can use absolute offsets.
type FakeClock struct {
	schedule.ManualClock
}

// Epoch is the fixed starting time of every FakeClock.
var Epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// NewFakeClock returns a FakeClock starting at Epoch.
func NewFakeClock() *FakeClock {
	c := &FakeClock{}
	c.Set(Epoch)
	return c
}

// InstallFakeClock swaps the package clock in [schedule] for a fresh
// FakeClock and restores the previous clock when the test finishes.
func InstallFakeClock(t testing.TB) *FakeClock {
	t.Helper()
	clk := NewFakeClock()
	prev := schedule.SetClock(clk)
	t.Cleanup(func() { schedule.SetClock(prev) })
	return clk
}
