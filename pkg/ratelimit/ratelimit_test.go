package ratelimit

import (
	"testing"
	"time"

	lazytest "github.com/go-drift/lazyload/pkg/testing"
)

func installClock(t *testing.T) *lazytest.FakeClock {
	t.Helper()
	return lazytest.InstallFakeClock(t)
}

func TestDebounce_BurstYieldsOneCall(t *testing.T) {
	clk := installClock(t)
	calls := 0
	l := New(func() { calls++ }, 300*time.Millisecond, Debounce)

	// Ten calls spaced 10ms apart.
	l.Call()
	for i := 0; i < 9; i++ {
		clk.Advance(10 * time.Millisecond)
		l.Call()
	}
	if calls != 0 {
		t.Fatalf("debounce must not fire during the burst, got %d", calls)
	}

	// Fires 300ms after the last call, not the first.
	clk.Advance(299 * time.Millisecond)
	if calls != 0 {
		t.Fatalf("fired too early, got %d", calls)
	}
	clk.Advance(1 * time.Millisecond)
	if calls != 1 {
		t.Errorf("expected exactly one invocation, got %d", calls)
	}

	clk.Advance(time.Second)
	if calls != 1 {
		t.Errorf("no further invocations expected, got %d", calls)
	}
}

func TestThrottle_ImmediatePlusTrailing(t *testing.T) {
	clk := installClock(t)
	var times []time.Duration
	start := clk.Now()
	l := New(func() { times = append(times, clk.Now().Sub(start)) }, 300*time.Millisecond, Throttle)

	l.Call()
	for i := 0; i < 9; i++ {
		clk.Advance(10 * time.Millisecond)
		l.Call()
	}
	clk.Advance(time.Second)

	if len(times) != 2 {
		t.Fatalf("expected one immediate + one trailing invocation, got %v", times)
	}
	if times[0] != 0 {
		t.Errorf("first invocation should be immediate, got %v", times[0])
	}
	if times[1] != 300*time.Millisecond {
		t.Errorf("trailing invocation should land at 300ms, got %v", times[1])
	}
}

func TestThrottle_CallAfterWindowRunsImmediately(t *testing.T) {
	clk := installClock(t)
	calls := 0
	l := New(func() { calls++ }, 300*time.Millisecond, Throttle)

	l.Call()
	clk.Advance(500 * time.Millisecond)
	l.Call()
	if calls != 2 {
		t.Errorf("a call after the window should run immediately, got %d", calls)
	}
	if clk.PendingTimers() != 0 {
		t.Errorf("no trailing timer expected, got %d", clk.PendingTimers())
	}
}

func TestThrottle_TrailingResetsWindow(t *testing.T) {
	clk := installClock(t)
	calls := 0
	l := New(func() { calls++ }, 300*time.Millisecond, Throttle)

	l.Call() // immediate, window starts at 0
	clk.Advance(100 * time.Millisecond)
	l.Call() // trailing scheduled for 300
	clk.Advance(200 * time.Millisecond)
	if calls != 2 {
		t.Fatalf("expected immediate + trailing by 300ms, got %d", calls)
	}

	// The trailing run opened a new window at 300; a call at 400 is
	// inside it and must coalesce, not run immediately.
	clk.Advance(100 * time.Millisecond)
	l.Call()
	if calls != 2 {
		t.Fatalf("call inside the reset window must not run immediately, got %d", calls)
	}
	clk.Advance(300 * time.Millisecond)
	if calls != 3 {
		t.Errorf("expected the coalesced trailing run, got %d", calls)
	}
}

func TestZeroInterval_Synchronous(t *testing.T) {
	clk := installClock(t)
	for _, policy := range []Policy{Debounce, Throttle} {
		calls := 0
		l := New(func() { calls++ }, 0, policy)
		l.Call()
		l.Call()
		l.Call()
		if calls != 3 {
			t.Errorf("%v with zero interval should run synchronously, got %d", policy, calls)
		}
	}
	if clk.PendingTimers() != 0 {
		t.Errorf("zero interval must not schedule timers, got %d", clk.PendingTimers())
	}
}

func TestCancel_StopsPendingTimer(t *testing.T) {
	clk := installClock(t)
	calls := 0
	l := New(func() { calls++ }, 300*time.Millisecond, Debounce)

	l.Call()
	l.Cancel()
	l.Cancel() // idempotent
	clk.Advance(time.Second)

	if calls != 0 {
		t.Errorf("cancelled limiter must not fire, got %d", calls)
	}
	if clk.PendingTimers() != 0 {
		t.Errorf("expected no pending timers after Cancel, got %d", clk.PendingTimers())
	}
}

func TestCancel_ThrottleTrailing(t *testing.T) {
	clk := installClock(t)
	calls := 0
	l := New(func() { calls++ }, 300*time.Millisecond, Throttle)

	l.Call() // immediate
	clk.Advance(10 * time.Millisecond)
	l.Call() // trailing scheduled
	l.Cancel()
	clk.Advance(time.Second)

	if calls != 1 {
		t.Errorf("trailing run must not fire after Cancel, got %d", calls)
	}
}

func TestPolicyString(t *testing.T) {
	if Debounce.String() != "debounce" || Throttle.String() != "throttle" {
		t.Error("unexpected policy names")
	}
	if ParsePolicy("debounce") != Debounce || ParsePolicy("throttle") != Throttle {
		t.Error("ParsePolicy round trip failed")
	}
	if ParsePolicy("") != Throttle {
		t.Error("unknown names should fall back to throttle")
	}
}
