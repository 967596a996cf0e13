package schedule

import (
	"testing"
	"time"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestManualClock_Advance(t *testing.T) {
	clk := NewManualClock(epoch)
	start := clk.Now()

	clk.Advance(100 * time.Millisecond)
	if elapsed := clk.Now().Sub(start); elapsed != 100*time.Millisecond {
		t.Errorf("expected 100ms elapsed, got %v", elapsed)
	}
}

func TestManualClock_TimersFireInDueOrder(t *testing.T) {
	clk := NewManualClock(epoch)
	var order []string
	clk.AfterFunc(200*time.Millisecond, func() { order = append(order, "b") })
	clk.AfterFunc(100*time.Millisecond, func() { order = append(order, "a") })

	clk.Advance(50 * time.Millisecond)
	if len(order) != 0 {
		t.Fatalf("nothing should have fired yet, got %v", order)
	}

	clk.Advance(300 * time.Millisecond)
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Errorf("expected [a b], got %v", order)
	}
	if clk.PendingTimers() != 0 {
		t.Errorf("expected no pending timers, got %d", clk.PendingTimers())
	}
}

func TestManualClock_NowDuringCallback(t *testing.T) {
	clk := NewManualClock(epoch)
	var at time.Time
	clk.AfterFunc(100*time.Millisecond, func() { at = clk.Now() })

	clk.Advance(time.Second)
	if want := epoch.Add(100 * time.Millisecond); !at.Equal(want) {
		t.Errorf("callback should observe its due time %v, got %v", want, at)
	}
	if want := epoch.Add(time.Second); !clk.Now().Equal(want) {
		t.Errorf("clock should land on the advance target %v, got %v", want, clk.Now())
	}
}

func TestManualClock_Stop(t *testing.T) {
	clk := NewManualClock(epoch)
	fired := false
	timer := clk.AfterFunc(100*time.Millisecond, func() { fired = true })

	if !timer.Stop() {
		t.Error("Stop on a pending timer should report true")
	}
	if timer.Stop() {
		t.Error("second Stop should report false")
	}

	clk.Advance(time.Second)
	if fired {
		t.Error("stopped timer must not fire")
	}
}

func TestManualClock_CallbackSchedulesTimer(t *testing.T) {
	clk := NewManualClock(epoch)
	var times []time.Duration
	clk.AfterFunc(100*time.Millisecond, func() {
		times = append(times, clk.Now().Sub(epoch))
		clk.AfterFunc(100*time.Millisecond, func() {
			times = append(times, clk.Now().Sub(epoch))
		})
	})

	clk.Advance(time.Second)
	if len(times) != 2 || times[0] != 100*time.Millisecond || times[1] != 200*time.Millisecond {
		t.Errorf("expected fires at [100ms 200ms], got %v", times)
	}
}

func TestSetClock_RestoresPrevious(t *testing.T) {
	clk := NewManualClock(epoch)
	prev := SetClock(clk)
	defer SetClock(prev)

	if !Now().Equal(epoch) {
		t.Errorf("package Now should come from the installed clock, got %v", Now())
	}
	fired := false
	After(50*time.Millisecond, func() { fired = true })
	clk.Advance(100 * time.Millisecond)
	if !fired {
		t.Error("package After should schedule on the installed clock")
	}
}
