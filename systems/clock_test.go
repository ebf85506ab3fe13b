package systems

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestClockStates(t *testing.T) {
	c := NewClock(time.Millisecond, func() {})

	if c.State() != ClockStopped {
		t.Errorf("new clock state = %v, want stopped", c.State())
	}
	c.Start()
	if c.State() != ClockRunning {
		t.Errorf("state after Start = %v, want running", c.State())
	}
	c.Stop()
	if c.State() != ClockStopped {
		t.Errorf("state after Stop = %v, want stopped", c.State())
	}

	// A stopped clock stays stopped.
	c.Start()
	if c.State() != ClockStopped {
		t.Errorf("state after restart = %v, want stopped", c.State())
	}
	c.Stop()
}

func TestClockStepsNeverOverlap(t *testing.T) {
	var active, maxActive, steps atomic.Int32
	c := NewClock(time.Millisecond, func() {
		n := active.Add(1)
		if n > maxActive.Load() {
			maxActive.Store(n)
		}
		time.Sleep(3 * time.Millisecond)
		active.Add(-1)
		steps.Add(1)
	})

	c.Start()
	time.Sleep(60 * time.Millisecond)
	c.Stop()

	if steps.Load() == 0 {
		t.Fatal("expected at least one step")
	}
	if maxActive.Load() != 1 {
		t.Errorf("max concurrent steps = %d, want 1", maxActive.Load())
	}
}

func TestClockStopWaitsForStep(t *testing.T) {
	var started, finished atomic.Bool
	entered := make(chan struct{}, 1)
	c := NewClock(time.Millisecond, func() {
		started.Store(true)
		select {
		case entered <- struct{}{}:
		default:
		}
		time.Sleep(20 * time.Millisecond)
		finished.Store(true)
	})

	c.Start()
	select {
	case <-entered:
	case <-time.After(time.Second):
		t.Fatal("step never ran")
	}
	c.Stop()

	if started.Load() && !finished.Load() {
		t.Error("Stop returned while a step was still running")
	}
}

func TestClockNoStepsAfterStop(t *testing.T) {
	var steps atomic.Int32
	c := NewClock(time.Millisecond, func() { steps.Add(1) })

	c.Start()
	time.Sleep(10 * time.Millisecond)
	c.Stop()

	after := steps.Load()
	time.Sleep(10 * time.Millisecond)
	if steps.Load() != after {
		t.Errorf("steps advanced from %d to %d after Stop", after, steps.Load())
	}
}

func TestClockSignalsFrames(t *testing.T) {
	c := NewClock(time.Millisecond, func() {})
	c.Start()
	defer c.Stop()

	select {
	case <-c.Frames():
	case <-time.After(time.Second):
		t.Fatal("no frame signal within 1s")
	}
}

func TestClockStopIdempotent(t *testing.T) {
	c := NewClock(time.Millisecond, func() {})
	c.Stop() // never started
	c.Start()
	c.Stop()
	c.Stop()
}
