package telemetry

import (
	"testing"
	"time"

	"github.com/pthm-cable/brownian/systems"
)

func TestCollectorWindow(t *testing.T) {
	c := NewCollector(4, 25*time.Millisecond)

	for tick := uint64(1); tick <= 3; tick++ {
		c.RecordTick(systems.TickStats{Tick: tick, Clamped: 2})
	}
	if c.ShouldFlush() {
		t.Fatal("window should not be complete after 3 of 4 ticks")
	}

	c.RecordTick(systems.TickStats{Tick: 4, Clamped: 6})
	if !c.ShouldFlush() {
		t.Fatal("window should be complete after 4 ticks")
	}

	c.RecordAdd(100)
	c.RecordRemove(30)
	c.RecordRegenerate()

	stats := c.Flush([]systems.ParticleView{view(1, 1, 1), view(3, 3, 1)})

	if stats.WindowStartTick != 0 || stats.WindowEndTick != 4 {
		t.Errorf("window = [%d, %d], want [0, 4]", stats.WindowStartTick, stats.WindowEndTick)
	}
	if stats.SimTimeSec != 0.1 {
		t.Errorf("sim time = %v, want 0.1", stats.SimTimeSec)
	}
	if stats.ClampedPerTick != 3 {
		t.Errorf("clamped per tick = %v, want 3", stats.ClampedPerTick)
	}
	if stats.Added != 100 || stats.Removed != 30 || stats.Regenerations != 1 {
		t.Errorf("unexpected event counts %+v", stats)
	}
	if stats.Particles != 2 || stats.MeanX != 2 {
		t.Errorf("unexpected dispersion %+v", stats)
	}

	// Counters reset for the next window
	if c.ShouldFlush() {
		t.Error("new window should not be complete immediately")
	}
	next := c.Flush(nil)
	if next.Added != 0 || next.ClampedPerTick != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
}
