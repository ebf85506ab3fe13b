package telemetry

import (
	"sync"
	"time"

	"github.com/pthm-cable/brownian/systems"
)

// Collector accumulates events within tick windows and produces WindowStats.
// Ticks arrive from the clock goroutine and control events from the game
// loop, so counters are guarded by mu.
type Collector struct {
	mu sync.Mutex

	windowTicks uint64
	period      time.Duration

	// Current window tracking
	windowStartTick uint64
	lastTick        uint64

	// Event counters for current window
	ticks         int
	clamped       int
	added         int
	removed       int
	regenerations int
}

// NewCollector creates a new stats collector.
// windowTicks: ticks per stats window; period: wall-clock duration of one tick.
func NewCollector(windowTicks int, period time.Duration) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{
		windowTicks: uint64(windowTicks),
		period:      period,
	}
}

// RecordTick records a completed tick.
func (c *Collector) RecordTick(s systems.TickStats) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ticks++
	c.clamped += s.Clamped
	c.lastTick = s.Tick
}

// RecordAdd records particles added by the control surface.
func (c *Collector) RecordAdd(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.added += n
}

// RecordRemove records particles removed by the control surface.
func (c *Collector) RecordRemove(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removed += n
}

// RecordRegenerate records a full field regeneration.
func (c *Collector) RecordRegenerate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.regenerations++
}

// ShouldFlush returns true once the current window has elapsed.
func (c *Collector) ShouldFlush() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastTick-c.windowStartTick >= c.windowTicks
}

// Flush produces stats for the current window from snapshot and starts a new one.
func (c *Collector) Flush(snapshot []systems.ParticleView) WindowStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   c.lastTick,
		SimTimeSec:      float64(c.lastTick) * c.period.Seconds(),
		Particles:       len(snapshot),
		Added:           c.added,
		Removed:         c.removed,
		Regenerations:   c.regenerations,
		Dispersion:      ComputeDispersion(snapshot),
	}
	if c.ticks > 0 {
		stats.ClampedPerTick = float64(c.clamped) / float64(c.ticks)
	}

	c.windowStartTick = c.lastTick
	c.ticks = 0
	c.clamped = 0
	c.added = 0
	c.removed = 0
	c.regenerations = 0

	return stats
}
