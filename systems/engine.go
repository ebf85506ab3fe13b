package systems

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// EngineOptions configures NewEngine.
type EngineOptions struct {
	Field        FieldConfig
	Walk         WalkerConfig
	Period       time.Duration
	InitialCount int
	Bounds       BoundsProvider

	// OnTick, if set, is called on the clock goroutine after every tick.
	OnTick func(TickStats)
}

// Engine ties a field, its walker and the clock that drives it. The clock
// starts on construction; Close stops it.
type Engine struct {
	field  *Field
	walker *Walker
	clock  *Clock
	bounds BoundsProvider
	onTick func(TickStats)

	last      atomic.Pointer[TickStats]
	closeOnce sync.Once
}

// NewEngine builds the field with the initial population and starts ticking.
func NewEngine(opts EngineOptions) *Engine {
	if opts.Period == 0 {
		opts.Period = DefaultTickPeriod
	}

	field := NewField(opts.Field, opts.Bounds)
	field.AddN(opts.InitialCount)

	e := &Engine{
		field:  field,
		walker: NewWalker(field, opts.Walk),
		bounds: opts.Bounds,
		onTick: opts.OnTick,
	}
	e.clock = NewClock(opts.Period, e.step)

	slog.Debug("engine starting",
		"particles", field.Count(),
		"capacity", field.Capacity(),
		"chunk_size", opts.Walk.ChunkSize,
		"period", opts.Period,
	)
	e.clock.Start()
	return e
}

func (e *Engine) step() {
	stats := e.walker.Tick(e.bounds.Bounds())
	e.last.Store(&stats)
	if e.onTick != nil {
		e.onTick(stats)
	}
}

// Add adds one particle if below capacity.
func (e *Engine) Add() bool { return e.field.Add() }

// AddN adds up to n particles and returns how many were added.
func (e *Engine) AddN(n int) int { return e.field.AddN(n) }

// RemoveOne removes the oldest particle if any.
func (e *Engine) RemoveOne() bool { return e.field.RemoveOne() }

// RemoveN removes up to n of the oldest particles.
func (e *Engine) RemoveN(n int) int { return e.field.RemoveN(n) }

// Regenerate redistributes every particle across the current bounds.
func (e *Engine) Regenerate() { e.field.Regenerate() }

// Snapshot returns a read-only copy of the field.
func (e *Engine) Snapshot() []ParticleView { return e.field.Snapshot() }

// SnapshotInto copies the field into dst, reusing its storage.
func (e *Engine) SnapshotInto(dst []ParticleView) []ParticleView { return e.field.SnapshotInto(dst) }

// Count returns the particle count.
func (e *Engine) Count() int { return e.field.Count() }

// Capacity returns the particle limit.
func (e *Engine) Capacity() int { return e.field.Capacity() }

// Frames signals after each completed tick.
func (e *Engine) Frames() <-chan struct{} { return e.clock.Frames() }

// Ticks returns the number of completed ticks.
func (e *Engine) Ticks() uint64 { return e.walker.Ticks() }

// LastTick returns the stats of the most recent tick, if any.
func (e *Engine) LastTick() (TickStats, bool) {
	if s := e.last.Load(); s != nil {
		return *s, true
	}
	return TickStats{}, false
}

// State reports whether the clock is running.
func (e *Engine) State() ClockState { return e.clock.State() }

// Close stops the clock, waiting for the tick in flight, then the workers.
func (e *Engine) Close() {
	e.closeOnce.Do(func() {
		e.clock.Stop()
		e.walker.Close()
		slog.Debug("engine stopped", "ticks", e.walker.Ticks())
	})
}
