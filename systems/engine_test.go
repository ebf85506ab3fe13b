package systems

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func newTestEngine(t *testing.T, initial int, onTick func(TickStats)) *Engine {
	t.Helper()
	e := NewEngine(EngineOptions{
		Field:        FieldConfig{Capacity: 3000, ParticleSize: 7, TrailLength: 50, Seed: 1},
		Walk:         WalkerConfig{ChunkSize: 500, MaxOffset: 10, Workers: 4, Seed: 2},
		Period:       time.Millisecond,
		InitialCount: initial,
		Bounds:       NewSharedBounds(640, 480),
		OnTick:       onTick,
	})
	t.Cleanup(e.Close)
	return e
}

func waitFrames(t *testing.T, e *Engine, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-e.Frames():
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for frame %d", i)
		}
	}
}

func TestEngineStartsTicking(t *testing.T) {
	var hooked atomic.Int32
	e := newTestEngine(t, 100, func(TickStats) { hooked.Add(1) })

	if e.State() != ClockRunning {
		t.Fatalf("engine clock state = %v, want running", e.State())
	}
	if e.Count() != 100 {
		t.Errorf("initial count = %d, want 100", e.Count())
	}

	waitFrames(t, e, 3)

	if e.Ticks() < 3 {
		t.Errorf("ticks = %d, want >= 3", e.Ticks())
	}
	if hooked.Load() < 3 {
		t.Errorf("OnTick called %d times, want >= 3", hooked.Load())
	}
	last, ok := e.LastTick()
	if !ok || last.Particles != 100 {
		t.Errorf("last tick = %+v (ok=%v)", last, ok)
	}
}

func TestEngineCloseStopsTicks(t *testing.T) {
	e := newTestEngine(t, 10, nil)
	waitFrames(t, e, 1)

	e.Close()
	ticks := e.Ticks()
	time.Sleep(10 * time.Millisecond)

	if e.Ticks() != ticks {
		t.Errorf("ticks advanced after Close: %d -> %d", ticks, e.Ticks())
	}
	if e.State() != ClockStopped {
		t.Errorf("state = %v, want stopped", e.State())
	}
	e.Close()
}

func TestEngineMutationsDuringTicks(t *testing.T) {
	e := newTestEngine(t, 1000, nil)

	var added, removed atomic.Int64
	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				switch (g + i) % 3 {
				case 0:
					added.Add(int64(e.AddN(25)))
				case 1:
					removed.Add(int64(e.RemoveN(20)))
				default:
					e.Regenerate()
				}
				if c := e.Count(); c < 0 || c > e.Capacity() {
					t.Errorf("count %d outside [0, %d]", c, e.Capacity())
					return
				}
			}
		}(g)
	}
	wg.Wait()
	waitFrames(t, e, 1)

	want := 1000 + int(added.Load()) - int(removed.Load())
	if e.Count() != want {
		t.Errorf("count = %d, want %d", e.Count(), want)
	}
	for i, p := range e.Snapshot() {
		if p.Pos.X < 0 || p.Pos.X > 633 || p.Pos.Y < 0 || p.Pos.Y > 473 {
			t.Fatalf("particle %d out of bounds at %v", i, p.Pos)
		}
	}
}

func TestEngineSingleMutations(t *testing.T) {
	e := newTestEngine(t, 0, nil)

	if e.RemoveOne() {
		t.Error("RemoveOne on empty engine should report false")
	}
	if !e.Add() {
		t.Error("Add below capacity should report true")
	}
	if e.Count() != 1 {
		t.Errorf("count = %d, want 1", e.Count())
	}
	if !e.RemoveOne() {
		t.Error("RemoveOne should remove the particle")
	}
}
