package systems

import (
	"math/rand/v2"
	"sync"

	"github.com/pthm-cable/brownian/components"
)

// Default field limits.
const (
	DefaultCapacity     = 10000
	DefaultParticleSize = 7
	DefaultTrailLength  = 50
)

// FieldConfig holds the construction parameters of a Field.
type FieldConfig struct {
	Capacity     int
	ParticleSize int
	TrailLength  int
	Seed         uint64
}

// DefaultFieldConfig returns the stock field limits.
func DefaultFieldConfig() FieldConfig {
	return FieldConfig{
		Capacity:     DefaultCapacity,
		ParticleSize: DefaultParticleSize,
		TrailLength:  DefaultTrailLength,
	}
}

// ParticleView is a read-only copy of one particle, safe to hold after the
// field has moved on.
type ParticleView struct {
	Pos   components.Position
	Size  int
	Trail []components.Position // oldest first
}

// Field owns the particle collection. Structural changes, snapshots and the
// walker's per-tick pass all serialise on mu.
type Field struct {
	mu        sync.Mutex
	particles []components.Particle
	rng       *rand.Rand

	capacity int
	size     int
	trailLen int
	bounds   BoundsProvider
}

// NewField creates an empty field. Bounds are read on every add and regenerate.
func NewField(cfg FieldConfig, bounds BoundsProvider) *Field {
	if cfg.Capacity < 0 || cfg.ParticleSize < 0 || cfg.TrailLength < 0 {
		panic("systems: negative field limits")
	}
	if bounds == nil {
		panic("systems: nil bounds provider")
	}
	return &Field{
		particles: make([]components.Particle, 0, min(cfg.Capacity, 1024)),
		rng:       rand.New(rand.NewPCG(cfg.Seed, 0x9e3779b97f4a7c15)),
		capacity:  cfg.Capacity,
		size:      cfg.ParticleSize,
		trailLen:  cfg.TrailLength,
		bounds:    bounds,
	}
}

// Capacity returns the maximum particle count.
func (f *Field) Capacity() int {
	return f.capacity
}

// Count returns the current particle count.
func (f *Field) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.particles)
}

// Add appends one particle at a random position. It reports false when the
// field is already at capacity.
func (f *Field) Add() bool {
	return f.AddN(1) == 1
}

// AddN adds up to n particles under a single lock acquisition and returns
// how many were added.
func (f *Field) AddN(n int) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	b := f.bounds.Bounds()
	added := 0
	for added < n && len(f.particles) < f.capacity {
		f.particles = append(f.particles, f.spawn(b))
		added++
	}
	return added
}

// RemoveOne drops the oldest particle. It is a no-op on an empty field.
func (f *Field) RemoveOne() bool {
	return f.RemoveN(1) == 1
}

// RemoveN drops up to n of the oldest particles and returns how many were removed.
func (f *Field) RemoveN(n int) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	count := len(f.particles)
	k := max(0, min(n, count))
	if k == 0 {
		return 0
	}
	copy(f.particles, f.particles[k:])
	// Drop references held by the vacated tail.
	clear(f.particles[count-k:])
	f.particles = f.particles[:count-k]
	return k
}

// Regenerate replaces every particle with a fresh one at a random position in
// the current bounds. The count is preserved and the swap happens under the
// lock, so no tick or snapshot observes a partial set.
func (f *Field) Regenerate() {
	f.mu.Lock()
	defer f.mu.Unlock()

	b := f.bounds.Bounds()
	fresh := make([]components.Particle, len(f.particles), max(cap(f.particles), len(f.particles)))
	for i := range fresh {
		fresh[i] = f.spawn(b)
	}
	f.particles = fresh
}

// Snapshot returns a deep copy of the field for rendering.
func (f *Field) Snapshot() []ParticleView {
	return f.SnapshotInto(nil)
}

// SnapshotInto copies the field into dst, reusing its trail buffers, and
// returns the resized slice.
func (f *Field) SnapshotInto(dst []ParticleView) []ParticleView {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := len(f.particles)
	if cap(dst) < n {
		dst = append(dst[:cap(dst)], make([]ParticleView, n-cap(dst))...)
	}
	dst = dst[:n]
	for i := range f.particles {
		p := &f.particles[i]
		v := &dst[i]
		v.Pos = p.Pos
		v.Size = p.Size
		v.Trail = p.Trail.AppendTo(v.Trail[:0])
	}
	return dst
}

// spawn builds a particle inside b. Callers must hold mu.
func (f *Field) spawn(b Bounds) components.Particle {
	pos := components.Position{
		X: f.randCoord(b.W - f.size),
		Y: f.randCoord(b.H - f.size),
	}
	return components.NewParticle(pos, f.size, f.trailLen)
}

// randCoord returns a uniform integer in [0, span], or 0 for an empty span.
func (f *Field) randCoord(span int) int {
	if span <= 0 {
		return 0
	}
	return f.rng.IntN(span + 1)
}
