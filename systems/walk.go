package systems

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/pthm-cable/brownian/components"
)

// Default walk parameters.
const (
	DefaultChunkSize = 2000
	DefaultMaxOffset = 10
)

// OffsetFunc supplies the (dx, dy) applied to particle index at tick.
// Used to replace the seeded random draws with fixed offsets.
type OffsetFunc func(tick uint64, index int) (dx, dy int)

// WalkerConfig holds the construction parameters of a Walker.
type WalkerConfig struct {
	ChunkSize int // particles per parallel work unit
	MaxOffset int // draws are uniform in [-MaxOffset, MaxOffset]
	Workers   int // 0 = GOMAXPROCS
	Seed      uint64
	Offsets   OffsetFunc // nil = seeded random walk
}

// DefaultWalkerConfig returns the stock walk parameters.
func DefaultWalkerConfig() WalkerConfig {
	return WalkerConfig{
		ChunkSize: DefaultChunkSize,
		MaxOffset: DefaultMaxOffset,
	}
}

// TickStats describes one completed tick.
type TickStats struct {
	Tick      uint64
	Particles int
	Chunks    int
	Clamped   int // particles pushed back inside the bounds this tick
	LockWait  time.Duration
	Compute   time.Duration
}

// walkJob is the state shared with workers for the tick in flight.
// It is written before chunks are dispatched and read-only afterwards.
type walkJob struct {
	particles []components.Particle
	bounds    Bounds
	tick      uint64
	key       uint64
}

// Walker advances every particle of a field by one random step per tick.
type Walker struct {
	field     *Field
	chunkSize int
	maxOffset int
	seed      uint64
	offsets   OffsetFunc

	pool    *workerPool
	inline  walkScratch
	job     walkJob
	ticks   atomic.Uint64
	clamped atomic.Int64

	closeOnce sync.Once
}

// NewWalker creates a walker over field.
func NewWalker(field *Field, cfg WalkerConfig) *Walker {
	if field == nil {
		panic("systems: nil field")
	}
	if cfg.ChunkSize <= 0 {
		panic("systems: chunk size must be positive")
	}
	if cfg.MaxOffset < 0 {
		panic("systems: negative max offset")
	}
	return &Walker{
		field:     field,
		chunkSize: cfg.ChunkSize,
		maxOffset: cfg.MaxOffset,
		seed:      cfg.Seed,
		offsets:   cfg.Offsets,
		pool:      newWorkerPool(cfg.Workers),
		inline:    newWalkScratch(),
	}
}

// Ticks returns the number of completed ticks.
func (w *Walker) Ticks() uint64 {
	return w.ticks.Load()
}

// Tick moves every particle once, clamping against b. The field lock is held
// for the whole pass; chunks run on the worker pool and Tick returns only
// after all of them finish.
func (w *Walker) Tick(b Bounds) TickStats {
	requested := time.Now()
	w.field.mu.Lock()
	defer w.field.mu.Unlock()
	acquired := time.Now()

	tick := w.ticks.Load() + 1
	n := len(w.field.particles)
	w.job = walkJob{
		particles: w.field.particles,
		bounds:    b,
		tick:      tick,
		key:       w.seed ^ mix64(tick),
	}
	w.clamped.Store(0)

	chunks := 0
	switch {
	case n == 0:
	case n <= w.chunkSize:
		// Single chunk runs on the caller.
		w.clamped.Store(int64(w.stepRange(&w.inline, 0, n)))
		chunks = 1
	default:
		chunks = w.pool.run(w, n, w.chunkSize)
	}

	w.job.particles = nil
	w.ticks.Store(tick)

	return TickStats{
		Tick:      tick,
		Particles: n,
		Chunks:    chunks,
		Clamped:   int(w.clamped.Load()),
		LockWait:  acquired.Sub(requested),
		Compute:   time.Since(acquired),
	}
}

// Close stops the worker pool. The walker must not be ticked afterwards.
func (w *Walker) Close() {
	w.closeOnce.Do(func() {
		// Serialise with any tick still holding the field.
		w.field.mu.Lock()
		defer w.field.mu.Unlock()
		w.pool.stopWorkers()
	})
}

// stepRange updates particles [start, end) of the current job and returns
// how many were clamped.
func (w *Walker) stepRange(s *walkScratch, start, end int) int {
	job := &w.job
	clamped := 0
	for i := start; i < end; i++ {
		p := &job.particles[i]
		dx, dy := w.draw(s, i)

		x := p.Pos.X + dx
		y := p.Pos.Y + dy
		cx := clampAxis(x, job.bounds.W-p.Size)
		cy := clampAxis(y, job.bounds.H-p.Size)
		if cx != x || cy != y {
			clamped++
		}

		p.Pos = components.Position{X: cx, Y: cy}
		p.Trail.Append(p.Pos)
	}
	return clamped
}

// draw returns the offsets for particle i. The source is re-keyed from
// (seed, tick, i) so the result does not depend on which chunk or worker
// handles the particle.
func (w *Walker) draw(s *walkScratch, i int) (int, int) {
	if w.offsets != nil {
		return w.offsets(w.job.tick, i)
	}
	s.src.Seed(w.job.key, uint64(i))
	span := 2*w.maxOffset + 1
	dx := s.rng.IntN(span) - w.maxOffset
	dy := s.rng.IntN(span) - w.maxOffset
	return dx, dy
}

// mix64 is the splitmix64 finaliser.
func mix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
