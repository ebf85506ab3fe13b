package systems

import "sync/atomic"

// Bounds is the simulation domain, in pixels.
type Bounds struct {
	W, H int
}

// BoundsProvider exposes the current domain. The engine reads it once per
// tick and once per structural add or regenerate.
type BoundsProvider interface {
	Bounds() Bounds
}

// StaticBounds is a BoundsProvider that never changes.
type StaticBounds Bounds

// Bounds implements BoundsProvider.
func (b StaticBounds) Bounds() Bounds {
	return Bounds(b)
}

// SharedBounds is a BoundsProvider updated by the window owner and read by
// the engine from other goroutines.
type SharedBounds struct {
	v atomic.Pointer[Bounds]
}

// NewSharedBounds creates shared bounds initialised to w x h.
func NewSharedBounds(w, h int) *SharedBounds {
	s := &SharedBounds{}
	s.Set(w, h)
	return s
}

// Set publishes new dimensions. Subsequent ticks clamp against them.
func (s *SharedBounds) Set(w, h int) {
	s.v.Store(&Bounds{W: w, H: h})
}

// Bounds implements BoundsProvider.
func (s *SharedBounds) Bounds() Bounds {
	if b := s.v.Load(); b != nil {
		return *b
	}
	return Bounds{}
}

// clampAxis constrains v to [0, limit]. A negative limit pins to 0.
func clampAxis(v, limit int) int {
	return max(0, min(v, limit))
}
