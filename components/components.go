// Package components defines the particle data held by the simulation field.
package components

// Position is an integer point in field coordinates.
type Position struct {
	X, Y int
}

// Particle is a single random walker.
// Size is fixed at creation; Pos and Trail are only written during a tick.
type Particle struct {
	Pos   Position
	Size  int
	Trail Trail
}

// NewParticle creates a particle at pos with an empty trail of the given capacity.
func NewParticle(pos Position, size, trailLen int) Particle {
	return Particle{
		Pos:   pos,
		Size:  size,
		Trail: NewTrail(trailLen),
	}
}
