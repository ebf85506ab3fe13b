// Package renderer draws the particle field from an engine snapshot.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/brownian/systems"
)

// ParticleRenderer renders particles and their trails.
type ParticleRenderer struct {
	// CycleSeconds is the period of one full trip around the hue wheel.
	CycleSeconds float64
	trail        []rl.Vector2
}

// NewParticleRenderer creates a new particle renderer.
func NewParticleRenderer(cycleSeconds float64) *ParticleRenderer {
	return &ParticleRenderer{CycleSeconds: cycleSeconds}
}

// HueAt returns the hue in degrees for the given elapsed time.
func (r *ParticleRenderer) HueAt(elapsed float64) float32 {
	if r.CycleSeconds <= 0 {
		return 0
	}
	frac := math.Mod(elapsed/r.CycleSeconds, 1)
	return float32(frac * 360)
}

// Draw renders all particles. elapsed drives the color cycle.
func (r *ParticleRenderer) Draw(particles []systems.ParticleView, showTrails bool, elapsed float64) {
	color := rl.ColorFromHSV(r.HueAt(elapsed), 0.75, 0.95)

	if showTrails {
		trailColor := rl.Fade(color, 0.45)
		for i := range particles {
			r.drawTrail(&particles[i], trailColor)
		}
	}

	for i := range particles {
		p := &particles[i]
		radius := float32(p.Size) / 2
		rl.DrawEllipse(int32(p.Pos.X)+int32(radius), int32(p.Pos.Y)+int32(radius), radius, radius, color)
	}
}

func (r *ParticleRenderer) drawTrail(p *systems.ParticleView, color rl.Color) {
	if len(p.Trail) < 2 {
		return
	}
	half := float32(p.Size) / 2
	r.trail = r.trail[:0]
	for _, pt := range p.Trail {
		r.trail = append(r.trail, rl.Vector2{X: float32(pt.X) + half, Y: float32(pt.Y) + half})
	}
	for j := 1; j < len(r.trail); j++ {
		rl.DrawLineV(r.trail[j-1], r.trail[j], color)
	}
}
