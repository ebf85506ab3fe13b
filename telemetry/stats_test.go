package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/brownian/components"
	"github.com/pthm-cable/brownian/systems"
)

func view(x, y, trail int) systems.ParticleView {
	return systems.ParticleView{
		Pos:   components.Position{X: x, Y: y},
		Size:  7,
		Trail: make([]components.Position, trail),
	}
}

func TestComputeDispersion(t *testing.T) {
	particles := []systems.ParticleView{
		view(0, 0, 10),
		view(10, 0, 20),
		view(0, 10, 30),
		view(10, 10, 40),
	}

	d := ComputeDispersion(particles)

	if d.MeanX != 5 || d.MeanY != 5 {
		t.Errorf("centroid = (%v, %v), want (5, 5)", d.MeanX, d.MeanY)
	}
	// Sample stddev of {0, 10, 0, 10}
	wantStd := math.Sqrt(100.0 / 3.0)
	if math.Abs(d.StdX-wantStd) > 1e-9 || math.Abs(d.StdY-wantStd) > 1e-9 {
		t.Errorf("std = (%v, %v), want %v", d.StdX, d.StdY, wantStd)
	}
	// Every corner is the same distance from the centroid
	wantSpread := math.Hypot(5, 5)
	if math.Abs(d.SpreadP50-wantSpread) > 1e-9 || math.Abs(d.SpreadP90-wantSpread) > 1e-9 {
		t.Errorf("spread = (%v, %v), want %v", d.SpreadP50, d.SpreadP90, wantSpread)
	}
	if d.MeanTrail != 25 {
		t.Errorf("mean trail = %v, want 25", d.MeanTrail)
	}
}

func TestComputeDispersionEdgeCases(t *testing.T) {
	tests := []struct {
		name      string
		particles []systems.ParticleView
		want      Dispersion
	}{
		{"empty", nil, Dispersion{}},
		{"single", []systems.ParticleView{view(3, 4, 2)}, Dispersion{MeanX: 3, MeanY: 4, MeanTrail: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeDispersion(tt.particles)
			if got != tt.want {
				t.Errorf("ComputeDispersion = %+v, want %+v", got, tt.want)
			}
		})
	}
}
