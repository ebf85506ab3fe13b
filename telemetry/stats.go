package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/brownian/systems"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick uint64  `csv:"-"`
	WindowEndTick   uint64  `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population at window end
	Particles int `csv:"particles"`

	// Control surface events during window
	Added         int `csv:"added"`
	Removed       int `csv:"removed"`
	Regenerations int `csv:"regenerations"`

	// Boundary pressure
	ClampedPerTick float64 `csv:"clamped_per_tick"`

	// Dispersion (sampled at window end)
	Dispersion
}

// Dispersion summarises where particles sit in the field.
type Dispersion struct {
	MeanX     float64 `csv:"mean_x"`
	MeanY     float64 `csv:"mean_y"`
	StdX      float64 `csv:"std_x"`
	StdY      float64 `csv:"std_y"`
	SpreadP50 float64 `csv:"spread_p50"` // distance from centroid
	SpreadP90 float64 `csv:"spread_p90"`
	MeanTrail float64 `csv:"mean_trail"`
}

// ComputeDispersion calculates centroid, spread and trail statistics from a snapshot.
func ComputeDispersion(particles []systems.ParticleView) Dispersion {
	n := len(particles)
	if n == 0 {
		return Dispersion{}
	}

	xs := make([]float64, n)
	ys := make([]float64, n)
	trails := make([]float64, n)
	for i, p := range particles {
		xs[i] = float64(p.Pos.X)
		ys[i] = float64(p.Pos.Y)
		trails[i] = float64(len(p.Trail))
	}

	var d Dispersion
	d.MeanX, d.StdX = stat.MeanStdDev(xs, nil)
	d.MeanY, d.StdY = stat.MeanStdDev(ys, nil)
	d.MeanTrail = stat.Mean(trails, nil)
	if n == 1 {
		// Sample stddev of one value is NaN
		d.StdX, d.StdY = 0, 0
	}

	dist := make([]float64, n)
	for i := range xs {
		dist[i] = math.Hypot(xs[i]-d.MeanX, ys[i]-d.MeanY)
	}
	sort.Float64s(dist)
	d.SpreadP50 = stat.Quantile(0.5, stat.Empirical, dist, nil)
	d.SpreadP90 = stat.Quantile(0.9, stat.Empirical, dist, nil)

	return d
}

// LogStats outputs the window stats via slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"particles", s.Particles,
		"added", s.Added,
		"removed", s.Removed,
		"regenerations", s.Regenerations,
		"clamped_per_tick", s.ClampedPerTick,
		"mean_x", s.MeanX,
		"mean_y", s.MeanY,
		"std_x", s.StdX,
		"std_y", s.StdY,
		"spread_p50", s.SpreadP50,
		"spread_p90", s.SpreadP90,
		"mean_trail", s.MeanTrail,
	)
}
