package main

import (
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/brownian/systems"
)

type benchConfig struct {
	Particles int
	Ticks     int
	Warmup    int
	Seed      uint64
	Width     int
	Height    int
	Size      int
	MaxOffset int
	History   int
	Workers   int
}

// result is one row of the benchmark CSV.
type result struct {
	ChunkSize   int     `csv:"chunk_size"`
	Chunks      int     `csv:"chunks"`
	Particles   int     `csv:"particles"`
	Ticks       int     `csv:"ticks"`
	MeanMicros  float64 `csv:"mean_us"`
	StdMicros   float64 `csv:"std_us"`
	P90Micros   float64 `csv:"p90_us"`
	TicksPerSec float64 `csv:"ticks_per_sec"`
}

// run times the walker over a fresh field for one chunk size.
func (b benchConfig) run(chunkSize int) result {
	bounds := systems.Bounds{W: b.Width, H: b.Height}
	field := systems.NewField(systems.FieldConfig{
		Capacity:     b.Particles,
		ParticleSize: b.Size,
		TrailLength:  b.History,
		Seed:         b.Seed,
	}, systems.StaticBounds(bounds))
	field.AddN(b.Particles)

	walker := systems.NewWalker(field, systems.WalkerConfig{
		ChunkSize: chunkSize,
		MaxOffset: b.MaxOffset,
		Workers:   b.Workers,
		Seed:      b.Seed,
	})
	defer walker.Close()

	for range b.Warmup {
		walker.Tick(bounds)
	}

	samples := make([]float64, b.Ticks)
	var chunks int
	for i := range samples {
		s := walker.Tick(bounds)
		samples[i] = float64(s.Compute) / float64(time.Microsecond)
		chunks = s.Chunks
	}

	return summarize(chunkSize, chunks, b.Particles, samples)
}

// summarize reduces per-tick durations in microseconds to a result row.
func summarize(chunkSize, chunks, particles int, samples []float64) result {
	r := result{
		ChunkSize: chunkSize,
		Chunks:    chunks,
		Particles: particles,
		Ticks:     len(samples),
	}
	if len(samples) == 0 {
		return r
	}

	mean, std := stat.MeanStdDev(samples, nil)
	if len(samples) == 1 {
		std = 0
	}
	sorted := slices.Clone(samples)
	slices.Sort(sorted)

	r.MeanMicros = mean
	r.StdMicros = std
	r.P90Micros = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	if mean > 0 {
		r.TicksPerSec = 1e6 / mean
	}
	return r
}

// fastest returns the row with the lowest mean tick time.
func fastest(results []result) result {
	var best result
	for i, r := range results {
		if i == 0 || r.MeanMicros < best.MeanMicros {
			best = r
		}
	}
	return best
}

func writeResults(path string, results []result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&results, f); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}
	return nil
}
