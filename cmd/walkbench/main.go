// Package main benchmarks walker throughput across chunk sizes.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pthm-cable/brownian/config"
	"github.com/pthm-cable/brownian/game"
)

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	chunkList := flag.String("chunks", "250,500,1000,2000,5000,10000", "Comma-separated chunk sizes")
	particles := flag.Int("particles", 0, "Population size (0 = field.capacity)")
	ticks := flag.Int("ticks", 400, "Ticks per chunk size")
	warmup := flag.Int("warmup", 20, "Untimed ticks before measuring")
	seed := flag.Uint64("seed", 42, "RNG seed")
	output := flag.String("output", "", "CSV file for results (empty = log only)")
	logLevel := flag.String("log-level", "info", "Log level")
	flag.Parse()

	level, err := game.ParseLevel(*logLevel)
	if err != nil {
		slog.Error("invalid log level", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(game.NewLogger(os.Stdout, level))

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	chunks, err := parseChunkSizes(*chunkList)
	if err != nil {
		slog.Error("invalid -chunks", "error", err)
		os.Exit(1)
	}

	n := *particles
	if n <= 0 {
		n = cfg.Field.Capacity
	}

	bench := benchConfig{
		Particles: n,
		Ticks:     max(*ticks, 1),
		Warmup:    max(*warmup, 0),
		Seed:      *seed,
		Width:     cfg.Screen.Width,
		Height:    cfg.Screen.Height,
		Size:      cfg.Field.ParticleSize,
		MaxOffset: cfg.Walk.MaxOffset,
		History:   cfg.Walk.HistoryLength,
		Workers:   cfg.Walk.Workers,
	}

	slog.Info("walkbench starting",
		"particles", bench.Particles,
		"ticks", bench.Ticks,
		"chunk_sizes", chunks,
	)

	start := time.Now()
	results := make([]result, 0, len(chunks))
	for _, c := range chunks {
		r := bench.run(c)
		slog.Info("chunk size done",
			"chunk_size", r.ChunkSize,
			"chunks", r.Chunks,
			"mean_us", r.MeanMicros,
			"std_us", r.StdMicros,
			"p90_us", r.P90Micros,
			"ticks_per_sec", r.TicksPerSec,
		)
		results = append(results, r)
	}

	best := fastest(results)
	slog.Info("walkbench finished",
		"elapsed", time.Since(start).Round(time.Millisecond).String(),
		"best_chunk_size", best.ChunkSize,
		"best_mean_us", best.MeanMicros,
	)

	if *output != "" {
		if err := writeResults(*output, results); err != nil {
			slog.Error("failed to write results", "error", err)
			os.Exit(1)
		}
		slog.Info("results written", "path", *output)
	}
}

func parseChunkSizes(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("chunk size %q: %w", part, err)
		}
		if v <= 0 {
			return nil, fmt.Errorf("chunk size must be > 0, got %d", v)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no chunk sizes given")
	}
	return out, nil
}
