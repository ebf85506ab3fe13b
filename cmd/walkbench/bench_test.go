package main

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseChunkSizes(t *testing.T) {
	tests := []struct {
		in      string
		want    []int
		wantErr bool
	}{
		{"2000", []int{2000}, false},
		{"1, 10 ,100", []int{1, 10, 100}, false},
		{"500,,", []int{500}, false},
		{"", nil, true},
		{"0", nil, true},
		{"abc", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseChunkSizes(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	r := summarize(500, 4, 2000, []float64{100, 200, 300, 400})
	if r.MeanMicros != 250 {
		t.Errorf("mean = %v, want 250", r.MeanMicros)
	}
	if math.Abs(r.TicksPerSec-4000) > 1e-9 {
		t.Errorf("ticks/sec = %v, want 4000", r.TicksPerSec)
	}
	if r.StdMicros <= 0 {
		t.Errorf("std = %v, want > 0", r.StdMicros)
	}
	if r.P90Micros != 400 {
		t.Errorf("p90 = %v, want 400", r.P90Micros)
	}

	single := summarize(1, 1, 1, []float64{50})
	if single.StdMicros != 0 {
		t.Errorf("single-sample std = %v, want 0", single.StdMicros)
	}
}

func TestRunReportsChunkCount(t *testing.T) {
	b := benchConfig{
		Particles: 4500, Ticks: 3, Seed: 1,
		Width: 640, Height: 480, Size: 7, MaxOffset: 10, History: 5,
	}
	r := b.run(2000)
	if r.Chunks != 3 {
		t.Errorf("chunks = %d, want 3", r.Chunks)
	}
	if r.Ticks != 3 {
		t.Errorf("ticks = %d, want 3", r.Ticks)
	}
}

func TestWriteResults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.csv")
	results := []result{{ChunkSize: 100, Chunks: 2}, {ChunkSize: 200, Chunks: 1}}
	if err := writeResults(path, results); err != nil {
		t.Fatalf("writeResults: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), data)
	}
	if !strings.HasPrefix(lines[0], "chunk_size,chunks") {
		t.Errorf("header = %q", lines[0])
	}
}
