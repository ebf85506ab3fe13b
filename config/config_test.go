package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	if cfg.Field.Capacity != 10000 {
		t.Errorf("capacity = %d, want 10000", cfg.Field.Capacity)
	}
	if cfg.Field.ParticleSize != 7 {
		t.Errorf("particle size = %d, want 7", cfg.Field.ParticleSize)
	}
	if cfg.Walk.ChunkSize != 2000 || cfg.Walk.HistoryLength != 50 || cfg.Walk.MaxOffset != 10 {
		t.Errorf("unexpected walk defaults %+v", cfg.Walk)
	}
	if cfg.Derived.TickPeriod != 25*time.Millisecond {
		t.Errorf("tick period = %v, want 25ms", cfg.Derived.TickPeriod)
	}
	if cfg.Derived.TicksPerWindow != 200 {
		t.Errorf("ticks per window = %d, want 200", cfg.Derived.TicksPerWindow)
	}
}

func TestLoadOverridesOnlyProvidedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "walk:\n  chunk_size: 500\nclock:\n  period_ms: 10\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Walk.ChunkSize != 500 {
		t.Errorf("chunk size = %d, want 500", cfg.Walk.ChunkSize)
	}
	if cfg.Walk.HistoryLength != 50 {
		t.Errorf("history length = %d, want default 50", cfg.Walk.HistoryLength)
	}
	if cfg.Derived.TickPeriod != 10*time.Millisecond {
		t.Errorf("tick period = %v, want 10ms", cfg.Derived.TickPeriod)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"zero chunk", "walk:\n  chunk_size: 0\n", "walk.chunk_size"},
		{"negative capacity", "field:\n  capacity: -1\n", "field.capacity"},
		{"zero period", "clock:\n  period_ms: 0\n", "clock.period_ms"},
		{"negative history", "walk:\n  history_length: -5\n", "walk.history_length"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestInitialCountCappedByCapacity(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "field:\n  capacity: 100\n  initial_count: 500\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Field.InitialCount != 100 {
		t.Errorf("initial count = %d, want 100", cfg.Field.InitialCount)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Walk.ChunkSize = 1234

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML error: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("reload error: %v", err)
	}
	if back.Walk.ChunkSize != 1234 {
		t.Errorf("reloaded chunk size = %d, want 1234", back.Walk.ChunkSize)
	}
}
