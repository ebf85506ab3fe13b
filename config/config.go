// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Field     FieldConfig     `yaml:"field"`
	Walk      WalkConfig      `yaml:"walk"`
	Clock     ClockConfig     `yaml:"clock"`
	Render    RenderConfig    `yaml:"render"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Log       LogConfig       `yaml:"log"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// FieldConfig holds particle collection limits.
type FieldConfig struct {
	Capacity     int `yaml:"capacity"`      // Hard upper bound on particle count
	InitialCount int `yaml:"initial_count"` // Particles created at startup
	ParticleSize int `yaml:"particle_size"` // Visual size; also the clamp margin
}

// WalkConfig holds random walk parameters.
type WalkConfig struct {
	MaxOffset     int `yaml:"max_offset"`     // Per-axis step drawn from [-max, max]
	ChunkSize     int `yaml:"chunk_size"`     // Particles per parallel work unit
	HistoryLength int `yaml:"history_length"` // Trail points kept per particle
	Workers       int `yaml:"workers"`        // Worker goroutines (0 = GOMAXPROCS)
}

// ClockConfig holds tick timing.
type ClockConfig struct {
	PeriodMS int `yaml:"period_ms"`
}

// RenderConfig holds render-side state defaults.
type RenderConfig struct {
	ShowTrails    bool    `yaml:"show_trails"`
	ColorCycleSec float64 `yaml:"color_cycle_sec"` // Seconds per full hue rotation (0 = fixed color)
	BatchSize     int     `yaml:"batch_size"`      // Particles added/removed per key press
	ShowHUD       bool    `yaml:"show_hud"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`          // Seconds per stats window
	PerfCollectorWindow int     `yaml:"perf_collector_window"` // Ticks averaged by the perf collector
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	TickPeriod     time.Duration // Clock.PeriodMS as a duration
	TicksPerWindow int           // Telemetry.StatsWindow in ticks
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects values the engine cannot run with.
func (c *Config) validate() error {
	switch {
	case c.Field.Capacity < 0:
		return fmt.Errorf("field.capacity must be >= 0, got %d", c.Field.Capacity)
	case c.Field.InitialCount < 0:
		return fmt.Errorf("field.initial_count must be >= 0, got %d", c.Field.InitialCount)
	case c.Field.ParticleSize < 0:
		return fmt.Errorf("field.particle_size must be >= 0, got %d", c.Field.ParticleSize)
	case c.Walk.ChunkSize <= 0:
		return fmt.Errorf("walk.chunk_size must be > 0, got %d", c.Walk.ChunkSize)
	case c.Walk.MaxOffset < 0:
		return fmt.Errorf("walk.max_offset must be >= 0, got %d", c.Walk.MaxOffset)
	case c.Walk.HistoryLength < 0:
		return fmt.Errorf("walk.history_length must be >= 0, got %d", c.Walk.HistoryLength)
	case c.Clock.PeriodMS <= 0:
		return fmt.Errorf("clock.period_ms must be > 0, got %d", c.Clock.PeriodMS)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.TickPeriod = time.Duration(c.Clock.PeriodMS) * time.Millisecond

	ticks := int(c.Telemetry.StatsWindow * 1000 / float64(c.Clock.PeriodMS))
	if ticks < 1 {
		ticks = 1
	}
	c.Derived.TicksPerWindow = ticks

	if c.Render.BatchSize < 1 {
		c.Render.BatchSize = 1
	}
	// Initial population never exceeds the cap
	c.Field.InitialCount = min(c.Field.InitialCount, c.Field.Capacity)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
