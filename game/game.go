// Package game hosts the window collaborator around the simulation engine:
// it owns the bounds, input, frame loop and telemetry hooks.
package game

import (
	"context"
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/brownian/config"
	"github.com/pthm-cable/brownian/renderer"
	"github.com/pthm-cable/brownian/systems"
	"github.com/pthm-cable/brownian/telemetry"
	"github.com/pthm-cable/brownian/ui"
)

const controlsLegend = "UP/=: Add | DOWN/-: Remove | R: Regenerate | T: Trails | H: HUD | F11: Fullscreen"

// Options configures game construction.
type Options struct {
	Seed         int64
	LogStats     bool
	OutputDir    string
	Headless     bool
	InitialCount int // < 0 uses field.initial_count from config
}

// Game holds the engine and everything the frame loop needs around it.
type Game struct {
	engine *systems.Engine
	bounds *systems.SharedBounds

	// Telemetry
	perfCollector *telemetry.PerfCollector
	collector     *telemetry.Collector
	outputManager *telemetry.OutputManager
	logStats      bool

	// Render-side state
	headless         bool
	title            string
	particleRenderer *renderer.ParticleRenderer
	hud              *ui.HUD
	controls         *ui.ControlPanel
	framePerf        *framePerf
	snapshot         []systems.ParticleView
	showTrails       bool
	showHUD          bool
	batchSize        int
	started          time.Time
	screenWidth      int
	screenHeight     int
}

// NewGameWithOptions builds the engine from the global config and starts it.
func NewGameWithOptions(opts Options) *Game {
	cfg := config.Cfg()

	g := &Game{
		bounds:        systems.NewSharedBounds(cfg.Screen.Width, cfg.Screen.Height),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		collector:     telemetry.NewCollector(cfg.Derived.TicksPerWindow, cfg.Derived.TickPeriod),
		logStats:      opts.LogStats,
		headless:      opts.Headless,
		title:         cfg.Screen.Title,
		showTrails:    cfg.Render.ShowTrails,
		showHUD:       cfg.Render.ShowHUD,
		batchSize:     cfg.Render.BatchSize,
		started:       time.Now(),
		screenWidth:   cfg.Screen.Width,
		screenHeight:  cfg.Screen.Height,
	}

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			slog.Error("failed to create output manager", "error", err)
		} else {
			g.outputManager = om
			if err := om.WriteConfig(cfg); err != nil {
				slog.Error("failed to write config snapshot", "error", err)
			}
		}
	}

	initial := cfg.Field.InitialCount
	if opts.InitialCount >= 0 {
		initial = min(opts.InitialCount, cfg.Field.Capacity)
	}

	seed := uint64(opts.Seed)
	g.engine = systems.NewEngine(systems.EngineOptions{
		Field: systems.FieldConfig{
			Capacity:     cfg.Field.Capacity,
			ParticleSize: cfg.Field.ParticleSize,
			TrailLength:  cfg.Walk.HistoryLength,
			Seed:         seed,
		},
		Walk: systems.WalkerConfig{
			ChunkSize: cfg.Walk.ChunkSize,
			MaxOffset: cfg.Walk.MaxOffset,
			Workers:   cfg.Walk.Workers,
			Seed:      seed,
		},
		Period:       cfg.Derived.TickPeriod,
		InitialCount: initial,
		Bounds:       g.bounds,
		OnTick:       g.onTick,
	})

	if !opts.Headless {
		g.particleRenderer = renderer.NewParticleRenderer(cfg.Render.ColorCycleSec)
		g.hud = ui.NewHUD(10, 10, 260)
		g.controls = ui.NewControlPanel(10, 200, 260, cfg.Field.Capacity/10)
		g.framePerf = newFramePerf(cfg.Telemetry.PerfCollectorWindow)
	}

	slog.Info("simulation started",
		"seed", opts.Seed,
		"particles", g.engine.Count(),
		"capacity", g.engine.Capacity(),
		"period", cfg.Derived.TickPeriod,
		"headless", opts.Headless,
	)

	return g
}

// onTick runs on the clock goroutine after every tick.
func (g *Game) onTick(s systems.TickStats) {
	g.perfCollector.RecordTick(s.LockWait, s.Compute)
	g.collector.RecordTick(s)
}

// Update processes input and telemetry for one rendered frame.
func (g *Game) Update() {
	g.handleInput()
	g.flushTelemetry()
}

// UpdateHeadless blocks until the engine signals a new frame, then handles
// telemetry. It returns ctx.Err() if ctx is done first.
func (g *Game) UpdateHeadless(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-g.engine.Frames():
	}
	g.flushTelemetry()
	return nil
}

// Draw renders the current snapshot and the UI.
func (g *Game) Draw() {
	g.perfCollector.RecordFrame()

	start := time.Now()
	g.snapshot = g.engine.SnapshotInto(g.snapshot)
	g.framePerf.Record(phaseSnapshot, time.Since(start))

	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 12, G: 14, B: 18, A: 255})

	start = time.Now()
	g.particleRenderer.Draw(g.snapshot, g.showTrails, time.Since(g.started).Seconds())
	g.framePerf.Record(phaseDraw, time.Since(start))

	start = time.Now()
	g.drawUI()
	g.framePerf.Record(phaseUI, time.Since(start))

	rl.EndDrawing()
}

func (g *Game) drawUI() {
	if !g.showHUD {
		g.hud.DrawControls(int32(g.screenHeight), controlsLegend)
		return
	}

	last, _ := g.engine.LastTick()
	bottom := g.hud.Draw(ui.HUDData{
		Title:        g.title,
		Particles:    len(g.snapshot),
		Capacity:     g.engine.Capacity(),
		Tick:         g.engine.Ticks(),
		TickDuration: last.LockWait + last.Compute,
		Chunks:       last.Chunks,
		Clamped:      last.Clamped,
		FPS:          rl.GetFPS(),
		Trails:       g.showTrails,
		RenderTime:   g.framePerf.Total(),
	})

	g.controls.SetPosition(10, bottom+6)
	actions := g.controls.Draw(g.batchSize, g.showTrails)
	g.batchSize = actions.BatchSize
	g.applyActions(actions)

	g.hud.DrawControls(int32(g.screenHeight), controlsLegend)
}

// Tick returns the number of completed engine ticks.
func (g *Game) Tick() uint64 {
	return g.engine.Ticks()
}

// Unload stops the engine and flushes pending output.
func (g *Game) Unload() {
	g.engine.Close()
	if g.logStats {
		g.perfCollector.Stats().LogStats()
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	slog.Info("simulation stopped", "ticks", g.engine.Ticks(), "particles", g.engine.Count())
}
