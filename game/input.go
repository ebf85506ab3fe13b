package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/brownian/ui"
)

// handleInput processes keyboard input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.addBatch()
	}
	if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.removeBatch()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.regenerate("key")
	}
	if rl.IsKeyPressed(rl.KeyT) {
		g.showTrails = !g.showTrails
	}
	if rl.IsKeyPressed(rl.KeyH) {
		g.showHUD = !g.showHUD
	}
}

// handleResize checks for window resize and propagates new bounds.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := int(rl.GetScreenWidth())
	h := int(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	g.bounds.Set(w, h)
	slog.Info("window resized", "width", w, "height", h)
	g.regenerate("resize")
}

// applyActions applies clicks from the control panel.
func (g *Game) applyActions(a ui.ControlActions) {
	if a.Add {
		g.addBatch()
	}
	if a.Remove {
		g.removeBatch()
	}
	if a.Regenerate {
		g.regenerate("button")
	}
	if a.ToggleTrail {
		g.showTrails = !g.showTrails
	}
}

func (g *Game) addBatch() {
	n := g.engine.AddN(g.batchSize)
	g.collector.RecordAdd(n)
	if n < g.batchSize {
		slog.Debug("field at capacity", "requested", g.batchSize, "added", n, "capacity", g.engine.Capacity())
	}
}

func (g *Game) removeBatch() {
	n := g.engine.RemoveN(g.batchSize)
	g.collector.RecordRemove(n)
}

func (g *Game) regenerate(reason string) {
	g.engine.Regenerate()
	g.collector.RecordRegenerate()
	slog.Debug("field regenerated", "reason", reason, "particles", g.engine.Count())
}
