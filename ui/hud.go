package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title        string
	Particles    int
	Capacity     int
	Tick         uint64
	TickDuration time.Duration
	Chunks       int
	Clamped      int
	FPS          int32
	Trails       bool
	RenderTime   time.Duration
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewHUD creates a new HUD renderer.
func NewHUD(x, y, width int32) *HUD {
	return &HUD{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Draw renders the HUD and returns the Y position below it.
func (h *HUD) Draw(data HUDData) int32 {
	r := h.renderer
	padding := r.Theme.Padding
	height := r.Theme.LineHeight*9 + padding*2 + 6

	r.DrawPanel(h.x, h.y, h.width, height)

	x := h.x + padding
	y := h.y + padding
	inner := h.width - padding*2

	y = r.DrawSectionHeader(x, y, data.Title)

	fill := float32(0)
	if data.Capacity > 0 {
		fill = float32(data.Particles) / float32(data.Capacity)
	}
	y = r.DrawLabelValue(x, y, "Particles", fmt.Sprintf("%d / %d", data.Particles, data.Capacity))
	y = r.DrawFillBar(x, y, "Capacity", fill, inner)
	y = r.DrawLabelValue(x, y, "Tick", fmt.Sprintf("%d", data.Tick))
	y = r.DrawLabelValue(x, y, "Tick time", data.TickDuration.Round(time.Microsecond).String())
	y = r.DrawLabelValue(x, y, "Chunks", fmt.Sprintf("%d (%d clamped)", data.Chunks, data.Clamped))
	y = r.DrawLabelValue(x, y, "FPS", fmt.Sprintf("%d", data.FPS))

	trails := "off"
	if data.Trails {
		trails = "on"
	}
	y = r.DrawLabelValue(x, y, "Trails", trails)
	y = r.DrawLabelValue(x, y, "Render", data.RenderTime.Round(time.Microsecond).String())

	return y + padding
}

// DrawControls renders the key legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}
