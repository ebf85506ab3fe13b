package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlActions reports what the user clicked this frame.
type ControlActions struct {
	Add         bool
	Remove      bool
	Regenerate  bool
	ToggleTrail bool
	BatchSize   int
}

// ControlPanel renders raygui buttons for the field mutation API.
type ControlPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	maxBatch int
}

// NewControlPanel creates a control panel; maxBatch bounds the batch slider.
func NewControlPanel(x, y, width int32, maxBatch int) *ControlPanel {
	return &ControlPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		maxBatch: max(maxBatch, 1),
	}
}

// SetPosition updates the panel position.
func (c *ControlPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Draw renders the panel and returns the actions triggered this frame.
func (c *ControlPanel) Draw(batchSize int, trails bool) ControlActions {
	r := c.renderer
	padding := r.Theme.Padding
	height := int32(150)

	r.DrawPanel(c.x, c.y, c.width, height)

	actions := ControlActions{BatchSize: batchSize}
	x := float32(c.x + padding)
	y := float32(c.y + padding)
	inner := float32(c.width - padding*2)
	half := (inner - float32(padding)) / 2

	rl.DrawText("Controls", int32(x), int32(y), r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	y += float32(r.Theme.LineHeight) + 4

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: 24}, fmt.Sprintf("Add %d", batchSize)) {
		actions.Add = true
	}
	if gui.Button(rl.Rectangle{X: x + half + float32(padding), Y: y, Width: half, Height: 24}, fmt.Sprintf("Remove %d", batchSize)) {
		actions.Remove = true
	}
	y += 30

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: 24}, "Regenerate") {
		actions.Regenerate = true
	}
	trailLabel := "Trails: off"
	if trails {
		trailLabel = "Trails: on"
	}
	if gui.Button(rl.Rectangle{X: x + half + float32(padding), Y: y, Width: half, Height: 24}, trailLabel) {
		actions.ToggleTrail = true
	}
	y += 34

	rl.DrawText("Batch size", int32(x), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
	y += float32(r.Theme.LineHeight)
	newBatch := gui.SliderBar(
		rl.Rectangle{X: x + 20, Y: y, Width: inner - 70, Height: 16},
		"1", fmt.Sprintf("%d", c.maxBatch),
		float32(batchSize), 1, float32(c.maxBatch),
	)
	rl.DrawText(fmt.Sprintf("%d", batchSize), int32(x+inner-30), int32(y), r.Theme.FontSize, r.Theme.ValueColor)
	actions.BatchSize = max(1, int(newBatch+0.5))

	return actions
}
