package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsState is the state the controls panel edits.
type ControlsState struct {
	Paused     bool
	OrbitSpeed float32 // radians per second
}

// ControlsResult reports the actions taken in the panel this frame.
type ControlsResult struct {
	State       ControlsState
	StepOnce    bool
	ResetCamera bool
}

// MaxOrbitSpeed bounds the orbit speed slider.
const MaxOrbitSpeed = 1.0

// ControlsPanel renders playback and camera widgets plus the overlay legend.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Draw renders the panel and returns the edited state.
func (c *ControlsPanel) Draw(state ControlsState, overlays *Overlays) ControlsResult {
	r := c.renderer
	padding := r.Theme.Pad
	lineHeight := r.Theme.Line
	res := ControlsResult{State: state}

	legendLines := int32(sectionCount) + int32(overlayCount)
	panelHeight := 110 + legendLines*lineHeight + padding*2
	r.DrawPanel(c.x, c.y, c.width, panelHeight)

	x := float32(c.x + padding)
	y := float32(c.y + padding)
	inner := float32(c.width - padding*2)

	rl.DrawText("Controls", int32(x), int32(y), 16, rl.White)
	y += 22

	half := (inner - 10) / 2
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: 24}, toggleText(state.Paused, "Resume", "Pause")) {
		res.State.Paused = !state.Paused
	}
	if gui.Button(rl.Rectangle{X: x + half + 10, Y: y, Width: half, Height: 24}, "Step") {
		res.StepOnce = true
	}
	y += 32

	rl.DrawText(fmt.Sprintf("Orbit %.2f rad/s", res.State.OrbitSpeed), int32(x), int32(y), r.Theme.Font, r.Theme.Label)
	y += 14
	res.State.OrbitSpeed = gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: inner, Height: 16},
		"", "",
		state.OrbitSpeed, -MaxOrbitSpeed, MaxOrbitSpeed,
	)
	y += 22

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: inner, Height: 20}, "Reset Camera") {
		res.ResetCamera = true
	}
	y += 30

	yi := int32(y)
	for sec := Section(0); sec < sectionCount; sec++ {
		rl.DrawText(sec.String(), c.x+padding, yi, r.Theme.HeaderFont, r.Theme.Header)
		yi += lineHeight
		for _, o := range InSection(sec) {
			c.drawToggle(c.x+padding, yi, o, overlays.IsEnabled(o), c.width-padding*2)
			yi += lineHeight
		}
	}

	return res
}

// drawToggle draws a single overlay toggle line.
func (c *ControlsPanel) drawToggle(x, y int32, o Overlay, enabled bool, width int32) {
	r := c.renderer

	statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
	nameColor := r.Theme.Label
	if enabled {
		statusColor = rl.Color{R: 100, G: 200, B: 100, A: 255}
		nameColor = rl.White
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)
	rl.DrawText(o.String(), x+14, y, r.Theme.Font, nameColor)

	if label := o.KeyLabel(); label != "" {
		keyText := fmt.Sprintf("[%s]", label)
		keyWidth := rl.MeasureText(keyText, r.Theme.Font)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.Font, rl.Color{R: 150, G: 150, B: 150, A: 255})
	}
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
