package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/spectrogrid/systems"
	"github.com/pthm-cable/spectrogrid/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title      string
	Source     string
	Window     string
	Frame      int32
	FPS        int32
	BandCount  int
	BandWidth  int
	Entities   int
	NonFinite  int // non-finite bands in the last frame
	Paused     bool
	Ended      bool
	OrbitSpeed float32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Source: %s | Window: %s | %d bands x %d bins | %d cells",
			data.Source, data.Window, data.BandCount, data.BandWidth, data.Entities),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Frame: %d | FPS: %d | Orbit: %.2f", data.Frame, data.FPS, data.OrbitSpeed),
		10, 55, 16, rl.LightGray,
	)

	status, col := statusLine(data)
	rl.DrawText(status, 10, 75, 16, col)
}

func statusLine(data HUDData) (string, rl.Color) {
	switch {
	case data.Ended:
		return "SOURCE ENDED", rl.Orange
	case data.Paused:
		return "PAUSED", rl.Yellow
	case data.NonFinite > 0:
		return fmt.Sprintf("Running (%d silent bands)", data.NonFinite), rl.Yellow
	}
	return "Running", rl.Green
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// BandPanel renders the current band array as a bar chart.
type BandPanel struct {
	renderer      *Renderer
	x, y          int32
	width, height int32
}

// NewBandPanel creates a band chart anchored at (x, y).
func NewBandPanel(x, y, width, height int32) *BandPanel {
	return &BandPanel{renderer: NewRenderer(), x: x, y: y, width: width, height: height}
}

// SetPosition updates the panel position.
func (b *BandPanel) SetPosition(x, y int32) {
	b.x = x
	b.y = y
}

// Draw renders the bands. min and max set the vertical scale in band units.
func (b *BandPanel) Draw(bands []float64, min, max float32) {
	r := b.renderer
	pad := r.Theme.Pad
	r.DrawPanel(b.x, b.y, b.width, b.height)
	rl.DrawText(fmt.Sprintf("Bands [%.0f, %.0f]", min, max), b.x+pad, b.y+4, r.Theme.Font, r.Theme.Label)
	r.DrawBandBars(b.x+pad, b.y+20, b.width-pad*2, b.height-20-pad, bands, min, max)
}

// PerfPanelData holds performance metrics for display.
type PerfPanelData struct {
	Total    time.Duration
	Stages   []telemetry.StageTiming
	Registry *systems.SystemRegistry
}

// PerfPanel renders the per-stage timing panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel, one line per timed stage.
func (p *PerfPanel) Draw(data PerfPanelData) {
	x := p.x
	y := p.y

	rl.DrawText("Pipeline Timing", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Step: %s", data.Total.Round(time.Microsecond)), x, y, 14, rl.Yellow)
	y += 16

	for _, st := range data.Stages {
		color := rl.LightGray
		if st.Pct > 50 {
			color = rl.Red
		} else if st.Pct > 25 {
			color = rl.Orange
		}

		name := st.ID
		if data.Registry != nil {
			name = data.Registry.GetName(st.ID)
		}
		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", name, st.Avg.Round(time.Microsecond), st.Pct),
			x, y, 12, color,
		)
		y += 14
	}
}
