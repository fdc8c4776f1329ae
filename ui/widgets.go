package ui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/spectrogrid/renderer"
)

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.Panel)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.Border)
}

// DrawSectionHeader draws a section header and returns the new Y position.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFont, r.Theme.Header)
	return y + r.Theme.Line
}

// DrawLabelValue draws a label and value on the same line.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, r.Theme.Font, r.Theme.Label)
	rl.DrawText(value, x+r.Theme.LabelW, y, r.Theme.Font, r.Theme.Value)
	return y + r.Theme.Line
}

// DrawBar draws a labelled horizontal bar for value in [0, max].
func (r *Renderer) DrawBar(x, y int32, label string, value, max float32, width int32) int32 {
	ratio := Ratio(value, 0, max)

	barX := x + r.Theme.LabelW
	barWidth := width - r.Theme.LabelW - 50

	rl.DrawText(label+":", x, y, r.Theme.Font, r.Theme.Label)
	rl.DrawRectangle(barX, y+2, barWidth, r.Theme.BarH, r.Theme.Track)
	rl.DrawRectangle(barX, y+2, int32(float32(barWidth)*ratio), r.Theme.BarH, r.Theme.Fill)
	rl.DrawText(fmt.Sprintf("%.2f", value), barX+barWidth+5, y, r.Theme.Font, r.Theme.Value)

	return y + r.Theme.Line + 2
}

// DrawBandBars draws one vertical bar per band, scaled over [min, max].
// Non-finite bands are drawn as a short red stub.
func (r *Renderer) DrawBandBars(x, y, width, height int32, bands []float64, min, max float32) {
	if len(bands) == 0 {
		return
	}
	rl.DrawRectangle(x, y, width, height, r.Theme.Track)

	gap := int32(1)
	barW := (width - gap*int32(len(bands)-1)) / int32(len(bands))
	if barW < 1 {
		barW, gap = 1, 0
	}

	for i, b := range bands {
		bx := x + int32(i)*(barW+gap)
		if math.IsNaN(b) || math.IsInf(b, 0) {
			rl.DrawRectangle(bx, y+height-3, barW, 3, r.Theme.Silent)
			continue
		}
		ratio := Ratio(float32(b), min, max)
		h := int32(float32(height) * ratio)
		col := renderer.LerpColor(r.Theme.Quiet, r.Theme.Loud, ratio)
		rl.DrawRectangle(bx, y+height-h, barW, h, col)
	}
}

// DrawColorSwatch draws a color preview square with label.
func (r *Renderer) DrawColorSwatch(x, y int32, label string, color rl.Color) int32 {
	rl.DrawText(label+":", x, y, r.Theme.Font, r.Theme.Label)
	swatchX := x + r.Theme.LabelW
	rl.DrawRectangle(swatchX, y, 20, r.Theme.BarH, color)
	rl.DrawRectangleLines(swatchX, y, 20, r.Theme.BarH, r.Theme.Border)
	return y + r.Theme.Line + 2
}

// Ratio maps v from [min, max] to [0, 1], clamped. NaN maps to 0.
func Ratio(v, min, max float32) float32 {
	if max <= min || v != v {
		return 0
	}
	t := (v - min) / (max - min)
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
