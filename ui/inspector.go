package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/spectrogrid/components"
)

// InspectorData holds the selected cell and the band currently driving it.
type InspectorData struct {
	CellX, CellZ int
	Position     components.Position
	Scale        components.Scale
	Material     components.Material
	Color        rl.Color
	BandIndex    int
	Band         float64
}

// Inspector renders the cell inspection panel.
type Inspector struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewInspector creates a new inspector panel.
func NewInspector(x, y, width int32) *Inspector {
	return &Inspector{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the inspector position.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

// Draw renders the inspector panel and returns the bottom Y.
func (ins *Inspector) Draw(data InspectorData) int32 {
	r := ins.renderer
	padding := r.Theme.Pad
	contentWidth := ins.width - padding*2
	x := ins.x + padding

	r.DrawPanel(ins.x, ins.y, ins.width, 190)

	y := ins.y + padding
	rl.DrawText(fmt.Sprintf("Cell (%d, %d)", data.CellX, data.CellZ), x, y, 16, rl.White)
	y += 22

	y = r.DrawSectionHeader(x, y, "Position")
	y = ins.drawComponent(x, y, data.Position, contentWidth)
	y = r.DrawSectionHeader(x, y, "Scale")
	y = ins.drawComponent(x, y, data.Scale, contentWidth)
	y = r.DrawSectionHeader(x, y, "Material")
	y = r.DrawColorSwatch(x, y, fmt.Sprintf("Index %d", data.Material.Index), data.Color)

	// %f renders ±Inf and NaN by name
	y = r.DrawLabelValue(x, y, fmt.Sprintf("Band %d", data.BandIndex), fmt.Sprintf("%.3f", data.Band))

	return y
}

// drawComponent draws each inspectable field of a component.
func (ins *Inspector) drawComponent(x, y int32, component any, width int32) int32 {
	r := ins.renderer
	for _, f := range ExtractFields(component) {
		switch f.Widget {
		case WidgetBar:
			v, ok := FloatValue(f.Value)
			if !ok {
				continue
			}
			y = r.DrawBar(x, y, f.Name, v, OptionFloat(f.Options, "max", 1), width)
		default:
			y = r.DrawLabelValue(x, y, f.Name, FormatValue(f.Value, f.Options["fmt"]))
		}
	}
	return y
}
