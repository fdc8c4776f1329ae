package game

// Panel geometry in screen pixels.
const (
	panelMargin    = 10
	bandPanelY     = 100
	bandPanelW     = 300
	bandPanelH     = 120
	columnGap      = 15
	columnW        = 240
	inspectorWidth = 240
)

type anchor struct{ X, Y int32 }

// panelLayout is where each 2D panel sits. The band chart and the shared
// left column (controls or perf) stack under the HUD; the inspector keeps
// to the right edge but never overlaps the left stack.
type panelLayout struct {
	Bands     anchor
	Column    anchor
	Inspector anchor
}

func layoutPanels(screenWidth int32) panelLayout {
	inspectorX := screenWidth - inspectorWidth - panelMargin
	if minX := int32(2*panelMargin + bandPanelW); inspectorX < minX {
		inspectorX = minX
	}
	return panelLayout{
		Bands:     anchor{panelMargin, bandPanelY},
		Column:    anchor{panelMargin, bandPanelY + bandPanelH + columnGap},
		Inspector: anchor{inspectorX, panelMargin},
	}
}

// placePanels moves every panel to its slot for the current screen size.
func (g *Game) placePanels() {
	l := layoutPanels(g.screenWidth)
	g.bandPanel.SetPosition(l.Bands.X, l.Bands.Y)
	g.controls.SetPosition(l.Column.X, l.Column.Y)
	g.perfPanel.SetPosition(l.Column.X, l.Column.Y)
	g.inspector.SetPosition(l.Inspector.X, l.Inspector.Y)
}
