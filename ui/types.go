// Package ui draws the heads-up display, control panel and cell inspector
// on top of the 3D grid.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Palette holds the panel colors.
type Palette struct {
	Panel  rl.Color
	Border rl.Color
	Header rl.Color
	Label  rl.Color
	Value  rl.Color
	Track  rl.Color // unfilled part of a bar
	Fill   rl.Color
	Quiet  rl.Color // band chart at the bottom of its range
	Loud   rl.Color // band chart at the top of its range
	Silent rl.Color // stub drawn for a non-finite band
}

// Metrics holds spacing and font sizes in pixels.
type Metrics struct {
	Pad        int32
	Line       int32
	LabelW     int32
	BarH       int32
	Font       int32
	HeaderFont int32
}

// Theme is the look shared by every panel.
type Theme struct {
	Palette
	Metrics
}

// DefaultTheme is a dark translucent panel with a blue to orange band ramp.
func DefaultTheme() Theme {
	return Theme{
		Palette: Palette{
			Panel:  rl.Color{R: 20, G: 25, B: 30, A: 230},
			Border: rl.Color{R: 60, G: 70, B: 80, A: 255},
			Header: rl.Yellow,
			Label:  rl.LightGray,
			Value:  rl.RayWhite,
			Track:  rl.Color{R: 40, G: 40, B: 40, A: 255},
			Fill:   rl.Color{R: 100, G: 150, B: 200, A: 255},
			Quiet:  rl.Color{R: 60, G: 90, B: 160, A: 255},
			Loud:   rl.Color{R: 230, G: 120, B: 90, A: 255},
			Silent: rl.Color{R: 200, G: 60, B: 60, A: 255},
		},
		Metrics: Metrics{Pad: 10, Line: 16, LabelW: 70, BarH: 12, Font: 12, HeaderFont: 14},
	}
}
