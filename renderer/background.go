package renderer

import rl "github.com/gen2brain/raylib-go/raylib"

// BackgroundRenderer draws a vertical gradient whose top brightens with loudness.
type BackgroundRenderer struct {
	screenW, screenH int32

	quiet, loud, bottom rl.Color
	level               float32
}

// NewBackgroundRenderer creates a background for the given screen size.
func NewBackgroundRenderer(screenW, screenH int32) *BackgroundRenderer {
	return &BackgroundRenderer{
		screenW: screenW,
		screenH: screenH,
		quiet:   rl.NewColor(18, 20, 28, 255),
		loud:    rl.NewColor(60, 40, 90, 255),
		bottom:  rl.NewColor(6, 6, 10, 255),
	}
}

// Resize updates the drawn area.
func (b *BackgroundRenderer) Resize(screenW, screenH int32) {
	b.screenW, b.screenH = screenW, screenH
}

// SetLevel sets the loudness in [0, 1]. Changes are eased to avoid flicker.
func (b *BackgroundRenderer) SetLevel(level float32) {
	if level != level { // NaN
		level = 0
	}
	level = clamp01(level)
	b.level += (level - b.level) * 0.1
}

// Level returns the eased loudness.
func (b *BackgroundRenderer) Level() float32 {
	return b.level
}

// Draw fills the screen with the gradient.
func (b *BackgroundRenderer) Draw() {
	top := LerpColor(b.quiet, b.loud, b.level)
	rl.DrawRectangleGradientV(0, 0, b.screenW, b.screenH, top, b.bottom)
}

// LerpColor linearly interpolates between two colors, t in [0, 1].
func LerpColor(a, b rl.Color, t float32) rl.Color {
	t = clamp01(t)
	mix := func(x, y uint8) uint8 {
		return uint8(float32(x) + (float32(y)-float32(x))*t + 0.5)
	}
	return rl.NewColor(mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), mix(a.A, b.A))
}

func clamp01(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
