package game

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/spectrogrid/systems"
	"github.com/pthm-cable/spectrogrid/ui"
)

const controlsLegend = "Space: pause | .: step | Shift+Arrows: orbit | Arrows: select cell | Wheel: zoom | Home: reset | Tab: controls | F3: perf"

// Update handles input, advances the camera and runs one pipeline step
// unless paused or the source has ended.
func (g *Game) Update() {
	g.handleInput()
	g.camera.Update(rl.GetFrameTime())

	if g.ended {
		return
	}
	if g.paused && !g.stepOnce {
		return
	}
	g.stepOnce = false
	g.UpdateHeadless()
}

// Draw renders the grid and the enabled overlays.
func (g *Game) Draw() {
	rl.BeginDrawing()

	g.background.SetLevel(g.loudness())
	g.background.Draw()
	g.gridView.Draw(g.camera)

	g.drawActiveOverlays()

	g.perfCollector.RecordDraw()
	rl.EndDrawing()
}

// drawActiveOverlays draws every panel whose overlay is enabled.
func (g *Game) drawActiveOverlays() {
	if g.overlays.IsEnabled(ui.OverlayHUD) {
		g.hud.Draw(ui.HUDData{
			Title:      "Spectrogrid",
			Source:     g.sourceName,
			Window:     g.cfg.Audio.Window,
			Frame:      g.frame,
			FPS:        rl.GetFPS(),
			BandCount:  g.reducer.BandCount(),
			BandWidth:  g.reducer.BandWidth(),
			Entities:   len(g.entities),
			NonFinite:  len(g.lastReport.NonFinite),
			Paused:     g.paused,
			Ended:      g.ended,
			OrbitSpeed: g.camera.OrbitSpeed,
		})
		g.hud.DrawControls(g.screenHeight, controlsLegend)
	}

	if g.overlays.IsEnabled(ui.OverlayBands) {
		g.bandPanel.Draw(g.bands, 0, float32(g.cfg.Spectrum.LogOffset)+3)
	}

	if g.overlays.IsEnabled(ui.OverlayControls) {
		res := g.controls.Draw(ui.ControlsState{
			Paused:     g.paused,
			OrbitSpeed: g.camera.OrbitSpeed,
		}, g.overlays)
		g.paused = res.State.Paused
		g.camera.OrbitSpeed = res.State.OrbitSpeed
		if res.StepOnce {
			g.paused = true
			g.stepOnce = true
		}
		if res.ResetCamera {
			g.camera.Reset()
		}
	}

	if g.overlays.IsEnabled(ui.OverlayPerf) {
		stats := g.perfCollector.Stats()
		g.perfPanel.Draw(ui.PerfPanelData{
			Total:    stats.AvgStepDuration,
			Stages:   stats.Stages,
			Registry: g.registry,
		})
	}

	if g.overlays.IsEnabled(ui.OverlayInspector) {
		if data, ok := g.inspectSelection(); ok {
			g.inspector.Draw(data)
		}
	}
}

// inspectSelection gathers the components of the selected cell.
func (g *Game) inspectSelection() (ui.InspectorData, bool) {
	idx := g.selection.Index()
	if idx < 0 || idx >= len(g.entities) {
		return ui.InspectorData{}, false
	}
	e := g.entities[idx]
	if !g.world.Alive(e) {
		return ui.InspectorData{}, false
	}

	pos, scale, mat := g.cellMap.Get(e)
	x, z := pos.Cell()
	band := systems.BandIndex(x, z, len(g.bands))
	return ui.InspectorData{
		CellX:     x,
		CellZ:     z,
		Position:  *pos,
		Scale:     *scale,
		Material:  *mat,
		Color:     g.palette[int(mat.Index)%len(g.palette)],
		BandIndex: band,
		Band:      g.bands[band],
	}, true
}

// loudness maps the mean finite band to [0, 1] for the backdrop.
func (g *Game) loudness() float32 {
	var sum float64
	var n int
	for _, b := range g.bands {
		if math.IsNaN(b) || math.IsInf(b, 0) {
			continue
		}
		sum += b
		n++
	}
	if n == 0 {
		return 0
	}
	mean := sum / float64(n)
	return float32(mean / (g.cfg.Spectrum.LogOffset + 3))
}
