package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/spectrogrid/ui"
)

// orbitStep is the yaw/pitch change per frame while an orbit key is held.
const orbitStep = 0.02

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Single step while paused
	if rl.IsKeyPressed(rl.KeyPeriod) && g.paused {
		g.stepOnce = true
	}

	// Overlay toggles
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		if id, on, ok := g.overlays.HandleKeyPress(key); ok {
			g.applyOverlay(id, on)
		}
	}

	g.handleCameraInput()
	g.handleSelectionInput()
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := int32(rl.GetScreenWidth())
	h := int32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	g.background.Resize(w, h)
	g.placePanels()
}

// handleCameraInput processes orbit and zoom controls. Arrow keys orbit only
// while Shift is held; without it they move the inspected cell.
func (g *Game) handleCameraInput() {
	shift := rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
	if shift {
		if rl.IsKeyDown(rl.KeyRight) {
			g.camera.Orbit(orbitStep, 0)
		}
		if rl.IsKeyDown(rl.KeyLeft) {
			g.camera.Orbit(-orbitStep, 0)
		}
		if rl.IsKeyDown(rl.KeyUp) {
			g.camera.Orbit(0, orbitStep)
		}
		if rl.IsKeyDown(rl.KeyDown) {
			g.camera.Orbit(0, -orbitStep)
		}
	}

	// Zoom controls: mouse wheel or +/- keys
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.camera.ZoomWheel(wheel)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomIn()
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomOut()
	}

	// Home key to reset camera
	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}

// handleSelectionInput moves the inspected cell with the arrow keys.
func (g *Game) handleSelectionInput() {
	if rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift) {
		return
	}
	if rl.IsKeyPressed(rl.KeyRight) {
		g.selection.Move(1, 0)
	}
	if rl.IsKeyPressed(rl.KeyLeft) {
		g.selection.Move(-1, 0)
	}
	if rl.IsKeyPressed(rl.KeyDown) {
		g.selection.Move(0, 1)
	}
	if rl.IsKeyPressed(rl.KeyUp) {
		g.selection.Move(0, -1)
	}
}

// applyOverlay pushes scene overlay state into the grid renderer.
func (g *Game) applyOverlay(id ui.Overlay, on bool) {
	switch id {
	case ui.OverlayFloor:
		g.gridView.SetFloor(on)
	case ui.OverlayWireframe:
		g.gridView.SetWireframe(on)
	}
}
