package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Overlay identifies a toggleable layer: a 2D panel or a scene option.
type Overlay uint8

const (
	OverlayHUD Overlay = iota
	OverlayBands
	OverlayInspector
	OverlayControls
	OverlayFloor
	OverlayWireframe
	OverlayPerf
	overlayCount
)

// Section groups overlays in the controls panel legend.
type Section uint8

const (
	SectionPanels Section = iota
	SectionScene
	SectionDebug
	sectionCount
)

func (s Section) String() string {
	switch s {
	case SectionPanels:
		return "Panels"
	case SectionScene:
		return "Scene"
	case SectionDebug:
		return "Debug"
	}
	return fmt.Sprintf("Section(%d)", uint8(s))
}

type overlaySpec struct {
	name    string
	key     int32
	keyName string
	section Section
	on      bool // enabled at startup
	column  bool // drawn in the left column under the band chart
}

var overlayTable = [overlayCount]overlaySpec{
	OverlayHUD:       {name: "HUD", key: rl.KeyH, keyName: "H", section: SectionPanels, on: true},
	OverlayBands:     {name: "Band Bars", key: rl.KeyB, keyName: "B", section: SectionPanels, on: true},
	OverlayInspector: {name: "Cell Inspector", key: rl.KeyI, keyName: "I", section: SectionPanels},
	OverlayControls:  {name: "Controls", key: rl.KeyTab, keyName: "Tab", section: SectionPanels, column: true},
	OverlayFloor:     {name: "Floor Grid", key: rl.KeyG, keyName: "G", section: SectionScene, on: true},
	OverlayWireframe: {name: "Wireframe", key: rl.KeyW, keyName: "W", section: SectionScene},
	OverlayPerf:      {name: "Pipeline Timing", key: rl.KeyF3, keyName: "F3", section: SectionDebug, column: true},
}

func (o Overlay) String() string {
	if o < overlayCount {
		return overlayTable[o].name
	}
	return fmt.Sprintf("Overlay(%d)", uint8(o))
}

// KeyLabel is the toggle key as shown in the legend.
func (o Overlay) KeyLabel() string {
	if o < overlayCount {
		return overlayTable[o].keyName
	}
	return ""
}

// Overlays tracks which overlays are enabled. Overlays drawn in the left
// column share it, so enabling one hides the others.
type Overlays struct {
	enabled [overlayCount]bool
}

// NewOverlays returns the startup overlay state: HUD, band bars and floor.
func NewOverlays() *Overlays {
	s := &Overlays{}
	for o, spec := range overlayTable {
		s.enabled[o] = spec.on
	}
	return s
}

// IsEnabled reports whether o is drawn.
func (s *Overlays) IsEnabled(o Overlay) bool {
	return o < overlayCount && s.enabled[o]
}

// SetEnabled shows or hides o.
func (s *Overlays) SetEnabled(o Overlay, on bool) {
	if o >= overlayCount {
		return
	}
	if on && overlayTable[o].column {
		for other, spec := range overlayTable {
			if spec.column {
				s.enabled[other] = false
			}
		}
	}
	s.enabled[o] = on
}

// Toggle flips o and returns its new state.
func (s *Overlays) Toggle(o Overlay) bool {
	on := !s.IsEnabled(o)
	s.SetEnabled(o, on)
	return s.IsEnabled(o)
}

// HandleKeyPress toggles the overlay bound to key. ok is false when no
// overlay uses the key.
func (s *Overlays) HandleKeyPress(key int32) (o Overlay, on, ok bool) {
	for i, spec := range overlayTable {
		if spec.key == key {
			o = Overlay(i)
			return o, s.Toggle(o), true
		}
	}
	return 0, false, false
}

// InSection lists the overlays of sec in table order.
func InSection(sec Section) []Overlay {
	var out []Overlay
	for i, spec := range overlayTable {
		if spec.section == sec {
			out = append(out, Overlay(i))
		}
	}
	return out
}
