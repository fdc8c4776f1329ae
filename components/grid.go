// Package components defines ECS components for the cube grid.
package components

import "math"

// Position is an entity's world position. Grid cells sit at integer X and Z.
type Position struct {
	X, Y, Z float32 `inspect:"label,fmt:%.1f"`
}

// Scale is an entity's per-axis scale. Y is the audio-driven height.
type Scale struct {
	X float32 `inspect:"skip"`
	Y float32 `inspect:"bar,max:64"`
	Z float32 `inspect:"skip"`
}

// Material selects a palette entry for drawing.
type Material struct {
	Index uint8 `inspect:"label"`
}

// Cell returns the integer grid coordinates embedded in the position.
func (p Position) Cell() (x, z int) {
	return int(math.Floor(float64(p.X))), int(math.Floor(float64(p.Z)))
}
