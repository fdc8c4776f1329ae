// Package camera provides an orbit camera around the visualizer grid.
package camera

import "math"

// Camera orbits a target point on a sphere described by distance, yaw and pitch.
type Camera struct {
	// Target is the point the camera looks at, in world coordinates
	TargetX, TargetY, TargetZ float32

	Distance float32
	Yaw      float32 // radians around the Y axis, wrapped to [0, 2π)
	Pitch    float32 // radians above the XZ plane

	// OrbitSpeed is the auto-orbit rate in radians per second
	OrbitSpeed float32

	// Fovy is the vertical field of view in degrees
	Fovy float32

	// Constraints
	MinDistance, MaxDistance float32
	MinPitch, MaxPitch       float32

	home struct{ distance, yaw, pitch float32 }
}

// New creates a camera aimed at the origin.
func New(distance, pitch, yaw, fovy float32) *Camera {
	c := &Camera{
		Fovy:        fovy,
		MinDistance: 2,
		MaxDistance: 500,
		MinPitch:    0.05,
		MaxPitch:    math.Pi/2 - 0.01,
	}
	c.home.distance = distance
	c.home.yaw = wrapAngle(yaw)
	c.home.pitch = pitch
	c.Reset()
	return c
}

// CenterOnGrid aims the camera at the middle of a width×depth grid.
func (c *Camera) CenterOnGrid(width, depth int, spacing float32) {
	c.TargetX = float32(width-1) * spacing / 2
	c.TargetY = 0
	c.TargetZ = float32(depth-1) * spacing / 2
}

// Eye returns the camera position in world coordinates.
func (c *Camera) Eye() (x, y, z float32) {
	cp := math.Cos(float64(c.Pitch))
	x = c.TargetX + c.Distance*float32(cp*math.Cos(float64(c.Yaw)))
	y = c.TargetY + c.Distance*float32(math.Sin(float64(c.Pitch)))
	z = c.TargetZ + c.Distance*float32(cp*math.Sin(float64(c.Yaw)))
	return x, y, z
}

// Update advances the auto-orbit by dt seconds.
func (c *Camera) Update(dt float32) {
	if c.OrbitSpeed != 0 {
		c.Orbit(c.OrbitSpeed*dt, 0)
	}
}

// Orbit rotates the camera around the target. Pitch is clamped, yaw wraps.
func (c *Camera) Orbit(dYaw, dPitch float32) {
	c.Yaw = wrapAngle(c.Yaw + dYaw)
	c.Pitch = clamp(c.Pitch+dPitch, c.MinPitch, c.MaxPitch)
}

// SetDistance sets the orbit radius, clamped to min/max.
func (c *Camera) SetDistance(d float32) {
	c.Distance = clamp(d, c.MinDistance, c.MaxDistance)
}

// ZoomBy divides the orbit radius by the given factor (factor > 1 moves closer).
func (c *Camera) ZoomBy(factor float32) {
	if factor <= 0 {
		return
	}
	c.SetDistance(c.Distance / factor)
}

// ZoomStep is the distance ratio of one zoom key press.
const ZoomStep = 1.25

// ZoomIn moves the camera one step closer to the target.
func (c *Camera) ZoomIn() { c.ZoomBy(ZoomStep) }

// ZoomOut moves the camera one step away from the target.
func (c *Camera) ZoomOut() { c.ZoomBy(1 / ZoomStep) }

// ZoomWheel zooms by a mouse wheel movement; scrolling up (positive) moves closer.
func (c *Camera) ZoomWheel(move float32) {
	c.ZoomBy(1 + move*0.1)
}

// Reset returns the camera to its initial distance, yaw and pitch.
func (c *Camera) Reset() {
	c.SetDistance(c.home.distance)
	c.Yaw = c.home.yaw
	c.Pitch = clamp(c.home.pitch, c.MinPitch, c.MaxPitch)
}

// wrapAngle maps an angle to [0, 2π).
func wrapAngle(a float32) float32 {
	r := float32(math.Mod(float64(a), 2*math.Pi))
	if r < 0 {
		r += 2 * math.Pi
	}
	return r
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
