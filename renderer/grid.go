// Package renderer draws the band grid and its backdrop with raylib.
package renderer

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/spectrogrid/camera"
	"github.com/pthm-cable/spectrogrid/components"
	"github.com/pthm-cable/spectrogrid/config"
)

var (
	// ErrUnknownMesh is returned by ParseMesh for unsupported mesh names.
	ErrUnknownMesh = errors.New("renderer: unknown mesh")
	// ErrBadColor means a palette entry is not #rrggbb or #rrggbbaa.
	ErrBadColor = errors.New("renderer: bad color")
)

// Mesh selects the primitive drawn for each grid cell.
type Mesh uint8

const (
	MeshCylinder Mesh = iota
	MeshCube
)

// ParseMesh maps a config name to a Mesh.
func ParseMesh(name string) (Mesh, error) {
	switch strings.ToLower(name) {
	case "", "cylinder":
		return MeshCylinder, nil
	case "cube", "box":
		return MeshCube, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMesh, name)
}

// ParseHexColor parses "#rrggbb" or "#rrggbbaa".
func ParseHexColor(s string) (rl.Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return rl.Color{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return rl.Color{}, fmt.Errorf("%w: %q: %v", ErrBadColor, s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return rl.NewColor(uint8(v>>24), uint8(v>>16), uint8(v>>8), uint8(v)), nil
}

// ParsePalette parses every entry of a hex palette.
func ParsePalette(hexes []string) ([]rl.Color, error) {
	palette := make([]rl.Color, len(hexes))
	for i, h := range hexes {
		c, err := ParseHexColor(h)
		if err != nil {
			return nil, fmt.Errorf("palette[%d]: %w", i, err)
		}
		palette[i] = c
	}
	return palette, nil
}

// DrawHeight converts a scale.y value to a drawable height.
// Non-finite and negative heights draw flat; maxHeight > 0 caps the result.
func DrawHeight(scaleY, maxHeight float32) float32 {
	h := float64(scaleY)
	if math.IsNaN(h) || math.IsInf(h, 0) || h < 0 {
		return 0
	}
	if maxHeight > 0 && scaleY > maxHeight {
		return maxHeight
	}
	return scaleY
}

// Camera3D converts the orbit camera into a raylib perspective camera.
func Camera3D(cam *camera.Camera) rl.Camera3D {
	x, y, z := cam.Eye()
	return rl.NewCamera3D(
		rl.NewVector3(x, y, z),
		rl.NewVector3(cam.TargetX, cam.TargetY, cam.TargetZ),
		rl.NewVector3(0, 1, 0),
		cam.Fovy,
		rl.CameraPerspective,
	)
}

// GridRenderer draws one primitive per grid entity, scaled by its Scale component.
type GridRenderer struct {
	filter *ecs.Filter3[components.Position, components.Scale, components.Material]

	mesh      Mesh
	palette   []rl.Color
	spacing   float32
	maxHeight float32
	wireframe bool
	showFloor bool
	width     int
	depth     int
	floor     rl.Color
}

// NewGridRenderer creates a renderer over the grid entities of world.
func NewGridRenderer(world *ecs.World, render config.RenderConfig, grid config.GridConfig) (*GridRenderer, error) {
	mesh, err := ParseMesh(render.Mesh)
	if err != nil {
		return nil, err
	}
	palette, err := ParsePalette(render.Palette)
	if err != nil {
		return nil, err
	}
	return &GridRenderer{
		filter:    ecs.NewFilter3[components.Position, components.Scale, components.Material](world),
		mesh:      mesh,
		palette:   palette,
		spacing:   float32(grid.Spacing),
		maxHeight: float32(render.MaxHeight),
		wireframe: render.Wireframe,
		showFloor: true,
		width:     grid.Width,
		depth:     grid.Depth,
		floor:     rl.NewColor(40, 40, 48, 255),
	}, nil
}

// SetWireframe toggles outlines on top of the solids.
func (r *GridRenderer) SetWireframe(on bool) { r.wireframe = on }

// SetFloor toggles the cell boundary lines.
func (r *GridRenderer) SetFloor(on bool) { r.showFloor = on }

// Draw renders every grid entity from the camera's point of view.
func (r *GridRenderer) Draw(cam *camera.Camera) {
	rl.BeginMode3D(Camera3D(cam))

	if r.showFloor {
		r.drawFloor()
	}

	query := r.filter.Query()
	for query.Next() {
		pos, scale, mat := query.Get()

		h := DrawHeight(scale.Y, r.maxHeight)
		if h == 0 {
			continue
		}
		col := r.palette[int(mat.Index)%len(r.palette)]
		x, z := pos.X*r.spacing, pos.Z*r.spacing

		switch r.mesh {
		case MeshCube:
			center := rl.NewVector3(x, pos.Y+h/2, z)
			rl.DrawCube(center, scale.X, h, scale.Z, col)
			if r.wireframe {
				rl.DrawCubeWires(center, scale.X, h, scale.Z, rl.Black)
			}
		default:
			base := rl.NewVector3(x, pos.Y, z)
			radius := scale.X / 2
			rl.DrawCylinder(base, radius, radius, h, 12, col)
			if r.wireframe {
				rl.DrawCylinderWires(base, radius, radius, h, 12, rl.Black)
			}
		}
	}

	rl.EndMode3D()
}

// drawFloor draws cell boundary lines on the y=0 plane.
func (r *GridRenderer) drawFloor() {
	half := r.spacing / 2
	minX, maxX := -half, float32(r.width-1)*r.spacing+half
	minZ, maxZ := -half, float32(r.depth-1)*r.spacing+half
	for i := 0; i <= r.width; i++ {
		x := minX + float32(i)*r.spacing
		rl.DrawLine3D(rl.NewVector3(x, 0, minZ), rl.NewVector3(x, 0, maxZ), r.floor)
	}
	for i := 0; i <= r.depth; i++ {
		z := minZ + float32(i)*r.spacing
		rl.DrawLine3D(rl.NewVector3(minX, 0, z), rl.NewVector3(maxX, 0, z), r.floor)
	}
}
