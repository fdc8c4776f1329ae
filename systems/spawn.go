package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/spectrogrid/components"
	"github.com/pthm-cable/spectrogrid/config"
)

// GridLayout describes the entity grid created at startup.
type GridLayout struct {
	Width, Depth int
	InitialScale components.Scale
	Materials    int // palette size; material index = (x+z) mod Materials
}

// LayoutFromConfig builds a layout from the grid and render sections.
func LayoutFromConfig(cfg *config.Config) GridLayout {
	s := cfg.Grid.InitialScale
	return GridLayout{
		Width:        cfg.Grid.Width,
		Depth:        cfg.Grid.Depth,
		InitialScale: components.Scale{X: float32(s.X), Y: float32(s.Y), Z: float32(s.Z)},
		Materials:    len(cfg.Render.Palette),
	}
}

// SpawnGrid creates one entity per cell at (x, 0, z). Entities live for the
// whole run; nothing removes them.
func SpawnGrid(world *ecs.World, layout GridLayout) []ecs.Entity {
	mapper := ecs.NewMap3[components.Position, components.Scale, components.Material](world)
	materials := layout.Materials
	if materials < 1 {
		materials = 1
	}

	entities := make([]ecs.Entity, 0, layout.Width*layout.Depth)
	for x := 0; x < layout.Width; x++ {
		for z := 0; z < layout.Depth; z++ {
			pos := components.Position{X: float32(x), Y: 0, Z: float32(z)}
			scale := layout.InitialScale
			mat := components.Material{Index: uint8((x + z) % materials)}
			entities = append(entities, mapper.NewEntity(&pos, &scale, &mat))
		}
	}
	return entities
}
