package systems

import (
	"errors"
	"fmt"
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/spectrogrid/components"
	"github.com/pthm-cable/spectrogrid/spectrum"
)

// ErrNoBands means the updater was handed an empty band array.
var ErrNoBands = errors.New("systems: empty band array")

// GridResult summarizes one grid update.
type GridResult struct {
	Updated   int // entities visited
	NonFinite int // entities whose scale.y became NaN or ±Inf
}

// GridHeightUpdater folds band loudness into the vertical scale of every
// entity carrying Position, Scale and Material.
type GridHeightUpdater struct {
	filter *ecs.Filter3[components.Position, components.Scale, components.Material]
}

// NewGridHeightUpdater creates an updater querying the given world.
func NewGridHeightUpdater(world *ecs.World) *GridHeightUpdater {
	return &GridHeightUpdater{
		filter: ecs.NewFilter3[components.Position, components.Scale, components.Material](world),
	}
}

// Update applies scale.y = (scale.y + band²) / 2 to every matching entity,
// where band = bands[BandIndex(x, z, len(bands))].
// Non-finite bands are applied as-is and counted in the result.
func (u *GridHeightUpdater) Update(bands spectrum.BandArray) (GridResult, error) {
	var res GridResult
	if len(bands) == 0 {
		return res, ErrNoBands
	}

	query := u.filter.Query()
	for query.Next() {
		pos, scale, _ := query.Get()
		x, z := pos.Cell()
		band := bands[BandIndex(x, z, len(bands))]

		scale.Y = Smooth(scale.Y, band)
		res.Updated++
		if isNonFinite(scale.Y) {
			res.NonFinite++
		}
	}
	return res, nil
}

// BandIndex maps a grid cell to a band: (x + z) mod bandCount, never negative.
// Cells bandCount apart along either axis alias the same band.
func BandIndex(x, z, bandCount int) int {
	if bandCount <= 0 {
		panic(fmt.Sprintf("systems: BandIndex with bandCount %d", bandCount))
	}
	return modInt(x+z, bandCount)
}

// Smooth folds one band value into a height: (s + b²) / 2.
// Repeated application converges on b² rather than resetting to it.
func Smooth(scaleY float32, band float64) float32 {
	b := float32(band)
	return (scaleY + b*b) / 2
}

func isNonFinite(v float32) bool {
	f := float64(v)
	return math.IsNaN(f) || math.IsInf(f, 0)
}
