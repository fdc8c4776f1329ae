package game

// CellSelection is the grid cell shown in the inspector. Moves wrap at the
// grid edges.
type CellSelection struct {
	X, Z         int
	Width, Depth int
}

// NewCellSelection selects the center cell of a width x depth grid.
func NewCellSelection(width, depth int) CellSelection {
	return CellSelection{X: width / 2, Z: depth / 2, Width: width, Depth: depth}
}

// Move shifts the selection by (dx, dz), wrapping around the grid.
func (s *CellSelection) Move(dx, dz int) {
	if s.Width <= 0 || s.Depth <= 0 {
		return
	}
	s.X = ((s.X+dx)%s.Width + s.Width) % s.Width
	s.Z = ((s.Z+dz)%s.Depth + s.Depth) % s.Depth
}

// Index returns the selected entity's position in spawn order (x*depth + z).
func (s CellSelection) Index() int {
	return s.X*s.Depth + s.Z
}
