// Package wave implements the triple-buffered height-field simulation: grid
// layout, the rotating buffer roles, the integrator and normal kernels, and
// the Simulation that sequences them against a compute Device.
package wave

import "fmt"

// Grid describes the immutable lattice shape of a simulation: the number of
// samples along each axis and the physical extent they span.
type Grid struct {
	PointsX, PointsY int
	SizeX, SizeY     float32
}

// NewGrid validates and returns a grid with nx by ny samples covering sx by sy
// world units.
func NewGrid(nx, ny int, sx, sy float32) (Grid, error) {
	if nx < 2 || ny < 2 {
		return Grid{}, fmt.Errorf("%w: point count %dx%d, need at least 2x2", ErrInvalidGrid, nx, ny)
	}
	if !(sx > 0) || !(sy > 0) {
		return Grid{}, fmt.Errorf("%w: world size %gx%g must be positive", ErrInvalidGrid, sx, sy)
	}
	return Grid{PointsX: nx, PointsY: ny, SizeX: sx, SizeY: sy}, nil
}

// Len returns the number of samples in the grid.
func (g Grid) Len() int { return g.PointsX * g.PointsY }

// Floats returns the length of one interleaved sample buffer.
func (g Grid) Floats() int { return g.Len() * SampleStride }

// Spacing returns the world distance between adjacent samples along X and Y.
func (g Grid) Spacing() (dx, dy float32) {
	return g.SizeX / float32(g.PointsX-1), g.SizeY / float32(g.PointsY-1)
}

// Index returns the flat row-major sample index of column i, row j.
func (g Grid) Index(i, j int) int { return j*g.PointsX + i }

// OnEdge reports whether column i, row j lies on the grid boundary.
func (g Grid) OnEdge(i, j int) bool {
	return i == 0 || j == 0 || i == g.PointsX-1 || j == g.PointsY-1
}

func (g Grid) String() string {
	return fmt.Sprintf("%dx%d points over %gx%g", g.PointsX, g.PointsY, g.SizeX, g.SizeY)
}

// clampCoord constrains v to lie within the inclusive [min, max] range.
func clampCoord(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
