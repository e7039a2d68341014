package wave

import "fmt"

// DefaultGroupSize matches the compute shaders' local size. 16 and 32 both
// perform well across desktop GPUs; sizes in between did not.
const DefaultGroupSize = 32

// WorkGroups returns the number of square work-groups of edge size needed to
// cover g. With exact set, a grid that does not divide evenly is rejected;
// otherwise the count is rounded up and kernels drop out-of-range invocations.
func WorkGroups(g Grid, size int, exact bool) (gx, gy int, err error) {
	if size < 1 {
		return 0, 0, fmt.Errorf("%w: work-group size %d", ErrWorkGroupMismatch, size)
	}
	if exact && (g.PointsX%size != 0 || g.PointsY%size != 0) {
		return 0, 0, fmt.Errorf("%w: %dx%d by %d", ErrWorkGroupMismatch, g.PointsX, g.PointsY, size)
	}
	return (g.PointsX + size - 1) / size, (g.PointsY + size - 1) / size, nil
}

// tile is the inclusive-exclusive sample range one work-group covers, already
// clipped to the grid.
type tile struct {
	x0, x1 int
	y0, y1 int
}

// tiles lists every work-group of p clipped to the grid bounds.
func tiles(p Params) []tile {
	out := make([]tile, 0, p.GroupsX*p.GroupsY)
	for gy := 0; gy < p.GroupsY; gy++ {
		for gx := 0; gx < p.GroupsX; gx++ {
			t := tile{
				x0: gx * p.GroupSize, x1: (gx + 1) * p.GroupSize,
				y0: gy * p.GroupSize, y1: (gy + 1) * p.GroupSize,
			}
			if t.x1 > p.PointsX {
				t.x1 = p.PointsX
			}
			if t.y1 > p.PointsY {
				t.y1 = p.PointsY
			}
			if t.x0 >= t.x1 || t.y0 >= t.y1 {
				continue
			}
			out = append(out, t)
		}
	}
	return out
}
