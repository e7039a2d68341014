package wave

import (
	"fmt"
	"math"
)

// Bump is the radially symmetric raised-cosine seed: Height at the centre,
// falling smoothly to zero at Radius grid cells.
type Bump struct {
	Radius int
	Height float32
}

type gridOffset struct {
	dx int
	dy int
}

// footprint lists the cell offsets within radius of the origin.
func footprint(radius int) []gridOffset {
	offsets := make([]gridOffset, 0, (2*radius+1)*(2*radius+1))
	r2 := radius * radius
	for y := -radius; y <= radius; y++ {
		for x := -radius; x <= radius; x++ {
			if x*x+y*y <= r2 {
				offsets = append(offsets, gridOffset{dx: x, dy: y})
			}
		}
	}
	return offsets
}

// Heights evaluates the bump on g, centred on (PointsX>>1, PointsY>>1).
func (b Bump) Heights(g Grid) []float32 {
	heights := make([]float32, g.Len())
	if b.Radius <= 0 {
		return heights
	}
	cx, cy := g.PointsX>>1, g.PointsY>>1
	r := float64(b.Radius)
	for _, off := range footprint(b.Radius) {
		x, y := cx+off.dx, cy+off.dy
		if x < 0 || x >= g.PointsX || y < 0 || y >= g.PointsY {
			continue
		}
		d := math.Hypot(float64(off.dx), float64(off.dy))
		heights[g.Index(x, y)] = b.Height * float32((math.Cos(math.Pi*d/r)+1)/2)
	}
	return heights
}

// applyHeights writes per-sample heights into an interleaved buffer.
func applyHeights(buf []float32, heights []float32) error {
	if len(heights)*SampleStride != len(buf) {
		return fmt.Errorf("%w: %d heights for %d samples", ErrInvalidSeed, len(heights), len(buf)/SampleStride)
	}
	for i, h := range heights {
		SetHeight(buf, i, h)
	}
	return nil
}
