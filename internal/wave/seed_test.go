package wave

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBumpHeights(t *testing.T) {
	g, err := NewGrid(21, 21, 5, 5)
	require.NoError(t, err)
	b := Bump{Radius: 6, Height: 0.8}
	h := b.Heights(g)
	require.Len(t, h, g.Len())

	assert.InDelta(t, 0.8, h[g.Index(10, 10)], 1e-6, "peak at the centre")
	assert.InDelta(t, 0.4, h[g.Index(13, 10)], 1e-6, "half height at half radius")
	assert.InDelta(t, 0, h[g.Index(16, 10)], 1e-6, "zero at the rim")
	assert.Zero(t, h[g.Index(17, 10)])
	assert.Zero(t, h[g.Index(0, 0)])

	for j := 0; j < g.PointsY; j++ {
		for i := 0; i < g.PointsX; i++ {
			assert.Equal(t, h[g.Index(i, j)], h[g.Index(20-i, j)], "mirror x at %d,%d", i, j)
			assert.Equal(t, h[g.Index(i, j)], h[g.Index(j, i)], "transpose at %d,%d", i, j)
		}
	}
}

func TestBumpClippedAtGridEdge(t *testing.T) {
	g, err := NewGrid(6, 6, 1, 1)
	require.NoError(t, err)
	h := Bump{Radius: 9, Height: 1}.Heights(g)
	assert.InDelta(t, 1, h[g.Index(3, 3)], 1e-6)
	for _, v := range h {
		assert.GreaterOrEqual(t, v, float32(0))
		assert.LessOrEqual(t, v, float32(1))
	}
}

func TestBumpZeroRadiusIsFlat(t *testing.T) {
	g, err := NewGrid(4, 4, 1, 1)
	require.NoError(t, err)
	for _, v := range (Bump{Height: 3}).Heights(g) {
		assert.Zero(t, v)
	}
}

func TestFootprint(t *testing.T) {
	assert.Len(t, footprint(0), 1)
	assert.Len(t, footprint(1), 5)
	assert.Len(t, footprint(2), 13)
}

func TestApplyHeightsLengthMismatch(t *testing.T) {
	g, err := NewGrid(3, 3, 1, 1)
	require.NoError(t, err)
	buf := FlatLayout(g)
	assert.ErrorIs(t, applyHeights(buf, make([]float32, 8)), ErrInvalidSeed)
	require.NoError(t, applyHeights(buf, []float32{0, 0, 0, 0, 2, 0, 0, 0, 0}))
	assert.Equal(t, float32(2), HeightAt(buf, 4))
}
