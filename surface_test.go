package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wavesurface/internal/glwave"
	"wavesurface/internal/wave"
)

func TestShadeSurfaceFlat(t *testing.T) {
	g, err := wave.NewGrid(4, 3, 1, 1)
	require.NoError(t, err)
	buf := wave.FlatLayout(g)
	p := wave.Params{PointsX: g.PointsX, PointsY: g.PointsY}
	p.DX, p.DY = g.Spacing()
	wave.EstimateNormals(p, buf)

	pixels := make([]byte, g.Len()*4)
	eye, _ := glwave.Camera(g)
	shadeSurface(g, buf, pixels, eye)

	for idx := 0; idx < g.Len(); idx++ {
		assert.Equal(t, byte(255), pixels[idx*4+3], "alpha at %d", idx)
		assert.Positive(t, pixels[idx*4+2], "blue at %d", idx)
	}
}

func TestShadeSurfaceMissingNormals(t *testing.T) {
	g, err := wave.NewGrid(2, 2, 1, 1)
	require.NoError(t, err)
	buf := wave.FlatLayout(g)
	withZero := make([]byte, g.Len()*4)
	eye, _ := glwave.Camera(g)
	shadeSurface(g, buf, withZero, eye)

	for idx := 0; idx < g.Len(); idx++ {
		base := idx * wave.SampleStride
		buf[base+wave.OffsetNormal+1] = 1
	}
	withUp := make([]byte, g.Len()*4)
	shadeSurface(g, buf, withUp, eye)
	assert.Equal(t, withUp, withZero, "a zero normal is lit as facing up")
}
