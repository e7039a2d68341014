package wave

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCPUDeviceAllocateCopies(t *testing.T) {
	dev := NewCPUDevice(2, nil)
	defer dev.Close()

	data := []float32{1, 2, 3, 4, 5, 6, 7, 8}
	h, err := dev.Allocate(data)
	require.NoError(t, err)
	assert.NotZero(t, h)
	data[0] = 99

	out := make([]float32, len(data))
	require.NoError(t, dev.Read(h, out))
	assert.Equal(t, float32(1), out[0])

	h2, err := dev.Allocate(data)
	require.NoError(t, err)
	assert.NotEqual(t, h, h2)
}

func TestCPUDeviceReadErrors(t *testing.T) {
	dev := NewCPUDevice(1, nil)
	defer dev.Close()
	h, err := dev.Allocate(make([]float32, 16))
	require.NoError(t, err)

	assert.ErrorIs(t, dev.Read(h, make([]float32, 8)), ErrBufferSizeMismatch)
	assert.ErrorIs(t, dev.Read(h+7, make([]float32, 16)), ErrUnknownBuffer)

	dev.Release(h)
	assert.ErrorIs(t, dev.Read(h, make([]float32, 16)), ErrUnknownBuffer)
}

func TestCPUDeviceRejectsMismatchedBuffers(t *testing.T) {
	g := scenarioGrid(t)
	p := scenarioParams(g, EdgeClamp)
	dev := NewCPUDevice(2, nil)
	defer dev.Close()

	good, err := dev.Allocate(FlatLayout(g))
	require.NoError(t, err)
	small, err := dev.Allocate(make([]float32, 8))
	require.NoError(t, err)

	assert.ErrorIs(t, dev.Integrate(p, good, small, good), ErrBufferSizeMismatch)
	assert.ErrorIs(t, dev.Integrate(p, good, good, 42), ErrUnknownBuffer)
	assert.ErrorIs(t, dev.EstimateNormals(p, small), ErrBufferSizeMismatch)
}

func TestCPUDeviceMatchesSerialKernels(t *testing.T) {
	g, err := NewGrid(19, 23, 3, 4)
	require.NoError(t, err)
	gx, gy, err := WorkGroups(g, 4, false)
	require.NoError(t, err)
	dx, dy := g.Spacing()
	p := Params{WaveFactor: 0.2, Damping: 0.99, PointsX: g.PointsX, PointsY: g.PointsY, DX: dx, DY: dy, GroupSize: 4, GroupsX: gx, GroupsY: gy}

	current := FlatLayout(g)
	seed := Bump{Radius: 5, Height: 1}.Heights(g)
	require.NoError(t, applyHeights(current, seed))
	previous := FlatLayout(g)

	want := make([]float32, g.Floats())
	Integrate(p, want, current, previous)
	EstimateNormals(p, want)

	dev := NewCPUDevice(5, nil)
	defer dev.Close()
	tgt, err := dev.Allocate(make([]float32, g.Floats()))
	require.NoError(t, err)
	cur, err := dev.Allocate(current)
	require.NoError(t, err)
	prev, err := dev.Allocate(previous)
	require.NoError(t, err)

	require.NoError(t, dev.Integrate(p, tgt, cur, prev))
	require.NoError(t, dev.Barrier())
	require.NoError(t, dev.EstimateNormals(p, tgt))
	require.NoError(t, dev.Barrier())

	got := make([]float32, g.Floats())
	require.NoError(t, dev.Read(tgt, got))
	assert.Equal(t, want, got)
	assert.Contains(t, dev.Name(), "5 workers")
}
