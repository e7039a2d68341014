//go:build opencl

package clwave

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wavesurface/internal/wave"
)

func openDevice(t *testing.T) *Device {
	t.Helper()
	d, err := New(nil)
	if err != nil {
		t.Skipf("no OpenCL device: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func TestDeviceMatchesReference(t *testing.T) {
	d := openDevice(t)
	g, err := wave.NewGrid(40, 27, 5, 3)
	require.NoError(t, err)
	cfg := wave.Config{Grid: g, WaveFactor: 0.2, GroupSize: 16, Bump: wave.Bump{Radius: 7, Height: 1}, AtRest: true}

	cpu := wave.NewCPUDevice(2, nil)
	defer cpu.Close()
	ref, err := wave.New(cfg, cpu, nil)
	require.NoError(t, err)
	defer ref.Close()
	sim, err := wave.New(cfg, d, nil)
	require.NoError(t, err)
	defer sim.Close()

	require.NoError(t, ref.StepN(context.Background(), 25))
	require.NoError(t, sim.StepN(context.Background(), 25))

	want := make([]float32, g.Floats())
	got := make([]float32, g.Floats())
	require.NoError(t, ref.Read(want))
	require.NoError(t, sim.Read(got))
	assert.InDeltaSlice(t, want, got, 1e-4)
}

func TestDeviceReadErrors(t *testing.T) {
	d := openDevice(t)
	h, err := d.Allocate(make([]float32, 16))
	require.NoError(t, err)
	assert.ErrorIs(t, d.Read(h, make([]float32, 4)), wave.ErrBufferSizeMismatch)
	d.Release(h)
	assert.ErrorIs(t, d.Read(h, make([]float32, 16)), wave.ErrUnknownBuffer)
}
