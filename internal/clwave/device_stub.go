//go:build !opencl

package clwave

import (
	"go.uber.org/zap"

	"wavesurface/internal/wave"
)

// Device is unavailable in builds without the opencl tag.
type Device struct{}

var _ wave.Device = (*Device)(nil)

// New always fails with ErrUnavailable.
func New(_ *zap.Logger) (*Device, error) { return nil, ErrUnavailable }

func (d *Device) Name() string { return "opencl (disabled)" }

func (d *Device) Allocate([]float32) (wave.BufferHandle, error) { return 0, ErrUnavailable }

func (d *Device) Release(wave.BufferHandle) {}

func (d *Device) Integrate(wave.Params, wave.BufferHandle, wave.BufferHandle, wave.BufferHandle) error {
	return ErrUnavailable
}

func (d *Device) EstimateNormals(wave.Params, wave.BufferHandle) error { return ErrUnavailable }

func (d *Device) Barrier() error { return ErrUnavailable }

func (d *Device) Read(wave.BufferHandle, []float32) error { return ErrUnavailable }

func (d *Device) Close() error { return nil }
