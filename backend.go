package main

import (
	"fmt"

	"go.uber.org/zap"

	"wavesurface/internal/clwave"
	"wavesurface/internal/glwave"
	"wavesurface/internal/wave"
)

const (
	backendCPU    = "cpu"
	backendOpenCL = "opencl"
	backendGL     = "gl"
)

// openDevice creates the configured compute device. The gl backend runs on
// host's context, or on a hidden window of its own when host is nil. The
// returned release function closes everything openDevice created.
func openDevice(cfg runConfig, host *glHost, log *zap.Logger) (wave.Device, func(), error) {
	switch cfg.backend {
	case backendCPU:
		d := wave.NewCPUDevice(cfg.workers, log)
		return d, func() { _ = d.Close() }, nil

	case backendOpenCL:
		d, err := clwave.New(log)
		if err != nil {
			return nil, nil, fmt.Errorf("opening OpenCL device: %w", err)
		}
		return d, func() { _ = d.Close() }, nil

	case backendGL:
		owned := host == nil
		if owned {
			var err error
			if host, err = newGLHost(false, 64, 64, windowTitle); err != nil {
				return nil, nil, fmt.Errorf("creating GL context: %w", err)
			}
		}
		d, err := glwave.New(cfg.sim.GroupSize, log)
		if err != nil {
			if owned {
				host.Close()
			}
			return nil, nil, fmt.Errorf("opening GL compute device: %w", err)
		}
		return d, func() {
			_ = d.Close()
			if owned {
				host.Close()
			}
		}, nil
	}
	return nil, nil, fmt.Errorf("unknown backend %q", cfg.backend)
}
