// Package clwave runs the wave kernels on an OpenCL device. The device is only
// compiled in with the opencl build tag; without it New reports
// ErrUnavailable.
package clwave

import (
	_ "embed"
	"errors"
)

// Kernel entry points in Source.
const (
	IntegrateKernel = "integrate"
	NormalsKernel   = "estimate_normals"
)

// Source is the OpenCL C program holding both kernels.
//
//go:embed wave.cl
var Source string

// ErrUnavailable is returned when the binary was built without OpenCL.
var ErrUnavailable = errors.New("OpenCL support is not enabled; rebuild with -tags opencl")
