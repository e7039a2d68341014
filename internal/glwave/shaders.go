// Package glwave runs the wave kernels as OpenGL 4.3 compute shaders over
// shader storage buffers and draws the active buffer as a lit surface. The GL
// code is compiled in with the gl build tag; shader sources and scene
// lighting are available in every build.
package glwave

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
)

var (
	//go:embed shaders/integrate.comp
	IntegrateSource string
	//go:embed shaders/normals.comp
	NormalsSource string
	//go:embed shaders/surface.vert
	SurfaceVertexSource string
	//go:embed shaders/surface.frag
	SurfaceFragmentSource string
)

// ErrUnavailable is returned when the binary was built without OpenGL.
var ErrUnavailable = errors.New("OpenGL support is not enabled; rebuild with -tags gl")

// WithGroupSize injects the work-group edge length into a compute shader as
// GROUP_SIZE, directly after its #version line.
func WithGroupSize(src string, size int) string {
	define := fmt.Sprintf("#define GROUP_SIZE %d\n", size)
	head, rest, ok := strings.Cut(src, "\n")
	if !ok || !strings.HasPrefix(head, "#version") {
		return define + src
	}
	return head + "\n" + define + rest
}
