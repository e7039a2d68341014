//go:build gl

package glwave

import (
	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"wavesurface/internal/wave"
)

// Renderer draws a wave buffer as lit triangle strips, one strip per pair of
// grid rows. It implements wave.DrawIssuer for the row loop.
type Renderer struct {
	program uint32
	vao     uint32
	ebo     uint32
	staging uint32
	grid    wave.Grid

	mvpLoc int32
	eye    mgl32.Vec3
	center mgl32.Vec3
}

// NewRenderer builds the surface program and the index buffer for g.
func NewRenderer(g wave.Grid) (*Renderer, error) {
	vs, err := compileShader("surface.vert", gl.VERTEX_SHADER, SurfaceVertexSource)
	if err != nil {
		return nil, err
	}
	fs, err := compileShader("surface.frag", gl.FRAGMENT_SHADER, SurfaceFragmentSource)
	if err != nil {
		gl.DeleteShader(vs)
		return nil, err
	}
	program, err := linkProgram("surface", vs, fs)
	if err != nil {
		return nil, err
	}

	r := &Renderer{program: program, grid: g}
	r.eye, r.center = Camera(g)
	r.mvpLoc = uniform(program, "mvp")

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribFormat(0, 3, gl.FLOAT, false, wave.OffsetPosition*4)
	gl.VertexAttribBinding(0, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribFormat(1, 3, gl.FLOAT, false, wave.OffsetNormal*4)
	gl.VertexAttribBinding(1, 0)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribFormat(2, 2, gl.FLOAT, false, wave.OffsetTexCoord*4)
	gl.VertexAttribBinding(2, 0)

	indices := wave.StripIndices(g)
	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
	gl.BindVertexArray(0)

	gl.UseProgram(program)
	gl.Uniform3fv(uniform(program, "eye"), 1, &r.eye[0])
	gl.Uniform3fv(uniform(program, "lightPos"), 1, &DefaultLight.Position[0])
	gl.Uniform3fv(uniform(program, "lightAmbient"), 1, &DefaultLight.Ambient[0])
	gl.Uniform3fv(uniform(program, "lightDiffuse"), 1, &DefaultLight.Diffuse[0])
	gl.Uniform3fv(uniform(program, "lightSpecular"), 1, &DefaultLight.Specular[0])
	gl.Uniform3fv(uniform(program, "matAmbient"), 1, &Water.Ambient[0])
	gl.Uniform3fv(uniform(program, "matDiffuse"), 1, &Water.Diffuse[0])
	gl.Uniform3fv(uniform(program, "matSpecular"), 1, &Water.Specular[0])
	gl.Uniform1f(uniform(program, "shininess"), Water.Shininess)

	gl.Enable(gl.DEPTH_TEST)
	gl.ClearColor(0.05, 0.05, 0.1, 1.0)
	return r, nil
}

// Draw renders the storage buffer into the current framebuffer of the given
// size. buffer must be a handle allocated by Device.
func (r *Renderer) Draw(buffer wave.BufferHandle, width, height int) {
	r.draw(uint32(buffer), width, height)
}

// DrawSamples uploads a host copy of a sample buffer and renders it, for
// devices whose buffers are not GL objects.
func (r *Renderer) DrawSamples(samples []float32, width, height int) {
	if len(samples) != r.grid.Floats() {
		return
	}
	if r.staging == 0 {
		gl.GenBuffers(1, &r.staging)
		gl.BindBuffer(gl.ARRAY_BUFFER, r.staging)
		gl.BufferData(gl.ARRAY_BUFFER, len(samples)*4, nil, gl.STREAM_DRAW)
	} else {
		gl.BindBuffer(gl.ARRAY_BUFFER, r.staging)
	}
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(samples)*4, gl.Ptr(samples))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	r.draw(r.staging, width, height)
}

func (r *Renderer) draw(buffer uint32, width, height int) {
	if height <= 0 {
		height = 1
	}
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	projection := mgl32.Perspective(mgl32.DegToRad(45), float32(width)/float32(height), 0.1, 100)
	view := mgl32.LookAtV(r.eye, r.center, mgl32.Vec3{0, 1, 0})
	mvp := projection.Mul4(view)

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.mvpLoc, 1, false, &mvp[0])
	gl.BindVertexArray(r.vao)
	gl.BindVertexBuffer(0, buffer, 0, wave.SampleBytes)
	wave.DrawRows(r, r.grid)
	gl.BindVertexArray(0)
}

// DrawElements implements wave.DrawIssuer; offset counts indices.
func (r *Renderer) DrawElements(count, offset int) {
	gl.DrawElements(gl.TRIANGLE_STRIP, int32(count), gl.UNSIGNED_INT, gl.PtrOffset(offset*4))
}

// Close deletes the GL objects.
func (r *Renderer) Close() {
	if r.staging != 0 {
		gl.DeleteBuffers(1, &r.staging)
		r.staging = 0
	}
	if r.ebo != 0 {
		gl.DeleteBuffers(1, &r.ebo)
		r.ebo = 0
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
		r.program = 0
	}
}
