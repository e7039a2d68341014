//go:build gl

package glwave

import (
	"fmt"

	"github.com/go-gl/gl/v4.3-core/gl"
	"go.uber.org/zap"

	"wavesurface/internal/wave"
)

// Device implements wave.Device with compute shaders. Buffer handles are the
// GL names of shader storage buffers, so the renderer can bind the active
// buffer directly as vertex input. Every method must run on the goroutine
// that owns the current GL context.
type Device struct {
	integrate uint32
	normals   uint32
	groupSize int

	integrateLoc struct{ waveFactor, damping, pointsX, pointsY, fixedEdges int32 }
	normalsLoc   struct{ pointsX, pointsY, dx, dy int32 }

	lengths map[wave.BufferHandle]int
	log     *zap.Logger
}

var _ wave.Device = (*Device)(nil)

// New compiles both compute programs with the given square work-group size.
// A GL 4.3 context must be current.
func New(groupSize int, log *zap.Logger) (*Device, error) {
	if log == nil {
		log = zap.NewNop()
	}
	var maxInvocations int32
	gl.GetIntegerv(gl.MAX_COMPUTE_WORK_GROUP_INVOCATIONS, &maxInvocations)
	if groupSize < 1 || int32(groupSize*groupSize) > maxInvocations {
		return nil, fmt.Errorf("%w: group size %d exceeds %d invocations", wave.ErrWorkGroupMismatch, groupSize, maxInvocations)
	}

	d := &Device{groupSize: groupSize, lengths: make(map[wave.BufferHandle]int, wave.NumBuffers), log: log}
	var err error
	if d.integrate, err = compileCompute("integrate.comp", IntegrateSource, groupSize); err != nil {
		return nil, err
	}
	if d.normals, err = compileCompute("normals.comp", NormalsSource, groupSize); err != nil {
		d.Close()
		return nil, err
	}
	d.integrateLoc.waveFactor = uniform(d.integrate, "waveFactor")
	d.integrateLoc.damping = uniform(d.integrate, "damping")
	d.integrateLoc.pointsX = uniform(d.integrate, "pointsX")
	d.integrateLoc.pointsY = uniform(d.integrate, "pointsY")
	d.integrateLoc.fixedEdges = uniform(d.integrate, "fixedEdges")
	d.normalsLoc.pointsX = uniform(d.normals, "pointsX")
	d.normalsLoc.pointsY = uniform(d.normals, "pointsY")
	d.normalsLoc.dx = uniform(d.normals, "dx")
	d.normalsLoc.dy = uniform(d.normals, "dy")

	log.Info("gl compute device ready",
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.Int("group_size", groupSize),
	)
	return d, nil
}

// Name implements wave.Device.
func (d *Device) Name() string { return "gl compute" }

// Allocate implements wave.Device.
func (d *Device) Allocate(data []float32) (wave.BufferHandle, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("%w: empty buffer", wave.ErrBufferSizeMismatch)
	}
	var name uint32
	gl.GenBuffers(1, &name)
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, name)
	gl.BufferData(gl.SHADER_STORAGE_BUFFER, len(data)*4, gl.Ptr(data), gl.DYNAMIC_COPY)
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, 0)
	if err := glError("allocating buffer"); err != nil {
		gl.DeleteBuffers(1, &name)
		return 0, err
	}
	h := wave.BufferHandle(name)
	d.lengths[h] = len(data)
	return h, nil
}

// Release implements wave.Device.
func (d *Device) Release(h wave.BufferHandle) {
	if _, ok := d.lengths[h]; !ok {
		return
	}
	name := uint32(h)
	gl.DeleteBuffers(1, &name)
	delete(d.lengths, h)
}

func (d *Device) check(p wave.Params, handles ...wave.BufferHandle) error {
	if p.GroupSize != d.groupSize {
		return fmt.Errorf("%w: shaders built for %d, dispatch uses %d", wave.ErrWorkGroupMismatch, d.groupSize, p.GroupSize)
	}
	want := p.PointsX * p.PointsY * wave.SampleStride
	for _, h := range handles {
		n, ok := d.lengths[h]
		if !ok {
			return fmt.Errorf("%w: %d", wave.ErrUnknownBuffer, h)
		}
		if n != want {
			return fmt.Errorf("%w: buffer %d holds %d floats, grid needs %d", wave.ErrBufferSizeMismatch, h, n, want)
		}
	}
	return nil
}

// Integrate implements wave.Device.
func (d *Device) Integrate(p wave.Params, target, current, previous wave.BufferHandle) error {
	if err := d.check(p, target, current, previous); err != nil {
		return err
	}
	var fixed int32
	if p.Edge == wave.EdgeFixed {
		fixed = 1
	}
	gl.UseProgram(d.integrate)
	gl.Uniform1f(d.integrateLoc.waveFactor, p.WaveFactor)
	gl.Uniform1f(d.integrateLoc.damping, p.Damping)
	gl.Uniform1i(d.integrateLoc.pointsX, int32(p.PointsX))
	gl.Uniform1i(d.integrateLoc.pointsY, int32(p.PointsY))
	gl.Uniform1i(d.integrateLoc.fixedEdges, fixed)
	gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, 0, uint32(target))
	gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, 1, uint32(previous))
	gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, 2, uint32(current))
	gl.DispatchCompute(uint32(p.GroupsX), uint32(p.GroupsY), 1)
	return glError("dispatching integrate")
}

// EstimateNormals implements wave.Device.
func (d *Device) EstimateNormals(p wave.Params, target wave.BufferHandle) error {
	if err := d.check(p, target); err != nil {
		return err
	}
	gl.UseProgram(d.normals)
	gl.Uniform1i(d.normalsLoc.pointsX, int32(p.PointsX))
	gl.Uniform1i(d.normalsLoc.pointsY, int32(p.PointsY))
	gl.Uniform1f(d.normalsLoc.dx, p.DX)
	gl.Uniform1f(d.normalsLoc.dy, p.DY)
	gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, 0, uint32(target))
	gl.DispatchCompute(uint32(p.GroupsX), uint32(p.GroupsY), 1)
	return glError("dispatching normals")
}

// Barrier implements wave.Device. Storage writes become visible to later
// compute passes, vertex fetch from the same buffers and buffer reads.
func (d *Device) Barrier() error {
	gl.MemoryBarrier(gl.SHADER_STORAGE_BARRIER_BIT | gl.VERTEX_ATTRIB_ARRAY_BARRIER_BIT | gl.BUFFER_UPDATE_BARRIER_BIT)
	return glError("memory barrier")
}

// Read implements wave.Device.
func (d *Device) Read(h wave.BufferHandle, dst []float32) error {
	n, ok := d.lengths[h]
	if !ok {
		return fmt.Errorf("%w: %d", wave.ErrUnknownBuffer, h)
	}
	if len(dst) != n {
		return fmt.Errorf("%w: read %d floats from buffer of %d", wave.ErrBufferSizeMismatch, len(dst), n)
	}
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, uint32(h))
	gl.GetBufferSubData(gl.SHADER_STORAGE_BUFFER, 0, n*4, gl.Ptr(dst))
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, 0)
	return glError("reading buffer")
}

// Close deletes the programs and any buffers still allocated.
func (d *Device) Close() error {
	for h := range d.lengths {
		d.Release(h)
	}
	if d.normals != 0 {
		gl.DeleteProgram(d.normals)
		d.normals = 0
	}
	if d.integrate != 0 {
		gl.DeleteProgram(d.integrate)
		d.integrate = 0
	}
	return nil
}

func glError(op string) error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("%s: gl error 0x%x", op, code)
	}
	return nil
}
