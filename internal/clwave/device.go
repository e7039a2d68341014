//go:build opencl

package clwave

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"github.com/jgillich/go-opencl/cl"
	"go.uber.org/zap"

	"wavesurface/internal/wave"
)

// Device implements wave.Device on the first OpenCL GPU found, falling back
// to an OpenCL CPU device. The command queue is in-order.
type Device struct {
	context   *cl.Context
	queue     *cl.CommandQueue
	program   *cl.Program
	integrate *cl.Kernel
	normals   *cl.Kernel

	buffers    map[wave.BufferHandle]*cl.MemObject
	lengths    map[wave.BufferHandle]int
	next       wave.BufferHandle
	deviceName string
	log        *zap.Logger
}

var _ wave.Device = (*Device)(nil)

func pickDevice() (*cl.Device, error) {
	platforms, err := cl.GetPlatforms()
	if err != nil {
		msg := "querying OpenCL platforms"
		if strings.Contains(err.Error(), "-1001") {
			msg += ": no ICD loader reported any platforms; install OpenCL drivers and verify with `clinfo`"
		}
		return nil, fmt.Errorf("%s: %w", msg, err)
	}
	if len(platforms) == 0 {
		return nil, errors.New("no OpenCL platforms available; ensure a vendor driver is installed and detected by `clinfo`")
	}
	for _, kind := range []cl.DeviceType{cl.DeviceTypeGPU, cl.DeviceTypeCPU} {
		for _, p := range platforms {
			devices, derr := p.GetDevices(kind)
			if derr != nil && derr != cl.ErrDeviceNotFound {
				continue
			}
			if len(devices) > 0 {
				return devices[0], nil
			}
		}
	}
	return nil, errors.New("no suitable OpenCL devices found")
}

// New creates a context, queue and the compiled wave program.
func New(log *zap.Logger) (*Device, error) {
	if log == nil {
		log = zap.NewNop()
	}
	device, err := pickDevice()
	if err != nil {
		return nil, err
	}
	d := &Device{
		buffers:    make(map[wave.BufferHandle]*cl.MemObject, wave.NumBuffers),
		lengths:    make(map[wave.BufferHandle]int, wave.NumBuffers),
		deviceName: device.Name(),
		log:        log,
	}
	if d.context, err = cl.CreateContext([]*cl.Device{device}); err != nil {
		return nil, fmt.Errorf("creating OpenCL context: %w", err)
	}
	if d.queue, err = d.context.CreateCommandQueue(device, 0); err != nil {
		d.Close()
		return nil, fmt.Errorf("creating OpenCL command queue: %w", err)
	}
	if d.program, err = d.context.CreateProgramWithSource([]string{Source}); err != nil {
		d.Close()
		return nil, fmt.Errorf("creating OpenCL program: %w", err)
	}
	if err := d.program.BuildProgram([]*cl.Device{device}, ""); err != nil {
		d.Close()
		if buildErr, ok := err.(cl.BuildError); ok {
			return nil, &wave.KernelError{Kernel: "wave.cl", Log: string(buildErr)}
		}
		return nil, &wave.KernelError{Kernel: "wave.cl", Log: err.Error()}
	}
	if d.integrate, err = d.program.CreateKernel(IntegrateKernel); err != nil {
		d.Close()
		return nil, fmt.Errorf("creating %s kernel: %w", IntegrateKernel, err)
	}
	if d.normals, err = d.program.CreateKernel(NormalsKernel); err != nil {
		d.Close()
		return nil, fmt.Errorf("creating %s kernel: %w", NormalsKernel, err)
	}
	log.Info("opencl device ready", zap.String("device", d.deviceName))
	return d, nil
}

// Name implements wave.Device.
func (d *Device) Name() string { return "opencl " + d.deviceName }

// Allocate implements wave.Device.
func (d *Device) Allocate(data []float32) (wave.BufferHandle, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("%w: empty buffer", wave.ErrBufferSizeMismatch)
	}
	byteSize := len(data) * int(unsafe.Sizeof(float32(0)))
	mem, err := d.context.CreateEmptyBuffer(cl.MemReadWrite, byteSize)
	if err != nil {
		return 0, fmt.Errorf("allocating %d byte buffer: %w", byteSize, err)
	}
	if _, err := d.queue.EnqueueWriteBufferFloat32(mem, true, 0, data, nil); err != nil {
		mem.Release()
		return 0, fmt.Errorf("uploading buffer: %w", err)
	}
	d.next++
	d.buffers[d.next] = mem
	d.lengths[d.next] = len(data)
	return d.next, nil
}

// Release implements wave.Device.
func (d *Device) Release(h wave.BufferHandle) {
	mem, ok := d.buffers[h]
	if !ok {
		return
	}
	_ = d.queue.Finish()
	mem.Release()
	delete(d.buffers, h)
	delete(d.lengths, h)
}

func (d *Device) lookup(h wave.BufferHandle, p wave.Params) (*cl.MemObject, error) {
	mem, ok := d.buffers[h]
	if !ok {
		return nil, fmt.Errorf("%w: %d", wave.ErrUnknownBuffer, h)
	}
	if want := p.PointsX * p.PointsY * wave.SampleStride; d.lengths[h] != want {
		return nil, fmt.Errorf("%w: buffer %d holds %d floats, grid needs %d", wave.ErrBufferSizeMismatch, h, d.lengths[h], want)
	}
	return mem, nil
}

// globalSize rounds the dispatch up to whole work-groups; the kernels drop the
// invocations that fall outside the grid.
func globalSize(p wave.Params) []int {
	return []int{p.GroupsX * p.GroupSize, p.GroupsY * p.GroupSize}
}

// Integrate implements wave.Device.
func (d *Device) Integrate(p wave.Params, target, current, previous wave.BufferHandle) error {
	tgt, err := d.lookup(target, p)
	if err != nil {
		return err
	}
	prev, err := d.lookup(previous, p)
	if err != nil {
		return err
	}
	cur, err := d.lookup(current, p)
	if err != nil {
		return err
	}
	var fixed int32
	if p.Edge == wave.EdgeFixed {
		fixed = 1
	}
	if err := d.integrate.SetArgs(
		int32(p.PointsX),
		int32(p.PointsY),
		p.WaveFactor,
		p.Damping,
		fixed,
		tgt,
		prev,
		cur,
	); err != nil {
		return fmt.Errorf("setting %s arguments: %w", IntegrateKernel, err)
	}
	if _, err := d.queue.EnqueueNDRangeKernel(d.integrate, nil, globalSize(p), nil, nil); err != nil {
		return fmt.Errorf("enqueueing %s: %w", IntegrateKernel, err)
	}
	return nil
}

// EstimateNormals implements wave.Device.
func (d *Device) EstimateNormals(p wave.Params, target wave.BufferHandle) error {
	tgt, err := d.lookup(target, p)
	if err != nil {
		return err
	}
	if err := d.normals.SetArgs(
		int32(p.PointsX),
		int32(p.PointsY),
		p.DX,
		p.DY,
		tgt,
	); err != nil {
		return fmt.Errorf("setting %s arguments: %w", NormalsKernel, err)
	}
	if _, err := d.queue.EnqueueNDRangeKernel(d.normals, nil, globalSize(p), nil, nil); err != nil {
		return fmt.Errorf("enqueueing %s: %w", NormalsKernel, err)
	}
	return nil
}

// Barrier implements wave.Device. The queue is in-order, so waiting for it to
// drain orders every enqueued kernel before whatever comes next, including
// host reads.
func (d *Device) Barrier() error {
	if err := d.queue.Finish(); err != nil {
		return fmt.Errorf("finishing OpenCL queue: %w", err)
	}
	return nil
}

// Read implements wave.Device.
func (d *Device) Read(h wave.BufferHandle, dst []float32) error {
	mem, ok := d.buffers[h]
	if !ok {
		return fmt.Errorf("%w: %d", wave.ErrUnknownBuffer, h)
	}
	if len(dst) != d.lengths[h] {
		return fmt.Errorf("%w: read %d floats from buffer of %d", wave.ErrBufferSizeMismatch, len(dst), d.lengths[h])
	}
	if _, err := d.queue.EnqueueReadBufferFloat32(mem, true, 0, dst, nil); err != nil {
		return fmt.Errorf("reading buffer %d: %w", h, err)
	}
	return nil
}

// Close releases every buffer and the OpenCL objects in reverse order of
// creation. It is safe on a partially constructed device.
func (d *Device) Close() error {
	for h, mem := range d.buffers {
		mem.Release()
		delete(d.buffers, h)
	}
	if d.normals != nil {
		d.normals.Release()
		d.normals = nil
	}
	if d.integrate != nil {
		d.integrate.Release()
		d.integrate = nil
	}
	if d.program != nil {
		d.program.Release()
		d.program = nil
	}
	if d.queue != nil {
		d.queue.Release()
		d.queue = nil
	}
	if d.context != nil {
		d.context.Release()
		d.context = nil
	}
	return nil
}
