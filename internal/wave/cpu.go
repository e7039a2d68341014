package wave

import (
	"fmt"
	"runtime"

	"go.uber.org/zap"
)

// CPUDevice executes the kernels on a goroutine pool, one tile per
// work-group. It is the reference device and the fallback when no GPU
// backend is compiled in.
type CPUDevice struct {
	pool    *workerPool
	buffers map[BufferHandle][]float32
	next    BufferHandle
	log     *zap.Logger

	tileKey  Params
	assigned [][]tile
}

// NewCPUDevice starts a device with the given number of workers; zero or less
// uses one worker per CPU.
func NewCPUDevice(workers int, log *zap.Logger) *CPUDevice {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if log == nil {
		log = zap.NewNop()
	}
	log.Debug("starting cpu device", zap.Int("workers", workers))
	return &CPUDevice{
		pool:    newWorkerPool(workers),
		buffers: make(map[BufferHandle][]float32, NumBuffers),
		log:     log,
	}
}

// Name implements Device.
func (d *CPUDevice) Name() string {
	return fmt.Sprintf("cpu (%d workers)", d.pool.count)
}

// Allocate implements Device.
func (d *CPUDevice) Allocate(data []float32) (BufferHandle, error) {
	d.next++
	buf := make([]float32, len(data))
	copy(buf, data)
	d.buffers[d.next] = buf
	return d.next, nil
}

// Release implements Device.
func (d *CPUDevice) Release(h BufferHandle) {
	d.pool.wait()
	delete(d.buffers, h)
}

func (d *CPUDevice) lookup(h BufferHandle, p Params) ([]float32, error) {
	buf, ok := d.buffers[h]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownBuffer, h)
	}
	if want := p.PointsX * p.PointsY * SampleStride; len(buf) != want {
		return nil, fmt.Errorf("%w: buffer %d holds %d floats, grid needs %d", ErrBufferSizeMismatch, h, len(buf), want)
	}
	return buf, nil
}

// tilesFor returns the per-worker tile lists for p, rebuilding them only when
// the dispatch shape changes.
func (d *CPUDevice) tilesFor(p Params) [][]tile {
	key := Params{PointsX: p.PointsX, PointsY: p.PointsY, GroupSize: p.GroupSize, GroupsX: p.GroupsX, GroupsY: p.GroupsY}
	if d.assigned == nil || key != d.tileKey {
		d.tileKey = key
		d.assigned = assignTiles(d.pool.count, tiles(p))
	}
	return d.assigned
}

// Integrate implements Device.
func (d *CPUDevice) Integrate(p Params, target, current, previous BufferHandle) error {
	tgt, err := d.lookup(target, p)
	if err != nil {
		return err
	}
	cur, err := d.lookup(current, p)
	if err != nil {
		return err
	}
	prev, err := d.lookup(previous, p)
	if err != nil {
		return err
	}
	d.pool.dispatch(d.tilesFor(p), func(t tile) {
		integrateTile(p, tgt, cur, prev, t)
	})
	return nil
}

// EstimateNormals implements Device.
func (d *CPUDevice) EstimateNormals(p Params, target BufferHandle) error {
	buf, err := d.lookup(target, p)
	if err != nil {
		return err
	}
	d.pool.dispatch(d.tilesFor(p), func(t tile) {
		normalsTile(p, buf, t)
	})
	return nil
}

// Barrier implements Device by waiting for the pool to go idle.
func (d *CPUDevice) Barrier() error {
	d.pool.wait()
	return nil
}

// Read implements Device.
func (d *CPUDevice) Read(h BufferHandle, dst []float32) error {
	d.pool.wait()
	buf, ok := d.buffers[h]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownBuffer, h)
	}
	if len(dst) != len(buf) {
		return fmt.Errorf("%w: read %d floats from buffer of %d", ErrBufferSizeMismatch, len(dst), len(buf))
	}
	copy(dst, buf)
	return nil
}

// Close implements Device.
func (d *CPUDevice) Close() error {
	d.pool.close()
	d.buffers = nil
	return nil
}
