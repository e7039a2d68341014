package wave

// BufferHandle names one sample buffer owned by a Device. Zero is never a
// valid handle.
type BufferHandle uint32

// Device is the parallel execution unit the simulation drives. Dispatch calls
// enqueue work and may return before it completes; Barrier orders everything
// enqueued so far before anything enqueued later, including reads by the
// render pass. Read blocks until the buffer contents are available.
//
// Kernel bindings follow a fixed convention: slot 0 target, slot 1 previous,
// slot 2 current.
type Device interface {
	Name() string
	// Allocate creates a buffer holding a copy of data.
	Allocate(data []float32) (BufferHandle, error)
	Release(h BufferHandle)
	Integrate(p Params, target, current, previous BufferHandle) error
	EstimateNormals(p Params, target BufferHandle) error
	Barrier() error
	Read(h BufferHandle, dst []float32) error
	Close() error
}
