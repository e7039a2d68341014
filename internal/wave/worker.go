package wave

import "sync"

// workerPool runs tile jobs on a fixed set of goroutines. Publishing a job
// bumps step and wakes every worker; each worker runs its share of tiles and
// decrements pending, and the last one wakes the waiters.
type workerPool struct {
	mu      sync.Mutex
	cond    *sync.Cond
	count   int
	step    int
	pending int
	closed  bool

	job      func(tile)
	assigned [][]tile
}

// newWorkerPool launches count worker goroutines.
func newWorkerPool(count int) *workerPool {
	if count < 1 {
		count = 1
	}
	wp := &workerPool{count: count}
	wp.cond = sync.NewCond(&wp.mu)
	for i := 0; i < count; i++ {
		go wp.loop(i)
	}
	return wp
}

func (wp *workerPool) loop(index int) {
	lastStep := 0
	wp.mu.Lock()
	for {
		for wp.step == lastStep && !wp.closed {
			wp.cond.Wait()
		}
		if wp.closed {
			wp.mu.Unlock()
			return
		}
		lastStep = wp.step
		job := wp.job
		var mine []tile
		if index < len(wp.assigned) {
			mine = wp.assigned[index]
		}
		wp.mu.Unlock()

		for _, t := range mine {
			job(t)
		}

		wp.mu.Lock()
		wp.pending--
		if wp.pending == 0 {
			wp.cond.Broadcast()
		}
	}
}

// dispatch publishes job over the per-worker tile lists and returns without
// waiting for it. Work still in flight is drained first.
func (wp *workerPool) dispatch(assigned [][]tile, job func(tile)) {
	wp.mu.Lock()
	for wp.pending > 0 {
		wp.cond.Wait()
	}
	wp.assigned = assigned
	wp.job = job
	wp.pending = wp.count
	wp.step++
	wp.cond.Broadcast()
	wp.mu.Unlock()
}

// wait blocks until the last published job has finished on every worker.
func (wp *workerPool) wait() {
	wp.mu.Lock()
	for wp.pending > 0 {
		wp.cond.Wait()
	}
	wp.mu.Unlock()
}

// close drains outstanding work and stops the workers.
func (wp *workerPool) close() {
	wp.mu.Lock()
	for wp.pending > 0 {
		wp.cond.Wait()
	}
	wp.closed = true
	wp.cond.Broadcast()
	wp.mu.Unlock()
}

// assignTiles distributes tiles across workers in round robin fashion.
func assignTiles(workerCount int, ts []tile) [][]tile {
	if workerCount < 1 {
		workerCount = 1
	}
	assigned := make([][]tile, workerCount)
	for idx, t := range ts {
		w := idx % workerCount
		assigned[w] = append(assigned[w], t)
	}
	return assigned
}
