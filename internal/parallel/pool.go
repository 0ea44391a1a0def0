// Package parallel provides the goroutine pool that shades halftone frames.
//
// A frame is split into horizontal row bands; each band is an independent
// unit of work because every output pixel depends only on the source image
// and the frame parameters. Bands are distributed round-robin over
// per-worker queues and idle workers steal from their peers, which keeps
// all cores busy when some bands are slower (e.g. dense dot regions).
package parallel

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
)

// ErrClosed is returned when work is submitted to a closed pool.
var ErrClosed = errors.New("parallel: worker pool is closed")

// minQueueSize is the smallest per-worker queue buffer.
const minQueueSize = 8

// WorkerPool runs batches of band functions on a fixed set of goroutines.
//
// Each worker owns a buffered queue. A worker whose queue is empty takes
// an item from a peer's queue before blocking on its own.
//
// A batch is either dispatched completely or rejected with ErrClosed:
// Close waits for an in-flight dispatch to finish queuing, and every queued
// item runs before the workers exit.
//
// WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int
	queues  []chan func()

	// mu orders dispatch against Close. Dispatch holds the read lock while
	// queuing; Close takes the write lock before signalling done.
	mu   sync.RWMutex
	done chan struct{}
	wg   sync.WaitGroup

	running atomic.Bool
}

// NewWorkerPool starts a pool of n workers.
// If n is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(n int) *WorkerPool {
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}

	p := &WorkerPool{
		workers: n,
		queues:  make([]chan func(), n),
		done:    make(chan struct{}),
	}
	size := max(n*4, minQueueSize)
	for i := range p.queues {
		p.queues[i] = make(chan func(), size)
	}
	p.running.Store(true)

	p.wg.Add(n)
	for id := range n {
		go p.run(id)
	}
	return p
}

// run is the loop of worker id.
func (p *WorkerPool) run(id int) {
	defer p.wg.Done()
	own := p.queues[id]

	for {
		select {
		case fn := <-own:
			fn()
			continue
		default:
		}

		if fn := p.take(id); fn != nil {
			fn()
			continue
		}

		select {
		case fn := <-own:
			fn()
		case <-p.done:
			// Dispatch has stopped; finish whatever is still queued.
			for {
				select {
				case fn := <-own:
					fn()
				default:
					return
				}
			}
		}
	}
}

// take removes one item from another worker's queue, or returns nil.
func (p *WorkerPool) take(id int) func() {
	for off := 1; off < p.workers; off++ {
		select {
		case fn := <-p.queues[(id+off)%p.workers]:
			return fn
		default:
		}
	}
	return nil
}

// ExecuteAll runs every item in work and waits for all of them.
// It returns ErrClosed, without running anything, if the pool is closed.
func (p *WorkerPool) ExecuteAll(work []func()) error {
	if len(work) == 0 {
		if !p.running.Load() {
			return ErrClosed
		}
		return nil
	}

	var pending sync.WaitGroup
	pending.Add(len(work))

	p.mu.RLock()
	if !p.running.Load() {
		p.mu.RUnlock()
		return ErrClosed
	}
	for i, fn := range work {
		p.queues[i%p.workers] <- func() {
			defer pending.Done()
			fn()
		}
	}
	p.mu.RUnlock()

	pending.Wait()
	return nil
}

// ExecuteContext is ExecuteAll with cancellation. Items that have not
// started when ctx is done are skipped; items already running finish.
// It returns ctx.Err() if any item was skipped and ErrClosed if the pool
// is closed.
func (p *WorkerPool) ExecuteContext(ctx context.Context, work []func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var skipped atomic.Bool
	guarded := make([]func(), len(work))
	for i, fn := range work {
		guarded[i] = func() {
			if ctx.Err() != nil {
				skipped.Store(true)
				return
			}
			fn()
		}
	}

	if err := p.ExecuteAll(guarded); err != nil {
		return err
	}
	if skipped.Load() {
		return ctx.Err()
	}
	return nil
}

// Close stops accepting work, lets queued items finish and stops the
// workers. Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	p.mu.Lock()
	if !p.running.CompareAndSwap(true, false) {
		p.mu.Unlock()
		return
	}
	close(p.done)
	p.mu.Unlock()

	p.wg.Wait()
}

// Workers returns the number of worker goroutines.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool accepts work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}
