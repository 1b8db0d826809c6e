package core

import (
	"context"
	"runtime"
	"sync"
)

// WorkerPool runs submitted jobs on a fixed set of goroutines. The headless
// runner plays its matches on one.
type WorkerPool struct {
	numWorkers int
	jobQueue   chan func()
	wg         sync.WaitGroup
	quit       chan struct{}
}

// NewWorkerPool creates a new worker pool with the specified number of workers
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	return &WorkerPool{
		numWorkers: numWorkers,
		jobQueue:   make(chan func(), numWorkers*2),
		quit:       make(chan struct{}),
	}
}

// Start initializes and starts all worker goroutines
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.numWorkers; i++ {
		go wp.worker()
	}
}

// worker is the goroutine that processes jobs from the queue
func (wp *WorkerPool) worker() {
	for {
		select {
		case job := <-wp.jobQueue:
			job()
			wp.wg.Done()
		case <-wp.quit:
			return
		}
	}
}

// Wait waits for all currently queued jobs to complete
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

// Stop shuts down the worker pool
func (wp *WorkerPool) Stop() {
	close(wp.quit)
}

// SubmitWithContext queues job; it is skipped if ctx is done by the time a
// worker picks it up.
func (wp *WorkerPool) SubmitWithContext(ctx context.Context, job func()) {
	wp.wg.Add(1)
	wp.jobQueue <- func() {
		select {
		case <-ctx.Done():
		default:
			job()
		}
	}
}

// RunAll submits every job, waits for all of them and returns the first error.
// Jobs not yet started when ctx is cancelled are skipped.
func (wp *WorkerPool) RunAll(ctx context.Context, jobs ...func(context.Context) error) error {
	var (
		mu    sync.Mutex
		first error
	)
	for _, job := range jobs {
		wp.SubmitWithContext(ctx, func() {
			if err := job(ctx); err != nil {
				mu.Lock()
				if first == nil {
					first = err
				}
				mu.Unlock()
			}
		})
	}
	wp.Wait()
	if first == nil {
		first = ctx.Err()
	}
	return first
}
