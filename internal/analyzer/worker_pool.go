package analyzer

import (
	"runtime"
	"sync"
)

// WorkerPool executes per-region and per-strip computations for the engines
// that split the image into independent pieces. One pool is shared across
// concurrent analyses, so completion is tracked per batch rather than on the
// pool itself.
type WorkerPool struct {
	workers   int
	jobQueue  chan func()
	once      sync.Once
	closeOnce sync.Once
}

// NewWorkerPool creates a pool with the given number of workers, defaulting
// to the number of CPUs.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &WorkerPool{
		workers:  workers,
		jobQueue: make(chan func(), workers*2),
	}
}

// Start launches the workers. Safe to call more than once.
func (wp *WorkerPool) Start() {
	wp.once.Do(func() {
		for i := 0; i < wp.workers; i++ {
			go wp.worker()
		}
	})
}

func (wp *WorkerPool) worker() {
	for job := range wp.jobQueue {
		job()
	}
}

// Submit enqueues a job, blocking when the queue is full.
func (wp *WorkerPool) Submit(job func()) {
	wp.jobQueue <- job
}

// RunBatch submits all jobs and blocks until every one of them returns.
// Jobs submitted by other callers are not waited on.
func (wp *WorkerPool) RunBatch(jobs ...func()) {
	var wg sync.WaitGroup
	wg.Add(len(jobs))
	for _, job := range jobs {
		job := job
		wp.Submit(func() {
			defer wg.Done()
			job()
		})
	}
	wg.Wait()
}

// Workers returns the pool size.
func (wp *WorkerPool) Workers() int {
	return wp.workers
}

// Close shuts the pool down. Pending jobs still drain; Submit after Close
// panics.
func (wp *WorkerPool) Close() {
	wp.closeOnce.Do(func() {
		close(wp.jobQueue)
	})
}
