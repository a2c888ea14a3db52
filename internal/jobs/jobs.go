// Package jobs runs independent CPU tasks on a bounded worker pool.
package jobs

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// idleTimeout is passed through to the pool; its workers do not act on it
// and only exit when retired.
const idleTimeout = 500 * time.Millisecond

// Workers returns the worker count to use for n tasks when the caller asked
// for requested workers (0 = one per CPU).
func Workers(requested, n int) int {
	w := requested
	if w <= 0 {
		w = runtime.NumCPU()
	}
	return max(1, min(w, n))
}

// Run calls fn(i) for every i in [0, n) on at most workers goroutines and
// waits for all of them. The returned slice holds fn's error for each index.
// A panicking task is reported as an error for its index.
func Run(workers, n int, fn func(i int) error) []error {
	errs := make([]error, n)
	if n == 0 {
		return errs
	}

	size := Workers(workers, n)
	pool := worker.NewDynamicWorkerPool(size, n, idleTimeout)

	// The pool has no completion signal tied to our tasks, so a WaitGroup
	// tracks them. Results go through errs; the pool's own (any, error)
	// return values are always nil.
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		idx := i
		pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				defer func() {
					if r := recover(); r != nil {
						errs[idx] = fmt.Errorf("task %d panicked: %v", idx, r)
					}
				}()
				errs[idx] = fn(idx)
				return nil, nil
			},
		})
	}
	wg.Wait()

	retire(pool, size)
	return errs
}

// retire ends every worker goroutine of pool. Each worker blocks on the task
// queue until stopped, and Stop alone can lose a stop signal to the wrong
// worker, so one exiting task is queued per worker. A worker that runs one
// exits and cannot take another.
func retire(pool worker.DynamicWorkerPool, size int) {
	var wg sync.WaitGroup
	wg.Add(size)
	for i := 0; i < size; i++ {
		pool.SubmitTask(worker.Task{
			ID: -1 - i,
			Do: func() (any, error) {
				wg.Done()
				runtime.Goexit()
				return nil, nil
			},
		})
	}
	wg.Wait()
	pool.Stop()
}

// FirstError returns the lowest-index non-nil error, or nil.
func FirstError(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
