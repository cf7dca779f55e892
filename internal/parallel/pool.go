// Package parallel runs independent, index-addressed batches of work on a
// bounded number of goroutines.
//
// Workers claim the next unprocessed index from a shared counter, so a slow
// item never stalls the items queued behind it. Callers write results into
// slots they own by index, which keeps output order independent of
// scheduling.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool runs batches with a fixed degree of parallelism.
//
// A Pool holds no goroutines between calls and is safe for concurrent use.
type Pool struct {
	workers int
}

// NewPool creates a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Pool{workers: workers}
}

// Workers returns the number of workers in the pool.
func (p *Pool) Workers() int {
	return p.workers
}

// For calls fn(i) for every i in [0, n) and returns when all calls have
// finished. With one worker, or a single item, fn runs on the calling
// goroutine in index order.
func (p *Pool) For(n int, fn func(i int)) {
	if n <= 0 || fn == nil {
		return
	}

	workers := min(p.workers, n)
	if workers == 1 {
		for i := range n {
			fn(i)
		}
		return
	}

	var next atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for {
				i := int(next.Add(1) - 1)
				if i >= n {
					return
				}
				fn(i)
			}
		}()
	}
	wg.Wait()
}
