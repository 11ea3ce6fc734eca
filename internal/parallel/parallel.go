// Package parallel provides the synchronous fork/join helper used for
// per-row fan-out work inside the training engine.
//
// The only parallelism admitted anywhere in the engine is embarrassingly
// parallel, per-row independent work over disjoint memory. Callers always
// block until the fan-out completes; there is no cancellation and there are
// no partial results, because the next pipeline stage consumes the output.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls fan-out behavior.
type Config struct {
	Enabled      bool // Whether goroutine fan-out is enabled.
	NumWorkers   int  // Number of worker goroutines.
	MinChunkSize int  // Minimum rows per invocation before fanning out.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 32,
	}
}

// For executes f(i) for every i in [0, n) and returns once all invocations
// have completed. Work is split into contiguous chunks across workers; rows
// may run in any order. Falls back to a plain loop when parallelism is
// disabled or n is below the chunk threshold.
//
// f must only touch memory owned by row i.
func For(n int, f func(i int), cfg Config) {
	if !cfg.Enabled || n < cfg.MinChunkSize {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	chunk := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize)

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}
