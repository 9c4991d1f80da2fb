//-------------------------------------------------------------------------
//
// Sparse Embedding Utilities
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package tokenizer

import (
	"runtime"
	"sync"
)

// parallelRows invokes fn for every row index in [0, n), partitioning
// rows across up to GOMAXPROCS workers. Each worker owns a disjoint
// set of indices and fn writes only to its own row's output slot, so
// no locking is needed. Output order is the caller's index order
// regardless of partitioning.
func parallelRows(n int, fn func(i int)) {
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(start int) {
			defer wg.Done()
			for i := start; i < n; i += workers {
				fn(i)
			}
		}(w)
	}
	wg.Wait()
}
