package engine

import (
	"runtime"
	"sync"
)

// parallelForEach applies fn to every item, splitting items into
// contiguous chunks across runtime.NumCPU workers — the same fixed-chunk
// worker layout the teacher's document.go uses to assign ids concurrently.
// Each item is owned by exactly one worker, so fn itself needs no locking
// as long as distinct items never touch shared state (true for the
// per-word posting-list removal it is used for).
func parallelForEach[T any](items []T, fn func(T)) {
	n := len(items)
	if n == 0 {
		return
	}
	numWorkers := runtime.NumCPU()
	if numWorkers > n {
		numWorkers = n
	}
	if numWorkers < 1 {
		numWorkers = 1
	}

	chunkSize := n / numWorkers
	if chunkSize == 0 {
		chunkSize = 1
	}

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n || n-end < chunkSize {
			end = n
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(items[i])
			}
		}(start, end)
		if end == n {
			break
		}
	}
	wg.Wait()
}
