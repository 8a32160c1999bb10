package core

import "golang.org/x/sync/errgroup"

// ParallelRanges splits [0, n) into at most workers contiguous ranges and
// calls fn(lo, hi) for each one on its own goroutine. It returns the first
// error reported by any range.
//
// Ranges never overlap, so fn may write to output slots indexed by its range
// without further synchronization. With workers <= 1 or n small, fn runs once
// on the calling goroutine.
func ParallelRanges(n, workers int, fn func(lo, hi int) error) error {
	if n <= 0 {
		return nil
	}
	if workers <= 1 || n == 1 {
		return fn(0, n)
	}
	workers = min(workers, n)

	var g errgroup.Group
	chunk := (n + workers - 1) / workers
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		g.Go(func() error {
			return fn(lo, hi)
		})
	}
	return g.Wait()
}
