// Package parallel runs per-row image stages across goroutines. Each call is
// a barrier: it returns only after every band has finished.
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

const (
	// minBandRows keeps small grids on the calling goroutine.
	minBandRows = 16
	// minChunk is the smallest flat span worth a goroutine.
	minChunk = 4096
)

// Rows calls fn on contiguous, non-overlapping bands [y0, y1) covering
// [0, rows). Bands run concurrently; fn must only write rows inside its band.
func Rows(rows int, fn func(y0, y1 int)) {
	split(rows, minBandRows, fn)
}

// Range is Rows for a flat index space of n elements, used by point-wise
// stages that do not care about image rows.
func Range(n int, fn func(i0, i1 int)) {
	split(n, minChunk, fn)
}

func split(n, minPer int, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}

	workers := runtime.GOMAXPROCS(0)
	parts := min(n/minPer, workers)
	if parts <= 1 {
		fn(0, n)
		return
	}

	step := (n + parts - 1) / parts

	var g errgroup.Group
	g.SetLimit(workers)
	for lo := 0; lo < n; lo += step {
		hi := min(lo+step, n)
		g.Go(func() error {
			fn(lo, hi)
			return nil
		})
	}
	_ = g.Wait()
}
