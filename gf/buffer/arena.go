package buffer

import (
	"fmt"

	"github.com/cwbudde/algo-guided/gf/core"
)

const bytesPerSample = 8

// Arena hands out zeroed scratch slices for the duration of one filter call.
// A positive limit caps the total number of scratch bytes the arena may hold;
// Alloc fails with core.ErrAllocation once the cap would be exceeded.
//
// An Arena is not safe for concurrent use. Release must be called when the
// call ends, after which previously returned slices must not be used.
type Arena struct {
	limit int64
	used  int64
	pool  *Pool
	held  []*Buffer
}

// NewArena returns an arena with the given byte limit (0 means unlimited).
// A nil pool makes the arena allocate fresh slices.
func NewArena(limit int64, pool *Pool) *Arena {
	if limit < 0 {
		limit = 0
	}
	return &Arena{limit: limit, pool: pool}
}

// Reserve reports whether n further samples fit in the budget without
// allocating anything.
func (a *Arena) Reserve(n ...int) error {
	var total int64
	for _, v := range n {
		total += int64(max(v, 0)) * bytesPerSample
	}
	if a.limit > 0 && a.used+total > a.limit {
		return fmt.Errorf("%w: need %d bytes, %d of %d in use", core.ErrAllocation, total, a.used, a.limit)
	}
	return nil
}

// Alloc returns a zeroed slice of n samples.
func (a *Arena) Alloc(n int) ([]float64, error) {
	if n < 0 {
		n = 0
	}
	if err := a.Reserve(n); err != nil {
		return nil, err
	}
	a.used += int64(n) * bytesPerSample

	var b *Buffer
	if a.pool != nil {
		b = a.pool.Get(n)
	} else {
		b = New(n)
	}
	a.held = append(a.held, b)
	return b.Samples(), nil
}

// AllocAll reserves the sum of sizes and returns one zeroed slice per
// size. When the sum does not fit, nothing is allocated.
func (a *Arena) AllocAll(sizes ...int) ([][]float64, error) {
	if err := a.Reserve(sizes...); err != nil {
		return nil, err
	}
	out := make([][]float64, len(sizes))
	for i, n := range sizes {
		s, err := a.Alloc(n)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// Used returns the number of scratch bytes currently held.
func (a *Arena) Used() int64 {
	return a.used
}

// Release returns every held buffer to the pool and resets the budget.
func (a *Arena) Release() {
	if a.pool != nil {
		for _, b := range a.held {
			a.pool.Put(b)
		}
	}
	for i := range a.held {
		a.held[i] = nil
	}
	a.held = a.held[:0]
	a.used = 0
}
