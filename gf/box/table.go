package box

import (
	"fmt"

	"github.com/cwbudde/algo-guided/gf/core"
)

// Table holds the incremental-mean weights for one radius: weight k is
// 1/(k+1), applied to the (k+1)-th sample of a window. A Table is read-only
// after construction and may be shared between goroutines and calls.
type Table struct {
	radius int
	inv    []float64
}

// NewTable builds the weight table for radius r >= 0.
func NewTable(radius int) (*Table, error) {
	if radius < 0 {
		return nil, fmt.Errorf("%w: radius must be >= 0: %d", core.ErrInvalidParameter, radius)
	}
	n := 2*radius + 1
	inv := make([]float64, n)
	for k := range inv {
		inv[k] = 1 / float64(k+1)
	}
	return &Table{radius: radius, inv: inv}, nil
}

// Radius returns the window radius the table was built for.
func (t *Table) Radius() int {
	return t.radius
}

// Span returns the clipped window [begin, end] around i on an axis of
// length n.
func (t *Table) Span(i, n int) (begin, end int) {
	begin = max(i-t.radius, 0)
	end = min(i+t.radius, n-1)
	return begin, end
}
