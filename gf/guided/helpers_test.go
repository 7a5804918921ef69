package guided

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-guided/gf/core"
)

func plane(t *testing.T, pix []float64, width, height int) *core.Plane {
	t.Helper()
	p, err := core.PlaneFromSlice(pix, width, height, 1)
	if err != nil {
		t.Fatalf("PlaneFromSlice() error = %v", err)
	}
	return p
}

// columnStd returns the standard deviation of column x.
func columnStd(p *core.Plane, x int) float64 {
	var mean float64
	for y := 0; y < p.Height; y++ {
		mean += p.At(x, y, 0)
	}
	mean /= float64(p.Height)
	var ss float64
	for y := 0; y < p.Height; y++ {
		d := p.At(x, y, 0) - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(p.Height))
}

// requireEdge fails unless every row stays below mid left of split and
// above mid from split on.
func requireEdge(t *testing.T, p *core.Plane, split int, mid float64) {
	t.Helper()
	for y := 0; y < p.Height; y++ {
		if l, r := p.At(split-1, y, 0), p.At(split, y, 0); !(l < mid && r > mid) {
			t.Fatalf("row %d: edge lost, x=%d is %v and x=%d is %v", y, split-1, l, split, r)
		}
	}
}
