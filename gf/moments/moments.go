// Package moments estimates local first and second moments of a guide
// signal G and a guided signal P over a clipped box window: mean(G), mean(P),
// var(G) and cov(G,P).
//
// Variance and covariance use the sum-of-squares form
//
//	var(G)   = mean(G²)  − mean(G)²
//	cov(G,P) = mean(G·P) − mean(G)·mean(P)
//
// so that all four inputs share a single 4-channel averager pass. Inputs are
// expected in a bounded, normalized range where the cancellation error of
// this form is negligible.
package moments

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-guided/gf/box"
	"github.com/cwbudde/algo-guided/gf/core"
	"github.com/cwbudde/algo-guided/internal/parallel"
)

// Channel layout of a joint moments grid.
const (
	MeanGuide  = 0
	MeanGuided = 1
	VarGuide   = 2
	Cov        = 3
	// Channels is the number of interleaved samples per pixel in a joint grid.
	Channels = 4
)

// Channel layout of a self moments grid (guide and guided alias).
const (
	SelfMean = 0
	SelfVar  = 1
	// SelfChannels is the number of interleaved samples per pixel in a self grid.
	SelfChannels = 2
)

// ScratchLen returns the number of scratch samples Analyse needs for an
// n-pixel grid.
func ScratchLen(n int) int {
	return 2*n + 2*Channels*n
}

// SelfScratchLen returns the number of scratch samples AnalyseSelf needs
// for an n-pixel grid.
func SelfScratchLen(n int) int {
	return n + 2*SelfChannels*n
}

// Analyse writes the joint moments of guide and guided into dst, which must
// hold Channels samples per pixel. scratch must hold ScratchLen samples; a
// nil scratch is allocated.
func Analyse(dst, guide, guided []float64, width, height int, tbl *box.Table, scratch []float64) error {
	if err := core.CheckLen(guide, width, height, 1); err != nil {
		return fmt.Errorf("moments guide: %w", err)
	}
	if err := core.CheckLen(guided, width, height, 1); err != nil {
		return fmt.Errorf("moments guided: %w", err)
	}
	if err := core.CheckLen(dst, width, height, Channels); err != nil {
		return fmt.Errorf("moments output: %w", err)
	}
	n := width * height
	scratch, err := scratchFor(scratch, ScratchLen(n))
	if err != nil {
		return err
	}
	gg, scratch := scratch[:n], scratch[n:]
	gp, scratch := scratch[:n], scratch[n:]
	packed, tmp := scratch[:Channels*n], scratch[Channels*n:]

	vecmath.MulBlock(gg, guide, guide)
	vecmath.MulBlock(gp, guide, guided)

	parallel.Range(n, func(i0, i1 int) {
		for k := i0; k < i1; k++ {
			px := packed[k*Channels : (k+1)*Channels]
			px[MeanGuide] = guide[k]
			px[MeanGuided] = guided[k]
			px[VarGuide] = gg[k]
			px[Cov] = gp[k]
		}
	})

	if err := box.AverageInto(dst, packed, tmp, width, height, Channels, tbl); err != nil {
		return err
	}

	parallel.Range(n, func(i0, i1 int) {
		for k := i0; k < i1; k++ {
			px := dst[k*Channels : (k+1)*Channels]
			px[VarGuide] -= px[MeanGuide] * px[MeanGuide]
			px[Cov] -= px[MeanGuide] * px[MeanGuided]
		}
	})
	return nil
}

// AnalyseSelf writes mean(G) and var(G) into dst, which must hold
// SelfChannels samples per pixel. It is the aliased form of Analyse for
// guide == guided, where mean(P) = mean(G) and cov(G,P) = var(G).
func AnalyseSelf(dst, guide []float64, width, height int, tbl *box.Table, scratch []float64) error {
	if err := core.CheckLen(guide, width, height, 1); err != nil {
		return fmt.Errorf("moments guide: %w", err)
	}
	if err := core.CheckLen(dst, width, height, SelfChannels); err != nil {
		return fmt.Errorf("moments output: %w", err)
	}
	n := width * height
	scratch, err := scratchFor(scratch, SelfScratchLen(n))
	if err != nil {
		return err
	}
	gg, scratch := scratch[:n], scratch[n:]
	packed, tmp := scratch[:SelfChannels*n], scratch[SelfChannels*n:]

	vecmath.MulBlock(gg, guide, guide)

	parallel.Range(n, func(i0, i1 int) {
		for k := i0; k < i1; k++ {
			packed[k*SelfChannels+SelfMean] = guide[k]
			packed[k*SelfChannels+SelfVar] = gg[k]
		}
	})

	if err := box.AverageInto(dst, packed, tmp, width, height, SelfChannels, tbl); err != nil {
		return err
	}

	parallel.Range(n, func(i0, i1 int) {
		for k := i0; k < i1; k++ {
			mean := dst[k*SelfChannels+SelfMean]
			dst[k*SelfChannels+SelfVar] -= mean * mean
		}
	})
	return nil
}

// scratchFor returns the first want samples of scratch, allocating when
// scratch is nil.
func scratchFor(scratch []float64, want int) ([]float64, error) {
	if scratch == nil {
		return make([]float64, want), nil
	}
	if len(scratch) < want {
		return nil, fmt.Errorf("%w: scratch has %d samples, want %d", core.ErrInvalidDimensions, len(scratch), want)
	}
	return scratch[:want], nil
}
