package moments

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-guided/gf/box"
	"github.com/cwbudde/algo-guided/gf/core"
	"github.com/cwbudde/algo-guided/internal/parallel"
)

// Channel layout of a chroma moments grid. The two-channel guide (U, V)
// comes first, followed by three samples per guided channel c starting at
// ChromaGuided + 3c: mean(C), cov(U, C) and cov(V, C).
const (
	ChromaMeanU  = 0
	ChromaMeanV  = 1
	ChromaVarU   = 2
	ChromaCovUV  = 3
	ChromaVarV   = 4
	ChromaGuided = 5
)

// ChromaChannels returns the number of samples per pixel in a chroma
// moments grid with guided channels per pixel.
func ChromaChannels(guided int) int {
	return ChromaGuided + 3*guided
}

// ChromaScratchLen returns the number of scratch samples AnalyseChroma needs
// for an n-pixel grid with guided channels per pixel.
func ChromaScratchLen(n, guided int) int {
	return 2*n + n*ChromaChannels(guided)
}

// AnalyseChroma writes the moments of the two-channel guide (u, v) and the
// interleaved multi-channel guided signal into dst.
func AnalyseChroma(dst, u, v, guided []float64, width, height, channels int, tbl *box.Table, scratch []float64) error {
	if err := core.CheckLen(u, width, height, 1); err != nil {
		return fmt.Errorf("moments u: %w", err)
	}
	if err := core.CheckLen(v, width, height, 1); err != nil {
		return fmt.Errorf("moments v: %w", err)
	}
	if err := core.CheckLen(guided, width, height, channels); err != nil {
		return fmt.Errorf("moments guided: %w", err)
	}
	stride := ChromaChannels(channels)
	if err := core.CheckLen(dst, width, height, stride); err != nil {
		return fmt.Errorf("moments output: %w", err)
	}
	n := width * height
	scratch, err := scratchFor(scratch, ChromaScratchLen(n, channels))
	if err != nil {
		return err
	}
	uu, scratch := scratch[:n], scratch[n:]
	vv, tmp := scratch[:n], scratch[n:]

	vecmath.MulBlock(uu, u, u)
	vecmath.MulBlock(vv, v, v)

	// dst doubles as the packed input.
	parallel.Range(n, func(i0, i1 int) {
		for k := i0; k < i1; k++ {
			px := dst[k*stride : (k+1)*stride]
			uk, vk := u[k], v[k]
			px[ChromaMeanU] = uk
			px[ChromaMeanV] = vk
			px[ChromaVarU] = uu[k]
			px[ChromaCovUV] = uk * vk
			px[ChromaVarV] = vv[k]
			for c := 0; c < channels; c++ {
				g := guided[k*channels+c]
				px[ChromaGuided+3*c] = g
				px[ChromaGuided+3*c+1] = uk * g
				px[ChromaGuided+3*c+2] = vk * g
			}
		}
	})

	if err := box.AverageInto(dst, dst, tmp, width, height, stride, tbl); err != nil {
		return err
	}

	parallel.Range(n, func(i0, i1 int) {
		for k := i0; k < i1; k++ {
			px := dst[k*stride : (k+1)*stride]
			mu, mv := px[ChromaMeanU], px[ChromaMeanV]
			px[ChromaVarU] -= mu * mu
			px[ChromaCovUV] -= mu * mv
			px[ChromaVarV] -= mv * mv
			for c := 0; c < channels; c++ {
				mc := px[ChromaGuided+3*c]
				px[ChromaGuided+3*c+1] -= mu * mc
				px[ChromaGuided+3*c+2] -= mv * mc
			}
		}
	})
	return nil
}
