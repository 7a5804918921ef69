package coeffs

import (
	"fmt"

	"github.com/cwbudde/algo-guided/gf/core"
	"github.com/cwbudde/algo-guided/gf/moments"
	"github.com/cwbudde/algo-guided/internal/parallel"
)

// ChromaChannels returns the number of samples per pixel in a chroma field
// steering guided channels: (aU, aV, b) for each of them.
func ChromaChannels(guided int) int {
	return 3 * guided
}

// SolveChroma writes the coefficients of a two-channel guide (U, V) for each
// guided channel, solving C ≈ aU·U + aV·V + b with the regularized 2×2
// covariance Σ + εI inverted in closed form. ε > 0 keeps the determinant
// positive.
func SolveChroma(dst, mom []float64, guided int, eps float64) error {
	if guided < 1 {
		return fmt.Errorf("%w: %d guided channels", core.ErrInvalidDimensions, guided)
	}
	stride := ChromaChannels(guided)
	if len(dst) == 0 || len(dst)%stride != 0 {
		return fmt.Errorf("%w: chroma field has %d samples", core.ErrInvalidDimensions, len(dst))
	}
	n := len(dst) / stride
	if err := checkSamples("moments", mom, n, moments.ChromaChannels(guided)); err != nil {
		return err
	}
	if err := checkFeathering(eps); err != nil {
		return err
	}

	mstride := moments.ChromaChannels(guided)
	parallel.Range(n, func(i0, i1 int) {
		for k := i0; k < i1; k++ {
			m := mom[k*mstride : (k+1)*mstride]
			out := dst[k*stride : (k+1)*stride]

			suu := max(m[moments.ChromaVarU], 0) + eps
			svv := max(m[moments.ChromaVarV], 0) + eps
			suv := m[moments.ChromaCovUV]
			det := suu*svv - suv*suv

			mu, mv := m[moments.ChromaMeanU], m[moments.ChromaMeanV]
			for c := 0; c < guided; c++ {
				g := m[moments.ChromaGuided+3*c : moments.ChromaGuided+3*c+3]
				au := (g[1]*svv - g[2]*suv) / det
				av := (g[2]*suu - g[1]*suv) / det
				out[3*c] = au
				out[3*c+1] = av
				out[3*c+2] = g[0] - au*mu - av*mv
			}
		}
	})
	return nil
}

// ApplyChroma writes aU·U + aV·V + b for every guided channel into dst,
// which holds guided interleaved channels per pixel.
func ApplyChroma(dst, u, v, field []float64, guided int) error {
	if guided < 1 {
		return fmt.Errorf("%w: %d guided channels", core.ErrInvalidDimensions, guided)
	}
	n := len(u)
	if len(v) != n {
		return fmt.Errorf("%w: v has %d samples, want %d", core.ErrInvalidDimensions, len(v), n)
	}
	if err := checkSamples("output", dst, n, guided); err != nil {
		return err
	}
	if err := checkSamples("field", field, n, ChromaChannels(guided)); err != nil {
		return err
	}

	stride := ChromaChannels(guided)
	parallel.Range(n, func(i0, i1 int) {
		for k := i0; k < i1; k++ {
			f := field[k*stride : (k+1)*stride]
			for c := 0; c < guided; c++ {
				dst[k*guided+c] = f[3*c]*u[k] + f[3*c+1]*v[k] + f[3*c+2]
			}
		}
	})
	return nil
}
