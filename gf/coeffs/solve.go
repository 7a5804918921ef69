package coeffs

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-guided/gf/core"
	"github.com/cwbudde/algo-guided/gf/moments"
	"github.com/cwbudde/algo-guided/internal/parallel"
)

// Channels is the number of interleaved samples per pixel in a field.
const Channels = 2

// normFloor bounds the exposure normalization away from zero.
const normFloor = 1e-6

// AdaptedFeathering scales feathering with the window radius so that the
// perceived smoothing of the exposure-independent solver stays roughly
// constant across radii.
func AdaptedFeathering(feathering float64, radius int) float64 {
	r := float64(radius)
	return feathering * r * math.Sqrt(r) / 40
}

func checkFeathering(eps float64) error {
	if !(eps > 0) || math.IsInf(eps, 0) {
		return fmt.Errorf("%w: feathering must be finite and > 0: %v", core.ErrInvalidParameter, eps)
	}
	return nil
}

func pixels(dst []float64) (int, error) {
	if len(dst) == 0 || len(dst)%Channels != 0 {
		return 0, fmt.Errorf("%w: field has %d samples", core.ErrInvalidDimensions, len(dst))
	}
	return len(dst) / Channels, nil
}

func checkSamples(name string, buf []float64, n, channels int) error {
	if len(buf) != n*channels {
		return fmt.Errorf("%w: %s has %d samples, want %d", core.ErrInvalidDimensions, name, len(buf), n*channels)
	}
	return nil
}

// Solve writes classic coefficients into dst from a joint moments grid.
func Solve(dst, mom []float64, eps float64) error {
	n, err := pixels(dst)
	if err != nil {
		return err
	}
	if err := checkSamples("moments", mom, n, moments.Channels); err != nil {
		return err
	}
	if err := checkFeathering(eps); err != nil {
		return err
	}

	parallel.Range(n, func(i0, i1 int) {
		for k := i0; k < i1; k++ {
			m := mom[k*moments.Channels : (k+1)*moments.Channels]
			a := m[moments.Cov] / (math.Max(m[moments.VarGuide], 0) + eps)
			dst[k*Channels] = a
			dst[k*Channels+1] = m[moments.MeanGuided] - a*m[moments.MeanGuide]
		}
	})
	return nil
}

// SolveSelf is Solve for a self moments grid, where the guide is the guided
// signal itself.
func SolveSelf(dst, mom []float64, eps float64) error {
	n, err := pixels(dst)
	if err != nil {
		return err
	}
	if err := checkSamples("moments", mom, n, moments.SelfChannels); err != nil {
		return err
	}
	if err := checkFeathering(eps); err != nil {
		return err
	}

	parallel.Range(n, func(i0, i1 int) {
		for k := i0; k < i1; k++ {
			mean := mom[k*moments.SelfChannels+moments.SelfMean]
			v := math.Max(mom[k*moments.SelfChannels+moments.SelfVar], 0)
			a := v / (v + eps)
			dst[k*Channels] = a
			dst[k*Channels+1] = mean - a*mean
		}
	})
	return nil
}

// SolveExposureIndependent writes exposure-independent coefficients into dst.
// guide and guided are the per-pixel values the moments were taken from;
// they enter the normalization crosswise, the guide mean against the guided
// value and the guided mean against the guide value.
func SolveExposureIndependent(dst, mom, guide, guided []float64, eps float64) error {
	n, err := pixels(dst)
	if err != nil {
		return err
	}
	if err := checkSamples("moments", mom, n, moments.Channels); err != nil {
		return err
	}
	if err := checkSamples("guide", guide, n, 1); err != nil {
		return err
	}
	if err := checkSamples("guided", guided, n, 1); err != nil {
		return err
	}
	if err := checkFeathering(eps); err != nil {
		return err
	}

	parallel.Range(n, func(i0, i1 int) {
		for k := i0; k < i1; k++ {
			m := mom[k*moments.Channels : (k+1)*moments.Channels]
			normG := math.Max(m[moments.MeanGuide]*guided[k], normFloor)
			normP := math.Max(m[moments.MeanGuided]*guide[k], normFloor)
			nvar := math.Max(m[moments.VarGuide], 0) / normG
			ncov := m[moments.Cov] / math.Sqrt(normG*normP)
			a := ncov / (nvar + eps)
			dst[k*Channels] = a
			dst[k*Channels+1] = m[moments.MeanGuided] - a*m[moments.MeanGuide]
		}
	})
	return nil
}

// SolveExposureIndependentSelf is SolveExposureIndependent for a self
// moments grid of signal.
func SolveExposureIndependentSelf(dst, mom, signal []float64, eps float64) error {
	n, err := pixels(dst)
	if err != nil {
		return err
	}
	if err := checkSamples("moments", mom, n, moments.SelfChannels); err != nil {
		return err
	}
	if err := checkSamples("signal", signal, n, 1); err != nil {
		return err
	}
	if err := checkFeathering(eps); err != nil {
		return err
	}

	parallel.Range(n, func(i0, i1 int) {
		for k := i0; k < i1; k++ {
			mean := mom[k*moments.SelfChannels+moments.SelfMean]
			norm := math.Max(mean*signal[k], normFloor)
			nvar := math.Max(mom[k*moments.SelfChannels+moments.SelfVar], 0) / norm
			a := nvar / (nvar + eps)
			dst[k*Channels] = a
			dst[k*Channels+1] = mean - a*mean
		}
	})
	return nil
}
