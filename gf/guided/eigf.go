package guided

import (
	"fmt"

	"github.com/cwbudde/algo-guided/gf/coeffs"
	"github.com/cwbudde/algo-guided/gf/core"
	"github.com/cwbudde/algo-guided/gf/moments"
	"github.com/cwbudde/algo-guided/gf/quantize"
)

// ExposureIndependent returns the exposure-independent guided filter of the
// single-channel signal. It runs at full resolution whatever the configured
// downscale and does not smooth the coefficients.
//
// mask is the guide whose statistics steer the filter. A nil mask, or the
// signal plane itself, makes the signal its own guide; with quantization
// set, the guide is then re-posterized from the diffused signal at every
// iteration. A distinct mask is copied (and posterized once) before the
// first iteration and never written.
func (f *Filter) ExposureIndependent(signal, mask *core.Plane) (*core.Plane, error) {
	if err := checkGrey("signal", signal); err != nil {
		return nil, err
	}
	if mask == signal {
		mask = nil
	}
	if mask != nil {
		if err := checkGrey("mask", mask); err != nil {
			return nil, err
		}
		if !mask.SameSize(signal) {
			return nil, fmt.Errorf("%w: mask is %dx%d, signal is %dx%d",
				core.ErrInvalidDimensions, mask.Width, mask.Height, signal.Width, signal.Height)
		}
	}

	w, h := signal.Width, signal.Height
	n := w * h
	separate := mask != nil || f.cfg.Quantization > 0

	guideLen, momLen, scratchLen := 0, moments.SelfChannels*n, moments.SelfScratchLen(n)
	if separate {
		guideLen, momLen, scratchLen = n, moments.Channels*n, moments.ScratchLen(n)
	}
	arena, bufs, err := f.scratch(coeffs.Channels*n, guideLen, momLen, scratchLen)
	if err != nil {
		return nil, err
	}
	defer arena.Release()
	ab, guide, mom, scratch := bufs[0], bufs[1], bufs[2], bufs[3]

	if mask != nil {
		if err := f.posterize(guide, mask.Pix); err != nil {
			return nil, err
		}
	}

	out := signal.Clone()
	eps := coeffs.AdaptedFeathering(f.cfg.Feathering, f.cfg.Radius)
	for i := 0; i < f.cfg.Iterations; i++ {
		switch {
		case mask != nil:
			err = f.solveExposure(ab, mom, guide, out.Pix, scratch, w, h, eps)
		case separate:
			if err = f.posterize(guide, out.Pix); err == nil {
				err = f.solveExposure(ab, mom, guide, out.Pix, scratch, w, h, eps)
			}
		default:
			if err = moments.AnalyseSelf(mom, out.Pix, w, h, f.full, scratch); err == nil {
				err = coeffs.SolveExposureIndependentSelf(ab, mom, out.Pix, eps)
			}
		}
		if err != nil {
			return nil, err
		}

		mode := coeffs.Linear
		if i == f.cfg.Iterations-1 {
			mode = f.cfg.Blending
		}
		if err := coeffs.Apply(out.Pix, out.Pix, ab, mode); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (f *Filter) solveExposure(ab, mom, guide, signal, scratch []float64, w, h int, eps float64) error {
	if err := moments.Analyse(mom, guide, signal, w, h, f.full, scratch); err != nil {
		return err
	}
	return coeffs.SolveExposureIndependent(ab, mom, guide, signal, eps)
}

// posterize writes the quantized src into dst, or copies it when
// quantization is off.
func (f *Filter) posterize(dst, src []float64) error {
	return quantize.Quantize(dst, src, f.cfg.Quantization, quantize.WithClamp(f.cfg.QuantizeMin, f.cfg.QuantizeMax))
}
