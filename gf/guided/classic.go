package guided

import (
	"github.com/cwbudde/algo-guided/gf/box"
	"github.com/cwbudde/algo-guided/gf/coeffs"
	"github.com/cwbudde/algo-guided/gf/core"
	"github.com/cwbudde/algo-guided/gf/moments"
	"github.com/cwbudde/algo-guided/gf/quantize"
	"github.com/cwbudde/algo-guided/gf/resample"
)

// Classic returns the fast guided filter of the single-channel signal,
// guided by itself or by its posterized copy when quantization is set.
func (f *Filter) Classic(signal *core.Plane) (*core.Plane, error) {
	if err := checkGrey("signal", signal); err != nil {
		return nil, err
	}
	w, h := signal.Width, signal.Height
	dw, dh, err := resample.ReducedSize(w, h, f.cfg.Downscale)
	if err != nil {
		return nil, err
	}
	n, nd := w*h, dw*dh

	maskLen, momLen, scratchLen := 0, moments.SelfChannels*nd, moments.SelfScratchLen(nd)
	if f.cfg.Quantization > 0 {
		maskLen, momLen, scratchLen = nd, moments.Channels*nd, moments.ScratchLen(nd)
	}
	upLen := 0
	if f.cfg.Downscale > 1 {
		upLen = coeffs.Channels * n
	}
	arena, bufs, err := f.scratch(nd, coeffs.Channels*nd, coeffs.Channels*nd, maskLen, momLen, scratchLen, upLen)
	if err != nil {
		return nil, err
	}
	defer arena.Release()
	ds, ab := bufs[0], bufs[1]
	st := stage{abTmp: bufs[2], mask: bufs[3], mom: bufs[4], scratch: bufs[5]}

	if f.cfg.Downscale > 1 {
		if err := resample.Bilinear(signal.Pix, w, h, ds, dw, dh, 1); err != nil {
			return nil, err
		}
	} else {
		copy(ds, signal.Pix)
	}

	if err := f.diffuse(ds, ab, st, dw, dh); err != nil {
		return nil, err
	}

	full := ab
	if f.cfg.Downscale > 1 {
		full = bufs[6]
		if err := resample.Bilinear(ab, dw, dh, full, w, h, coeffs.Channels); err != nil {
			return nil, err
		}
	}

	out, err := core.NewPlane(w, h, 1)
	if err != nil {
		return nil, err
	}
	if err := coeffs.Apply(out.Pix, signal.Pix, full, f.cfg.Blending); err != nil {
		return nil, err
	}
	return out, nil
}

// stage holds the reduced-resolution scratch of one diffusion pass. mask is
// empty when quantization is off.
type stage struct {
	abTmp, mask, mom, scratch []float64
}

// diffuse runs the iteration loop at reduced resolution, leaving the last
// smoothed coefficients in ab. Every iteration but the last blends ds in
// place so the next one sees the diffused signal.
func (f *Filter) diffuse(ds, ab []float64, st stage, w, h int) error {
	for i := 0; i < f.cfg.Iterations; i++ {
		if err := f.solveClassic(ab, ds, st, w, h); err != nil {
			return err
		}
		if err := box.AverageInto(ab, ab, st.abTmp, w, h, coeffs.Channels, f.reduced); err != nil {
			return err
		}
		if i < f.cfg.Iterations-1 {
			if err := coeffs.Apply(ds, ds, ab, coeffs.Linear); err != nil {
				return err
			}
		}
	}
	return nil
}

func (f *Filter) solveClassic(ab, ds []float64, st stage, w, h int) error {
	if len(st.mask) == 0 {
		if err := moments.AnalyseSelf(st.mom, ds, w, h, f.reduced, st.scratch); err != nil {
			return err
		}
		return coeffs.SolveSelf(ab, st.mom, f.cfg.Feathering)
	}

	err := quantize.Quantize(st.mask, ds, f.cfg.Quantization, quantize.WithClamp(f.cfg.QuantizeMin, f.cfg.QuantizeMax))
	if err != nil {
		return err
	}
	if err := moments.Analyse(st.mom, st.mask, ds, w, h, f.reduced, st.scratch); err != nil {
		return err
	}
	return coeffs.Solve(ab, st.mom, f.cfg.Feathering)
}
