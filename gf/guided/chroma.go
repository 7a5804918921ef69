package guided

import (
	"fmt"

	"github.com/cwbudde/algo-guided/gf/box"
	"github.com/cwbudde/algo-guided/gf/coeffs"
	"github.com/cwbudde/algo-guided/gf/core"
	"github.com/cwbudde/algo-guided/gf/moments"
	"github.com/cwbudde/algo-guided/gf/resample"
)

// GuideWithChroma re-expresses every channel of corrections as a smooth
// affine function of the chromaticity guide (u, v) and returns the result.
// Statistics run at the configured downscale and reduced radius, and the
// coefficients are box-smoothed before being upsampled. Iterations and
// blending do not apply.
func (f *Filter) GuideWithChroma(u, v, corrections *core.Plane) (*core.Plane, error) {
	if err := checkGrey("u", u); err != nil {
		return nil, err
	}
	if err := checkGrey("v", v); err != nil {
		return nil, err
	}
	if err := corrections.Validate(); err != nil {
		return nil, fmt.Errorf("corrections: %w", err)
	}
	if !u.SameSize(v) || !u.SameSize(corrections) {
		return nil, fmt.Errorf("%w: u %dx%d, v %dx%d, corrections %dx%d", core.ErrInvalidDimensions,
			u.Width, u.Height, v.Width, v.Height, corrections.Width, corrections.Height)
	}

	w, h, ch := u.Width, u.Height, corrections.Channels
	dw, dh, err := resample.ReducedSize(w, h, f.cfg.Downscale)
	if err != nil {
		return nil, err
	}
	n, nd := w*h, dw*dh
	fieldLen := coeffs.ChromaChannels(ch)

	dsLen, upLen := 0, 0
	if f.cfg.Downscale > 1 {
		dsLen, upLen = nd, n*fieldLen
	}
	arena, bufs, err := f.scratch(dsLen, dsLen, dsLen*ch,
		nd*moments.ChromaChannels(ch), moments.ChromaScratchLen(nd, ch), nd*fieldLen, nd*fieldLen, upLen)
	if err != nil {
		return nil, err
	}
	defer arena.Release()
	mom, scratch, field, tmp := bufs[3], bufs[4], bufs[5], bufs[6]

	dsU, dsV, dsC := u.Pix, v.Pix, corrections.Pix
	if f.cfg.Downscale > 1 {
		dsU, dsV, dsC = bufs[0], bufs[1], bufs[2]
		for _, rs := range []struct {
			in, out []float64
			ch      int
		}{{u.Pix, dsU, 1}, {v.Pix, dsV, 1}, {corrections.Pix, dsC, ch}} {
			if err := resample.Bilinear(rs.in, w, h, rs.out, dw, dh, rs.ch); err != nil {
				return nil, err
			}
		}
	}

	if err := moments.AnalyseChroma(mom, dsU, dsV, dsC, dw, dh, ch, f.reduced, scratch); err != nil {
		return nil, err
	}
	if err := coeffs.SolveChroma(field, mom, ch, f.cfg.Feathering); err != nil {
		return nil, err
	}
	if err := box.AverageInto(field, field, tmp, dw, dh, fieldLen, f.reduced); err != nil {
		return nil, err
	}

	if f.cfg.Downscale > 1 {
		if err := resample.Bilinear(field, dw, dh, bufs[7], w, h, fieldLen); err != nil {
			return nil, err
		}
		field = bufs[7]
	}

	out, err := core.NewPlane(w, h, ch)
	if err != nil {
		return nil, err
	}
	if err := coeffs.ApplyChroma(out.Pix, u.Pix, v.Pix, field, ch); err != nil {
		return nil, err
	}
	return out, nil
}
