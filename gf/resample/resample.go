package resample

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-guided/gf/core"
	"github.com/cwbudde/algo-guided/internal/parallel"
)

// tap is the precomputed horizontal or vertical sampling of one output index.
type tap struct {
	lo, hi int
	frac   float64
}

func taps(outN, inN int) []tap {
	scale := float64(inN) / float64(outN)
	t := make([]tap, outN)
	for i := range t {
		pos := (float64(i)+0.5)*scale - 0.5
		lo := math.Floor(pos)
		frac := pos - lo
		l := int(lo)
		t[i] = tap{
			lo:   min(max(l, 0), inN-1),
			hi:   min(max(l+1, 0), inN-1),
			frac: frac,
		}
	}
	return t
}

// Bilinear resamples in (inW×inH×channels) into out (outW×outH×channels).
func Bilinear(in []float64, inW, inH int, out []float64, outW, outH, channels int) error {
	if err := core.CheckLen(in, inW, inH, channels); err != nil {
		return fmt.Errorf("resample input: %w", err)
	}
	if err := core.CheckLen(out, outW, outH, channels); err != nil {
		return fmt.Errorf("resample output: %w", err)
	}

	xs := taps(outW, inW)
	ys := taps(outH, inH)
	inStride := inW * channels

	parallel.Rows(outH, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			ty := ys[y]
			rowLo := in[ty.lo*inStride : (ty.lo+1)*inStride]
			rowHi := in[ty.hi*inStride : (ty.hi+1)*inStride]
			dst := out[y*outW*channels : (y+1)*outW*channels]

			for x, tx := range xs {
				nw := rowLo[tx.lo*channels:]
				ne := rowLo[tx.hi*channels:]
				sw := rowHi[tx.lo*channels:]
				se := rowHi[tx.hi*channels:]
				px := dst[x*channels : (x+1)*channels]

				// lerp form keeps constant neighbourhoods exact
				for c := range px {
					top := nw[c] + (ne[c]-nw[c])*tx.frac
					bottom := sw[c] + (se[c]-sw[c])*tx.frac
					px[c] = top + (bottom-top)*ty.frac
				}
			}
		}
	})
	return nil
}

// ReducedSize returns the grid size after dividing by factor, rejecting
// factors that would collapse an axis to zero.
func ReducedSize(width, height, factor int) (int, int, error) {
	if factor < 1 {
		return 0, 0, fmt.Errorf("%w: downscale factor must be >= 1: %d", core.ErrInvalidParameter, factor)
	}
	w, h := width/factor, height/factor
	if w < 1 || h < 1 {
		return 0, 0, fmt.Errorf("%w: %dx%d downscaled by %d", core.ErrInvalidDimensions, width, height, factor)
	}
	return w, h, nil
}

// Resize returns a new plane holding p resampled to width×height.
func Resize(p *core.Plane, width, height int) (*core.Plane, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	out, err := core.NewPlane(width, height, p.Channels)
	if err != nil {
		return nil, err
	}
	if err := Bilinear(p.Pix, p.Width, p.Height, out.Pix, width, height, p.Channels); err != nil {
		return nil, err
	}
	return out, nil
}
