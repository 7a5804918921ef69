package guided

import (
	"errors"
	"fmt"
	"testing"

	"github.com/cwbudde/algo-guided/gf/coeffs"
	"github.com/cwbudde/algo-guided/gf/core"
	"github.com/cwbudde/algo-guided/internal/pattern"
	"github.com/cwbudde/algo-guided/internal/testutil"
)

func TestExposureIndependentFlatFieldIdentity(t *testing.T) {
	variants := []struct {
		name string
		opts []Option
	}{
		{name: "defaults"},
		{name: "geomean", opts: []Option{WithBlending(coeffs.Geomean)}},
		{name: "iterations", opts: []Option{WithIterations(4), WithRadius(2)}},
		{name: "quantized", opts: []Option{WithQuantization(1, 1.0/16384, 4)}},
		{name: "downscale ignored", opts: []Option{WithDownscale(4), WithFeathering(10)}},
	}
	for _, vt := range variants {
		for _, v := range []float64{0.05, 0.5, 3} {
			t.Run(fmt.Sprintf("%s/%v", vt.name, v), func(t *testing.T) {
				in := plane(t, pattern.Constant(18, 13, v), 18, 13)
				out, err := ExposureIndependent(in, nil, vt.opts...)
				if err != nil {
					t.Fatalf("ExposureIndependent() error = %v", err)
				}
				testutil.RequireSliceEqual(t, out.Pix, in.Pix)

				mask := plane(t, pattern.Constant(18, 13, 2*v), 18, 13)
				out, err = ExposureIndependent(in, mask, vt.opts...)
				if err != nil {
					t.Fatalf("ExposureIndependent() with mask error = %v", err)
				}
				testutil.RequireSliceEqual(t, out.Pix, in.Pix)
			})
		}
	}
}

func TestExposureIndependentScalesWithExposure(t *testing.T) {
	const w, h = 24, 18
	pix := pattern.Add(pattern.Step(w, h, 11, 0.1, 0.6), pattern.UniformNoise(7, 0, 0.05, w*h))
	base, err := ExposureIndependent(plane(t, pix, w, h), nil, WithRadius(3), WithIterations(2))
	if err != nil {
		t.Fatalf("ExposureIndependent() error = %v", err)
	}

	for _, k := range []float64{0.25, 2, 3} {
		scaled, err := ExposureIndependent(plane(t, pattern.Scale(pix, k), w, h), nil, WithRadius(3), WithIterations(2))
		if err != nil {
			t.Fatalf("k=%v: ExposureIndependent() error = %v", k, err)
		}
		for i := range pix {
			if want := k * base.Pix[i]; !core.NearlyEqual(scaled.Pix[i], want, 1e-10) {
				t.Fatalf("k=%v: out[%d] = %v, want %v", k, i, scaled.Pix[i], want)
			}
		}
	}
}

func TestExposureIndependentDistinctMaskMatchesAlias(t *testing.T) {
	const w, h = 20, 15
	pix := pattern.Add(pattern.Smooth(w, h, 0.2, 0.8), pattern.UniformNoise(8, 0, 0.05, w*h))
	in := plane(t, pix, w, h)
	mask := in.Clone()

	aliased, err := ExposureIndependent(in, nil, WithRadius(2))
	if err != nil {
		t.Fatalf("ExposureIndependent(nil mask) error = %v", err)
	}
	self, err := ExposureIndependent(in, in, WithRadius(2))
	if err != nil {
		t.Fatalf("ExposureIndependent(self mask) error = %v", err)
	}
	testutil.RequireSliceEqual(t, self.Pix, aliased.Pix)

	separate, err := ExposureIndependent(in, mask, WithRadius(2))
	if err != nil {
		t.Fatalf("ExposureIndependent(copied mask) error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, separate.Pix, aliased.Pix, 1e-12)
	testutil.RequireSliceEqual(t, mask.Pix, in.Pix)
	testutil.RequireSliceEqual(t, in.Pix, pix)
}

func TestExposureIndependentKeepsStepEdge(t *testing.T) {
	const w, h = 32, 16
	pix := pattern.Add(pattern.Step(w, h, w/2, 0.1, 0.9), pattern.GaussianNoise(9, 0.01, w*h))
	for _, b := range []coeffs.Blending{coeffs.Linear, coeffs.Geomean} {
		out, err := ExposureIndependent(plane(t, pix, w, h), nil, WithRadius(4), WithBlending(b))
		if err != nil {
			t.Fatalf("%v: ExposureIndependent() error = %v", b, err)
		}
		testutil.RequireFinite(t, out.Pix)
		requireEdge(t, out, w/2, 0.5)
	}
}

func TestExposureIndependentScratchLimit(t *testing.T) {
	in := plane(t, pattern.UniformNoise(10, 0.1, 1, 16*16), 16, 16)
	orig := in.Clone()
	out, err := ExposureIndependent(in, nil, WithScratchLimit(512))
	if !errors.Is(err, core.ErrAllocation) || out != nil {
		t.Fatalf("ExposureIndependent() = %v, %v; want nil, ErrAllocation", out, err)
	}
	testutil.RequireSliceEqual(t, in.Pix, orig.Pix)
}

func TestExposureIndependentErrors(t *testing.T) {
	in := plane(t, pattern.Constant(4, 4, 0.5), 4, 4)
	other := plane(t, pattern.Constant(4, 3, 0.5), 4, 3)
	if _, err := ExposureIndependent(in, other); !errors.Is(err, core.ErrInvalidDimensions) {
		t.Fatalf("mismatched mask error = %v, want ErrInvalidDimensions", err)
	}
	rgb, _ := core.NewPlane(4, 4, 3)
	if _, err := ExposureIndependent(in, rgb); !errors.Is(err, core.ErrInvalidDimensions) {
		t.Fatalf("3-channel mask error = %v, want ErrInvalidDimensions", err)
	}
	if _, err := ExposureIndependent(nil, nil); !errors.Is(err, core.ErrInvalidDimensions) {
		t.Fatalf("nil signal error = %v, want ErrInvalidDimensions", err)
	}
	if _, err := ExposureIndependent(in, nil, WithIterations(0)); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("zero iterations error = %v, want ErrInvalidParameter", err)
	}
}
