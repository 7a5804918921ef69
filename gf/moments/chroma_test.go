package moments

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-guided/gf/core"
	"github.com/cwbudde/algo-guided/internal/pattern"
)

func TestAnalyseChromaMatchesDirect(t *testing.T) {
	const w, h, r, channels = 13, 10, 2, 2
	n := w * h
	u := pattern.UniformNoise(31, -0.5, 0.5, n)
	v := pattern.UniformNoise(32, -0.5, 0.5, n)
	c0 := pattern.UniformNoise(33, 0, 1, n)
	c1 := pattern.Add(pattern.Scale(u, 0.4), pattern.UniformNoise(34, 0, 0.1, n))
	guided := make([]float64, channels*n)
	for k := 0; k < n; k++ {
		guided[k*channels] = c0[k]
		guided[k*channels+1] = c1[k]
	}

	stride := ChromaChannels(channels)
	got := make([]float64, stride*n)
	if err := AnalyseChroma(got, u, v, guided, w, h, channels, mustTable(t, r), nil); err != nil {
		t.Fatalf("AnalyseChroma() error = %v", err)
	}

	uv := direct(u, v, w, h, r)
	vv := direct(v, v, w, h, r)
	uc0, vc0 := direct(u, c0, w, h, r), direct(v, c0, w, h, r)
	uc1, vc1 := direct(u, c1, w, h, r), direct(v, c1, w, h, r)

	const eps = 1e-12
	for k := 0; k < n; k++ {
		px := got[k*stride : (k+1)*stride]
		d := k * Channels
		checks := []struct {
			name      string
			got, want float64
		}{
			{"mean u", px[ChromaMeanU], uv[d+MeanGuide]},
			{"mean v", px[ChromaMeanV], uv[d+MeanGuided]},
			{"var u", px[ChromaVarU], uv[d+VarGuide]},
			{"cov uv", px[ChromaCovUV], uv[d+Cov]},
			{"var v", px[ChromaVarV], vv[d+VarGuide]},
			{"mean c0", px[ChromaGuided], uc0[d+MeanGuided]},
			{"cov u c0", px[ChromaGuided+1], uc0[d+Cov]},
			{"cov v c0", px[ChromaGuided+2], vc0[d+Cov]},
			{"mean c1", px[ChromaGuided+3], uc1[d+MeanGuided]},
			{"cov u c1", px[ChromaGuided+4], uc1[d+Cov]},
			{"cov v c1", px[ChromaGuided+5], vc1[d+Cov]},
		}
		for _, c := range checks {
			if !core.NearlyEqual(c.got, c.want, eps) {
				t.Fatalf("pixel %d %s = %v, want %v", k, c.name, c.got, c.want)
			}
		}
	}
}

func TestAnalyseChromaErrors(t *testing.T) {
	tbl := mustTable(t, 1)
	u := make([]float64, 4)
	if err := AnalyseChroma(make([]float64, 4*ChromaChannels(3)), u, u, make([]float64, 11), 2, 2, 3, tbl, nil); !errors.Is(err, core.ErrInvalidDimensions) {
		t.Fatalf("short guided error = %v, want ErrInvalidDimensions", err)
	}
	if err := AnalyseChroma(make([]float64, 4), u, u, make([]float64, 12), 2, 2, 3, tbl, nil); !errors.Is(err, core.ErrInvalidDimensions) {
		t.Fatalf("short output error = %v, want ErrInvalidDimensions", err)
	}
}
