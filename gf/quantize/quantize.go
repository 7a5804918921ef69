package quantize

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-guided/gf/core"
	"github.com/cwbudde/algo-guided/internal/parallel"
)

type config struct {
	lo, hi float64
}

// Option configures Quantize.
type Option func(*config)

// WithClamp bounds the input to [lo, hi] before it is posterized, so every
// output is a grid level and quantizing twice changes nothing. An output may
// lie up to half a step outside off-grid bounds. Swapped bounds are
// reordered; NaN bounds are ignored.
func WithClamp(lo, hi float64) Option {
	return func(cfg *config) {
		if math.IsNaN(lo) || math.IsNaN(hi) {
			return
		}
		if lo > hi {
			lo, hi = hi, lo
		}
		cfg.lo, cfg.hi = lo, hi
	}
}

func defaultConfig() config {
	return config{lo: math.Inf(-1), hi: math.Inf(1)}
}

// Quantize writes the log2 posterization of src into dst. dst may alias src.
// Step 0 copies src unchanged and ignores the clamp.
func Quantize(dst, src []float64, step float64, opts ...Option) error {
	if len(dst) != len(src) {
		return fmt.Errorf("%w: dst has %d samples, want %d", core.ErrInvalidDimensions, len(dst), len(src))
	}
	if step < 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		return fmt.Errorf("%w: quantization step must be finite and >= 0: %v", core.ErrInvalidParameter, step)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if step == 0 {
		copy(dst, src)
		return nil
	}

	parallel.Range(len(src), func(i0, i1 int) {
		for i := i0; i < i1; i++ {
			dst[i] = Level(core.Clamp(src[i], cfg.lo, cfg.hi), step)
		}
	})
	return nil
}

// Level returns the quantized value of a single sample for step > 0. The
// result is exactly 2^(bin·step), so quantized values land on the grid.
func Level(x, step float64) float64 {
	bin := math.Round(log2(core.FloorMin(x)) / step)
	return math.Exp2(bin * step)
}
