package guided

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-guided/gf/coeffs"
	"github.com/cwbudde/algo-guided/gf/core"
)

// Config holds the parameters of a filter call.
type Config struct {
	// Radius is the half width of the statistics window in full-resolution
	// pixels.
	Radius int
	// Feathering is the regularization ε added to the local variance.
	Feathering float64
	// Iterations is the number of diffusion passes.
	Iterations int
	// Blending selects how the final coefficients are applied. Intermediate
	// iterations always blend linearly.
	Blending coeffs.Blending
	// Downscale divides both axes before the statistics pass of Classic and
	// GuideWithChroma. ExposureIndependent always runs at full resolution.
	Downscale int
	// Quantization is the log2 step used to posterize the guide; 0 disables it.
	Quantization float64
	// QuantizeMin and QuantizeMax clamp the posterized guide.
	QuantizeMin float64
	QuantizeMax float64
	// ScratchLimit caps the scratch bytes of one call; 0 means unlimited.
	ScratchLimit int64
}

// DefaultConfig returns the configuration used when no options are given.
func DefaultConfig() Config {
	return Config{
		Radius:       8,
		Feathering:   0.01,
		Iterations:   1,
		Blending:     coeffs.Linear,
		Downscale:    1,
		Quantization: 0,
		QuantizeMin:  0,
		QuantizeMax:  math.Inf(1),
		ScratchLimit: 0,
	}
}

// Validate reports the first parameter outside its domain.
func (c Config) Validate() error {
	switch {
	case c.Radius < 1:
		return fmt.Errorf("%w: radius must be >= 1: %d", core.ErrInvalidParameter, c.Radius)
	case !(c.Feathering > 0) || math.IsInf(c.Feathering, 0):
		return fmt.Errorf("%w: feathering must be finite and > 0: %v", core.ErrInvalidParameter, c.Feathering)
	case c.Iterations < 1:
		return fmt.Errorf("%w: iterations must be >= 1: %d", core.ErrInvalidParameter, c.Iterations)
	case !c.Blending.Valid():
		return fmt.Errorf("%w: unknown blending mode %d", core.ErrInvalidParameter, int(c.Blending))
	case c.Downscale < 1:
		return fmt.Errorf("%w: downscale must be >= 1: %d", core.ErrInvalidParameter, c.Downscale)
	case !(c.Quantization >= 0) || math.IsInf(c.Quantization, 0):
		return fmt.Errorf("%w: quantization step must be finite and >= 0: %v", core.ErrInvalidParameter, c.Quantization)
	case math.IsNaN(c.QuantizeMin) || math.IsNaN(c.QuantizeMax) || c.QuantizeMin > c.QuantizeMax:
		return fmt.Errorf("%w: quantization clamp [%v, %v]", core.ErrInvalidParameter, c.QuantizeMin, c.QuantizeMax)
	case c.ScratchLimit < 0:
		return fmt.Errorf("%w: scratch limit must be >= 0: %d", core.ErrInvalidParameter, c.ScratchLimit)
	}
	return nil
}

// reducedRadius returns the window radius at the downscaled resolution.
func (c Config) reducedRadius() int {
	return max(1, c.Radius/c.Downscale)
}

// Option mutates a Config. Values are stored as given; New rejects the
// result if it is out of range.
type Option func(*Config)

// WithRadius sets the window radius in full-resolution pixels.
func WithRadius(r int) Option {
	return func(c *Config) {
		c.Radius = r
	}
}

// WithFeathering sets the regularization ε.
func WithFeathering(eps float64) Option {
	return func(c *Config) {
		c.Feathering = eps
	}
}

// WithIterations sets the number of diffusion passes.
func WithIterations(n int) Option {
	return func(c *Config) {
		c.Iterations = n
	}
}

// WithBlending sets the final blending mode.
func WithBlending(b coeffs.Blending) Option {
	return func(c *Config) {
		c.Blending = b
	}
}

// WithDownscale sets the resolution divisor of the statistics pass.
func WithDownscale(s int) Option {
	return func(c *Config) {
		c.Downscale = s
	}
}

// WithQuantization posterizes the guide in log2 steps of step EV, clamped
// to [lo, hi].
func WithQuantization(step, lo, hi float64) Option {
	return func(c *Config) {
		c.Quantization = step
		c.QuantizeMin = lo
		c.QuantizeMax = hi
	}
}

// WithScratchLimit caps the scratch memory of one call in bytes.
func WithScratchLimit(bytes int64) Option {
	return func(c *Config) {
		c.ScratchLimit = bytes
	}
}
