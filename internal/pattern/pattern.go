// Package pattern generates deterministic test images: constants, step
// edges, smooth fields and seeded noise.
package pattern

import (
	"math"
	"math/rand"
)

// Constant returns a width×height grid filled with v.
func Constant(width, height int, v float64) []float64 {
	out := make([]float64, width*height)
	for i := range out {
		out[i] = v
	}
	return out
}

// Step returns a vertical step edge: columns x < split hold lo, the rest hi.
func Step(width, height, split int, lo, hi float64) []float64 {
	out := make([]float64, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := hi
			if x < split {
				v = lo
			}
			out[y*width+x] = v
		}
	}
	return out
}

// Smooth returns a slowly varying positive field in [lo, hi] built from
// low-frequency sines, for resampling round-trip checks.
func Smooth(width, height int, lo, hi float64) []float64 {
	out := make([]float64, width*height)
	mid := 0.5 * (lo + hi)
	amp := 0.25 * (hi - lo)
	for y := 0; y < height; y++ {
		fy := float64(y) / float64(height)
		for x := 0; x < width; x++ {
			fx := float64(x) / float64(width)
			out[y*width+x] = mid + amp*math.Sin(2*math.Pi*fx) + amp*math.Cos(math.Pi*fy)
		}
	}
	return out
}

// GaussianNoise returns n normally distributed samples with standard
// deviation sigma, from a fixed seed for reproducibility.
func GaussianNoise(seed int64, sigma float64, n int) []float64 {
	out := make([]float64, n)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = rng.NormFloat64() * sigma
	}
	return out
}

// UniformNoise returns n samples uniformly distributed in [lo, hi).
func UniformNoise(seed int64, lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = lo + rng.Float64()*(hi-lo)
	}
	return out
}

// Add returns a + b element-wise. Both slices must have the same length.
func Add(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] + b[i]
	}
	return out
}

// Scale returns k·a.
func Scale(a []float64, k float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = k * a[i]
	}
	return out
}
