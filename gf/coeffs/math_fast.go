//go:build fastmath

package coeffs

import "github.com/meko-christian/algo-approx"

// sqrt computes the square root using fast approximation.
func sqrt(x float64) float64 {
	return approx.FastSqrt(x)
}
