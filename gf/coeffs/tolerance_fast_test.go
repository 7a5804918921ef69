//go:build fastmath

package coeffs

// sqrtTol is the relative error allowed on a geometric-mean blend built on
// the approximate square root.
const sqrtTol = 1e-5
