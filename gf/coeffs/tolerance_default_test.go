//go:build !fastmath

package coeffs

// sqrtTol is the relative error allowed on a geometric-mean blend.
const sqrtTol = 1e-12
