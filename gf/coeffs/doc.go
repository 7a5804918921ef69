// Package coeffs turns local moments into per-pixel affine coefficients and
// applies them.
//
// A coefficient field stores one (a, b) pair per pixel, interleaved, such
// that guided ≈ a·guide + b. Two solvers are provided:
//
//   - Solve: the ridge-regularized regression a = cov/(var+ε),
//     b = mean(P) − a·mean(G).
//   - SolveExposureIndependent: variance and covariance are normalized by
//     max(mean·value, 1e-6) before the regression, so that a is invariant
//     to a uniform scaling of all intensities.
//
// Blending applies a field to a signal. Linear yields max(in·a+b, MinFloat);
// Geomean yields sqrt(in·max(in·a+b, MinFloat)). The mode is resolved to a
// Blender once per call.
package coeffs
