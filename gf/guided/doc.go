// Package guided runs the fast guided filter and its exposure-independent
// variant over single-channel planes.
//
// A filter call models the signal locally as an affine function of a guide,
// guided ≈ a·guide + b, with the slope a regularized by the feathering ε.
// Flat regions (low local variance) get a ≈ 0 and collapse to their local
// mean; edges (high variance) get a ≈ 1 and pass through.
//
// Classic downsamples the signal, estimates (a, b) at reduced resolution,
// smooths the coefficients with a second box pass, upsamples them and blends
// them with the full-resolution input. ExposureIndependent works at full
// resolution, normalizes the statistics by the local exposure and skips the
// coefficient smoothing. GuideWithChroma steers a multi-channel plane with a
// two-channel guide.
//
// Every call allocates its scratch from a per-call arena and holds no state
// afterwards. On error the input planes are untouched and no output is
// returned.
//
// Basic usage:
//
//	out, err := guided.Classic(signal,
//		guided.WithRadius(8),
//		guided.WithFeathering(0.01),
//	)
//
// A Filter built with New validates its configuration once and may be
// shared between goroutines.
package guided
