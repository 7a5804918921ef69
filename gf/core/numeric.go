package core

import "math"

const defaultEpsilon = 1e-12

// MinFloat is the hard floor applied to blended outputs. It keeps results
// strictly positive and away from denormals so that log-domain consumers of
// a filtered signal stay finite.
const MinFloat = 1.0 / 65536.0 // 2^-16

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// FloorMin returns max(x, MinFloat). NaN maps to MinFloat.
func FloorMin(x float64) float64 {
	if x >= MinFloat {
		return x
	}
	return MinFloat
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
