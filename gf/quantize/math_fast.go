//go:build fastmath

package quantize

import "github.com/meko-christian/algo-approx"

// ln2 is the natural logarithm of 2, used for log base conversions.
const ln2 = 0.693147180559945309417232121458

// log2 computes log2(x) using fast approximation. It only picks the bin;
// the level itself is always computed exactly.
func log2(x float64) float64 {
	return approx.FastLog(x) / ln2
}
