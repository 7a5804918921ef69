//go:build !fastmath

package quantize

// binSlack is how far past half a step the chosen bin may be, in log2 units.
const binSlack = 1e-9
