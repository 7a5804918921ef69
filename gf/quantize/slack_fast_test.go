//go:build fastmath

package quantize

// binSlack is how far past half a step the chosen bin may be, in log2 units.
// The approximate logarithm can pick the neighbouring bin near a boundary.
const binSlack = 1e-3
