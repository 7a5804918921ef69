// Package quantize posterizes a positive signal in log2 space:
//
//	out = 2^(round(log2(in)/step)·step)
//
// so values snap to exposure-like bins spaced step EV apart. Step 0 is an
// exact copy and step 1 snaps to the nearest octave. Inputs below
// core.MinFloat are raised to it before the logarithm, and an optional clamp
// bounds the input.
//
// Building with -tags fastmath picks the bin with the algo-approx logarithm.
// Levels are still exact powers of two.
package quantize
