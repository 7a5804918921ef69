// Package box computes windowed means over multi-channel interleaved grids.
//
// The window for radius r covers [x−r, x+r]×[y−r, y+r], clipped at the
// borders: edge pixels average over the in-bounds samples only, so the
// window shrinks instead of reflecting. The filter is separable and runs as
// a column pass followed by a row pass, for O(W·H·r) work instead of
// O(W·H·r²).
//
// Means are accumulated incrementally with weights from a caller-owned
// Table, which makes the average of a uniform window exactly equal to the
// uniform value.
//
// Common workflows:
//   - NewTable(radius) once per radius
//   - Average(buf, w, h, ch, tbl) for in-place smoothing
//   - AverageInto(dst, src, tmp, w, h, ch, tbl) with caller scratch
package box
