// Package resample provides bilinear resizing of multi-channel interleaved
// grids, used to shrink signals before the statistics pass and to grow
// coefficient fields back to full resolution.
//
// Output pixel centres map onto input pixel centres:
//
//	x_in = (x_out + 0.5)·W_in/W_out − 0.5
//
// The −0.5 term indexes samples by their centres. The plain
// (x_out + 0.5)·W_in/W_out mapping would shift the grid by half an input
// pixel. The four neighbours are clamped to the grid, so borders replicate
// the outermost samples. A same-size resample is an exact copy, and a
// constant grid stays exactly constant at any size.
package resample
