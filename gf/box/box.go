package box

import (
	"fmt"

	"github.com/cwbudde/algo-guided/gf/core"
	"github.com/cwbudde/algo-guided/internal/parallel"
)

// Average replaces buf with its local average over the table's radius.
// It allocates one scratch grid the size of buf.
func Average(buf []float64, width, height, channels int, tbl *Table) error {
	return AverageInto(buf, buf, nil, width, height, channels, tbl)
}

// AverageInto writes the local average of src into dst. dst may alias src.
// tmp is scratch of the same length as src; a nil tmp is allocated.
func AverageInto(dst, src, tmp []float64, width, height, channels int, tbl *Table) error {
	if tbl == nil {
		return fmt.Errorf("%w: nil box table", core.ErrInvalidParameter)
	}
	if err := core.CheckLen(src, width, height, channels); err != nil {
		return err
	}
	if len(dst) != len(src) {
		return fmt.Errorf("%w: dst has %d samples, want %d", core.ErrInvalidDimensions, len(dst), len(src))
	}
	if tmp == nil {
		tmp = make([]float64, len(src))
	} else if len(tmp) != len(src) {
		return fmt.Errorf("%w: scratch has %d samples, want %d", core.ErrInvalidDimensions, len(tmp), len(src))
	}

	if tbl.radius == 0 {
		copy(dst, src)
		return nil
	}

	averageColumns(tmp, src, width, height, channels, tbl)
	averageRows(dst, tmp, width, height, channels, tbl)
	return nil
}

// averageColumns averages along y. Each output row accumulates whole input
// rows, which keeps the inner loop contiguous in memory.
func averageColumns(dst, src []float64, width, height, channels int, tbl *Table) {
	stride := width * channels
	parallel.Rows(height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			out := dst[y*stride : (y+1)*stride]
			begin, end := tbl.Span(y, height)

			copy(out, src[begin*stride:(begin+1)*stride])
			for k, yy := 1, begin+1; yy <= end; k, yy = k+1, yy+1 {
				w := tbl.inv[k]
				row := src[yy*stride : (yy+1)*stride]
				for i, v := range row {
					out[i] += (v - out[i]) * w
				}
			}
		}
	})
}

func averageRows(dst, src []float64, width, height, channels int, tbl *Table) {
	stride := width * channels
	parallel.Rows(height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			row := src[y*stride : (y+1)*stride]
			out := dst[y*stride : (y+1)*stride]
			for x := 0; x < width; x++ {
				begin, end := tbl.Span(x, width)
				px := out[x*channels : (x+1)*channels]

				copy(px, row[begin*channels:(begin+1)*channels])
				for k, xx := 1, begin+1; xx <= end; k, xx = k+1, xx+1 {
					w := tbl.inv[k]
					in := row[xx*channels : (xx+1)*channels]
					for c, v := range in {
						px[c] += (v - px[c]) * w
					}
				}
			}
		}
	})
}
