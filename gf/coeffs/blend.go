package coeffs

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-guided/gf/core"
	"github.com/cwbudde/algo-guided/internal/parallel"
)

// Blending selects how a coefficient field is combined with its signal.
type Blending int

const (
	// Linear outputs max(in·a+b, MinFloat).
	Linear Blending = iota
	// Geomean outputs sqrt(in·max(in·a+b, MinFloat)), the geometric mean of
	// the input and its linear estimate.
	Geomean
)

// String returns the lower-case mode name.
func (b Blending) String() string {
	switch b {
	case Linear:
		return "linear"
	case Geomean:
		return "geomean"
	default:
		return fmt.Sprintf("Blending(%d)", int(b))
	}
}

// ParseBlending maps a mode name (case-insensitive) to a Blending.
func ParseBlending(s string) (Blending, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linear":
		return Linear, nil
	case "geomean":
		return Geomean, nil
	default:
		return 0, fmt.Errorf("%w: unknown blending mode %q", core.ErrInvalidParameter, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (b Blending) MarshalText() ([]byte, error) {
	if _, err := b.Blender(); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Blending) UnmarshalText(text []byte) error {
	v, err := ParseBlending(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// Blender writes the blended value of every sample in src into dst using
// the coefficient field ab. dst may alias src.
type Blender func(dst, src, ab []float64)

// Blender resolves the mode to its applicator.
func (b Blending) Blender() (Blender, error) {
	switch b {
	case Linear:
		return blendLinear, nil
	case Geomean:
		return blendGeomean, nil
	default:
		return nil, fmt.Errorf("%w: unknown blending mode %d", core.ErrInvalidParameter, int(b))
	}
}

func blendLinear(dst, src, ab []float64) {
	parallel.Range(len(src), func(i0, i1 int) {
		for k := i0; k < i1; k++ {
			dst[k] = core.FloorMin(src[k]*ab[k*Channels] + ab[k*Channels+1])
		}
	})
}

func blendGeomean(dst, src, ab []float64) {
	parallel.Range(len(src), func(i0, i1 int) {
		for k := i0; k < i1; k++ {
			in := src[k]
			est := core.FloorMin(in*ab[k*Channels] + ab[k*Channels+1])
			if est == in {
				dst[k] = in
				continue
			}
			dst[k] = sqrt(in * est)
		}
	})
}

// Apply blends src with the field ab into dst using mode.
func Apply(dst, src, ab []float64, mode Blending) error {
	blend, err := mode.Blender()
	if err != nil {
		return err
	}
	if len(dst) != len(src) {
		return fmt.Errorf("%w: dst has %d samples, want %d", core.ErrInvalidDimensions, len(dst), len(src))
	}
	if len(ab) != Channels*len(src) {
		return fmt.Errorf("%w: field has %d samples, want %d", core.ErrInvalidDimensions, len(ab), Channels*len(src))
	}
	blend(dst, src, ab)
	return nil
}

// Valid reports whether b names a known mode.
func (b Blending) Valid() bool {
	return b == Linear || b == Geomean
}
