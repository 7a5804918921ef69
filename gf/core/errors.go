package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimensions indicates a zero or negative axis, a channel count
	// below 1, a buffer whose length does not match its declared shape, or a
	// downscale factor that would reduce an axis to 0.
	ErrInvalidDimensions = errors.New("gf: invalid dimensions")
	// ErrAllocation indicates that the scratch demand of a call exceeds the
	// configured budget. The call is aborted before any stage runs.
	ErrAllocation = errors.New("gf: scratch allocation failed")
	// ErrInvalidParameter indicates a filter parameter outside its domain,
	// such as a non-positive feathering.
	ErrInvalidParameter = errors.New("gf: invalid parameter")
)

// ValidateDims reports whether width, height and channels describe a
// non-empty grid.
func ValidateDims(width, height, channels int) error {
	if width < 1 || height < 1 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if channels < 1 {
		return fmt.Errorf("%w: %d channels", ErrInvalidDimensions, channels)
	}
	return nil
}

// CheckLen reports whether buf holds exactly width*height*channels samples.
func CheckLen(buf []float64, width, height, channels int) error {
	if err := ValidateDims(width, height, channels); err != nil {
		return err
	}
	if want := width * height * channels; len(buf) != want {
		return fmt.Errorf("%w: buffer has %d samples, want %d", ErrInvalidDimensions, len(buf), want)
	}
	return nil
}
