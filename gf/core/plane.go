package core

import "fmt"

// Plane is a row-major grid of Width×Height pixels with Channels interleaved
// samples per pixel. Sample (x, y, c) lives at Pix[(y*Width+x)*Channels+c].
type Plane struct {
	Width    int
	Height   int
	Channels int
	Pix      []float64
}

// NewPlane returns a zero-filled plane.
func NewPlane(width, height, channels int) (*Plane, error) {
	if err := ValidateDims(width, height, channels); err != nil {
		return nil, err
	}
	return &Plane{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]float64, width*height*channels),
	}, nil
}

// PlaneFromSlice wraps pix without copying. Mutations to pix are visible
// through the plane and vice versa.
func PlaneFromSlice(pix []float64, width, height, channels int) (*Plane, error) {
	if err := CheckLen(pix, width, height, channels); err != nil {
		return nil, err
	}
	return &Plane{Width: width, Height: height, Channels: channels, Pix: pix}, nil
}

// Validate reports whether the plane is non-nil and its buffer matches its shape.
func (p *Plane) Validate() error {
	if p == nil {
		return fmt.Errorf("%w: nil plane", ErrInvalidDimensions)
	}
	return CheckLen(p.Pix, p.Width, p.Height, p.Channels)
}

// Pixels returns Width*Height.
func (p *Plane) Pixels() int {
	return p.Width * p.Height
}

// SameSize reports whether p and q have the same width and height.
// Channel counts may differ.
func (p *Plane) SameSize(q *Plane) bool {
	return p.Width == q.Width && p.Height == q.Height
}

// At returns sample c of pixel (x, y).
func (p *Plane) At(x, y, c int) float64 {
	return p.Pix[(y*p.Width+x)*p.Channels+c]
}

// Set stores v as sample c of pixel (x, y).
func (p *Plane) Set(x, y, c int, v float64) {
	p.Pix[(y*p.Width+x)*p.Channels+c] = v
}

// Clone returns a deep copy of the plane.
func (p *Plane) Clone() *Plane {
	pix := make([]float64, len(p.Pix))
	copy(pix, p.Pix)
	return &Plane{Width: p.Width, Height: p.Height, Channels: p.Channels, Pix: pix}
}

// Channel copies channel c into a new single-channel plane.
func (p *Plane) Channel(c int) (*Plane, error) {
	if c < 0 || c >= p.Channels {
		return nil, fmt.Errorf("%w: channel %d of %d", ErrInvalidDimensions, c, p.Channels)
	}
	out := &Plane{Width: p.Width, Height: p.Height, Channels: 1, Pix: make([]float64, p.Pixels())}
	for k := range out.Pix {
		out.Pix[k] = p.Pix[k*p.Channels+c]
	}
	return out, nil
}
