package guided

import (
	"fmt"

	"github.com/cwbudde/algo-guided/gf/box"
	"github.com/cwbudde/algo-guided/gf/buffer"
	"github.com/cwbudde/algo-guided/gf/core"
)

// Filter is a validated configuration together with the weight tables it
// needs. It is read-only after New and safe for concurrent use.
type Filter struct {
	cfg Config

	// full serves full-resolution statistics; reduced serves the downscaled
	// ones.
	full    *box.Table
	reduced *box.Table
	pool    *buffer.Pool
}

// New validates cfg and precomputes its weight tables.
func New(cfg Config) (*Filter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	full, err := box.NewTable(cfg.Radius)
	if err != nil {
		return nil, err
	}
	reduced := full
	if r := cfg.reducedRadius(); r != cfg.Radius {
		if reduced, err = box.NewTable(r); err != nil {
			return nil, err
		}
	}
	return &Filter{cfg: cfg, full: full, reduced: reduced, pool: buffer.NewPool()}, nil
}

// NewWithOptions applies opts over DefaultConfig and calls New.
func NewWithOptions(opts ...Option) (*Filter, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return New(cfg)
}

// Config returns the filter's configuration.
func (f *Filter) Config() Config {
	return f.cfg
}

// scratch opens a per-call arena and carves one zeroed slice per size. The
// whole demand is checked against the budget before anything is allocated.
func (f *Filter) scratch(sizes ...int) (*buffer.Arena, [][]float64, error) {
	a := buffer.NewArena(f.cfg.ScratchLimit, f.pool)
	bufs, err := a.AllocAll(sizes...)
	if err != nil {
		a.Release()
		return nil, nil, err
	}
	return a, bufs, nil
}

func checkGrey(name string, p *core.Plane) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if p.Channels != 1 {
		return fmt.Errorf("%w: %s has %d channels, want 1", core.ErrInvalidDimensions, name, p.Channels)
	}
	return nil
}

// Classic filters signal with the package defaults overridden by opts.
func Classic(signal *core.Plane, opts ...Option) (*core.Plane, error) {
	f, err := NewWithOptions(opts...)
	if err != nil {
		return nil, err
	}
	return f.Classic(signal)
}

// ExposureIndependent filters signal with the package defaults overridden
// by opts. A nil mask makes the signal its own guide.
func ExposureIndependent(signal, mask *core.Plane, opts ...Option) (*core.Plane, error) {
	f, err := NewWithOptions(opts...)
	if err != nil {
		return nil, err
	}
	return f.ExposureIndependent(signal, mask)
}

// GuideWithChroma smooths corrections under the guide (u, v) with the
// package defaults overridden by opts.
func GuideWithChroma(u, v, corrections *core.Plane, opts ...Option) (*core.Plane, error) {
	f, err := NewWithOptions(opts...)
	if err != nil {
		return nil, err
	}
	return f.GuideWithChroma(u, v, corrections)
}
