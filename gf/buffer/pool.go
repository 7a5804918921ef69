package buffer

import "sync"

// Buffer is a scratch grid whose backing array outlives the call that
// filled it.
type Buffer struct {
	samples []float64
}

// New returns a zero-filled Buffer of n samples. Negative n yields an empty
// buffer.
func New(n int) *Buffer {
	return &Buffer{samples: make([]float64, max(n, 0))}
}

// Samples returns the grid.
func (b *Buffer) Samples() []float64 {
	return b.samples
}

// reset sets the length to n and zeroes every sample, keeping the backing
// array when it is large enough.
func (b *Buffer) reset(n int) {
	n = max(n, 0)
	if n > cap(b.samples) {
		b.samples = make([]float64, n)
		return
	}
	b.samples = b.samples[:n]
	clear(b.samples)
}

// Pool recycles Buffers between filter calls so that repeated calls on
// same-sized planes do not reallocate their working grids. The zero value
// is ready for use.
type Pool struct {
	pool sync.Pool
}

// NewPool returns an empty Pool.
func NewPool() *Pool {
	return &Pool{}
}

// Get returns a zeroed Buffer of n samples.
func (p *Pool) Get(n int) *Buffer {
	b, _ := p.pool.Get().(*Buffer)
	if b == nil {
		b = &Buffer{}
	}
	b.reset(n)
	return b
}

// Put hands b back for reuse. b must not be used afterwards.
func (p *Pool) Put(b *Buffer) {
	if b != nil {
		p.pool.Put(b)
	}
}
