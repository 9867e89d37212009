package buffer

import "sync"

// Pool recycles Buffers that leave the real-time path, such as point
// batches handed to a consumer goroutine.
type Pool struct {
	pool sync.Pool
}

// NewPool returns an empty Pool.
func NewPool() *Pool {
	p := &Pool{}
	p.pool.New = func() any { return new(Buffer) }
	return p
}

// Get returns a cleared Buffer of the requested length. Hand it back with
// Put once the data has been consumed.
func (p *Pool) Get(length int) *Buffer {
	b := p.pool.Get().(*Buffer)
	b.Reset(length)
	return b
}

// Put recycles b. Nil is ignored.
func (p *Pool) Put(b *Buffer) {
	if b != nil {
		p.pool.Put(b)
	}
}
