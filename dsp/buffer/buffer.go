package buffer

// Buffer is a reusable sample slice. Shrinking keeps the backing array, so
// a pooled Buffer stops allocating once it has served its largest request.
type Buffer struct {
	samples []float64
}

// New returns a zero-filled Buffer of the given length.
func New(length int) *Buffer {
	b := &Buffer{}
	b.Reset(length)
	return b
}

// Samples returns the underlying slice.
func (b *Buffer) Samples() []float64 { return b.samples }

// Len returns the current number of samples.
func (b *Buffer) Len() int { return len(b.samples) }

// Cap returns the number of samples the Buffer holds without allocating.
func (b *Buffer) Cap() int { return cap(b.samples) }

// Reset sets the length to n and clears every sample.
func (b *Buffer) Reset(n int) {
	n = max(n, 0)
	if n > cap(b.samples) {
		b.samples = make([]float64, n)
		return
	}
	b.samples = b.samples[:n]
	clear(b.samples)
}
