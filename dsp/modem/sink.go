package modem

import (
	"sync/atomic"

	"github.com/cwbudde/algo-modem/dsp/buffer"
)

// PointSink receives the points decoded in one block. Post is called from
// the receiver's processing context and must not block; points is only
// valid for the duration of the call.
type PointSink interface {
	Post(points []Point)
}

// SinkFunc adapts a function to PointSink.
type SinkFunc func(points []Point)

// Post implements PointSink.
func (f SinkFunc) Post(points []Point) { f(points) }

// Batch is one block's worth of points in flat [I0, Q0, I1, Q1, ...] form.
type Batch struct {
	Count int

	buf  *buffer.Buffer
	pool *buffer.Pool
}

// Flat returns the interleaved I/Q values. It is invalid after Release.
func (b Batch) Flat() []float64 {
	if b.buf == nil {
		return nil
	}
	return b.buf.Samples()
}

// Points expands the batch into a new slice.
func (b Batch) Points() []Point {
	flat := b.Flat()
	out := make([]Point, b.Count)
	for i := range out {
		out[i] = Point{I: flat[2*i], Q: flat[2*i+1]}
	}
	return out
}

// Release returns the batch storage for reuse.
func (b Batch) Release() {
	if b.pool != nil {
		b.pool.Put(b.buf)
	}
}

// ChanSink delivers batches over a buffered channel. When the consumer
// falls behind, Post drops the batch instead of waiting.
type ChanSink struct {
	ch      chan Batch
	pool    *buffer.Pool
	dropped atomic.Uint64
	posted  atomic.Uint64
}

// NewChanSink returns a sink holding up to depth undelivered batches.
func NewChanSink(depth int) *ChanSink {
	if depth < 0 {
		depth = 0
	}
	return &ChanSink{
		ch:   make(chan Batch, depth),
		pool: buffer.NewPool(),
	}
}

// Post implements PointSink.
func (s *ChanSink) Post(points []Point) {
	buf := s.pool.Get(2 * len(points))
	flat := buf.Samples()
	for i, p := range points {
		flat[2*i] = p.I
		flat[2*i+1] = p.Q
	}

	b := Batch{Count: len(points), buf: buf, pool: s.pool}
	select {
	case s.ch <- b:
		s.posted.Add(1)
	default:
		s.pool.Put(buf)
		s.dropped.Add(1)
	}
}

// Batches returns the receive side of the sink.
func (s *ChanSink) Batches() <-chan Batch {
	return s.ch
}

// Dropped returns the number of batches discarded because the channel was full.
func (s *ChanSink) Dropped() uint64 {
	return s.dropped.Load()
}

// Posted returns the number of batches delivered to the channel.
func (s *ChanSink) Posted() uint64 {
	return s.posted.Load()
}

// Close closes the batch channel. Post must not be called afterwards.
func (s *ChanSink) Close() {
	close(s.ch)
}
