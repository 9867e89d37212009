// Package delay provides a circular delay line with fractional reads.
package delay

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-modem/dsp/interp"
)

// Line is a circular delay line.
type Line struct {
	buffer   []float64
	writePos int
	mode     interp.Mode
}

// Option configures a Line.
type Option func(*Line)

// WithMode selects the fractional interpolation kernel.
func WithMode(m interp.Mode) Option {
	return func(d *Line) {
		d.mode = m
	}
}

// New returns a delay line holding size samples of history.
func New(size int, opts ...Option) (*Line, error) {
	if size <= 0 {
		return nil, fmt.Errorf("delay size must be > 0: %d", size)
	}
	d := &Line{buffer: make([]float64, size), mode: interp.Hermite}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d, nil
}

// Len returns internal buffer size.
func (d *Line) Len() int {
	return len(d.buffer)
}

// Write pushes one sample.
func (d *Line) Write(sample float64) {
	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
	d.buffer[d.writePos] = sample
}

// Read returns the sample written delay writes ago; 0 is the most recent.
// Delays are clamped to the line length.
func (d *Line) Read(delay int) float64 {
	size := len(d.buffer)
	delay = min(max(delay, 0), size-1)
	return d.buffer[(d.writePos-delay+size)%size]
}

// ReadFractional reads a fractional delay with the configured kernel.
func (d *Line) ReadFractional(delay float64) float64 {
	maxDelay := float64(len(d.buffer) - 3)
	delay = math.Max(0, math.Min(delay, maxDelay))

	p := int(math.Floor(delay))
	t := delay - float64(p)
	if t == 0 {
		return d.Read(p)
	}
	return interp.At(d.mode, t, d.Read(p-1), d.Read(p), d.Read(p+1), d.Read(p+2))
}

// Reset clears line state.
func (d *Line) Reset() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}
	d.writePos = 0
}
