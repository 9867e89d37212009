package fir

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-modem/dsp/core"
)

// Filter implements a direct-form FIR filter.
type Filter struct {
	coeffs []float64 // reversed taps
	hist   []float64 // 2*len(coeffs), mirrored halves
	pos    int
}

// New creates a FIR filter from the given taps. The taps are copied.
func New(taps []float64) *Filter {
	n := len(taps)
	rev := make([]float64, n)
	for i, h := range taps {
		rev[n-1-i] = h
	}
	return &Filter{
		coeffs: rev,
		hist:   make([]float64, 2*n),
	}
}

// ProcessSample filters one input sample.
//
//	y[n] = sum_{k=0}^{N-1} h[k] * x[n-k]
func (f *Filter) ProcessSample(x float64) float64 {
	n := len(f.coeffs)
	if n == 0 {
		return 0
	}

	f.hist[f.pos] = x
	f.hist[f.pos+n] = x
	f.pos++
	if f.pos == n {
		f.pos = 0
	}

	// hist[pos:pos+n] holds x[n-N+1] .. x[n] in time order.
	win := f.hist[f.pos : f.pos+n]
	var y float64
	for k, c := range f.coeffs {
		y += c * win[k]
	}
	return y
}

// ProcessBlock filters a block of samples in-place.
func (f *Filter) ProcessBlock(buf []float64) {
	for i, x := range buf {
		buf[i] = f.ProcessSample(x)
	}
}

// Reset clears the delay line.
func (f *Filter) Reset() {
	for i := range f.hist {
		f.hist[i] = 0
	}
	f.pos = 0
}

// Len returns the number of taps.
func (f *Filter) Len() int {
	return len(f.coeffs)
}

// Taps returns a copy of the taps in their original order.
func (f *Filter) Taps() []float64 {
	n := len(f.coeffs)
	out := make([]float64, n)
	for i, c := range f.coeffs {
		out[n-1-i] = c
	}
	return out
}

// Response returns H(e^{jw}) of taps at normalized frequency f in cycles
// per sample.
func Response(taps []float64, f float64) complex128 {
	w := 2 * math.Pi * f
	var h complex128
	for k, c := range taps {
		h += complex(c, 0) * cmplx.Exp(complex(0, -w*float64(k)))
	}
	return h
}

// MagnitudeDB returns the magnitude of taps at normalized frequency f in dB.
func MagnitudeDB(taps []float64, f float64) float64 {
	return core.AmplitudeDB(cmplx.Abs(Response(taps, f)))
}

// Response returns the filter response at freqHz for the given sample rate.
func (f *Filter) Response(freqHz, sampleRate float64) complex128 {
	return Response(f.Taps(), freqHz/sampleRate)
}
