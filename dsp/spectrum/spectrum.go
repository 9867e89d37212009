package spectrum

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Magnitude returns |X[k]| for each bin.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}
	re, im := split(in)
	out := make([]float64, len(in))
	vecmath.Magnitude(out, re, im)
	return out
}

// Power returns |X[k]|^2 for each bin.
func Power(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}
	re, im := split(in)
	out := make([]float64, len(in))
	vecmath.Power(out, re, im)
	return out
}

// PowerAverager averages |X[k]|^2 over successive spectra, as in a
// Welch estimate. Only the first n bins of each spectrum are used.
type PowerAverager struct {
	re, im, pow []float64
	sum         []float64
	frames      int
}

// NewPowerAverager returns an averager over n bins.
func NewPowerAverager(n int) *PowerAverager {
	return &PowerAverager{
		re:  make([]float64, n),
		im:  make([]float64, n),
		pow: make([]float64, n),
		sum: make([]float64, n),
	}
}

// Add accumulates one spectrum. bins must hold at least n values.
func (a *PowerAverager) Add(bins []complex128) {
	for k := range a.re {
		a.re[k], a.im[k] = real(bins[k]), imag(bins[k])
	}
	vecmath.Power(a.pow, a.re, a.im)
	for k, p := range a.pow {
		a.sum[k] += p
	}
	a.frames++
}

// Frames returns the number of spectra added.
func (a *PowerAverager) Frames() int { return a.frames }

// Mean returns the averaged power per bin, or nil before any Add.
func (a *PowerAverager) Mean() []float64 {
	if a.frames == 0 {
		return nil
	}
	out := make([]float64, len(a.sum))
	for k, s := range a.sum {
		out[k] = s / float64(a.frames)
	}
	return out
}

// PowerDB converts power to dB with a floor at -300 dB.
func PowerDB(p float64) float64 {
	if p <= 1e-30 {
		return -300
	}
	return 10 * math.Log10(p)
}

func split(in []complex128) (re, im []float64) {
	re = make([]float64, len(in))
	im = make([]float64, len(in))
	for i, c := range in {
		re[i], im[i] = real(c), imag(c)
	}
	return re, im
}
