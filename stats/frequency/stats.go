// Package frequency computes shape statistics of one-sided power spectra.
//
// A spectrum here is a slice of non-negative power values for bins 0 (DC)
// through Nyquist, so an FFT of size N gives N/2+1 values and bin i sits at
//
//	f_i = i * sampleRate / (2 * (len(psd) - 1))
package frequency

import "math"

// Shape describes where and how widely power is spread.
type Shape struct {
	Centroid float64 // power-weighted mean frequency (Hz)
	Spread   float64 // power-weighted standard deviation around Centroid (Hz)
	Flatness float64 // geometric over arithmetic mean, 0..1, DC excluded

	// Occupied band holding the requested fraction of the power, with the
	// remainder split evenly below and above.
	OccupiedLow       float64
	OccupiedHigh      float64
	OccupiedBandwidth float64
}

func binFreq(i int, sampleRate float64, binCount int) float64 {
	return float64(i) * sampleRate / float64(2*(binCount-1))
}

// Describe computes all statistics. fraction is the occupied-band power
// fraction, typically 0.99.
func Describe(psd []float64, sampleRate, fraction float64) Shape {
	var s Shape
	s.Centroid = Centroid(psd, sampleRate)
	s.Spread = spread(psd, sampleRate, s.Centroid)
	s.Flatness = Flatness(psd)
	s.OccupiedLow, s.OccupiedHigh = Occupied(psd, sampleRate, fraction)
	s.OccupiedBandwidth = s.OccupiedHigh - s.OccupiedLow
	return s
}

func total(psd []float64) float64 {
	var sum float64
	for _, p := range psd {
		sum += p
	}
	return sum
}

// Centroid returns the power-weighted mean frequency in Hz.
func Centroid(psd []float64, sampleRate float64) float64 {
	n := len(psd)
	sum := total(psd)
	if n < 2 || sum == 0 {
		return 0
	}
	var weighted float64
	for i, p := range psd {
		weighted += binFreq(i, sampleRate, n) * p
	}
	return weighted / sum
}

func spread(psd []float64, sampleRate, centroid float64) float64 {
	n := len(psd)
	sum := total(psd)
	if n < 2 || sum == 0 {
		return 0
	}
	var weighted float64
	for i, p := range psd {
		d := binFreq(i, sampleRate, n) - centroid
		weighted += d * d * p
	}
	return math.Sqrt(weighted / sum)
}

// Flatness returns the spectral flatness of bins 1..N. Any zero bin makes
// the geometric mean, and so the result, zero.
func Flatness(psd []float64) float64 {
	n := len(psd)
	if n < 2 {
		return 0
	}
	var sumLin, sumLog float64
	for _, p := range psd[1:] {
		if p <= 0 {
			return 0
		}
		sumLin += p
		sumLog += math.Log(p)
	}
	bins := float64(n - 1)
	return math.Exp(sumLog/bins) / (sumLin / bins)
}

// Occupied returns the band edges in Hz between which fraction of the
// total power lies, leaving (1-fraction)/2 below and above. Edges are
// interpolated linearly within a bin.
func Occupied(psd []float64, sampleRate, fraction float64) (low, high float64) {
	n := len(psd)
	sum := total(psd)
	if n < 2 || sum == 0 || !(fraction > 0 && fraction <= 1) {
		return 0, 0
	}
	tail := (1 - fraction) / 2 * sum
	return edge(psd, sampleRate, tail, false), edge(psd, sampleRate, sum-tail, true)
}

// edge finds where the cumulative power crosses level. Bin i is taken to
// cover [f_i - df/2, f_i + df/2].
func edge(psd []float64, sampleRate, level float64, upper bool) float64 {
	n := len(psd)
	df := binFreq(1, sampleRate, n)
	var cum float64
	for i, p := range psd {
		if p > 0 && cum+p >= level {
			t := (level - cum) / p
			return math.Max(0, binFreq(i, sampleRate, n)-df/2+t*df)
		}
		cum += p
	}
	if upper {
		return binFreq(n-1, sampleRate, n)
	}
	return 0
}
