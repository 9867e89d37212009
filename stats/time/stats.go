// Package time provides time-domain level statistics for audio blocks.
package time

import (
	"math"

	"github.com/cwbudde/algo-modem/dsp/core"
)

// Level summarizes the amplitude of a signal.
//
//nolint:revive
type Level struct {
	Length         int
	DC             float64
	RMS            float64
	RMS_dB         float64
	Peak           float64
	Peak_dB        float64
	CrestFactor    float64
	CrestFactor_dB float64
}

// Measure computes the level of signal.
func Measure(signal []float64) Level {
	l := Level{
		Length: len(signal),
		DC:     DC(signal),
		RMS:    RMS(signal),
		Peak:   Peak(signal),
	}
	l.RMS_dB = core.AmplitudeDB(l.RMS)
	l.Peak_dB = core.AmplitudeDB(l.Peak)
	l.CrestFactor = CrestFactor(signal)
	l.CrestFactor_dB = core.AmplitudeDB(l.CrestFactor)
	return l
}

// RMS returns the root-mean-square of the signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	var sumSq float64
	for _, x := range signal {
		sumSq += x * x
	}

	return math.Sqrt(sumSq / float64(len(signal)))
}

// DC returns the mean (DC offset) of the signal.
func DC(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}
	// Kahan summation.
	var sum, c float64
	for _, x := range signal {
		y := x - c
		t := sum + y
		c = (t - sum) - y
		sum = t
	}

	return sum / float64(len(signal))
}

// Peak returns the peak absolute amplitude of the signal.
func Peak(signal []float64) float64 {
	var peak float64
	for _, x := range signal {
		peak = math.Max(peak, math.Abs(x))
	}
	return peak
}

// CrestFactor returns the crest factor (peak / RMS) of the signal.
// Returns 0 if RMS is zero.
func CrestFactor(signal []float64) float64 {
	r := RMS(signal)
	if r == 0 {
		return 0
	}

	return Peak(signal) / r
}

// Meter accumulates the RMS of a stream delivered in blocks. Silent blocks
// before the first non-zero sample are not counted, so a stream that starts
// with latency is not under-measured.
type Meter struct {
	sumSq   float64
	n       int64
	started bool
}

// Update adds a block to the running measurement.
func (m *Meter) Update(block []float64) {
	for _, x := range block {
		if !m.started {
			if x == 0 {
				continue
			}
			m.started = true
		}
		m.sumSq += x * x
		m.n++
	}
}

// RMS returns the running RMS, 0 before any signal was seen.
func (m *Meter) RMS() float64 {
	if m.n == 0 {
		return 0
	}
	return math.Sqrt(m.sumSq / float64(m.n))
}

// Reset clears the measurement.
func (m *Meter) Reset() {
	*m = Meter{}
}
