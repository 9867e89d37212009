// Package occupancy measures how the power of an audio signal is spread
// over frequency, using a Welch average of Hann-windowed FFT frames.
package occupancy

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-modem/dsp/spectrum"
	"github.com/cwbudde/algo-modem/dsp/window"
	"github.com/cwbudde/algo-modem/stats/frequency"
)

// OccupiedFraction is the power fraction used for Result.Shape's
// occupied band.
const OccupiedFraction = 0.99

var (
	ErrFFTSize    = errors.New("occupancy: fft size must be a power of two >= 16")
	ErrTooShort   = errors.New("occupancy: signal shorter than one frame")
	ErrSampleRate = errors.New("occupancy: invalid sample rate")
	ErrBand       = errors.New("occupancy: invalid band")
)

// Config selects the analysis resolution and the band of interest.
type Config struct {
	FFTSize int
	LowHz   float64
	HighHz  float64
}

// Result holds a one-sided power spectrum and band statistics.
type Result struct {
	Frames   int
	BinWidth float64
	// PSD is the averaged one-sided power per bin, 0..FFTSize/2.
	PSD            []float64
	TotalPower     float64
	InBandPower    float64
	InBandFraction float64
	PeakFrequency  float64
	PeakDB         float64
	Shape          frequency.Shape
}

// Analyze averages 50%-overlapping frames of samples.
func Analyze(samples []float64, sampleRate float64, cfg Config) (Result, error) {
	n := cfg.FFTSize
	switch {
	case n < 16 || n&(n-1) != 0:
		return Result{}, fmt.Errorf("%w: %d", ErrFFTSize, n)
	case !(sampleRate > 0) || math.IsInf(sampleRate, 0):
		return Result{}, fmt.Errorf("%w: %g", ErrSampleRate, sampleRate)
	case !(cfg.LowHz >= 0 && cfg.LowHz <= cfg.HighHz):
		return Result{}, fmt.Errorf("%w: [%g, %g] Hz", ErrBand, cfg.LowHz, cfg.HighHz)
	case len(samples) < n:
		return Result{}, fmt.Errorf("%w: %d < %d", ErrTooShort, len(samples), n)
	}

	win, err := window.Hann(n, window.WithPeriodic())
	if err != nil {
		return Result{}, fmt.Errorf("occupancy: %w", err)
	}
	gain, err := window.PowerGain(win)
	if err != nil {
		return Result{}, fmt.Errorf("occupancy: %w", err)
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return Result{}, fmt.Errorf("occupancy: fft plan: %w", err)
	}

	bins := n/2 + 1
	avg := spectrum.NewPowerAverager(bins)
	in := make([]complex128, n)
	out := make([]complex128, n)
	for start := 0; start+n <= len(samples); start += n / 2 {
		for i, w := range win {
			in[i] = complex(samples[start+i]*w, 0)
		}
		if err := plan.Forward(out, in); err != nil {
			return Result{}, fmt.Errorf("occupancy: fft: %w", err)
		}
		avg.Add(out)
	}

	psd := avg.Mean()
	scale := 1 / (float64(n) * float64(n) * gain)
	for k := range psd {
		psd[k] *= scale
		if k > 0 && k < n/2 {
			psd[k] *= 2
		}
	}

	res := Result{
		Frames:   avg.Frames(),
		BinWidth: sampleRate / float64(n),
		PSD:      psd,
	}
	peak := 0
	for k, p := range psd {
		res.TotalPower += p
		f := float64(k) * res.BinWidth
		if f >= cfg.LowHz && f <= cfg.HighHz {
			res.InBandPower += p
		}
		if p > psd[peak] {
			peak = k
		}
	}
	if res.TotalPower > 0 {
		res.InBandFraction = res.InBandPower / res.TotalPower
	}
	res.PeakFrequency = float64(peak) * res.BinWidth
	res.PeakDB = spectrum.PowerDB(psd[peak])
	res.Shape = frequency.Describe(psd, sampleRate, OccupiedFraction)
	return res, nil
}
