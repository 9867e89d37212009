package spectrum

import (
	"fmt"
	"math"
)

// Goertzel evaluates one DFT bin over all samples processed since the last
// Reset. It is used to probe for a carrier without a full FFT.
//
// Leakage applies as for the DFT: the tone should complete a whole number
// of cycles over the analyzed span, or the span should be long.
type Goertzel struct {
	frequency  float64
	sampleRate float64
	coeff      float64
	s0, s1     float64
	n          int
}

// NewGoertzel returns a probe for frequency, which must lie in
// [0, sampleRate/2].
func NewGoertzel(frequency, sampleRate float64) (*Goertzel, error) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("goertzel: sample rate must be > 0: %v", sampleRate)
	}
	if !(frequency >= 0 && frequency <= sampleRate/2) {
		return nil, fmt.Errorf("goertzel: frequency must be between 0 and sampleRate/2: %v", frequency)
	}

	return &Goertzel{
		frequency:  frequency,
		sampleRate: sampleRate,
		coeff:      2 * math.Cos(2*math.Pi*frequency/sampleRate),
	}, nil
}

// Reset clears the accumulated state.
func (g *Goertzel) Reset() {
	g.s0, g.s1, g.n = 0, 0, 0
}

// ProcessBlock feeds a block of samples.
func (g *Goertzel) ProcessBlock(input []float64) {
	s0, s1 := g.s0, g.s1
	coeff := g.coeff
	for _, x := range input {
		s := x + coeff*s0 - s1
		s1 = s0
		s0 = s
	}
	g.s0, g.s1 = s0, s1
	g.n += len(input)
}

// Power returns |X[k]|^2 for the samples seen so far.
func (g *Goertzel) Power() float64 {
	return g.s0*g.s0 + g.s1*g.s1 - g.coeff*g.s0*g.s1
}

// Magnitude returns |X[k]|.
func (g *Goertzel) Magnitude() float64 {
	p := g.Power()
	if p <= 0 {
		return 0
	}
	return math.Sqrt(p)
}

// Amplitude estimates the peak amplitude of a sine at the probe frequency:
// 2|X[k]|/N. It returns 0 before any sample was processed.
func (g *Goertzel) Amplitude() float64 {
	if g.n == 0 {
		return 0
	}
	return 2 * g.Magnitude() / float64(g.n)
}

// Samples returns the number of samples processed since Reset.
func (g *Goertzel) Samples() int { return g.n }

// Frequency returns the probe frequency in Hz.
func (g *Goertzel) Frequency() float64 { return g.frequency }

// ToneAmplitudes estimates the sine amplitude of x at each frequency.
func ToneAmplitudes(x []float64, sampleRate float64, freqs ...float64) ([]float64, error) {
	out := make([]float64, len(freqs))
	for i, f := range freqs {
		g, err := NewGoertzel(f, sampleRate)
		if err != nil {
			return nil, err
		}
		g.ProcessBlock(x)
		out[i] = g.Amplitude()
	}
	return out, nil
}
