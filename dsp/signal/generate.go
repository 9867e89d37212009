// Package signal generates deterministic test and impairment signals.
package signal

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-modem/dsp/core"
)

var (
	ErrSamples   = errors.New("signal: sample count must be positive")
	ErrAmplitude = errors.New("signal: amplitude must not be negative")
)

// Generator renders test signals at a fixed sample rate. Noise drawn from
// one Generator repeats across calls.
type Generator struct {
	sampleRate float64
	seed       int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the noise seed. The default is 1.
func WithSeed(seed int64) Option {
	return func(g *Generator) { g.seed = seed }
}

// NewGenerator returns a Generator for the sample rate the processor
// options describe.
func NewGenerator(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		sampleRate: core.ApplyProcessorOptions(coreOpts...).SampleRate,
		seed:       1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// SampleRate returns the rate signals are rendered at.
func (g *Generator) SampleRate() float64 { return g.sampleRate }

// Sine returns samples of amplitude*sin(2*pi*freqHz*t) starting at t=0.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrSamples, samples)
	}

	cycles := freqHz / g.sampleRate
	out := make([]float64, samples)
	for i := range out {
		// Argument stays within (-pi, pi].
		out[i] = amplitude * math.Sin(2*math.Pi*core.WrapCycles(cycles*float64(i)))
	}
	return out, nil
}

// WhiteNoise returns uniform noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	switch {
	case samples <= 0:
		return nil, fmt.Errorf("%w: %d", ErrSamples, samples)
	case amplitude < 0:
		return nil, fmt.Errorf("%w: %g", ErrAmplitude, amplitude)
	}

	out := make([]float64, samples)
	NewNoise(g.seed).Add(out, amplitude)
	return out, nil
}

// Noise is a streaming uniform white noise source. Consecutive calls
// continue one sequence, so block-wise use matches a single long draw.
type Noise struct {
	rng *rand.Rand
}

// NewNoise returns a noise source with the given seed.
func NewNoise(seed int64) *Noise {
	return &Noise{rng: rand.New(rand.NewSource(seed))}
}

// Add adds noise in [-amplitude, amplitude] to dst.
func (n *Noise) Add(dst []float64, amplitude float64) {
	for i := range dst {
		dst[i] += amplitude * (2*n.rng.Float64() - 1)
	}
}

// UniformAmplitude returns the peak amplitude of uniform noise with the
// given RMS.
func UniformAmplitude(rms float64) float64 {
	return math.Sqrt(3) * rms
}
