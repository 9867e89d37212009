// Package channel simulates the acoustic path between a transmitter and a
// receiver: gain, bulk delay, spectral colouring and additive noise.
//
// Blocks run through the stages in that order:
//
//	gain -> response FIR -> delay -> noise
package channel

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-modem/dsp/core"
	"github.com/cwbudde/algo-modem/dsp/delay"
	"github.com/cwbudde/algo-modem/dsp/filter/design"
	"github.com/cwbudde/algo-modem/dsp/filter/fir"
	"github.com/cwbudde/algo-modem/dsp/interp"
	"github.com/cwbudde/algo-modem/dsp/signal"
	stime "github.com/cwbudde/algo-modem/stats/time"
)

// ErrInvalidParameter reports an unusable channel setting.
var ErrInvalidParameter = errors.New("channel: invalid parameter")

// FractionalTaps is the length of the windowed-sinc fractional delay
// filter. It adds FractionalTaps/2 samples of latency.
const FractionalTaps = 32

// Channel is a single-owner block processor.
type Channel struct {
	sampleRate float64
	gain       float64

	delay     float64
	line      *delay.Line
	whole     int
	frac      *fir.Filter
	interp    interp.Mode
	useInterp bool
	latency   float64

	response *fir.Filter

	noise    *signal.Noise
	noiseAmp float64
	snr      float64
	useSNR   bool
	seed     int64
	meter    stime.Meter

	scratch []float64
}

// Option configures a Channel.
type Option func(*Channel)

// WithGain scales the signal linearly.
func WithGain(g float64) Option {
	return func(c *Channel) { c.gain = g }
}

// WithDelay delays the signal by a possibly fractional number of samples.
// Fractional parts use a windowed-sinc filter unless WithInterpolation is
// given.
func WithDelay(samples float64) Option {
	return func(c *Channel) { c.delay = samples }
}

// WithInterpolation replaces the sinc fractional delay with a cheap
// four-point kernel read from the delay line. Accuracy drops towards
// Nyquist.
func WithInterpolation(m interp.Mode) Option {
	return func(c *Channel) {
		c.interp = m
		c.useInterp = true
	}
}

// WithResponse colours the signal with an FIR impulse response.
func WithResponse(taps []float64) Option {
	return func(c *Channel) {
		if len(taps) > 0 {
			c.response = fir.New(taps)
		}
	}
}

// WithNoise adds uniform white noise in [-amplitude, amplitude].
func WithNoise(amplitude float64, seed int64) Option {
	return func(c *Channel) {
		c.noiseAmp = amplitude
		c.seed = seed
	}
}

// WithSNR adds uniform white noise at snrDB below the running signal RMS.
// It overrides WithNoise's amplitude but keeps its seed.
func WithSNR(snrDB float64) Option {
	return func(c *Channel) {
		c.snr = snrDB
		c.useSNR = true
	}
}

// New builds a channel for the given sample rate.
func New(sampleRate float64, opts ...Option) (*Channel, error) {
	c := &Channel{sampleRate: sampleRate, gain: 1, seed: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	switch {
	case !(sampleRate > 0) || math.IsInf(sampleRate, 0):
		return nil, fmt.Errorf("%w: sample rate %g", ErrInvalidParameter, sampleRate)
	case math.IsNaN(c.gain) || math.IsInf(c.gain, 0):
		return nil, fmt.Errorf("%w: gain %g", ErrInvalidParameter, c.gain)
	case !(c.delay >= 0) || math.IsInf(c.delay, 0):
		return nil, fmt.Errorf("%w: delay %g", ErrInvalidParameter, c.delay)
	case !(c.noiseAmp >= 0) || math.IsInf(c.noiseAmp, 0):
		return nil, fmt.Errorf("%w: noise amplitude %g", ErrInvalidParameter, c.noiseAmp)
	case c.useSNR && (math.IsNaN(c.snr) || math.IsInf(c.snr, -1)):
		return nil, fmt.Errorf("%w: snr %g dB", ErrInvalidParameter, c.snr)
	}

	if err := c.buildDelay(); err != nil {
		return nil, err
	}
	if c.noiseAmp > 0 || c.useSNR {
		c.noise = signal.NewNoise(c.seed)
	}
	return c, nil
}

func (c *Channel) buildDelay() error {
	whole := math.Floor(c.delay)
	frac := c.delay - whole
	c.whole = int(whole)
	c.latency = c.delay

	line, err := delay.New(c.whole+4, delay.WithMode(c.interp))
	if err != nil {
		return fmt.Errorf("channel: %w", err)
	}
	c.line = line

	if frac == 0 || c.useInterp {
		return nil
	}
	k, err := design.Lowpass(FractionalTaps, 0.5, frac)
	if err != nil {
		return fmt.Errorf("channel: fractional delay: %w", err)
	}
	c.frac = fir.New(k)
	c.latency += FractionalTaps / 2
	return nil
}

// Process runs one block through the channel in place.
func (c *Channel) Process(block []float64) {
	for i, x := range block {
		x *= c.gain
		if c.response != nil {
			x = c.response.ProcessSample(x)
		}
		c.line.Write(x)
		if c.useInterp {
			x = c.line.ReadFractional(c.delay)
		} else {
			x = c.line.Read(c.whole)
		}
		if c.frac != nil {
			x = c.frac.ProcessSample(x)
		}
		block[i] = x
	}

	if c.noise == nil {
		return
	}
	amp := c.noiseAmp
	if c.useSNR {
		c.meter.Update(block)
		amp = signal.UniformAmplitude(c.meter.RMS() * core.DBToLinear(-c.snr))
	}
	if amp > 0 {
		c.noise.Add(block, amp)
	}
}

// Process32 is Process for float32 audio.
func (c *Channel) Process32(block []float32) {
	if cap(c.scratch) < len(block) {
		c.scratch = make([]float64, len(block))
	}
	tmp := c.scratch[:len(block)]
	core.Widen(tmp, block)
	c.Process(tmp)
	core.Narrow(block, tmp)
}

// Latency returns the delay the channel adds in samples, including the
// group delay of the fractional delay filter. The response FIR is not
// included.
func (c *Channel) Latency() float64 { return c.latency }

// SampleRate returns the configured sample rate.
func (c *Channel) SampleRate() float64 { return c.sampleRate }

// Reset clears all filter and delay state. The noise sequence continues.
func (c *Channel) Reset() {
	c.line.Reset()
	if c.frac != nil {
		c.frac.Reset()
	}
	if c.response != nil {
		c.response.Reset()
	}
	c.meter.Reset()
}
