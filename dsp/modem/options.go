package modem

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/cwbudde/algo-modem/dsp/core"
)

// DefaultLowpassLength is the receiver's anti-image lowpass length.
const DefaultLowpassLength = 40

// Option configures a Transmitter or a Receiver. Options that do not apply
// to an engine are ignored by it.
type Option func(*options)

type options struct {
	proc       core.ProcessorConfig
	source     SymbolSource
	logger     *log.Logger
	sink       PointSink
	lpLength   int
	lpCutoff   float64 // 0 selects DefaultCutoff
	mixerGain  float64 // 0 selects 2*SymbolLength
	sourceSeed int64
}

func applyOptions(opts []Option) options {
	o := options{
		proc:       core.ApplyProcessorOptions(),
		lpLength:   DefaultLowpassLength,
		sourceSeed: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}
	return o
}

// WithProcessor sets the sample rate and block size.
func WithProcessor(opts ...core.ProcessorOption) Option {
	return func(o *options) {
		o.proc = core.ApplyProcessorOptions(opts...)
	}
}

// WithSource sets the transmitter's symbol source.
func WithSource(src SymbolSource) Option {
	return func(o *options) {
		o.source = src
	}
}

// WithSeed seeds the default random symbol source.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.sourceSeed = seed
	}
}

// WithLogger sets the logger used for construction and kernel rebuilds.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithSink sets the receiver's point sink.
func WithSink(s PointSink) Option {
	return func(o *options) {
		o.sink = s
	}
}

// WithLowpass sets the receiver's lowpass length and cutoff in cycles per
// sample. A zero cutoff selects DefaultCutoff.
func WithLowpass(length int, cutoff float64) Option {
	return func(o *options) {
		o.lpLength = length
		o.lpCutoff = cutoff
	}
}

// WithMixerGain overrides the receiver's down-conversion gain.
func WithMixerGain(g float64) Option {
	return func(o *options) {
		o.mixerGain = g
	}
}
