package modem

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-modem/dsp/buffer"
	"github.com/cwbudde/algo-modem/dsp/core"
	"github.com/cwbudde/algo-modem/dsp/filter/design"
)

// Transmitter pulse-shapes symbols and modulates them onto the carrier.
type Transmitter struct {
	cfg    Config
	proc   core.ProcessorConfig
	rrc    design.Kernel
	source SymbolSource
	logger *log.Logger

	i, q    *buffer.DualFrame
	carrier *carrier
	tmpI    []float64
	tmpQ    []float64
	scratch []float64

	writeIndex float64
	counter    int64
	symbols    int64
}

// NewTransmitter builds a transmitter. rrc is copied; it must hold at most
// one block of taps so that a pulse spills into the next frame only.
func NewTransmitter(cfg Config, rrc design.Kernel, opts ...Option) (*Transmitter, error) {
	o := applyOptions(opts)
	if err := o.proc.Validate(); err != nil {
		return nil, fmt.Errorf("transmitter: %w", err)
	}
	if err := cfg.ValidateFor(o.proc.SampleRate); err != nil {
		return nil, fmt.Errorf("transmitter: %w", err)
	}
	b := o.proc.BlockSize
	if len(rrc) == 0 || len(rrc) > b {
		return nil, fmt.Errorf("transmitter: %w: %d taps, block %d", ErrKernel, len(rrc), b)
	}

	src := o.source
	if src == nil {
		src = NewRandomSource(cfg.ConstellationSize, o.sourceSeed)
	}

	t := &Transmitter{
		cfg:     cfg,
		proc:    o.proc,
		rrc:     rrc.Clone(),
		source:  src,
		logger:  o.logger,
		i:       buffer.NewDualFrame(b),
		q:       buffer.NewDualFrame(b),
		carrier: newCarrier(cfg.CarrierFrequency, o.proc.SampleRate, b),
		tmpI:    make([]float64, b),
		tmpQ:    make([]float64, b),
		scratch: make([]float64, b),
	}
	t.logger.Debug("transmitter ready",
		"carrier", cfg.CarrierFrequency,
		"symbolLength", cfg.SymbolLength,
		"levels", cfg.ConstellationSize,
		"taps", len(rrc),
		"block", b,
		"sampleRate", o.proc.SampleRate)
	return t, nil
}

// ProcessTx renders exactly one block of audio into out.
func (t *Transmitter) ProcessTx(out []float64) error {
	b := t.proc.BlockSize
	if len(out) != b {
		return fmt.Errorf("%w: got %d, want %d", ErrBlockSize, len(out), b)
	}

	// Modulate the frame filled during the previous call.
	t.carrier.render(t.counter, 0, 1)
	vecmath.MulBlock(t.tmpI, t.carrier.sin, t.i.Current())
	vecmath.MulBlock(t.tmpQ, t.carrier.cos, t.q.Current())
	for n := range out {
		out[n] = t.tmpI[n] + t.tmpQ[n]
	}

	t.i.SwapAndClear()
	t.q.SwapAndClear()

	for t.writeIndex < float64(b) {
		sym := t.source.Next()
		offset := int(math.Floor(t.writeIndex))
		t.i.Accumulate(offset, t.rrc, sym.I)
		t.q.Accumulate(offset, t.rrc, sym.Q)
		t.writeIndex += t.cfg.SymbolLength
		t.symbols++
	}

	t.writeIndex -= float64(b)
	t.counter += int64(b)
	return nil
}

// ProcessTx32 is ProcessTx for float32 audio buffers.
func (t *Transmitter) ProcessTx32(out []float32) error {
	if len(out) != t.proc.BlockSize {
		return fmt.Errorf("%w: got %d, want %d", ErrBlockSize, len(out), t.proc.BlockSize)
	}
	if err := t.ProcessTx(t.scratch); err != nil {
		return err
	}
	core.Narrow(out, t.scratch)
	return nil
}

// Config returns the modulation config.
func (t *Transmitter) Config() Config { return t.cfg }

// Processor returns the sample rate and block size.
func (t *Transmitter) Processor() core.ProcessorConfig { return t.proc }

// WriteIndex returns the offset of the next symbol into the upcoming frame.
func (t *Transmitter) WriteIndex() float64 { return t.writeIndex }

// SamplesProcessed returns the number of audio samples rendered so far.
func (t *Transmitter) SamplesProcessed() int64 { return t.counter }

// SymbolsSent returns the number of symbols drawn from the source.
func (t *Transmitter) SymbolsSent() int64 { return t.symbols }

// Latency returns the delay in samples from a symbol's placement to the
// peak of its pulse in the emitted audio.
func (t *Transmitter) Latency() int {
	return t.proc.BlockSize + len(t.rrc)/2
}
