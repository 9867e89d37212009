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

// Point is one decoded constellation sample.
type Point struct {
	I, Q float64
}

// DecodeParameters steer the receiver's sampling instant and carrier phase.
// They are read once per block.
type DecodeParameters struct {
	// Delay shifts the lowpass kernel by a fractional number of samples.
	Delay float64 `yaml:"delay"`
	// PhaseOffset rotates the mixing carrier, in cycles.
	PhaseOffset float64 `yaml:"phase_offset"`
}

// Receiver mixes audio to baseband, matched-filters it and samples one
// point per symbol.
type Receiver struct {
	cfg    Config
	proc   core.ProcessorConfig
	rrc    design.Kernel
	sink   PointSink
	logger *log.Logger

	lpLength int
	lpCutoff float64
	gain     float64

	kernel    design.Kernel
	lastDelay float64

	i, q    *buffer.DualFrame
	carrier *carrier
	scratch []float64
	points  []Point

	readIndex float64
	counter   int64
}

// NewReceiver builds a receiver and its matched filter for zero delay.
func NewReceiver(cfg Config, rrc design.Kernel, opts ...Option) (*Receiver, error) {
	o := applyOptions(opts)
	if err := o.proc.Validate(); err != nil {
		return nil, fmt.Errorf("receiver: %w", err)
	}
	if err := cfg.ValidateFor(o.proc.SampleRate); err != nil {
		return nil, fmt.Errorf("receiver: %w", err)
	}
	b := o.proc.BlockSize
	if len(rrc) == 0 || len(rrc) > b {
		return nil, fmt.Errorf("receiver: %w: %d taps, block %d", ErrKernel, len(rrc), b)
	}

	r := &Receiver{
		cfg:      cfg,
		proc:     o.proc,
		rrc:      rrc.Clone(),
		sink:     o.sink,
		logger:   o.logger,
		lpLength: o.lpLength,
		lpCutoff: o.lpCutoff,
		gain:     o.mixerGain,
		i:        buffer.NewDualFrame(b),
		q:        buffer.NewDualFrame(b),
		carrier:  newCarrier(cfg.CarrierFrequency, o.proc.SampleRate, b),
		scratch:  make([]float64, b),
		points:   make([]Point, 0, int(float64(b)/cfg.SymbolLength)+2),
	}
	if r.lpCutoff == 0 {
		r.lpCutoff = DefaultCutoff(cfg, o.proc.SampleRate)
	}
	if r.gain == 0 {
		r.gain = 2 * cfg.SymbolLength
	}

	k, err := r.buildKernel(0)
	if err != nil {
		return nil, fmt.Errorf("receiver: %w", err)
	}
	r.kernel = k

	r.logger.Debug("receiver ready",
		"carrier", cfg.CarrierFrequency,
		"symbolLength", cfg.SymbolLength,
		"lowpass", r.lpLength,
		"cutoff", r.lpCutoff,
		"gain", r.gain,
		"taps", len(k),
		"block", b,
		"sampleRate", o.proc.SampleRate)
	return r, nil
}

func (r *Receiver) buildKernel(delay float64) (design.Kernel, error) {
	lp, err := design.Lowpass(r.lpLength, r.lpCutoff, delay)
	if err != nil {
		return nil, err
	}
	return design.Combined(lp, r.rrc, r.proc.BlockSize)
}

// ProcessRx consumes one block of audio and returns the points decoded in
// it. A nil block is an idle tick: nothing is decoded and no state moves.
// The returned slice is reused by the next call.
//
// A change of p.Delay rebuilds the matched filter. If the rebuild fails
// the error is returned, the previous filter stays in place and the block
// is not consumed.
func (r *Receiver) ProcessRx(in []float64, p DecodeParameters) ([]Point, error) {
	if p.Delay != r.lastDelay {
		k, err := r.buildKernel(p.Delay)
		if err != nil {
			return nil, fmt.Errorf("receiver: delay %g: %w", p.Delay, err)
		}
		r.kernel = k
		r.lastDelay = p.Delay
		r.logger.Debug("matched filter rebuilt", "delay", p.Delay, "taps", len(k))
	}

	if in == nil {
		return nil, nil
	}
	b := r.proc.BlockSize
	if len(in) != b {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrBlockSize, len(in), b)
	}

	r.carrier.render(r.counter, p.PhaseOffset, r.gain)
	vecmath.MulBlock(r.i.Current(), in, r.carrier.sin)
	vecmath.MulBlock(r.q.Current(), in, r.carrier.cos)

	r.points = r.points[:0]
	k := float64(len(r.kernel))
	for r.readIndex+k < float64(b) {
		offset := int(math.Floor(r.readIndex))
		r.points = append(r.points, Point{
			I: r.i.Dot(offset, r.kernel),
			Q: r.q.Dot(offset, r.kernel),
		})
		r.readIndex += r.cfg.SymbolLength
	}

	r.i.Swap()
	r.q.Swap()
	r.readIndex -= float64(b)
	r.counter += int64(b)

	if r.sink != nil && len(r.points) > 0 {
		r.sink.Post(r.points)
	}
	return r.points, nil
}

// ProcessRx32 is ProcessRx for float32 audio buffers.
func (r *Receiver) ProcessRx32(in []float32, p DecodeParameters) ([]Point, error) {
	if in == nil {
		return r.ProcessRx(nil, p)
	}
	if len(in) != r.proc.BlockSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrBlockSize, len(in), r.proc.BlockSize)
	}
	core.Widen(r.scratch, in)
	return r.ProcessRx(r.scratch, p)
}

// Config returns the modulation config.
func (r *Receiver) Config() Config { return r.cfg }

// Processor returns the sample rate and block size.
func (r *Receiver) Processor() core.ProcessorConfig { return r.proc }

// ReadIndex returns the offset of the next sampling instant relative to
// the upcoming block. It is negative while the filter window reaches back
// into the previous block.
func (r *Receiver) ReadIndex() float64 { return r.readIndex }

// KernelLength returns the current matched filter length.
func (r *Receiver) KernelLength() int { return len(r.kernel) }

// Kernel returns a copy of the current matched filter.
func (r *Receiver) Kernel() design.Kernel { return r.kernel.Clone() }

// Delay returns the delay the current matched filter was built for.
func (r *Receiver) Delay() float64 { return r.lastDelay }

// Cutoff returns the lowpass cutoff in cycles per sample.
func (r *Receiver) Cutoff() float64 { return r.lpCutoff }

// Gain returns the down-conversion gain.
func (r *Receiver) Gain() float64 { return r.gain }

// SamplesProcessed returns the number of audio samples consumed so far.
func (r *Receiver) SamplesProcessed() int64 { return r.counter }
