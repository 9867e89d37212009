// Package webmodem wraps a transmitter and a receiver for the browser
// demo: one audio worklet renders transmit blocks, another feeds captured
// blocks back, and the UI drains decoded points for plotting.
package webmodem

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/cwbudde/algo-modem/dsp/core"
	"github.com/cwbudde/algo-modem/dsp/modem"
	stime "github.com/cwbudde/algo-modem/stats/time"
)

// sinkDepth bounds the batches buffered between UI frames.
const sinkDepth = 64

// Engine runs both ends of the link at the browser sample rate.
type Engine struct {
	sampleRate float64
	blockSize  int
	cfg        modem.Config

	tx     *modem.Transmitter
	rx     *modem.Receiver
	sink   *modem.ChanSink
	params modem.DecodeParameters

	level stime.Meter
	txBuf []float64
	rxBuf []float64
}

// NewEngine builds an engine. The decode parameters start at the nominal
// values for a direct loopback.
func NewEngine(sampleRate float64, blockSize int, cfg modem.Config, logger *log.Logger) (*Engine, error) {
	if err := cfg.ValidateFor(sampleRate); err != nil {
		return nil, err
	}
	if blockSize <= 0 {
		return nil, fmt.Errorf("webmodem: block size must be > 0: %d", blockSize)
	}
	rrc, err := cfg.RRC()
	if err != nil {
		return nil, fmt.Errorf("webmodem: %w", err)
	}

	sink := modem.NewChanSink(sinkDepth)
	opts := []modem.Option{
		modem.WithProcessor(core.WithSampleRate(sampleRate), core.WithBlockSize(blockSize)),
		modem.WithLogger(logger),
		modem.WithSink(sink),
	}
	tx, err := modem.NewTransmitter(cfg, rrc, opts...)
	if err != nil {
		return nil, fmt.Errorf("webmodem: %w", err)
	}
	rx, err := modem.NewReceiver(cfg, rrc, opts...)
	if err != nil {
		return nil, fmt.Errorf("webmodem: %w", err)
	}
	return &Engine{
		sampleRate: sampleRate,
		blockSize:  blockSize,
		cfg:        cfg,
		tx:         tx,
		rx:         rx,
		sink:       sink,
		params:     modem.NominalParameters(cfg, blockSize, modem.DefaultLowpassLength, sampleRate, 0),
		txBuf:      make([]float64, blockSize),
		rxBuf:      make([]float64, blockSize),
	}, nil
}

// Render fills dst with one transmit block.
func (e *Engine) Render(dst []float32) error {
	if len(dst) != e.blockSize {
		return fmt.Errorf("webmodem: render %d samples, block is %d: %w", len(dst), e.blockSize, modem.ErrBlockSize)
	}
	if err := e.tx.ProcessTx(e.txBuf); err != nil {
		return err
	}
	core.Narrow(dst, e.txBuf)
	return nil
}

// Receive decodes one captured block. Points go to the sink and are
// collected by Points.
func (e *Engine) Receive(src []float32) error {
	if len(src) != e.blockSize {
		return fmt.Errorf("webmodem: receive %d samples, block is %d: %w", len(src), e.blockSize, modem.ErrBlockSize)
	}
	core.Widen(e.rxBuf, src)
	e.level.Update(e.rxBuf)
	_, err := e.rx.ProcessRx(e.rxBuf, e.params)
	return err
}

// Points drains every buffered batch as interleaved I,Q values.
func (e *Engine) Points() []float64 {
	var out []float64
	for {
		select {
		case b, ok := <-e.sink.Batches():
			if !ok {
				return out
			}
			out = append(out, b.Flat()...)
			b.Release()
		default:
			return out
		}
	}
}

// Dropped returns the number of batches lost because the UI fell behind.
func (e *Engine) Dropped() uint64 { return e.sink.Dropped() }

// SetDelay sets the receiver timing offset in samples.
func (e *Engine) SetDelay(d float64) { e.params.Delay = d }

// SetPhaseOffset sets the carrier phase correction in cycles.
func (e *Engine) SetPhaseOffset(p float64) { e.params.PhaseOffset = p }

// Params returns the current decode parameters.
func (e *Engine) Params() modem.DecodeParameters { return e.params }

// InputLevel returns the RMS of the audio received since the previous
// call, ignoring leading silence.
func (e *Engine) InputLevel() float64 {
	r := e.level.RMS()
	e.level.Reset()
	return r
}

// Config returns the modulation parameters.
func (e *Engine) Config() modem.Config { return e.cfg }
