package main

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/charmbracelet/log"

	"github.com/cwbudde/algo-modem/dsp/modem"
	"github.com/cwbudde/algo-modem/dsp/spectrum"
	"github.com/cwbudde/algo-modem/internal/linkconfig"
	"github.com/cwbudde/algo-modem/measure/constellation"
	"github.com/cwbudde/algo-modem/measure/occupancy"
	stime "github.com/cwbudde/algo-modem/stats/time"
)

const occupancyFFTSize = 1024

type blockWriter interface {
	WriteBlock(block []float64) error
}

type report struct {
	cfg       modem.Config
	params    modem.DecodeParameters
	latency   float64
	blocks    int
	sent      int
	points    int
	lag       int
	quality   constellation.Result
	occupancy occupancy.Result
	band      [2]float64
	level     stime.Level
	residual  float64
}

// simulate runs the link and analyzes what came out. dump, when non-nil,
// receives every transmitted block before the channel.
func simulate(link linkconfig.Link, logger *log.Logger, dump blockWriter) (*report, error) {
	cfg := link.Modulation
	fs := link.Processor.SampleRate
	bs := link.Processor.BlockSize

	rrc, err := cfg.RRC()
	if err != nil {
		return nil, err
	}
	src := modem.NewRecordingSource(modem.NewRandomSource(cfg.ConstellationSize, link.Run.Seed))
	opts := append(link.ModemOptions(), modem.WithLogger(logger))
	tx, err := modem.NewTransmitter(cfg, rrc, append(opts, modem.WithSource(src))...)
	if err != nil {
		return nil, err
	}
	rx, err := modem.NewReceiver(cfg, rrc, opts...)
	if err != nil {
		return nil, err
	}
	ch, err := link.NewChannel()
	if err != nil {
		return nil, err
	}
	params := link.DecodeParameters(ch.Latency())
	logger.Info("link ready",
		"carrier", cfg.CarrierFrequency, "sps", cfg.SymbolLength, "levels", cfg.ConstellationSize,
		"latency", ch.Latency(), "delay", params.Delay, "phase", params.PhaseOffset)

	audio := make([]float64, 0, link.Run.Blocks*bs)
	var points []modem.Point
	block := make([]float64, bs)
	for range link.Run.Blocks {
		if err := tx.ProcessTx(block); err != nil {
			return nil, err
		}
		audio = append(audio, block...)
		if dump != nil {
			if err := dump.WriteBlock(block); err != nil {
				return nil, err
			}
		}
		ch.Process(block)
		pts, err := rx.ProcessRx(block, params)
		if err != nil {
			return nil, err
		}
		points = append(points, pts...)
	}

	rep := &report{
		cfg:     cfg,
		params:  params,
		latency: ch.Latency(),
		blocks:  link.Run.Blocks,
		sent:    len(src.Sent()),
		points:  len(points),
	}

	maxLag := int(math.Ceil((2*float64(bs) + ch.Latency()) / cfg.SymbolLength))
	rep.lag, _ = constellation.BestLag(points, src.Sent(), maxLag, link.Run.Skip)
	rep.quality, err = constellation.Analyze(points, constellation.Config{
		Levels:    cfg.Levels(),
		Reference: src.Sent(),
		Lag:       rep.lag,
		Skip:      link.Run.Skip,
	})
	if err != nil {
		return nil, err
	}

	// The first block is silent while the transmitter fills its pipeline.
	steady := audio[min(bs, len(audio)):]
	half := cfg.SymbolRate(fs) * (1 + cfg.RollOff) / 2
	rep.band = [2]float64{math.Max(0, cfg.CarrierFrequency-half), math.Min(fs/2, cfg.CarrierFrequency+half)}
	rep.level = stime.Measure(steady)
	if len(steady) >= occupancyFFTSize {
		rep.occupancy, err = occupancy.Analyze(steady, fs, occupancy.Config{
			FFTSize: occupancyFFTSize,
			LowHz:   rep.band[0],
			HighHz:  rep.band[1],
		})
		if err != nil {
			return nil, err
		}
	}
	amps, err := spectrum.ToneAmplitudes(steady, fs, cfg.CarrierFrequency)
	if err != nil {
		return nil, err
	}
	rep.residual = amps[0]

	logger.Debug("analysis done", "points", rep.points, "lag", rep.lag, "evm", rep.quality.EVM)
	return rep, nil
}

func (r *report) print(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "blocks\t%d\n", r.blocks)
	fmt.Fprintf(tw, "symbols sent\t%d\n", r.sent)
	fmt.Fprintf(tw, "points received\t%d\n", r.points)
	fmt.Fprintf(tw, "channel latency\t%.2f samples\n", r.latency)
	fmt.Fprintf(tw, "decode delay\t%.3f samples\n", r.params.Delay)
	fmt.Fprintf(tw, "decode phase\t%.4f cycles\n", r.params.PhaseOffset)
	fmt.Fprintf(tw, "lag\t%d symbols\n", r.lag)
	fmt.Fprintf(tw, "analyzed\t%d points\n", r.quality.Count)
	fmt.Fprintf(tw, "EVM\t%.2f %% (%.1f dB)\n", r.quality.EVM, r.quality.EVMdB)
	fmt.Fprintf(tw, "deviation\tmean %.4f, max %.4f\n", r.quality.MeanDeviation, r.quality.MaxDeviation)
	fmt.Fprintf(tw, "mean I/Q\t%.4f / %.4f\n", r.quality.MeanI, r.quality.MeanQ)
	fmt.Fprintf(tw, "symbol errors\t%d\n", r.quality.SymbolErrors)
	fmt.Fprintf(tw, "tx level\trms %.1f dBFS, peak %.1f dBFS, crest %.1f dB\n",
		r.level.RMS_dB, r.level.Peak_dB, r.level.CrestFactor_dB)
	fmt.Fprintf(tw, "residual carrier\t%.5f\n", r.residual)
	if r.occupancy.Frames > 0 {
		fmt.Fprintf(tw, "in band %.0f-%.0f Hz\t%.2f %%\n", r.band[0], r.band[1], 100*r.occupancy.InBandFraction)
		fmt.Fprintf(tw, "spectral peak\t%.0f Hz (%.1f dB)\n", r.occupancy.PeakFrequency, r.occupancy.PeakDB)
		fmt.Fprintf(tw, "centroid\t%.0f Hz, spread %.0f Hz\n", r.occupancy.Shape.Centroid, r.occupancy.Shape.Spread)
		fmt.Fprintf(tw, "occupied %.0f %%\t%.0f-%.0f Hz (%.0f Hz)\n", 100*occupancy.OccupiedFraction,
			r.occupancy.Shape.OccupiedLow, r.occupancy.Shape.OccupiedHigh, r.occupancy.Shape.OccupiedBandwidth)
	}
	return tw.Flush()
}
