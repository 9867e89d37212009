// Command qamlink runs a transmitter, a simulated channel and a receiver
// offline for a number of blocks and reports constellation quality and
// spectral occupancy.
//
// Usage:
//
//	qamlink [flags]
//
// Examples:
//
//	qamlink -n 800
//	qamlink --delay 4.5 --snr 20
//	qamlink -C link.yaml --dump 'tx-%Y%m%d-%H%M%S.f32' --log-level debug
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/cwbudde/algo-modem/internal/linkconfig"
	"github.com/cwbudde/algo-modem/internal/logging"
	"github.com/cwbudde/algo-modem/internal/sampledump"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "qamlink:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := pflag.NewFlagSet("qamlink", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.StringP("config", "C", "", "YAML link description.")
	blocks := fs.IntP("blocks", "n", 0, "Number of blocks to run.")
	seed := fs.Int64P("seed", "S", 1, "Symbol source seed.")
	carrier := fs.Float64P("carrier", "c", 0, "Carrier frequency in Hz.")
	sps := fs.Float64P("symbol-length", "s", 0, "Samples per symbol.")
	levels := fs.IntP("constellation", "q", 0, "Amplitude levels per axis.")
	rollOff := fs.Float64P("roll-off", "r", 0, "RRC roll-off factor.")
	delay := fs.Float64P("delay", "d", 0, "Channel delay in samples.")
	interpMode := fs.String("interp", "", "Fractional delay kernel: hermite, linear or lagrange. Empty selects the sinc filter.")
	gain := fs.Float64P("gain", "g", 1, "Channel gain.")
	snr := fs.Float64("snr", 0, "Channel SNR in dB.")
	noise := fs.Float64("noise", 0, "Channel noise amplitude.")
	dump := fs.String("dump", "", "Write transmitted audio as raw float32 to this strftime file pattern.")
	logLevel := fs.StringP("log-level", "l", "info", "Log level: debug, info, warn, error.")
	logFormat := fs.String("log-format", "text", "Log format: text, json, logfmt.")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger, err := logging.FromFlags(stderr, *logLevel, *logFormat)
	if err != nil {
		return err
	}

	link := linkconfig.Default()
	if *configPath != "" {
		if link, err = linkconfig.Load(*configPath); err != nil {
			return err
		}
		logger.Debug("loaded link config", "path", *configPath)
	}

	if fs.Changed("blocks") {
		link.Run.Blocks = *blocks
	}
	if fs.Changed("seed") {
		link.Run.Seed = *seed
	}
	if fs.Changed("carrier") {
		link.Modulation.CarrierFrequency = *carrier
	}
	if fs.Changed("symbol-length") {
		link.Modulation.SymbolLength = *sps
	}
	if fs.Changed("constellation") {
		link.Modulation.ConstellationSize = *levels
	}
	if fs.Changed("roll-off") {
		link.Modulation.RollOff = *rollOff
	}
	if fs.Changed("delay") {
		link.Channel.Delay = *delay
	}
	if fs.Changed("interp") {
		link.Channel.Interpolation = *interpMode
	}
	if fs.Changed("gain") {
		link.Channel.Gain = *gain
	}
	if fs.Changed("snr") {
		link.Channel.SNR = snr
	}
	if fs.Changed("noise") {
		link.Channel.Noise = *noise
	}
	if err := link.Validate(); err != nil {
		return err
	}

	var dumpFile *sampledump.File
	if *dump != "" {
		if dumpFile, err = sampledump.Create(*dump, time.Now()); err != nil {
			return err
		}
		logger.Info("dumping transmitted audio", "file", dumpFile.Name())
	}

	var rep *report
	if dumpFile != nil {
		rep, err = simulate(link, logger, dumpFile)
		if cerr := dumpFile.Close(); err == nil {
			err = cerr
		}
	} else {
		rep, err = simulate(link, logger, nil)
	}
	if err != nil {
		return err
	}
	return rep.print(stdout)
}
