// Command kernelinfo prints the pulse-shaping and receive kernels for a
// modulation setup.
//
// Usage:
//
//	kernelinfo [flags]
//
// Examples:
//
//	kernelinfo
//	kernelinfo -s 4 -r 0.25 --freqs 0,4000,8000
//	kernelinfo --taps rrc
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/cwbudde/algo-modem/dsp/filter/design"
	"github.com/cwbudde/algo-modem/dsp/filter/fir"
	"github.com/cwbudde/algo-modem/dsp/modem"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "kernelinfo:", err)
		os.Exit(1)
	}
}

type kernelRow struct {
	name string
	taps design.Kernel
}

func run(args []string, stdout io.Writer) error {
	fs := pflag.NewFlagSet("kernelinfo", pflag.ContinueOnError)
	sampleRate := fs.Float64P("sample-rate", "f", 48000, "Sample rate in Hz.")
	blockSize := fs.IntP("block-size", "b", 128, "Block size; the combined kernel must be shorter.")
	carrier := fs.Float64P("carrier", "c", modem.DefaultCarrierFrequency, "Carrier frequency in Hz.")
	sps := fs.Float64P("symbol-length", "s", modem.DefaultSymbolLength, "Samples per symbol.")
	rollOff := fs.Float64P("roll-off", "r", modem.DefaultRollOff, "RRC roll-off factor.")
	rrcLen := fs.IntP("rrc-length", "n", modem.DefaultRRCLength, "RRC taps.")
	lpLen := fs.IntP("lowpass-length", "m", modem.DefaultLowpassLength, "Receiver lowpass taps.")
	cutoff := fs.Float64("cutoff", 0, "Lowpass cutoff in cycles per sample; 0 derives it from the link.")
	freqs := fs.Float64Slice("freqs", []float64{0, 2000, 4000, 8000, 12000, 20000}, "Frequencies in Hz at which to print the response.")
	taps := fs.String("taps", "", "Also print the taps of one kernel: rrc, lowpass or combined.")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := modem.DefaultConfig()
	cfg.CarrierFrequency = *carrier
	cfg.SymbolLength = *sps
	cfg.RollOff = *rollOff
	cfg.RRCLength = *rrcLen
	if err := cfg.ValidateFor(*sampleRate); err != nil {
		return err
	}
	if *cutoff == 0 {
		*cutoff = modem.DefaultCutoff(cfg, *sampleRate)
	}

	rrc, err := cfg.RRC()
	if err != nil {
		return err
	}
	lp, err := design.Lowpass(*lpLen, *cutoff, 0)
	if err != nil {
		return err
	}
	rows := []kernelRow{{"rrc", rrc}, {"lowpass", lp}}
	combined, err := design.Combined(lp, rrc, *blockSize)
	if err != nil {
		fmt.Fprintf(stdout, "combined kernel unavailable: %v\n\n", err)
	} else {
		rows = append(rows, kernelRow{"combined", combined})
	}

	fmt.Fprintf(stdout, "carrier %.0f Hz, %g samples/symbol (%.0f Bd), roll-off %g, cutoff %.4f\n\n",
		cfg.CarrierFrequency, cfg.SymbolLength, cfg.SymbolRate(*sampleRate), cfg.RollOff, *cutoff)

	w := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(w, "kernel\ttaps\tsum\tcenter\t")
	for _, f := range *freqs {
		fmt.Fprintf(w, "%.0f Hz\t", f)
	}
	fmt.Fprintln(w)
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%d\t%.4f\t%.4f\t", r.name, len(r.taps), r.taps.Sum(), r.taps.Center())
		for _, f := range *freqs {
			fmt.Fprintf(w, "%.1f\t", fir.MagnitudeDB(r.taps, f / *sampleRate))
		}
		fmt.Fprintln(w)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if *taps == "" {
		return nil
	}
	for _, r := range rows {
		if r.name != *taps {
			continue
		}
		fmt.Fprintf(stdout, "\n%s taps:\n", r.name)
		for i, v := range r.taps {
			fmt.Fprintf(stdout, "%4d  % .8f\n", i, v)
		}
		return nil
	}
	return fmt.Errorf("unknown kernel %q", *taps)
}
