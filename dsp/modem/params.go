package modem

import (
	"math"

	"github.com/cwbudde/algo-modem/dsp/core"
)

// DefaultCutoff returns the receiver lowpass cutoff in cycles per sample:
// the midpoint between the baseband edge (1+rollOff)/(2*symbolLength) and
// the lower edge of the image that mixing leaves around twice the carrier,
// folded at Nyquist. When the image overlaps the baseband the cutoff sits
// on the baseband edge.
func DefaultCutoff(cfg Config, sampleRate float64) float64 {
	edge := cfg.BasebandEdge()

	image := math.Mod(2*cfg.CarrierFrequency/sampleRate, 1)
	if image > 0.5 {
		image = 1 - image
	}
	lower := image - edge

	cutoff := edge
	if lower > edge {
		cutoff = (edge + lower) / 2
	}
	return core.Clamp(cutoff, 1e-6, 0.5)
}

// NominalParameters returns the decode parameters that line the receiver's
// sampling grid up with the pulse peaks of a transmitter built from the
// same config, when the audio reaches the receiver latency samples late.
// latency is 0 for a direct loopback. The result is static: it does not
// track drift.
func NominalParameters(cfg Config, blockSize, lowpassLength int, sampleRate, latency float64) DecodeParameters {
	sps := cfg.SymbolLength
	delay := math.Mod(float64(blockSize)-float64(lowpassLength/2)+latency, sps)
	if delay < 0 {
		delay += sps
	}
	return DecodeParameters{
		Delay:       delay,
		PhaseOffset: core.WrapCycles(-cfg.CarrierFrequency * latency / sampleRate),
	}
}
