package design

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-modem/dsp/window"
)

// Lowpass returns a Hamming-windowed sinc lowpass of the given length.
// cutoff is in cycles per sample. delay shifts both the sinc and the window
// by a fractional number of samples, moving the group delay from length/2
// to length/2 + delay without changing the length.
func Lowpass(length int, cutoff, delay float64) (Kernel, error) {
	switch {
	case length < 1:
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, length)
	case !(cutoff > 0 && cutoff <= 0.5):
		return nil, fmt.Errorf("%w: %g", ErrInvalidCutoff, cutoff)
	case math.IsNaN(delay) || math.IsInf(delay, 0):
		return nil, fmt.Errorf("lowpass: delay %g: %w", delay, ErrDegenerateKernel)
	}

	k := make(Kernel, length)
	half := float64(length / 2)
	w0 := 2 * math.Pi * cutoff
	for i := range k {
		x := float64(i) - half - delay
		w := window.At(window.TypeHamming, (float64(i)-delay)/float64(length))
		if x == 0 {
			k[i] = w0 * w
			continue
		}
		k[i] = math.Sin(w0*x) / x * w
	}

	if err := Normalize(k); err != nil {
		return nil, fmt.Errorf("lowpass: %w", err)
	}
	return k, nil
}
