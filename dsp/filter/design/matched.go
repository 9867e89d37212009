package design

import (
	"fmt"

	"github.com/cwbudde/algo-modem/dsp/conv"
)

// Combined convolves lowpass with rrc into the receiver's matched filter.
// The result carries len(lowpass)+len(rrc) taps, the full linear
// convolution followed by one zero tap, and is normalized to unit sum.
// Kernels of maxLen taps or more are rejected with ErrKernelTooLong.
func Combined(lowpass, rrc Kernel, maxLen int) (Kernel, error) {
	n := len(lowpass) + len(rrc)
	if n >= maxLen {
		return nil, fmt.Errorf("%w: %d+%d taps, block %d", ErrKernelTooLong, len(lowpass), len(rrc), maxLen)
	}
	if len(lowpass) == 0 || len(rrc) == 0 {
		return nil, fmt.Errorf("combined: %w", ErrInvalidLength)
	}

	k := make(Kernel, n)
	if err := conv.Into(k, lowpass, rrc); err != nil {
		return nil, fmt.Errorf("combined: %w", err)
	}

	if err := Normalize(k); err != nil {
		return nil, fmt.Errorf("combined: %w", err)
	}
	return k, nil
}
