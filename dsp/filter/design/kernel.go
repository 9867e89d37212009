package design

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned by kernel designers.
var (
	ErrInvalidRollOff      = errors.New("design: roll-off must be in (0, 1]")
	ErrInvalidLength       = errors.New("design: kernel length must be >= 1")
	ErrInvalidSymbolLength = errors.New("design: symbol length must be >= 1")
	ErrInvalidCutoff       = errors.New("design: cutoff must be in (0, 0.5]")
	ErrKernelTooLong       = errors.New("design: kernel does not fit the block")
	ErrDegenerateKernel    = errors.New("design: kernel sum is zero")
)

// degenerateSum is the magnitude below which a kernel cannot be normalized.
const degenerateSum = 1e-12

// Kernel holds FIR taps.
type Kernel []float64

// Sum returns the DC gain of the kernel.
func (k Kernel) Sum() float64 {
	var s float64
	for _, v := range k {
		s += v
	}
	return s
}

// Center returns the tap at len/2.
func (k Kernel) Center() float64 {
	if len(k) == 0 {
		return 0
	}
	return k[len(k)/2]
}

// Clone returns an independent copy.
func (k Kernel) Clone() Kernel {
	return append(Kernel(nil), k...)
}

// Normalize divides taps by their sum in place.
func Normalize(taps []float64) error {
	var sum float64
	for _, v := range taps {
		sum += v
	}

	if math.Abs(sum) < degenerateSum || math.IsNaN(sum) || math.IsInf(sum, 0) {
		return fmt.Errorf("%w (sum %g over %d taps)", ErrDegenerateKernel, sum, len(taps))
	}

	inv := 1 / sum
	for i := range taps {
		taps[i] *= inv
	}
	return nil
}
