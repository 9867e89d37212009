package conv

import (
	"errors"
	"fmt"
)

var (
	// ErrEmpty is returned when either operand has no samples.
	ErrEmpty = errors.New("conv: empty operand")
	// ErrShortDestination is returned when dst cannot hold the full result.
	ErrShortDestination = errors.New("conv: destination too short")
)

// Len returns the length of the full linear convolution of a and b.
func Len(a, b []float64) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	return len(a) + len(b) - 1
}

// Full returns the full linear convolution of a and b.
func Full(a, b []float64) ([]float64, error) {
	out := make([]float64, Len(a, b))
	if err := Into(out, a, b); err != nil {
		return nil, err
	}
	return out, nil
}

// Into writes the full convolution of a and b to the front of dst and
// zeroes whatever follows it, so a longer dst yields a zero-padded kernel.
func Into(dst, a, b []float64) error {
	n := Len(a, b)
	switch {
	case n == 0:
		return ErrEmpty
	case len(dst) < n:
		return fmt.Errorf("%w: %d < %d", ErrShortDestination, len(dst), n)
	}

	clear(dst)
	for i, x := range a {
		if x == 0 {
			continue
		}
		row := dst[i : i+len(b)]
		for j, h := range b {
			row[j] += x * h
		}
	}
	return nil
}
