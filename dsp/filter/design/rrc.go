package design

import (
	"fmt"
	"math"
)

// singularityTolerance is how close 1-(4*rollOff*t)^2 may get to zero
// before the limit value replaces the closed form.
const singularityTolerance = 1e-9

// RRCAt evaluates the unnormalized root-raised-cosine pulse at t symbol
// periods from its center. Both removable singularities, t = 0 and
// t = ±1/(4*rollOff), return their limit values.
func RRCAt(t, rollOff float64) float64 {
	if t == 0 {
		return 1 - rollOff + 4*rollOff/math.Pi
	}

	f := 4 * rollOff * t
	den := 1 - f*f
	if math.Abs(den) < singularityTolerance {
		a := math.Pi / (4 * rollOff)
		return rollOff / math.Sqrt2 * ((1+2/math.Pi)*math.Sin(a) + (1-2/math.Pi)*math.Cos(a))
	}

	num := math.Sin(math.Pi*t*(1-rollOff)) + f*math.Cos(math.Pi*t*(1+rollOff))
	return num / (math.Pi * t * den)
}

// RRC returns a root-raised-cosine kernel of length taps, centered at
// index length/2 with symbolLength samples per symbol, normalized to unit
// sum.
func RRC(length int, symbolLength, rollOff float64) (Kernel, error) {
	switch {
	case length < 1:
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, length)
	case !(symbolLength >= 1) || math.IsInf(symbolLength, 0):
		return nil, fmt.Errorf("%w: %g", ErrInvalidSymbolLength, symbolLength)
	case !(rollOff > 0 && rollOff <= 1):
		return nil, fmt.Errorf("%w: %g", ErrInvalidRollOff, rollOff)
	}

	k := make(Kernel, length)
	center := length / 2
	for i := range k {
		k[i] = RRCAt(float64(i-center)/symbolLength, rollOff)
	}

	if err := Normalize(k); err != nil {
		return nil, fmt.Errorf("rrc: %w", err)
	}
	return k, nil
}
