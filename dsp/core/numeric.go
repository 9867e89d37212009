package core

import "math"

// Clamp limits v to [lo, hi]. Swapped bounds are reordered.
func Clamp(v, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}
	return math.Min(math.Max(v, lo), hi)
}

// WrapCycles folds a phase expressed in cycles into (-0.5, 0.5].
func WrapCycles(x float64) float64 {
	x -= math.Floor(x)
	if x > 0.5 {
		x--
	}
	return x
}

// DBToLinear converts dB to an amplitude ratio.
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// AmplitudeDB returns 20*log10(|a|); zero maps to -Inf.
func AmplitudeDB(a float64) float64 {
	return 20 * math.Log10(math.Abs(a))
}
