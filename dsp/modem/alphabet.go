package modem

import "math"

// Levels returns n amplitude levels evenly spaced over [-1, 1]. A single
// level is 0.
func Levels(n int) []float64 {
	if n < 1 {
		return nil
	}
	if n == 1 {
		return []float64{0}
	}
	out := make([]float64, n)
	step := 2 / float64(n-1)
	for i := range out {
		out[i] = -1 + float64(i)*step
	}
	out[n-1] = 1
	return out
}

// Nearest returns the index and value of the level closest to v.
func Nearest(levels []float64, v float64) (int, float64) {
	best := -1
	bestDist := math.Inf(1)
	for i, l := range levels {
		if d := math.Abs(v - l); d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return -1, 0
	}
	return best, levels[best]
}

// Decide maps a received point onto the nearest constellation point.
func Decide(levels []float64, p Point) Symbol {
	_, vi := Nearest(levels, p.I)
	_, vq := Nearest(levels, p.Q)
	return Symbol{I: vi, Q: vq}
}
