// Package testutil holds signal and tolerance helpers shared by tests.
package testutil

import "math"

// Tone returns amplitude*sin(2*pi*freq*n/sampleRate) for n in [0, length).
func Tone(freq, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freq / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// Impulse returns a unit impulse at pos.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// Float32 narrows x.
func Float32(x []float64) []float32 {
	out := make([]float32, len(x))
	for i, v := range x {
		out[i] = float32(v)
	}
	return out
}

// ForEachBlock calls fn on consecutive blocks of x of at most size samples.
// The blocks alias x.
func ForEachBlock(x []float64, size int, fn func(block []float64)) {
	for i := 0; i < len(x); i += size {
		fn(x[i:min(i+size, len(x))])
	}
}
