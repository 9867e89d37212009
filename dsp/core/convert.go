package core

// Widen copies float32 audio into dst and returns the number of samples copied.
func Widen(dst []float64, src []float32) int {
	n := min(len(dst), len(src))
	for i, v := range src[:n] {
		dst[i] = float64(v)
	}
	return n
}

// Narrow is the inverse of Widen.
func Narrow(dst []float32, src []float64) int {
	n := min(len(dst), len(src))
	for i, v := range src[:n] {
		dst[i] = float32(v)
	}
	return n
}
