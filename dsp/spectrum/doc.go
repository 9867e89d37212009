// Package spectrum provides single-bin tone probes and power helpers for
// complex spectrum bins produced by an external FFT.
package spectrum
