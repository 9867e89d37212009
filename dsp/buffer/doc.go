// Package buffer provides the sample storage used by block processors.
//
// [Buffer] wraps a float64 slice with reuse-friendly semantics, [Pool]
// recycles buffers handed across goroutines, and [DualFrame] holds the
// current/next frame pair that carries filter history and pulse tails
// across block boundaries.
package buffer
