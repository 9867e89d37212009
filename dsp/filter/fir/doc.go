// Package fir provides a direct-form FIR filter runtime and frequency
// response helpers for kernel inspection.
//
// A [Filter] applies a fixed tap set to a sample stream. The delay line is
// stored twice so every output is a contiguous dot product. [Response] and
// [MagnitudeDB] evaluate arbitrary tap sets at normalized frequencies, which
// is how modem kernels are inspected without instantiating a filter.
package fir
