// Package design synthesizes the FIR kernels used by the QAM modem.
//
// [RRC] builds the root-raised-cosine pulse shared by transmitter and
// receiver, [Lowpass] builds a Hamming-windowed sinc with a fractional
// group-delay shift, and [Combined] convolves the two into the receiver's
// matched filter. Every kernel is normalized to unity DC gain.
package design
