// Package modem implements the block-based QAM transmitter and receiver of
// an acoustic modem.
//
// A [Transmitter] draws symbols from a [SymbolSource], pulse-shapes them
// with a root-raised-cosine kernel into an overlap-add frame pair and
// modulates them onto a sine/cosine carrier, one fixed-size audio block per
// call. A [Receiver] mixes incoming audio down to baseband, runs the
// combined lowpass+RRC matched filter, samples once per symbol and posts
// the decoded points to a [PointSink].
//
// Timing and carrier phase are not acquired: [DecodeParameters] are driven
// from outside once per block. [NominalParameters] computes the values that
// align a receiver with a transmitter over a channel of known latency.
//
// Both engines are single-owner values meant to be called from one audio
// callback. They allocate only on construction, on a kernel rebuild and in
// the sink copy.
package modem
