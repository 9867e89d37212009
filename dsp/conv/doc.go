// Package conv provides direct time-domain linear convolution for
// cascading short FIR kernels.
//
// The kernels the modem cascades are a few dozen taps long and are
// rebuilt only when the receive delay changes, so the O(N*M) direct form
// is all that is needed:
//
//	k := make([]float64, conv.Len(lowpass, rrc)+1)
//	err := conv.Into(k, lowpass, rrc) // k[len-1] stays zero
package conv
