package modem

import "math"

// carrier renders one block of the quadrature carrier pair. The phase is
// reduced to one cycle from the integer sample counter, so it stays exact
// however long the engine runs.
type carrier struct {
	freq       float64
	sampleRate float64
	sin, cos   []float64
}

func newCarrier(freq, sampleRate float64, blockSize int) *carrier {
	return &carrier{
		freq:       freq,
		sampleRate: sampleRate,
		sin:        make([]float64, blockSize),
		cos:        make([]float64, blockSize),
	}
}

// render fills sin and cos with sin(2*pi*f*t + phase) and cos(...) for
// t = (counter+n)/sampleRate, scaled by gain. phase is in cycles.
func (c *carrier) render(counter int64, phase, gain float64) {
	for n := range c.sin {
		cycles := math.Mod(c.freq*float64(counter+int64(n)), c.sampleRate)/c.sampleRate + phase
		s, co := math.Sincos(2 * math.Pi * cycles)
		c.sin[n] = s * gain
		c.cos[n] = co * gain
	}
}
