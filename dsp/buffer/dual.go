package buffer

// DualFrame is a pair of equal-length frames used for overlap-add and
// overlap-read across block boundaries.
//
// Current is the frame that belongs to the block being processed. Next
// receives data that spills past the end of the current block (transmit
// side) or, after Swap, holds the previous block (receive side). The two
// frames never share storage; Swap exchanges ownership without copying.
type DualFrame struct {
	current *Buffer
	next    *Buffer
}

// NewDualFrame returns a zeroed frame pair of the given length.
func NewDualFrame(length int) *DualFrame {
	return &DualFrame{
		current: New(length),
		next:    New(length),
	}
}

// Len returns the frame length.
func (d *DualFrame) Len() int {
	return d.current.Len()
}

// Current returns the frame of the block being processed.
func (d *DualFrame) Current() []float64 {
	return d.current.Samples()
}

// Next returns the other frame.
func (d *DualFrame) Next() []float64 {
	return d.next.Samples()
}

// Swap exchanges the current and next frames.
func (d *DualFrame) Swap() {
	d.current, d.next = d.next, d.current
}

// SwapAndClear exchanges the frames and zero-fills the new next frame.
func (d *DualFrame) SwapAndClear() {
	d.Swap()
	clear(d.next.Samples())
}

// Accumulate adds taps*scale into the frames starting at offset.
// Positions past the end of the current frame spill into next, wrapped by
// the frame length. Positions outside both frames are dropped.
func (d *DualFrame) Accumulate(offset int, taps []float64, scale float64) {
	cur := d.current.Samples()
	nxt := d.next.Samples()
	n := len(cur)
	for k, h := range taps {
		pos := offset + k
		switch {
		case pos < 0:
		case pos < n:
			cur[pos] += h * scale
		case pos < 2*n:
			nxt[pos-n] += h * scale
		}
	}
}

// At reads position index relative to the start of the current frame.
// Negative indices address the tail of the previous frame, which is held
// in next after a Swap.
func (d *DualFrame) At(index int) float64 {
	n := d.current.Len()
	switch {
	case index < 0:
		if index+n < 0 {
			return 0
		}
		return d.next.samples[index+n]
	case index < n:
		return d.current.samples[index]
	default:
		return 0
	}
}

// Dot returns sum(taps[k] * At(offset+k)).
func (d *DualFrame) Dot(offset int, taps []float64) float64 {
	cur := d.current.Samples()
	prev := d.next.Samples()
	n := len(cur)

	var acc float64
	k := 0
	// Taps that land in the previous frame.
	for ; k < len(taps) && offset+k < 0; k++ {
		if idx := offset + k + n; idx >= 0 {
			acc += taps[k] * prev[idx]
		}
	}
	for ; k < len(taps) && offset+k < n; k++ {
		acc += taps[k] * cur[offset+k]
	}
	return acc
}
