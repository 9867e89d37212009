package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDualFrameAccumulateSpills(t *testing.T) {
	d := NewDualFrame(4)
	d.Accumulate(2, []float64{1, 2, 3, 4}, 2)

	assert.Equal(t, []float64{0, 0, 2, 4}, d.Current())
	assert.Equal(t, []float64{6, 8, 0, 0}, d.Next())
}

func TestDualFrameAccumulateDropsOutOfRange(t *testing.T) {
	d := NewDualFrame(2)
	d.Accumulate(-1, []float64{1, 1, 1, 1, 1, 1}, 1)

	assert.Equal(t, []float64{1, 1}, d.Current())
	assert.Equal(t, []float64{1, 1}, d.Next())
}

func TestDualFrameSwapAndClear(t *testing.T) {
	d := NewDualFrame(3)
	d.Accumulate(0, []float64{1, 1, 1, 5, 5, 5}, 1)
	d.SwapAndClear()

	assert.Equal(t, []float64{5, 5, 5}, d.Current())
	assert.Equal(t, []float64{0, 0, 0}, d.Next())
}

func TestDualFrameSwapKeepsPrevious(t *testing.T) {
	d := NewDualFrame(3)
	copy(d.Current(), []float64{1, 2, 3})
	d.Swap()
	copy(d.Current(), []float64{4, 5, 6})

	want := map[int]float64{-4: 0, -3: 1, -2: 2, -1: 3, 0: 4, 2: 6, 3: 0}
	for idx, v := range want {
		assert.Equalf(t, v, d.At(idx), "At(%d)", idx)
	}
}

func TestDualFrameFramesDoNotAlias(t *testing.T) {
	d := NewDualFrame(2)
	require.Equal(t, 2, d.Len())
	d.Current()[0] = 1
	assert.Zero(t, d.Next()[0])
	d.Swap()
	assert.Zero(t, d.Current()[0])
	assert.Equal(t, 1.0, d.Next()[0])
}

func TestDualFrameDotMatchesAt(t *testing.T) {
	d := NewDualFrame(5)
	copy(d.Current(), []float64{1, 2, 3, 4, 5})
	d.Swap()
	copy(d.Current(), []float64{6, 7, 8, 9, 10})

	taps := []float64{0.5, -1, 2, 0.25}
	for offset := -7; offset <= 3; offset++ {
		var want float64
		for k, h := range taps {
			want += h * d.At(offset+k)
		}
		assert.InDeltaf(t, want, d.Dot(offset, taps), 1e-12, "offset %d", offset)
	}
}
