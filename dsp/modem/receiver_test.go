package modem

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-modem/dsp/core"
	"github.com/cwbudde/algo-modem/dsp/filter/design"
)

// txBlocks renders n blocks from a reference transmitter.
func txBlocks(t *testing.T, n int, opts ...Option) [][]float64 {
	t.Helper()
	tx, err := NewTransmitter(DefaultConfig(), referenceRRC(t), opts...)
	require.NoError(t, err)
	blocks := make([][]float64, n)
	for i := range blocks {
		blocks[i] = make([]float64, 128)
		require.NoError(t, tx.ProcessTx(blocks[i]))
	}
	return blocks
}

func TestReceiverDefaults(t *testing.T) {
	rx, err := NewReceiver(DefaultConfig(), referenceRRC(t))
	require.NoError(t, err)
	assert.Equal(t, DefaultLowpassLength+DefaultRRCLength, rx.KernelLength())
	assert.InDelta(t, 0.25, rx.Cutoff(), 1e-12)
	assert.Equal(t, 6.0, rx.Gain())
	assert.InDelta(t, 1, rx.Kernel().Sum(), 1e-12)
}

func TestReceiverKernelTooLong(t *testing.T) {
	_, err := NewReceiver(DefaultConfig(), referenceRRC(t), WithLowpass(64, 0))
	assert.ErrorIs(t, err, design.ErrKernelTooLong)

	_, err = NewReceiver(DefaultConfig(), referenceRRC(t), WithLowpass(40, 0), WithProcessor(core.WithBlockSize(100)))
	assert.ErrorIs(t, err, design.ErrKernelTooLong)
}

func TestReceiverRejectsBadSetup(t *testing.T) {
	_, err := NewReceiver(DefaultConfig(), design.Kernel{})
	assert.ErrorIs(t, err, ErrKernel)

	bad := DefaultConfig()
	bad.RollOff = 2
	_, err = NewReceiver(bad, referenceRRC(t))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestReceiverBlockSize(t *testing.T) {
	rx, err := NewReceiver(DefaultConfig(), referenceRRC(t))
	require.NoError(t, err)

	_, err = rx.ProcessRx(make([]float64, 127), DecodeParameters{})
	assert.ErrorIs(t, err, ErrBlockSize)
	_, err = rx.ProcessRx32(make([]float32, 256), DecodeParameters{})
	assert.ErrorIs(t, err, ErrBlockSize)
	assert.Zero(t, rx.SamplesProcessed())
}

func TestReceiverIdleTick(t *testing.T) {
	blocks := txBlocks(t, 12)

	plain, err := NewReceiver(DefaultConfig(), referenceRRC(t))
	require.NoError(t, err)
	idle, err := NewReceiver(DefaultConfig(), referenceRRC(t))
	require.NoError(t, err)

	for i, blk := range blocks {
		readIndex := idle.ReadIndex()
		samples := idle.SamplesProcessed()
		pts, err := idle.ProcessRx(nil, DecodeParameters{})
		require.NoError(t, err)
		require.Empty(t, pts)
		require.Equal(t, readIndex, idle.ReadIndex())
		require.Equal(t, samples, idle.SamplesProcessed())

		want, err := plain.ProcessRx(blk, DecodeParameters{})
		require.NoError(t, err)
		want = append([]Point(nil), want...)
		got, err := idle.ProcessRx(blk, DecodeParameters{})
		require.NoError(t, err)
		require.Equalf(t, want, got, "block %d", i)
	}
}

func TestReceiverIndexInvariants(t *testing.T) {
	blocks := txBlocks(t, 50)
	rx, err := NewReceiver(DefaultConfig(), referenceRRC(t))
	require.NoError(t, err)

	k := float64(rx.KernelLength())
	var total int
	for _, blk := range blocks {
		r := rx.ReadIndex()
		require.GreaterOrEqual(t, r, -k)
		require.Less(t, r, 128.0)
		pts, err := rx.ProcessRx(blk, DecodeParameters{})
		require.NoError(t, err)
		total += len(pts)
	}

	// Sampling instants m*sps whose window ends inside the stream.
	want := int(math.Ceil((50*128 - k) / 3))
	assert.Equal(t, want, total)
	assert.Equal(t, int64(50*128), rx.SamplesProcessed())
}

func TestReceiverDelayRebuild(t *testing.T) {
	rx, err := NewReceiver(DefaultConfig(), referenceRRC(t))
	require.NoError(t, err)
	k0 := rx.Kernel()

	blk := make([]float64, 128)
	_, err = rx.ProcessRx(blk, DecodeParameters{Delay: 1.5})
	require.NoError(t, err)
	assert.Equal(t, 1.5, rx.Delay())
	assert.NotEqual(t, k0, rx.Kernel())
	assert.Equal(t, len(k0), rx.KernelLength())

	// A failing rebuild keeps the previous filter and consumes nothing.
	k1 := rx.Kernel()
	samples := rx.SamplesProcessed()
	_, err = rx.ProcessRx(blk, DecodeParameters{Delay: math.Inf(1)})
	require.Error(t, err)
	assert.Equal(t, k1, rx.Kernel())
	assert.Equal(t, 1.5, rx.Delay())
	assert.Equal(t, samples, rx.SamplesProcessed())
}

func TestReceiverSymmetricPhaseRotation(t *testing.T) {
	blocks := txBlocks(t, 10)
	a, err := NewReceiver(DefaultConfig(), referenceRRC(t))
	require.NoError(t, err)
	b, err := NewReceiver(DefaultConfig(), referenceRRC(t))
	require.NoError(t, err)

	// A quarter cycle maps (I, Q) onto (Q, -I) on both branches.
	for _, blk := range blocks {
		pa, err := a.ProcessRx(blk, DecodeParameters{})
		require.NoError(t, err)
		pb, err := b.ProcessRx(blk, DecodeParameters{PhaseOffset: 0.25})
		require.NoError(t, err)
		require.Len(t, pb, len(pa))
		for n := range pa {
			require.InDelta(t, pa[n].Q, pb[n].I, 1e-9)
			require.InDelta(t, -pa[n].I, pb[n].Q, 1e-9)
		}
	}
}

func TestReceiverPostsToSink(t *testing.T) {
	var posted [][]Point
	sink := SinkFunc(func(p []Point) {
		posted = append(posted, append([]Point(nil), p...))
	})
	rx, err := NewReceiver(DefaultConfig(), referenceRRC(t), WithSink(sink))
	require.NoError(t, err)

	var returned [][]Point
	for _, blk := range txBlocks(t, 5) {
		pts, err := rx.ProcessRx(blk, DecodeParameters{})
		require.NoError(t, err)
		returned = append(returned, append([]Point(nil), pts...))
	}
	_, err = rx.ProcessRx(nil, DecodeParameters{})
	require.NoError(t, err)

	assert.Equal(t, returned, posted)
}

func TestReceiverFloat32(t *testing.T) {
	blocks := txBlocks(t, 6)
	a, err := NewReceiver(DefaultConfig(), referenceRRC(t))
	require.NoError(t, err)
	b, err := NewReceiver(DefaultConfig(), referenceRRC(t))
	require.NoError(t, err)

	in32 := make([]float32, 128)
	for _, blk := range blocks {
		core.Narrow(in32, blk)
		pa, err := a.ProcessRx(blk, DecodeParameters{})
		require.NoError(t, err)
		pb, err := b.ProcessRx32(in32, DecodeParameters{})
		require.NoError(t, err)
		require.Len(t, pb, len(pa))
		for n := range pa {
			require.InDelta(t, pa[n].I, pb[n].I, 1e-5)
			require.InDelta(t, pa[n].Q, pb[n].Q, 1e-5)
		}
	}
	pts, err := b.ProcessRx32(nil, DecodeParameters{})
	require.NoError(t, err)
	assert.Nil(t, pts)
}
