package modem

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cwbudde/algo-modem/dsp/core"
	"github.com/cwbudde/algo-modem/dsp/filter/design"
)

func referenceRRC(t testing.TB) design.Kernel {
	t.Helper()
	k, err := DefaultConfig().RRC()
	require.NoError(t, err)
	return k
}

func TestTransmitterRejectsBadSetup(t *testing.T) {
	rrc := referenceRRC(t)

	_, err := NewTransmitter(DefaultConfig(), nil)
	assert.ErrorIs(t, err, ErrKernel)

	_, err = NewTransmitter(DefaultConfig(), rrc, WithProcessor(core.WithBlockSize(32)))
	assert.ErrorIs(t, err, ErrKernel)

	bad := DefaultConfig()
	bad.SymbolLength = 0
	_, err = NewTransmitter(bad, rrc)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestTransmitterBlockSize(t *testing.T) {
	tx, err := NewTransmitter(DefaultConfig(), referenceRRC(t))
	require.NoError(t, err)

	assert.ErrorIs(t, tx.ProcessTx(make([]float64, 64)), ErrBlockSize)
	assert.ErrorIs(t, tx.ProcessTx32(make([]float32, 129)), ErrBlockSize)
	assert.Zero(t, tx.SamplesProcessed())
}

func TestTransmitterFirstBlockIsSilent(t *testing.T) {
	tx, err := NewTransmitter(DefaultConfig(), referenceRRC(t))
	require.NoError(t, err)

	out := make([]float64, 128)
	require.NoError(t, tx.ProcessTx(out))
	for n, v := range out {
		require.Zerof(t, v, "sample %d", n)
	}

	require.NoError(t, tx.ProcessTx(out))
	var energy float64
	for _, v := range out {
		energy += v * v
	}
	assert.Positive(t, energy)
}

func TestTransmitterIndexInvariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		sps := rapid.Float64Range(1, 8).Draw(t, "sps")
		b := rapid.IntRange(16, 256).Draw(t, "block")
		blocks := rapid.IntRange(1, 40).Draw(t, "blocks")

		cfg := DefaultConfig()
		cfg.SymbolLength = sps
		cfg.RRCLength = min(16, b)
		rrc, err := cfg.RRC()
		if err != nil {
			t.Fatal(err)
		}
		tx, err := NewTransmitter(cfg, rrc, WithProcessor(core.WithBlockSize(b)))
		if err != nil {
			t.Fatal(err)
		}

		out := make([]float64, b)
		for range blocks {
			if w := tx.WriteIndex(); w < 0 || w >= float64(b) {
				t.Fatalf("write index %v outside [0, %d)", w, b)
			}
			if err := tx.ProcessTx(out); err != nil {
				t.Fatal(err)
			}
		}

		want := math.Floor(float64(blocks*b) / sps)
		if got := float64(tx.SymbolsSent()); math.Abs(got-want) > 1 {
			t.Fatalf("sent %v symbols over %d blocks of %d at %v samples/symbol, want %v ±1", got, blocks, b, sps, want)
		}
		if tx.SamplesProcessed() != int64(blocks*b) {
			t.Fatalf("samples %d, want %d", tx.SamplesProcessed(), blocks*b)
		}
	})
}

func TestTransmitterCarrierPlacement(t *testing.T) {
	// A single in-phase symbol followed by silence produces sin(wt)*pulse
	// peaking one block plus half a kernel after its placement.
	cfg := DefaultConfig()
	rrc := referenceRRC(t)
	syms := make([]Symbol, 1000)
	syms[0] = Symbol{I: 1}
	tx, err := NewTransmitter(cfg, rrc, WithSource(NewSliceSource(syms)))
	require.NoError(t, err)

	var audio []float64
	out := make([]float64, 128)
	for range 3 {
		require.NoError(t, tx.ProcessTx(out))
		audio = append(audio, out...)
	}

	assert.Equal(t, 128+32, tx.Latency())
	for n, v := range audio {
		want := 0.0
		if k := n - 128; k >= 0 && k < len(rrc) {
			want = math.Sin(2*math.Pi*cfg.CarrierFrequency*float64(n)/48000) * rrc[k]
		}
		require.InDeltaf(t, want, v, 1e-12, "sample %d", n)
	}
}

func TestTransmitterFloat32(t *testing.T) {
	a, err := NewTransmitter(DefaultConfig(), referenceRRC(t), WithSeed(3))
	require.NoError(t, err)
	b, err := NewTransmitter(DefaultConfig(), referenceRRC(t), WithSeed(3))
	require.NoError(t, err)

	out64 := make([]float64, 128)
	out32 := make([]float32, 128)
	for range 4 {
		require.NoError(t, a.ProcessTx(out64))
		require.NoError(t, b.ProcessTx32(out32))
		for n := range out64 {
			require.InDelta(t, out64[n], float64(out32[n]), 1e-6)
		}
	}
}

func TestTransmitterCopiesKernel(t *testing.T) {
	rrc := referenceRRC(t)
	tx, err := NewTransmitter(DefaultConfig(), rrc)
	require.NoError(t, err)
	rrc[0] = 100
	assert.NotEqual(t, 100.0, tx.rrc[0])
}
