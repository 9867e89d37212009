package linkconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-modem/dsp/channel"
	"github.com/cwbudde/algo-modem/dsp/modem"
)

func TestParseEmptyIsDefault(t *testing.T) {
	l, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), l)
}

func TestParseOverrides(t *testing.T) {
	l, err := Parse([]byte(`
modulation:
  symbol_length: 4
  constellation_size: 4
channel:
  delay: 4.5
  interpolation: lagrange
  snr: 25
  response: [0.9, 0.1]
run:
  blocks: 50
decode:
  delay: 1.5
  phase_offset: -0.125
`))
	require.NoError(t, err)
	assert.Equal(t, 4.0, l.Modulation.SymbolLength)
	assert.Equal(t, 4, l.Modulation.ConstellationSize)
	assert.Equal(t, modem.DefaultCarrierFrequency, l.Modulation.CarrierFrequency)
	assert.Equal(t, 1.0, l.Channel.Gain)
	require.NotNil(t, l.Channel.SNR)
	assert.Equal(t, 25.0, *l.Channel.SNR)
	assert.Equal(t, []float64{0.9, 0.1}, l.Channel.Response)
	assert.Equal(t, 50, l.Run.Blocks)
	assert.Equal(t, modem.DecodeParameters{Delay: 1.5, PhaseOffset: -0.125}, l.DecodeParameters(20))

	ch, err := l.NewChannel()
	require.NoError(t, err)
	assert.Equal(t, 4.5, ch.Latency())
}

func TestParseRejects(t *testing.T) {
	tests := map[string]string{
		"syntax":        "modulation: [",
		"roll-off":      "modulation: {roll_off: 0}",
		"nyquist":       "modulation: {carrier_frequency: 30000}",
		"blocks":        "run: {blocks: 0}",
		"skip":          "run: {skip: -1}",
		"block size":    "processor: {block_size: -5}",
		"interpolation": "channel: {interpolation: sinc}",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestNominalDecodeParameters(t *testing.T) {
	l := Default()
	assert.Equal(t, modem.NominalParameters(l.Modulation, 128, 40, 48000, 5), l.DecodeParameters(5))
}

func TestOptionsBuildEngines(t *testing.T) {
	l := Default()
	l.Receiver.LowpassLength = 0
	assert.Equal(t, modem.DefaultLowpassLength, l.LowpassLength())

	rrc, err := l.Modulation.RRC()
	require.NoError(t, err)
	tx, err := modem.NewTransmitter(l.Modulation, rrc, l.ModemOptions()...)
	require.NoError(t, err)
	rx, err := modem.NewReceiver(l.Modulation, rrc, l.ModemOptions()...)
	require.NoError(t, err)
	assert.Equal(t, 128, tx.Processor().BlockSize)
	assert.Equal(t, 104, rx.KernelLength())

	opts, err := l.ChannelOptions()
	require.NoError(t, err)
	ch, err := channel.New(l.Processor.SampleRate, opts...)
	require.NoError(t, err)
	assert.Zero(t, ch.Latency())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "link.yaml")
	require.NoError(t, os.WriteFile(path, []byte("run: {blocks: 7}\n"), 0o600))
	l, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, l.Run.Blocks)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
