package modem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	require.NoError(t, cfg.ValidateFor(48000))
	assert.Equal(t, []float64{-1, 1}, cfg.Levels())
	assert.InDelta(t, 16000, cfg.SymbolRate(48000), 1e-9)
	assert.InDelta(t, 1.1/6, cfg.BasebandEdge(), 1e-15)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero carrier", func(c *Config) { c.CarrierFrequency = 0 }},
		{"negative symbol length", func(c *Config) { c.SymbolLength = -3 }},
		{"sub-sample symbol", func(c *Config) { c.SymbolLength = 0.5 }},
		{"no levels", func(c *Config) { c.ConstellationSize = 0 }},
		{"zero roll-off", func(c *Config) { c.RollOff = 0 }},
		{"roll-off above one", func(c *Config) { c.RollOff = 1.01 }},
		{"empty kernel", func(c *Config) { c.RRCLength = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestConfigValidateForNyquist(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CarrierFrequency = 24000
	assert.ErrorIs(t, cfg.ValidateFor(48000), ErrInvalidConfig)
}

func TestConfigRRC(t *testing.T) {
	k, err := DefaultConfig().RRC()
	require.NoError(t, err)
	assert.Len(t, k, DefaultRRCLength)
	assert.InDelta(t, 1, k.Sum(), 1e-12)

	bad := DefaultConfig()
	bad.RollOff = 0
	_, err = bad.RRC()
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestConfigYAML(t *testing.T) {
	src := `
carrier_frequency: 10000
symbol_length: 4
constellation_size: 4
roll_off: 0.25
rrc_length: 48
`
	cfg := DefaultConfig()
	require.NoError(t, yaml.Unmarshal([]byte(src), &cfg))
	assert.Equal(t, Config{
		CarrierFrequency:  10000,
		SymbolLength:      4,
		ConstellationSize: 4,
		RollOff:           0.25,
		RRCLength:         48,
	}, cfg)

	partial := DefaultConfig()
	require.NoError(t, yaml.Unmarshal([]byte("roll_off: 0.5\n"), &partial))
	assert.Equal(t, 0.5, partial.RollOff)
	assert.Equal(t, DefaultCarrierFrequency, partial.CarrierFrequency)
}
