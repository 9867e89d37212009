package modem

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-modem/dsp/filter/design"
)

// Reference link parameters.
const (
	DefaultCarrierFrequency  = 12000.0
	DefaultSymbolLength      = 3.0
	DefaultConstellationSize = 2
	DefaultRollOff           = 0.1
	DefaultRRCLength         = 64
)

// Config is the modulation parameter set shared by both ends of a link.
// Transmitter and receiver must be built from identical values.
type Config struct {
	// CarrierFrequency in Hz.
	CarrierFrequency float64 `yaml:"carrier_frequency"`
	// SymbolLength is the number of samples per symbol.
	SymbolLength float64 `yaml:"symbol_length"`
	// ConstellationSize is the number of amplitude levels per axis.
	ConstellationSize int `yaml:"constellation_size"`
	// RollOff is the RRC excess bandwidth factor.
	RollOff float64 `yaml:"roll_off"`
	// RRCLength is the number of taps of the pulse-shaping kernel.
	RRCLength int `yaml:"rrc_length"`
}

// DefaultConfig returns the reference configuration: a 12 kHz carrier,
// 3 samples per symbol, 2 levels per axis, roll-off 0.1, 64 taps.
func DefaultConfig() Config {
	return Config{
		CarrierFrequency:  DefaultCarrierFrequency,
		SymbolLength:      DefaultSymbolLength,
		ConstellationSize: DefaultConstellationSize,
		RollOff:           DefaultRollOff,
		RRCLength:         DefaultRRCLength,
	}
}

// Validate reports the first violated constraint.
func (c Config) Validate() error {
	switch {
	case !(c.CarrierFrequency > 0) || math.IsInf(c.CarrierFrequency, 0):
		return fmt.Errorf("%w: carrier frequency must be > 0: %g", ErrInvalidConfig, c.CarrierFrequency)
	case !(c.SymbolLength >= 1) || math.IsInf(c.SymbolLength, 0):
		return fmt.Errorf("%w: symbol length must be >= 1: %g", ErrInvalidConfig, c.SymbolLength)
	case c.ConstellationSize < 1:
		return fmt.Errorf("%w: constellation size must be >= 1: %d", ErrInvalidConfig, c.ConstellationSize)
	case !(c.RollOff > 0 && c.RollOff <= 1):
		return fmt.Errorf("%w: roll-off must be in (0, 1]: %g", ErrInvalidConfig, c.RollOff)
	case c.RRCLength < 1:
		return fmt.Errorf("%w: rrc length must be >= 1: %d", ErrInvalidConfig, c.RRCLength)
	}
	return nil
}

// ValidateFor additionally checks the carrier against the sample rate.
func (c Config) ValidateFor(sampleRate float64) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.CarrierFrequency >= sampleRate/2 {
		return fmt.Errorf("%w: carrier %g Hz at or above Nyquist of %g Hz", ErrInvalidConfig, c.CarrierFrequency, sampleRate)
	}
	return nil
}

// RRC builds the pulse-shaping kernel for this configuration.
func (c Config) RRC() (design.Kernel, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return design.RRC(c.RRCLength, c.SymbolLength, c.RollOff)
}

// BasebandEdge returns the one-sided occupied bandwidth of the shaped
// baseband signal in cycles per sample.
func (c Config) BasebandEdge() float64 {
	return (1 + c.RollOff) / (2 * c.SymbolLength)
}

// SymbolRate returns symbols per second at the given sample rate.
func (c Config) SymbolRate(sampleRate float64) float64 {
	return sampleRate / c.SymbolLength
}

// Levels returns the per-axis alphabet.
func (c Config) Levels() []float64 {
	return Levels(c.ConstellationSize)
}
