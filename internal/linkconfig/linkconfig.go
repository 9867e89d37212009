// Package linkconfig loads the YAML description of an offline modem link:
// modulation, receiver front end, simulated channel and run length.
//
//	modulation:
//	  carrier_frequency: 12000
//	  symbol_length: 3
//	  constellation_size: 2
//	  roll_off: 0.1
//	  rrc_length: 64
//	channel:
//	  delay: 4.5
//	  snr: 20
//	run:
//	  blocks: 400
package linkconfig

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-modem/dsp/channel"
	"github.com/cwbudde/algo-modem/dsp/core"
	"github.com/cwbudde/algo-modem/dsp/interp"
	"github.com/cwbudde/algo-modem/dsp/modem"
)

// ErrInvalid reports a semantically invalid link description.
var ErrInvalid = errors.New("linkconfig: invalid")

// Processor is the audio host environment.
type Processor struct {
	SampleRate float64 `yaml:"sample_rate"`
	BlockSize  int     `yaml:"block_size"`
}

// Receiver holds the receiver front-end settings. Zero values select the
// engine defaults.
type Receiver struct {
	LowpassLength int     `yaml:"lowpass_length"`
	LowpassCutoff float64 `yaml:"lowpass_cutoff"`
	MixerGain     float64 `yaml:"mixer_gain"`
}

// Channel describes the simulated path between the engines.
type Channel struct {
	Gain          float64   `yaml:"gain"`
	Delay         float64   `yaml:"delay"`
	Interpolation string    `yaml:"interpolation"`
	Response      []float64 `yaml:"response"`
	Noise         float64   `yaml:"noise"`
	SNR           *float64  `yaml:"snr"`
	Seed          int64     `yaml:"seed"`
}

// Run controls the length of the simulation and the analysis window.
type Run struct {
	Blocks int   `yaml:"blocks"`
	Seed   int64 `yaml:"seed"`
	Skip   int   `yaml:"skip"`
}

// Link is the full description.
type Link struct {
	Modulation modem.Config `yaml:"modulation"`
	Processor  Processor    `yaml:"processor"`
	Receiver   Receiver     `yaml:"receiver"`
	Channel    Channel      `yaml:"channel"`
	Run        Run          `yaml:"run"`
	// Decode overrides the nominal decode parameters when set.
	Decode *modem.DecodeParameters `yaml:"decode"`
}

// Default returns the reference link: direct loopback at 48 kHz.
func Default() Link {
	return Link{
		Modulation: modem.DefaultConfig(),
		Processor:  Processor{SampleRate: 48000, BlockSize: core.RenderQuantum},
		Receiver:   Receiver{LowpassLength: modem.DefaultLowpassLength},
		Channel:    Channel{Gain: 1, Seed: 1},
		Run:        Run{Blocks: 400, Seed: 1, Skip: 100},
	}
}

// Parse decodes YAML on top of Default and validates the result.
func Parse(data []byte) (Link, error) {
	l := Default()
	if err := yaml.Unmarshal(data, &l); err != nil {
		return Link{}, fmt.Errorf("linkconfig: %w", err)
	}
	if err := l.Validate(); err != nil {
		return Link{}, err
	}
	return l, nil
}

// Load reads and parses a file.
func Load(path string) (Link, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Link{}, fmt.Errorf("linkconfig: %w", err)
	}
	return Parse(data)
}

// Validate checks the parts the engines do not check themselves.
func (l Link) Validate() error {
	if !(l.Processor.SampleRate > 0) {
		return fmt.Errorf("%w: sample rate %g", ErrInvalid, l.Processor.SampleRate)
	}
	if err := l.Modulation.ValidateFor(l.Processor.SampleRate); err != nil {
		return err
	}
	switch {
	case l.Processor.BlockSize <= 0:
		return fmt.Errorf("%w: block size %d", ErrInvalid, l.Processor.BlockSize)
	case l.Run.Blocks <= 0:
		return fmt.Errorf("%w: blocks %d", ErrInvalid, l.Run.Blocks)
	case l.Run.Skip < 0:
		return fmt.Errorf("%w: skip %d", ErrInvalid, l.Run.Skip)
	case l.Receiver.LowpassLength < 0:
		return fmt.Errorf("%w: lowpass length %d", ErrInvalid, l.Receiver.LowpassLength)
	}
	if _, err := interp.ParseMode(l.Channel.Interpolation); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// ProcessorOptions returns the host environment as core options.
func (l Link) ProcessorOptions() []core.ProcessorOption {
	return []core.ProcessorOption{
		core.WithSampleRate(l.Processor.SampleRate),
		core.WithBlockSize(l.Processor.BlockSize),
	}
}

// LowpassLength returns the effective receiver lowpass length.
func (l Link) LowpassLength() int {
	if l.Receiver.LowpassLength == 0 {
		return modem.DefaultLowpassLength
	}
	return l.Receiver.LowpassLength
}

// ModemOptions returns the engine options shared by both ends. Options
// only the receiver reads are ignored by the transmitter.
func (l Link) ModemOptions() []modem.Option {
	return []modem.Option{
		modem.WithProcessor(l.ProcessorOptions()...),
		modem.WithSeed(l.Run.Seed),
		modem.WithLowpass(l.LowpassLength(), l.Receiver.LowpassCutoff),
		modem.WithMixerGain(l.Receiver.MixerGain),
	}
}

// ChannelOptions translates the channel section.
func (l Link) ChannelOptions() ([]channel.Option, error) {
	c := l.Channel
	opts := []channel.Option{
		channel.WithGain(c.Gain),
		channel.WithDelay(c.Delay),
		channel.WithResponse(c.Response),
		channel.WithNoise(c.Noise, c.Seed),
	}
	if c.Interpolation != "" {
		m, err := interp.ParseMode(c.Interpolation)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
		}
		opts = append(opts, channel.WithInterpolation(m))
	}
	if c.SNR != nil {
		opts = append(opts, channel.WithSNR(*c.SNR))
	}
	return opts, nil
}

// NewChannel builds the simulated channel.
func (l Link) NewChannel() (*channel.Channel, error) {
	opts, err := l.ChannelOptions()
	if err != nil {
		return nil, err
	}
	return channel.New(l.Processor.SampleRate, opts...)
}

// DecodeParameters returns the override, or the nominal parameters for a
// channel adding latency samples.
func (l Link) DecodeParameters(latency float64) modem.DecodeParameters {
	if l.Decode != nil {
		return *l.Decode
	}
	return modem.NominalParameters(l.Modulation, l.Processor.BlockSize, l.LowpassLength(), l.Processor.SampleRate, latency)
}
