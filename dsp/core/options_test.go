package core

import (
	"math"
	"testing"
)

func TestApplyProcessorOptions(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(44100), WithBlockSize(256))
	if cfg.SampleRate != 44100 {
		t.Fatalf("sample rate = %v, want 44100", cfg.SampleRate)
	}
	if cfg.BlockSize != 256 {
		t.Fatalf("block size = %d, want 256", cfg.BlockSize)
	}
}

func TestDefaultIsRenderQuantum(t *testing.T) {
	cfg := DefaultProcessorConfig()
	if cfg.BlockSize != RenderQuantum {
		t.Fatalf("block size = %d, want %d", cfg.BlockSize, RenderQuantum)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestInvalidOptionsIgnored(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(0), WithBlockSize(-1), nil)
	def := DefaultProcessorConfig()
	if cfg != def {
		t.Fatalf("cfg = %#v, want %#v", cfg, def)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  ProcessorConfig
		ok   bool
	}{
		{name: "default", cfg: DefaultProcessorConfig(), ok: true},
		{name: "zero rate", cfg: ProcessorConfig{BlockSize: 128}},
		{name: "zero block", cfg: ProcessorConfig{SampleRate: 48000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err == nil) != tt.ok {
				t.Fatalf("Validate() = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestBlockDuration(t *testing.T) {
	cfg := ProcessorConfig{SampleRate: 48000, BlockSize: 480}
	if got := cfg.BlockDuration(); math.Abs(got-0.01) > 1e-12 {
		t.Fatalf("BlockDuration() = %v, want 0.01", got)
	}
	if got := cfg.Nyquist(); got != 24000 {
		t.Fatalf("Nyquist() = %v, want 24000", got)
	}
}
