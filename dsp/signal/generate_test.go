package signal

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-modem/dsp/core"
)

func TestSine(t *testing.T) {
	g := NewGenerator([]core.ProcessorOption{core.WithSampleRate(8000)})
	s, err := g.Sine(2000, 0.5, 8)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{0, 0.5, 0, -0.5, 0, 0.5, 0, -0.5}
	for i := range want {
		if math.Abs(s[i]-want[i]) > 1e-12 {
			t.Fatalf("s[%d] = %v, want %v", i, s[i], want[i])
		}
	}
	if _, err := g.Sine(100, 1, 0); !errors.Is(err, ErrSamples) {
		t.Fatalf("Sine(0 samples) err = %v", err)
	}
	if g.SampleRate() != 8000 {
		t.Fatalf("SampleRate() = %v", g.SampleRate())
	}
}

func TestWhiteNoiseDeterministicAndBounded(t *testing.T) {
	g := NewGenerator(nil, WithSeed(11))
	a, err := g.WhiteNoise(0.25, 4096)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := g.WhiteNoise(0.25, 4096)

	var sumSq float64
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs between runs", i)
		}
		if math.Abs(a[i]) > 0.25 {
			t.Fatalf("sample %d = %v exceeds amplitude", i, a[i])
		}
		sumSq += a[i] * a[i]
	}
	rms := math.Sqrt(sumSq / float64(len(a)))
	if math.Abs(UniformAmplitude(rms)-0.25) > 0.01 {
		t.Fatalf("rms %v does not match uniform amplitude 0.25", rms)
	}

	if _, err := g.WhiteNoise(-1, 8); !errors.Is(err, ErrAmplitude) {
		t.Fatalf("WhiteNoise(-1) err = %v", err)
	}
}

func TestNoiseStreamsAcrossBlocks(t *testing.T) {
	whole := make([]float64, 256)
	NewNoise(3).Add(whole, 1)

	n := NewNoise(3)
	parts := make([]float64, 256)
	n.Add(parts[:100], 1)
	n.Add(parts[100:], 1)
	for i := range whole {
		if whole[i] != parts[i] {
			t.Fatalf("sample %d: %v vs %v", i, whole[i], parts[i])
		}
	}
}
