package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name      string
		v, lo, hi float64
		want      float64
	}{
		{"inside", 0.25, 0, 0.5, 0.25},
		{"below", -1, 1e-6, 0.5, 1e-6},
		{"above", 0.7, 1e-6, 0.5, 0.5},
		{"swapped", 2, 1, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clamp(tt.v, tt.lo, tt.hi))
		})
	}
}

func TestWrapCycles(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{0.25, 0.25},
		{0.5, 0.5},
		{0.75, -0.25},
		{-0.25, -0.25},
		{-0.75, 0.25},
		{3.1, 0.1},
		{-9, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, WrapCycles(tt.in), 1e-12, "WrapCycles(%v)", tt.in)
	}
}

func TestAmplitudeDB(t *testing.T) {
	assert.InDelta(t, -6, AmplitudeDB(DBToLinear(-6)), 1e-10)
	assert.InDelta(t, 20, AmplitudeDB(-10), 1e-12)
	assert.True(t, math.IsInf(AmplitudeDB(0), -1))
}

func TestWidenNarrow(t *testing.T) {
	src := []float32{0.5, -0.25, 1}
	wide := make([]float64, 2)
	assert.Equal(t, 2, Widen(wide, src))
	assert.Equal(t, []float64{0.5, -0.25}, wide)

	narrow := make([]float32, 3)
	assert.Equal(t, 2, Narrow(narrow, wide))
	assert.Equal(t, []float32{0.5, -0.25, 0}, narrow)
}
