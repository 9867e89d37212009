package testutil

import (
	"math"
	"testing"
)

// MaxAbsDiff returns the largest |a[i]-b[i]| over the common prefix.
func MaxAbsDiff(a, b []float64) float64 {
	var d float64
	for i := range min(len(a), len(b)) {
		d = math.Max(d, math.Abs(a[i]-b[i]))
	}
	return d
}

// RequireSliceNearlyEqual stops the test unless got and want have equal
// length and agree within eps everywhere. The first offending index is
// reported.
func RequireSliceNearlyEqual(t testing.TB, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d samples, want %d", len(got), len(want))
	}
	for i, w := range want {
		if d := math.Abs(got[i] - w); !(d <= eps) {
			t.Fatalf("[%d] = %v, want %v within %v", i, got[i], w, eps)
		}
	}
}

// RequireFinite stops the test at the first NaN or infinite sample.
func RequireFinite(t testing.TB, x []float64) {
	t.Helper()
	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("[%d] is not finite: %v", i, v)
		}
	}
}
