package constellation

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-modem/dsp/core"
	"github.com/cwbudde/algo-modem/dsp/modem"
)

var (
	// ErrNoPoints is returned when nothing is left to analyze after Skip.
	ErrNoPoints = errors.New("constellation: no points to analyze")
	// ErrNoLevels is returned for an empty alphabet.
	ErrNoLevels = errors.New("constellation: empty alphabet")
)

// Config holds analysis parameters.
type Config struct {
	// Levels is the per-axis alphabet.
	Levels []float64
	// Reference is the transmitted sequence. When set, point m is compared
	// with Reference[m-Lag] instead of the nearest alphabet point.
	Reference []modem.Symbol
	Lag       int
	// Skip drops leading points, typically the filter settling transient.
	Skip int
	// EstimateScale divides points by RMS(points)/RMS(alphabet) first.
	EstimateScale bool
}

// Result holds constellation quality metrics. Distances are in alphabet
// units, where the outer levels sit at ±1.
type Result struct {
	Count         int
	Scale         float64
	EVM           float64 // percent of the alphabet RMS
	EVMdB         float64
	MeanDeviation float64
	MaxDeviation  float64
	MeanI, MeanQ  float64
	StdI, StdQ    float64
	SymbolErrors  int
}

// Analyze computes quality metrics for points.
func Analyze(points []modem.Point, cfg Config) (Result, error) {
	if len(cfg.Levels) == 0 {
		return Result{}, ErrNoLevels
	}
	if cfg.Skip < 0 {
		cfg.Skip = 0
	}
	if cfg.Skip >= len(points) {
		return Result{}, ErrNoPoints
	}
	pts := points[cfg.Skip:]

	is := make([]float64, len(pts))
	qs := make([]float64, len(pts))
	for n, p := range pts {
		is[n], qs[n] = p.I, p.Q
	}

	res := Result{Count: len(pts), Scale: 1}
	if cfg.EstimateScale {
		if s := pointRMS(is, qs) / alphabetRMS(cfg.Levels); s > 0 {
			res.Scale = s
		}
	}

	var errPow, refPow, devSum float64
	for n := range pts {
		i, q := is[n]/res.Scale, qs[n]/res.Scale
		is[n], qs[n] = i, q

		nearest := modem.Decide(cfg.Levels, modem.Point{I: i, Q: q})
		dev := math.Hypot(i-nearest.I, q-nearest.Q)
		devSum += dev
		res.MaxDeviation = math.Max(res.MaxDeviation, dev)

		want := nearest
		if cfg.Reference != nil {
			j := cfg.Skip + n - cfg.Lag
			if j < 0 || j >= len(cfg.Reference) {
				continue
			}
			want = cfg.Reference[j]
			if nearest != want {
				res.SymbolErrors++
			}
		}
		di, dq := i-want.I, q-want.Q
		errPow += di*di + dq*dq
		refPow += want.I*want.I + want.Q*want.Q
	}

	res.MeanDeviation = devSum / float64(len(pts))
	if refPow > 0 {
		res.EVM = 100 * math.Sqrt(errPow/refPow)
	}
	res.EVMdB = core.AmplitudeDB(res.EVM / 100)
	res.MeanI, res.StdI = stat.MeanStdDev(is, nil)
	res.MeanQ, res.StdQ = stat.MeanStdDev(qs, nil)
	return res, nil
}

// BestLag returns the lag in [0, maxLag] that minimizes the mean squared
// error between points[m] and reference[m-lag] for m >= skip, together
// with that error.
func BestLag(points []modem.Point, reference []modem.Symbol, maxLag, skip int) (int, float64) {
	best, bestErr := 0, math.Inf(1)
	for lag := 0; lag <= maxLag; lag++ {
		var sum float64
		var n int
		for m := max(skip, lag); m < len(points) && m-lag < len(reference); m++ {
			s := reference[m-lag]
			di, dq := points[m].I-s.I, points[m].Q-s.Q
			sum += di*di + dq*dq
			n++
		}
		if n == 0 {
			continue
		}
		if e := sum / float64(n); e < bestErr {
			best, bestErr = lag, e
		}
	}
	return best, bestErr
}

func pointRMS(is, qs []float64) float64 {
	var sum float64
	for n := range is {
		sum += is[n]*is[n] + qs[n]*qs[n]
	}
	return math.Sqrt(sum / float64(len(is)))
}

// alphabetRMS is the RMS magnitude of uniformly drawn symbols.
func alphabetRMS(levels []float64) float64 {
	var sum float64
	for _, l := range levels {
		sum += l * l
	}
	return math.Sqrt(2 * sum / float64(len(levels)))
}
