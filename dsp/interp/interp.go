package interp

import (
	"fmt"
	"strings"
)

// Mode selects an interpolation kernel.
type Mode int

const (
	Hermite Mode = iota
	Linear
	Lagrange
)

func (m Mode) String() string {
	switch m {
	case Hermite:
		return "hermite"
	case Linear:
		return "linear"
	case Lagrange:
		return "lagrange"
	default:
		return "unknown"
	}
}

// ParseMode converts a kernel name to a Mode. The empty string is Hermite.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hermite", "":
		return Hermite, nil
	case "linear":
		return Linear, nil
	case "lagrange":
		return Lagrange, nil
	default:
		return Hermite, fmt.Errorf("interp: unknown mode %q", s)
	}
}

// At interpolates between x0 and x1 at fraction t in [0, 1] with the
// selected kernel. xm1 and x2 are the outer neighbors.
func At(m Mode, t, xm1, x0, x1, x2 float64) float64 {
	switch m {
	case Linear:
		return Linear2(t, x0, x1)
	case Lagrange:
		return Lagrange4(t, xm1, x0, x1, x2)
	default:
		return Hermite4(t, xm1, x0, x1, x2)
	}
}

// Linear2 interpolates linearly from x0 to x1.
func Linear2(t, x0, x1 float64) float64 {
	return x0 + t*(x1-x0)
}

// Hermite4 computes cubic 4-point interpolation.
// It interpolates from x0 to x1 using neighbor points xm1 and x2.
func Hermite4(t, xm1, x0, x1, x2 float64) float64 {
	c0 := x0
	c1 := 0.5 * (x1 - xm1)
	c2 := xm1 - 2.5*x0 + 2*x1 - 0.5*x2
	c3 := 0.5*(x2-xm1) + 1.5*(x0-x1)
	return ((c3*t+c2)*t+c1)*t + c0
}

// Lagrange4 evaluates the cubic through (-1, xm1), (0, x0), (1, x1), (2, x2) at t.
func Lagrange4(t, xm1, x0, x1, x2 float64) float64 {
	tm1 := t + 1
	t1 := t - 1
	t2 := t - 2
	return -t*t1*t2/6*xm1 +
		tm1*t1*t2/2*x0 -
		tm1*t*t2/2*x1 +
		tm1*t*t1/6*x2
}
