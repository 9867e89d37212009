// Package interp provides the fractional interpolation kernels used by
// delay lines.
//
//   - [Linear2]:  2-point linear interpolation
//   - [Hermite4]: 4-point cubic Hermite (default)
//   - [Lagrange4]: 4-point cubic Lagrange
//
// [Mode] selects one of them at construction time of a [delay.Line].
package interp
