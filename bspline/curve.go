// SPDX-License-Identifier: MIT

package bspline

import (
	"fmt"

	"github.com/katalvlaran/bspline/algebra"
)

// Curve is a scalar spline: one coefficient per function of its basis.
// Curves are immutable; operators return new curves.
type Curve[S any] struct {
	basis  *Basis
	coeffs []S
}

// NewCurve pairs b with a copy of coeffs.
//
// Errors:
//   - ErrInvalidBasis (nil basis), ErrCoefficientCount.
func NewCurve[S any](b *Basis, coeffs []S) (*Curve[S], error) {
	if b == nil {
		return nil, fmt.Errorf("NewCurve: nil basis: %w", ErrInvalidBasis)
	}
	if len(coeffs) != b.Len() {
		return nil, fmt.Errorf("NewCurve: %d coefficients for %d basis functions: %w", len(coeffs), b.Len(), ErrCoefficientCount)
	}

	return &Curve[S]{basis: b, coeffs: append([]S(nil), coeffs...)}, nil
}

// Basis returns the curve's basis.
func (c *Curve[S]) Basis() *Basis { return c.basis }

// Coefficients returns a copy of the coefficients.
func (c *Curve[S]) Coefficients() []S { return append([]S(nil), c.coeffs...) }

// Degree is shorthand for c.Basis().Degree().
func (c *Curve[S]) Degree() int { return c.basis.degree }

// EvaluateAt returns sum_i c_i·B_i(x). Both the point and the coefficients
// may be symbolic.
func EvaluateAt[S any](alg algebra.Scalar[S], c *Curve[S], x S) S {
	v, _ := algebra.Dot(alg, EvaluateBasis(alg, c.basis, x), c.coeffs)

	return v
}

// Value evaluates a numeric curve at x.
func Value(c *Curve[float64], x float64) float64 {
	return EvaluateAt[float64](algebra.Numeric{}, c, x)
}

// Lift re-expresses a numeric curve in another algebra, e.g. to evaluate it
// at a symbolic point.
func Lift[S any](alg algebra.Scalar[S], c *Curve[float64]) *Curve[S] {
	return &Curve[S]{basis: c.basis, coeffs: algebra.Consts(alg, c.coeffs)}
}
