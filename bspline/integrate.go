// SPDX-License-Identifier: MIT

package bspline

import (
	"fmt"

	"github.com/katalvlaran/bspline/algebra"
)

// RunningIntegral returns the curve I with I' = c and I(knots[0]) = 0.
// I has degree+1 on the knot vector of c with its first and last knot
// repeated once more; its coefficients follow the prefix recurrence
//
//	I_0 = 0, I_{i+1} = I_i + (k_{i+degree+1} - k_i)/(degree+1) · c_i.
//
// The recurrence assumes clamped end knots (degree+1 repeats at each end),
// which every builder in this package produces.
func RunningIntegral[S any](alg algebra.Scalar[S], c *Curve[S]) (*Curve[S], error) {
	k, deg := c.basis.knots, c.basis.degree
	knots := make([]float64, 0, len(k)+2)
	knots = append(knots, k[0])
	knots = append(knots, k...)
	knots = append(knots, k[len(k)-1])
	b, err := NewBasis(knots, deg+1)
	if err != nil {
		return nil, fmt.Errorf("RunningIntegral: %w", err)
	}

	coeffs := make([]S, len(c.coeffs)+1)
	coeffs[0] = alg.Const(0)
	for i, ci := range c.coeffs {
		w := (k[i+deg+1] - k[i]) / float64(deg+1)
		coeffs[i+1] = alg.Add(coeffs[i], alg.Mul(alg.Const(w), ci))
	}

	return NewCurve(b, coeffs)
}

// DefiniteIntegral returns the integral of c over [a, b] as I(b) - I(a) for
// the running integral I. a and b may be symbolic.
func DefiniteIntegral[S any](alg algebra.Scalar[S], c *Curve[S], a, b S) (S, error) {
	I, err := RunningIntegral(alg, c)
	if err != nil {
		var zero S

		return zero, fmt.Errorf("DefiniteIntegral: %w", err)
	}

	return alg.Sub(EvaluateAt(alg, I, b), EvaluateAt(alg, I, a)), nil
}

// Derivative returns c' on knots[1:len-1] with degree-1. Coefficients are
// degree·(c_{i+1}-c_i)/(k_{i+degree+1}-k_{i+1}); terms over a zero-length
// span are 0.
//
// Errors:
//   - ErrInvalidBasis: degree 0.
func Derivative[S any](alg algebra.Scalar[S], c *Curve[S]) (*Curve[S], error) {
	k, deg := c.basis.knots, c.basis.degree
	if deg == 0 {
		return nil, fmt.Errorf("Derivative: degree 0: %w", ErrInvalidBasis)
	}
	b, err := NewBasis(k[1:len(k)-1], deg-1)
	if err != nil {
		return nil, fmt.Errorf("Derivative: %w", err)
	}
	coeffs := make([]S, len(c.coeffs)-1)
	for i := range coeffs {
		den := k[i+deg+1] - k[i+1]
		if den == 0 {
			coeffs[i] = alg.Const(0)

			continue
		}
		coeffs[i] = alg.Mul(alg.Const(float64(deg)/den), alg.Sub(c.coeffs[i+1], c.coeffs[i]))
	}

	return NewCurve(b, coeffs)
}
