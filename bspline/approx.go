// SPDX-License-Identifier: MIT

package bspline

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/bspline/algebra"
	"github.com/katalvlaran/bspline/matrix"
	"gonum.org/v1/gonum/floats"
)

// ShiftApprox re-expresses the piece of c on [t, end] on a clamped basis of
// the same degree and length with equidistant interior knots. The new
// coefficients interpolate c at the Greville points of the new basis.
//
// The result is approximate: moving the knots changes the space of
// representable curves, so it matches c only where c happens to lie in the
// new space. Use ShiftFirstKnotsCurve for an exact shift.
//
// Errors:
//   - ErrOutOfDomain: t outside [knots[0], end).
//   - ErrSingularSystem: the interpolation system is singular.
func ShiftApprox(c *Curve[float64], t float64) (*Curve[float64], error) {
	b := c.basis
	lo, hi := b.Domain()
	if math.IsNaN(t) || t < lo || t >= hi {
		return nil, fmt.Errorf("ShiftApprox: t=%v outside [%v, %v): %w", t, lo, hi, ErrOutOfDomain)
	}
	deg, N := b.degree, b.Len()

	knots := make([]float64, 0, N+deg+1)
	for i := 0; i < deg; i++ {
		knots = append(knots, t)
	}
	knots = append(knots, floats.Span(make([]float64, N-deg+1), t, hi)...)
	for i := 0; i < deg; i++ {
		knots = append(knots, hi)
	}
	b2, err := NewBasis(knots, deg)
	if err != nil {
		return nil, fmt.Errorf("ShiftApprox: %w", err)
	}

	g := b2.Greville()
	A, err := b2.Evaluate(g)
	if err != nil {
		return nil, fmt.Errorf("ShiftApprox: %w", err)
	}
	B, err := b.Evaluate(g)
	if err != nil {
		return nil, fmt.Errorf("ShiftApprox: %w", err)
	}
	T, err := matrix.Solve(A, B)
	if err != nil {
		if errors.Is(err, matrix.ErrSingular) {
			return nil, fmt.Errorf("ShiftApprox: %v: %w", err, ErrSingularSystem)
		}

		return nil, fmt.Errorf("ShiftApprox: %w", err)
	}
	Logger().Debug("shift approx", "t", t, "n", N)

	return Transform[float64](algebra.Numeric{}, T, knots, c)
}
