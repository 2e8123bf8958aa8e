// SPDX-License-Identifier: MIT

package bspline

import (
	"fmt"
	"math"

	"github.com/katalvlaran/bspline/algebra"
	"github.com/katalvlaran/bspline/matrix"
)

// Transform applies T to the coefficients of c and attaches the basis
// (knots, c.Degree()).
//
// Errors:
//   - ErrInvalidBasis (bad knots), ErrCoefficientCount (T does not fit the
//     curve or the new basis).
func Transform[S any](alg algebra.Algebra[S], T *matrix.Dense, knots []float64, c *Curve[S]) (*Curve[S], error) {
	if T == nil || T.Cols() != len(c.coeffs) {
		return nil, fmt.Errorf("Transform: transform does not match %d coefficients: %w", len(c.coeffs), ErrCoefficientCount)
	}
	b, err := NewBasis(knots, c.basis.degree)
	if err != nil {
		return nil, fmt.Errorf("Transform: %w", err)
	}
	coeffs, err := alg.MatVec(alg.Lift(T), c.coeffs)
	if err != nil {
		return nil, fmt.Errorf("Transform: %w", err)
	}
	out, err := NewCurve(b, coeffs)
	if err != nil {
		return nil, fmt.Errorf("Transform: %w", err)
	}

	return out, nil
}

// InsertKnots inserts ts into the basis of c without changing the curve.
func InsertKnots[S any](alg algebra.Algebra[S], c *Curve[S], ts []float64) (*Curve[S], error) {
	T, knots, err := InsertKnotsT(c.basis, ts)
	if err != nil {
		return nil, err
	}

	return Transform(alg, T, knots, c)
}

// Crop restricts c to [min, max]; the result agrees with c there.
func Crop[S any](alg algebra.Algebra[S], c *Curve[S], min, max float64) (*Curve[S], error) {
	T, knots, err := CropT(c.basis, min, max)
	if err != nil {
		return nil, err
	}

	return Transform(alg, T, knots, c)
}

// Extrapolate extends c by tExtra, matching derivatives 0..degree at the old end.
func Extrapolate[S any](alg algebra.Algebra[S], c *Curve[S], tExtra float64, opts ...Option) (*Curve[S], error) {
	T, knots, err := ExtrapolateT(c.basis, tExtra, opts...)
	if err != nil {
		return nil, err
	}

	return Transform(alg, T, knots, c)
}

// ShiftOverKnot advances c by one knot interval.
func ShiftOverKnot[S any](alg algebra.Algebra[S], c *Curve[S], opts ...Option) (*Curve[S], error) {
	T, knots, err := ShiftOverKnotT(c.basis, opts...)
	if err != nil {
		return nil, err
	}

	return Transform(alg, T, knots, c)
}

// ShiftFirstKnots returns T·c (Tinv·c with WithInverse) for the transform
// moving the first degree+1 knots to t.
//
// With the numeric algebra the transform is built and applied directly. With
// the symbolic algebra the transform is built once over fresh symbols for the
// coefficients and t, compiled, and the callable is applied to (c, t); pass
// WithCompiler to reuse the compiled function across calls.
//
// Errors:
//   - ErrSingularSystem: for a constant t (numeric, or a folded symbolic
//     constant) whose transform is singular, and for any constant result
//     that is not finite.
func ShiftFirstKnots[S any](alg algebra.Algebra[S], c *Curve[S], t S, opts ...Option) ([]S, error) {
	o := gatherOptions(opts...)
	if alg.Kind() == algebra.KindNumeric {
		T, Tinv, err := ShiftFirstKnotsT(alg, c.basis, t, o.inverse)
		if err != nil {
			return nil, err
		}
		if o.inverse {
			T = Tinv
		}

		return alg.MatVec(T, c.coeffs)
	}

	// A constant t gets the structural checks the compiled form cannot make.
	if v, ok := alg.Float(t); ok {
		if _, _, err := ShiftFirstKnotsT[float64](algebra.Numeric{}, c.basis, v, o.inverse); err != nil {
			return nil, fmt.Errorf("ShiftFirstKnots: %w", err)
		}
	}

	var fn algebra.Callable[S]
	var err error
	if o.compiler != nil {
		fn, err = compiledShift(o.compiler, alg, c.basis, o.inverse)
	} else {
		fn, err = compileShift(alg, c.basis, o.inverse)
	}
	if err != nil {
		return nil, fmt.Errorf("ShiftFirstKnots: %w", err)
	}
	out, err := fn.Call(c.coeffs, []S{t})
	if err != nil {
		return nil, fmt.Errorf("ShiftFirstKnots: %w", err)
	}
	if vals, ok := algebra.Floats(alg, out); ok {
		for i, v := range vals {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("ShiftFirstKnots: coefficient %d is %v: %w", i, v, ErrSingularSystem)
			}
		}
	}

	return out, nil
}

// compileShift builds f(coeffs, t) = T(t)·coeffs (or Tinv(t)·coeffs) over
// fresh symbols and compiles it.
func compileShift[S any](alg algebra.Algebra[S], b *Basis, inverse bool) (algebra.Callable[S], error) {
	cs, err := alg.Symbols("c", b.Len())
	if err != nil {
		return nil, err
	}
	ts, err := alg.Symbols("t", 1)
	if err != nil {
		return nil, err
	}
	T, Tinv, err := ShiftFirstKnotsT(alg, b, ts[0], inverse)
	if err != nil {
		return nil, err
	}
	if inverse {
		T = Tinv
	}
	out, err := alg.MatVec(T, cs)
	if err != nil {
		return nil, err
	}
	name := "shift_first_knots"
	if inverse {
		name += "_inverse"
	}

	return alg.Compile(name, [][]S{cs, ts}, out)
}

// ShiftFirstKnotsCurve moves the first degree+1 knots of a numeric curve to t
// and returns the curve on the basis [t]*(degree+1) + knots[degree+1:]. On
// [t, end] it agrees with c.
//
// Errors:
//   - ErrOutOfDomain: t >= knots[degree+1] or not finite.
//   - ErrSingularSystem: see ShiftFirstKnotsT.
func ShiftFirstKnotsCurve(c *Curve[float64], t float64) (*Curve[float64], error) {
	k, deg := c.basis.knots, c.basis.degree
	if !(t < k[deg+1]) {
		return nil, fmt.Errorf("ShiftFirstKnotsCurve: t=%v not below knot %v: %w", t, k[deg+1], ErrOutOfDomain)
	}
	coeffs, err := ShiftFirstKnots[float64](algebra.Numeric{}, c, t)
	if err != nil {
		return nil, fmt.Errorf("ShiftFirstKnotsCurve: %w", err)
	}
	knots := make([]float64, 0, len(k))
	for i := 0; i <= deg; i++ {
		knots = append(knots, t)
	}
	b, err := NewBasis(append(knots, k[deg+1:]...), deg)
	if err != nil {
		return nil, fmt.Errorf("ShiftFirstKnotsCurve: %w", err)
	}

	return NewCurve(b, coeffs)
}
