// SPDX-License-Identifier: MIT

package bspline

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/bspline/algebra"
	"github.com/katalvlaran/bspline/matrix"
)

// Basis is an immutable (knot vector, degree) pair. Its length is the number
// of basis functions, len(knots) - degree - 1.
type Basis struct {
	knots  []float64
	degree int
}

// NewBasis validates and copies knots.
//
// Errors:
//   - ErrInvalidBasis: negative degree, fewer than 2·(degree+1) knots,
//     NaN/Inf knot, or a decreasing pair.
func NewBasis(knots []float64, degree int) (*Basis, error) {
	if degree < 0 {
		return nil, fmt.Errorf("NewBasis: degree %d: %w", degree, ErrInvalidBasis)
	}
	if len(knots) < 2*(degree+1) {
		return nil, fmt.Errorf("NewBasis: %d knots for degree %d: %w", len(knots), degree, ErrInvalidBasis)
	}
	for i, k := range knots {
		if math.IsNaN(k) || math.IsInf(k, 0) {
			return nil, fmt.Errorf("NewBasis: knot %d is %v: %w", i, k, ErrInvalidBasis)
		}
		if i > 0 && k < knots[i-1] {
			return nil, fmt.Errorf("NewBasis: knots[%d]=%v < knots[%d]=%v: %w", i, k, i-1, knots[i-1], ErrInvalidBasis)
		}
	}

	return &Basis{knots: append([]float64(nil), knots...), degree: degree}, nil
}

// Len returns the number of basis functions.
func (b *Basis) Len() int { return len(b.knots) - b.degree - 1 }

// Degree returns the polynomial degree.
func (b *Basis) Degree() int { return b.degree }

// Knots returns a copy of the knot vector.
func (b *Basis) Knots() []float64 { return append([]float64(nil), b.knots...) }

// Domain returns the first and last knot.
func (b *Basis) Domain() (lo, hi float64) { return b.knots[0], b.knots[len(b.knots)-1] }

// Multiplicity counts the knots equal to v.
func (b *Basis) Multiplicity(v float64) int {
	lo := sort.SearchFloat64s(b.knots, v)
	n := 0
	for i := lo; i < len(b.knots) && b.knots[i] == v; i++ {
		n++
	}

	return n
}

// Greville returns the knot average of every basis function: the mean of
// knots[i+1..i+degree], or the interval midpoint for degree 0.
func (b *Basis) Greville() []float64 {
	out := make([]float64, b.Len())
	if b.degree == 0 {
		for i := range out {
			out[i] = (b.knots[i] + b.knots[i+1]) / 2
		}

		return out
	}
	for i := range out {
		s := 0.0
		for _, k := range b.knots[i+1 : i+b.degree+1] {
			s += k
		}
		out[i] = s / float64(b.degree)
	}

	return out
}

// Evaluate returns the len(points)×Len() matrix of basis values.
//
// Errors:
//   - matrix.ErrInvalidDimensions (no points), ErrOutOfDomain (non-finite point).
func (b *Basis) Evaluate(points []float64) (*matrix.Dense, error) {
	out, err := matrix.NewDense(len(points), b.Len())
	if err != nil {
		return nil, fmt.Errorf("Evaluate: %w", err)
	}
	for i, x := range points {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, fmt.Errorf("Evaluate: point %d is %v: %w", i, x, ErrOutOfDomain)
		}
		for j, v := range EvaluateBasis[float64](algebra.Numeric{}, b, x) {
			if err = out.Set(i, j, v); err != nil {
				return nil, fmt.Errorf("Evaluate: point %d: %w", i, err)
			}
		}
	}

	return out, nil
}

// EvaluateBasis runs the Cox–de Boor recursion at x and returns one value per
// basis function.
//
// The order-0 function i is the indicator of (knots[i], knots[i+1]]; among the
// first degree+1 functions, those starting at a repeated left boundary use the
// closed interval so that the domain start is covered. Terms whose knot
// difference is zero are dropped. Interval tests are 0/1 masks from the
// algebra, so a symbolic x yields a branch-free graph.
func EvaluateBasis[S any](alg algebra.Scalar[S], b *Basis, x S) []S {
	k, deg := b.knots, b.degree
	vals := make([]S, len(k)-1)
	for i := range vals {
		var lower S
		if i < deg+1 && k[0] == k[i] {
			lower = alg.Ge(x, alg.Const(k[i]))
		} else {
			lower = alg.Gt(x, alg.Const(k[i]))
		}
		vals[i] = alg.Mul(lower, alg.Le(x, alg.Const(k[i+1])))
	}

	for d := 1; d <= deg; d++ {
		next := make([]S, len(k)-d-1)
		for i := range next {
			v := alg.Const(0)
			if den := k[i+d] - k[i]; den != 0 && !alg.IsZero(vals[i]) {
				w := alg.Div(alg.Sub(x, alg.Const(k[i])), alg.Const(den))
				v = alg.Mul(w, vals[i])
			}
			if den := k[i+d+1] - k[i+1]; den != 0 && !alg.IsZero(vals[i+1]) {
				w := alg.Div(alg.Sub(alg.Const(k[i+d+1]), x), alg.Const(den))
				v = alg.Add(v, alg.Mul(w, vals[i+1]))
			}
			next[i] = v
		}
		vals = next
	}

	return vals
}

// String formats the basis as "degree 3 [0 0 0 0 1 2 2 2 2]".
func (b *Basis) String() string {
	return fmt.Sprintf("degree %d %v", b.degree, b.knots)
}
