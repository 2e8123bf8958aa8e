// SPDX-License-Identifier: MIT

package bspline

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/bspline/matrix"
)

// ExtrapolateT builds the transform extending b by tExtra past its last knot.
//
// The new knot vector keeps the first N knots, repeats the old end knot m
// times and closes with degree+1 knots at end+tExtra. m defaults to one more
// than the number of knots already (nearly) coinciding with knots[N-1];
// WithBoundaryKnots overrides it (1 <= m <= degree+1).
//
// Implementation:
//   - Stage 1: the last degree+1 new coefficients solve A·X = B, where the
//     first degree+1-m rows reproduce the old curve at its last Greville
//     points and the remaining m rows match derivatives degree+1-m..degree at
//     the old end (finite-difference recursion over the derivative bases).
//   - Stage 2: zero entries of X below the tolerance.
//   - Stage 3: T = [I_N; 0] with X written over the bottom-right block.
//
// Returns T of shape (N+m)×N and the new knot vector.
//
// Errors:
//   - ErrOutOfDomain: tExtra <= 0 or not finite.
//   - ErrInvalidBasis: m > degree+1.
//   - ErrSingularSystem: coincident boundary knots or a singular A.
func ExtrapolateT(b *Basis, tExtra float64, opts ...Option) (*matrix.Dense, []float64, error) {
	T, knots, _, err := extrapolate(b, tExtra, gatherOptions(opts...))
	if err != nil {
		return nil, nil, fmt.Errorf("ExtrapolateT: %w", err)
	}

	return T, knots, nil
}

// boundaryKnots derives how many copies of the end knot an extension keeps.
func boundaryKnots(k []float64, deg int) int {
	L := len(k)
	m := 1
	for L-deg-2-m >= 0 && k[L-deg-2-m] >= k[L-deg-2] {
		m++
	}

	return m
}

func extrapolate(b *Basis, tExtra float64, o Options) (*matrix.Dense, []float64, int, error) {
	if math.IsNaN(tExtra) || math.IsInf(tExtra, 0) || tExtra <= 0 {
		return nil, nil, 0, fmt.Errorf("extension %v: %w", tExtra, ErrOutOfDomain)
	}
	k, deg, n := b.knots, b.degree, b.Len()
	L := len(k)
	m := o.boundaryKnots
	if m == 0 {
		m = boundaryKnots(k, deg)
	}
	if m > deg+1 {
		return nil, nil, 0, fmt.Errorf("%d boundary knots for degree %d: %w", m, deg, ErrInvalidBasis)
	}

	k2 := make([]float64, 0, L+m)
	k2 = append(k2, k[:L-deg-1]...)
	for i := 0; i < m; i++ {
		k2 = append(k2, k[L-deg-1])
	}
	for i := 0; i <= deg; i++ {
		k2 = append(k2, k[L-1]+tExtra)
	}
	b2, err := NewBasis(k2, deg)
	if err != nil {
		return nil, nil, 0, err
	}

	A, B, err := extrapolationSystem(b, b2, m)
	if err != nil {
		return nil, nil, 0, err
	}
	X, err := matrix.Solve(A, B)
	if err != nil {
		if errors.Is(err, matrix.ErrSingular) {
			return nil, nil, 0, fmt.Errorf("%v: %w", err, ErrSingularSystem)
		}

		return nil, nil, 0, err
	}
	if X, err = matrix.ZeroSmall(X, o.tolerance); err != nil {
		return nil, nil, 0, err
	}

	T, err := matrix.NewDense(n+m, n)
	if err != nil {
		return nil, nil, 0, err
	}
	for i := 0; i < n; i++ {
		_ = T.Set(i, i, 1)
	}
	if err = matrix.SetBlock(T, n+m-deg-1, n-deg-1, X); err != nil {
		return nil, nil, 0, err
	}
	Logger().Debug("extrapolate", "tExtra", tExtra, "boundaryKnots", m, "rows", T.Rows(), "cols", T.Cols())

	return T, k2, m, nil
}

// extrapolationSystem assembles the (degree+1)×(degree+1) system whose
// unknowns are the last degree+1 coefficients of the extended basis b2 and
// whose right-hand side acts on the last degree+1 coefficients of b.
func extrapolationSystem(b, b2 *Basis, m int) (*matrix.Dense, *matrix.Dense, error) {
	k, k2, deg, n := b.knots, b2.knots, b.degree, b.Len()
	A, err := matrix.NewDense(deg+1, deg+1)
	if err != nil {
		return nil, nil, err
	}
	B, err := matrix.NewDense(deg+1, deg+1)
	if err != nil {
		return nil, nil, err
	}

	if m < deg+1 {
		// value rows at the last degree+1-m Greville points of b
		gr := b.Greville()
		pts := gr[len(gr)-(deg+1-m):]
		newVals, err := b2.Evaluate(pts)
		if err != nil {
			return nil, nil, err
		}
		oldVals, err := b.Evaluate(pts)
		if err != nil {
			return nil, nil, err
		}
		n2 := n + m
		for r := range pts {
			for c := 0; c <= deg; c++ {
				a, _ := newVals.At(r, n2-deg-1-m+c)
				old, _ := oldVals.At(r, n-deg-1+c)
				if c < m {
					_ = B.Set(r, c, old-a)
				} else {
					_ = B.Set(r, c, old)
				}
			}
			for c := 0; c < deg+1-m; c++ {
				a, _ := newVals.At(r, n2-deg-1+c)
				_ = A.Set(r, c, a)
			}
		}
	} else {
		_ = A.Set(0, 0, 1)
		_ = B.Set(0, deg, 1)
	}

	// Derivative rows: Dk maps the last degree+1 coefficients to those of the
	// i-th derivative basis near the boundary.
	Da, err := matrix.Identity(deg + 1)
	if err != nil {
		return nil, nil, err
	}
	Db := Da.Clone().(*matrix.Dense)
	for i := 1; i <= deg; i++ {
		Sa, err := matrix.NewDense(deg+1-i, deg+2-i)
		if err != nil {
			return nil, nil, err
		}
		Sb, err := matrix.NewDense(deg+1-i, deg+2-i)
		if err != nil {
			return nil, nil, err
		}
		p := float64(deg + 1 - i)
		for j := 0; j < deg+1-i; j++ {
			denB := k[j+n] - k[j+n-deg-1+i]
			denA := k2[j+n+m] - k2[j+n-deg-1+m+i]
			if denA == 0 || denB == 0 {
				return nil, nil, fmt.Errorf("derivative %d: coincident knots at the boundary: %w", i, ErrSingularSystem)
			}
			_ = Sb.Set(j, j, -p/denB)
			_ = Sb.Set(j, j+1, p/denB)
			_ = Sa.Set(j, j, -p/denA)
			_ = Sa.Set(j, j+1, p/denA)
		}
		if Da, err = matrix.Mul(Sa, Da); err != nil {
			return nil, nil, err
		}
		if Db, err = matrix.Mul(Sb, Db); err != nil {
			return nil, nil, err
		}
		if i >= deg+1-m {
			rb, _ := Db.Row(Db.Rows() - 1)
			ra, _ := Da.Row(Da.Rows() - (deg - i + 1))
			for c := 0; c <= deg; c++ {
				_ = B.Set(i, c, rb[c])
				_ = A.Set(i, c, ra[c])
			}
		}
	}

	return A, B, nil
}
