// SPDX-License-Identifier: MIT

package bspline

import (
	"fmt"
	"math"

	"github.com/katalvlaran/bspline/algebra"
)

// ShiftFirstKnotsT builds the transform that moves the first degree+1 knots
// of b to t, leaving every other knot in place. t may be symbolic.
//
// Implementation:
//   - Stage 1: compose degree+1 blending stages; stage s is
//     (degree+2+s)×(degree+1+s) with rows j <= s copied, rows j >= degree+1
//     shifted, and rows in between blending with
//     (k_{j+degree-s} - t)/(k_{j+degree-s} - k_j) and (t - k_j)/(k_{j+degree-s} - k_j).
//   - Stage 2: T is the N×N identity with its leading (degree+1)×(degree+1)
//     block replaced by the last degree+1 rows of the composition. T is upper
//     triangular.
//   - Stage 3 (inverse): back substitution,
//     Tinv[i][i] = 1/T[i][i], Tinv[i][j] = -1/T[i][i] · sum_{k=i+1..j} T[i][k]·Tinv[k][j].
//
// Tinv is nil unless inverse is true.
//
// Errors:
//   - ErrOutOfDomain: numeric t is NaN or Inf.
//   - ErrSingularSystem: coincident knots inside the first degree+1 intervals,
//     or a zero diagonal entry when inverting.
func ShiftFirstKnotsT[S any](alg algebra.Algebra[S], b *Basis, t S, inverse bool) (T, Tinv *algebra.Matrix[S], err error) {
	if v, ok := alg.Float(t); ok && (math.IsNaN(v) || math.IsInf(v, 0)) {
		return nil, nil, fmt.Errorf("ShiftFirstKnotsT: t=%v: %w", v, ErrOutOfDomain)
	}
	k, deg, N := b.knots, b.degree, b.Len()

	acc, err := alg.Eye(deg + 1)
	if err != nil {
		return nil, nil, fmt.Errorf("ShiftFirstKnotsT: %w", err)
	}
	for s := 0; s <= deg; s++ {
		stage, err := alg.Zeros(deg+2+s, deg+1+s)
		if err != nil {
			return nil, nil, fmt.Errorf("ShiftFirstKnotsT: %w", err)
		}
		for j := 0; j < deg+2+s; j++ {
			switch {
			case j >= deg+1:
				_ = stage.Set(j, j-1, alg.Const(1))
			case j <= s:
				_ = stage.Set(j, j, alg.Const(1))
			default:
				hi, lo := k[j+deg-s], k[j]
				if hi == lo {
					return nil, nil, fmt.Errorf("ShiftFirstKnotsT: knots %d and %d coincide: %w", j, j+deg-s, ErrSingularSystem)
				}
				den := alg.Const(hi - lo)
				_ = stage.Set(j, j-1, alg.Div(alg.Sub(alg.Const(hi), t), den))
				_ = stage.Set(j, j, alg.Div(alg.Sub(t, alg.Const(lo)), den))
			}
		}
		if acc, err = alg.MatMul(stage, acc); err != nil {
			return nil, nil, fmt.Errorf("ShiftFirstKnotsT: %w", err)
		}
	}

	block, err := acc.Block(deg+1, 0, deg+1, deg+1)
	if err != nil {
		return nil, nil, fmt.Errorf("ShiftFirstKnotsT: %w", err)
	}
	id, err := alg.Eye(N)
	if err != nil {
		return nil, nil, fmt.Errorf("ShiftFirstKnotsT: %w", err)
	}
	if T, err = id.WithBlock(0, 0, block); err != nil {
		return nil, nil, fmt.Errorf("ShiftFirstKnotsT: %w", err)
	}
	Logger().Debug("shift first knots", "kind", alg.Kind(), "n", N, "inverse", inverse)
	if !inverse {
		return T, nil, nil
	}

	if Tinv, err = upperInverse(alg, T, deg+1); err != nil {
		return nil, nil, fmt.Errorf("ShiftFirstKnotsT: %w", err)
	}

	return T, Tinv, nil
}

// upperInverse inverts the leading n×n upper-triangular block of T by back
// substitution; the rest of T is the identity.
func upperInverse[S any](alg algebra.Algebra[S], T *algebra.Matrix[S], n int) (*algebra.Matrix[S], error) {
	inv, err := alg.Eye(T.Rows())
	if err != nil {
		return nil, err
	}
	at := func(m *algebra.Matrix[S], i, j int) S {
		v, _ := m.At(i, j)

		return v
	}
	for i := n - 1; i >= 0; i-- {
		d := at(T, i, i)
		if alg.IsZero(d) {
			return nil, fmt.Errorf("zero diagonal at %d: %w", i, ErrSingularSystem)
		}
		r := alg.Div(alg.Const(1), d)
		_ = inv.Set(i, i, r)
		for j := n - 1; j > i; j-- {
			s := alg.Const(0)
			for kk := i + 1; kk <= j; kk++ {
				if alg.IsZero(at(T, i, kk)) {
					continue
				}
				s = alg.Add(s, alg.Mul(at(T, i, kk), at(inv, kk, j)))
			}
			_ = inv.Set(i, j, alg.Mul(alg.Neg(r), s))
		}
	}

	return inv, nil
}
