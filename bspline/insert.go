// SPDX-License-Identifier: MIT

package bspline

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/bspline/matrix"
)

// InsertKnotsT builds the Boehm knot-insertion transform for inserting every
// value of ts (repeats allowed) into b.
//
// Implementation:
//   - Stage 1: start from the N×N identity.
//   - Stage 2: per inserted t, build the (N+1)×N step with weights
//     w_j = 0 for t <= k_j, 1 for t >= k_{j+degree}, (t-k_j)/(k_{j+degree}-k_j) otherwise;
//     row j holds 1-w_j at column j-1 and w_j at column j. Left-multiply and
//     insert t into the sorted knot vector.
//
// Returns T of shape (N+len(ts))×N and the new knot vector.
//
// Errors:
//   - ErrOutOfDomain: t outside [knots[0], knots[-1]] or not finite.
//
// Complexity:
//   - Time O(len(ts)·N²), Space O(N²).
func InsertKnotsT(b *Basis, ts []float64) (*matrix.Dense, []float64, error) {
	lo, hi := b.Domain()
	for _, t := range ts {
		if math.IsNaN(t) || t < lo || t > hi {
			return nil, nil, fmt.Errorf("InsertKnotsT: knot %v outside [%v, %v]: %w", t, lo, hi, ErrOutOfDomain)
		}
	}

	n, deg := b.Len(), b.degree
	knots := b.Knots()
	T, err := matrix.Identity(n)
	if err != nil {
		return nil, nil, fmt.Errorf("InsertKnotsT: %w", err)
	}

	for _, t := range ts {
		step, err := matrix.NewDense(n+1, n)
		if err != nil {
			return nil, nil, fmt.Errorf("InsertKnotsT: %w", err)
		}
		for j := 0; j <= n; j++ {
			w := insertionWeight(knots, deg, j, t)
			if j > 0 {
				_ = step.Set(j, j-1, 1-w)
			}
			if j < n {
				_ = step.Set(j, j, w)
			}
		}
		if T, err = matrix.Mul(step, T); err != nil {
			return nil, nil, fmt.Errorf("InsertKnotsT: %w", err)
		}
		knots = insertSorted(knots, t)
		n++
	}
	Logger().Debug("knot insertion", "inserted", len(ts), "rows", T.Rows(), "cols", T.Cols())

	return T, knots, nil
}

func insertionWeight(knots []float64, deg, j int, t float64) float64 {
	switch {
	case t <= knots[j]:
		return 0
	case t < knots[j+deg]:
		return (t - knots[j]) / (knots[j+deg] - knots[j])
	default:
		return 1
	}
}

// insertSorted places t after any equal knots.
func insertSorted(knots []float64, t float64) []float64 {
	i := sort.Search(len(knots), func(i int) bool { return knots[i] > t })
	out := make([]float64, 0, len(knots)+1)
	out = append(out, knots[:i]...)
	out = append(out, t)

	return append(out, knots[i:]...)
}
