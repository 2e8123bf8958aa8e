// SPDX-License-Identifier: MIT

package matrix

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Solve returns X such that A·X = B for a square A.
//
// Implementation:
//   - Stage 1: Validate A square, B non-nil with B.Rows == A.Rows.
//   - Stage 2: Factorize A with partial-pivot LU (gonum).
//   - Stage 3: Reject the system when the reciprocal condition estimate falls
//     under the configured threshold or the solver reports a Condition error.
//   - Stage 4: Copy the solution into a fresh Dense and verify it is finite.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrSingular.
//
// Complexity:
//   - Time O(n³ + n²·k) for A n×n and B n×k, Space O(n² + n·k).
func Solve(a, b Matrix, opts ...Option) (*Dense, error) {
	o := gatherOptions(opts...)
	if err := ValidateSquare(a); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	if b.Rows() != a.Rows() {
		return nil, matrixErrorf(opSolve, fmt.Errorf("rhs has %d rows, want %d: %w", b.Rows(), a.Rows(), ErrDimensionMismatch))
	}

	ga, err := toGonum(a)
	if err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	gb, err := toGonum(b)
	if err != nil {
		return nil, matrixErrorf(opSolve, err)
	}

	var lu mat.LU
	lu.Factorize(ga)
	cond := lu.Cond()
	if math.IsInf(cond, 0) || math.IsNaN(cond) || 1/cond < o.singularRcond {
		return nil, matrixErrorf(opSolve, fmt.Errorf("condition estimate %g: %w", cond, ErrSingular))
	}

	var x mat.Dense
	if err = lu.SolveTo(&x, false, gb); err != nil {
		var c mat.Condition
		if errors.As(err, &c) {
			return nil, matrixErrorf(opSolve, fmt.Errorf("condition %g: %w", float64(c), ErrSingular))
		}

		return nil, matrixErrorf(opSolve, err)
	}

	r, cc := x.Dims()
	res, err := newDenseWithPolicy(r, cc, o.validateNaNInf)
	if err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	for i := 0; i < r; i++ {
		for j := 0; j < cc; j++ {
			v := x.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, matrixErrorf(opSolve, fmt.Errorf("solution entry (%d,%d): %w", i, j, ErrSingular))
			}
			res.data[i*cc+j] = v
		}
	}

	return res, nil
}

// toGonum copies any Matrix into a gonum *mat.Dense.
func toGonum(m Matrix) (*mat.Dense, error) {
	r, c := m.Rows(), m.Cols()
	if d, ok := m.(*Dense); ok {
		buf := make([]float64, len(d.data))
		copy(buf, d.data)

		return mat.NewDense(r, c, buf), nil
	}
	buf := make([]float64, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v, err := m.At(i, j)
			if err != nil {
				return nil, err
			}
			buf[i*c+j] = v
		}
	}

	return mat.NewDense(r, c, buf), nil
}
