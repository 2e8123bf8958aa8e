// SPDX-License-Identifier: MIT
// Package matrix provides the dense kernels used by the spline transform
// builders: multiplication, matrix-vector product, row slicing, block
// assembly, tolerance zeroing and approximate comparison. All functions
// perform strict fail-fast validation, never mutate their inputs, and return
// freshly allocated results.

package matrix

import (
	"fmt"
	"math"
)

// ZeroSum is the initial value of every accumulator.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping.
const (
	opMul       = "Mul"
	opMatVec    = "MatVec"
	opSliceRows = "SliceRows"
	opSetBlock  = "SetBlock"
	opZeroSmall = "ZeroSmall"
	opAllClose  = "AllClose"
	opSolve     = "Solve"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Mul performs standard matrix multiplication C = A × B (no aliasing).
//
// Implementation:
//   - Stage 1: Validate A,B (not nil) and inner dimensions (A.Cols == B.Rows).
//   - Stage 2: If A and B are *Dense, use i→k→j with row-major strides and skip zeros;
//     otherwise use i→j→k through At.
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (inner mismatch).
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c). Skipping zero A[i,k] matters here: transform
//     matrices from knot insertion are banded.
func Mul(a, b Matrix) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	aRows, aCols, bCols := a.Rows(), a.Cols(), b.Cols()
	res, err := NewDense(aRows, bCols)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	var (
		i, j, k int
		av, bv  float64
	)
	// Fast-path for two Dense matrices
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			var rowOffsetA, rowOffsetB, rowOffsetR int
			for i = 0; i < aRows; i++ {
				rowOffsetA = i * aCols
				rowOffsetR = i * bCols
				for k = 0; k < aCols; k++ {
					av = da.data[rowOffsetA+k]
					if av == 0 {
						continue
					}
					rowOffsetB = k * bCols
					for j = 0; j < bCols; j++ {
						res.data[rowOffsetR+j] += av * db.data[rowOffsetB+j]
					}
				}
			}

			return res, nil
		}
	}

	// Fallback: generic interface triple-loop (i-j-k)
	var current float64
	for i = 0; i < aRows; i++ {
		for j = 0; j < bCols; j++ {
			current = ZeroSum
			for k = 0; k < aCols; k++ {
				if av, err = a.At(i, k); err != nil {
					return nil, matrixErrorf(opMul, err)
				}
				if av == 0 {
					continue
				}
				if bv, err = b.At(k, j); err != nil {
					return nil, matrixErrorf(opMul, err)
				}
				current += av * bv
			}
			res.data[i*bCols+j] = current
		}
	}

	return res, nil
}

// MatVec computes y = m * x for a column vector x.
//
// Contract: m non-nil; x non-nil; len(x) == m.Cols().
// Determinism: fixed i→j loop order.
// Complexity: Time O(r*c), Space O(r) for y.
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	rows, cols := m.Rows(), m.Cols()
	y := make([]float64, rows)

	if d, ok := m.(*Dense); ok {
		var i, j, base int
		var acc float64
		for i = 0; i < d.r; i++ {
			acc = ZeroSum
			base = i * d.c
			for j = 0; j < d.c; j++ {
				if x[j] != 0 {
					acc += d.data[base+j] * x[j]
				}
			}
			y[i] = acc
		}

		return y, nil
	}

	var mv float64
	var err error
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if mv, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opMatVec, err)
			}
			y[i] += mv * x[j]
		}
	}

	return y, nil
}

// SliceRows materializes rows [from, to) of m as a new Dense (copy, not a view).
//
// Errors:
//   - ErrNilMatrix, ErrOutOfRange (bounds outside [0, Rows]), ErrInvalidDimensions (empty range).
//
// Complexity: O((to-from)*c).
func SliceRows(m *Dense, from, to int) (*Dense, error) {
	if m == nil {
		return nil, matrixErrorf(opSliceRows, ErrNilMatrix)
	}
	if from < 0 || to > m.r || from > to {
		return nil, matrixErrorf(opSliceRows, fmt.Errorf("[%d:%d] of %d rows: %w", from, to, m.r, ErrOutOfRange))
	}
	res, err := newDenseWithPolicy(to-from, m.c, m.validateNaNInf)
	if err != nil {
		return nil, matrixErrorf(opSliceRows, err)
	}
	copy(res.data, m.data[from*m.c:to*m.c])

	return res, nil
}

// SetBlock writes src into dst with its top-left corner at (r0, c0), in place.
// dst is the only argument mutated; builders call it on matrices they just allocated.
//
// Errors:
//   - ErrNilMatrix, ErrOutOfRange (block does not fit).
func SetBlock(dst *Dense, r0, c0 int, src *Dense) error {
	if dst == nil || src == nil {
		return matrixErrorf(opSetBlock, ErrNilMatrix)
	}
	if r0 < 0 || c0 < 0 || r0+src.r > dst.r || c0+src.c > dst.c {
		return matrixErrorf(opSetBlock, fmt.Errorf("%dx%d at (%d,%d) into %dx%d: %w",
			src.r, src.c, r0, c0, dst.r, dst.c, ErrOutOfRange))
	}
	for i := 0; i < src.r; i++ {
		copy(dst.data[(r0+i)*dst.c+c0:(r0+i)*dst.c+c0+src.c], src.data[i*src.c:(i+1)*src.c])
	}

	return nil
}

// ZeroSmall returns a copy of m where every entry with |v| < tol is replaced by 0.
// Removes floating-point noise from constructed transforms so that no spurious
// coupling between coefficients survives.
//
// Errors:
//   - ErrNilMatrix, ErrNaNInf (tol not finite or negative).
func ZeroSmall(m *Dense, tol float64) (*Dense, error) {
	if m == nil {
		return nil, matrixErrorf(opZeroSmall, ErrNilMatrix)
	}
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		return nil, matrixErrorf(opZeroSmall, ErrNaNInf)
	}
	res := m.Clone().(*Dense)
	for idx, v := range res.data {
		if math.Abs(v) < tol {
			res.data[idx] = 0
		}
	}

	return res, nil
}

// AllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Returns (true,nil) if all elements satisfy the relation; (false,nil) otherwise.
//
// Policy:
//   - a and b must be non-nil and have identical shapes.
//   - rtol, atol are treated as |rtol|, |atol|.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if math.IsNaN(rtol) || math.IsNaN(atol) || math.IsInf(rtol, 0) || math.IsInf(atol, 0) {
		return false, matrixErrorf(opAllClose, ErrNaNInf)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)
	if err := ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}

	r, c := a.Rows(), a.Cols()
	var av, bv float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			av, _ = a.At(i, j)
			bv, _ = b.At(i, j)
			if math.Abs(av-bv) > atol+rtol*math.Abs(bv) {
				return false, nil
			}
		}
	}

	return true, nil
}
