// SPDX-License-Identifier: MIT

package algebra

import (
	"fmt"

	"github.com/katalvlaran/bspline/matrix"
)

// Matrix is a row-major dense matrix over an arbitrary scalar type.
type Matrix[S any] struct {
	r, c int
	data []S
}

// newMatrix allocates r×c storage; entries hold the zero value of S until filled.
func newMatrix[S any](rows, cols int) (*Matrix[S], error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("algebra: %dx%d: %w", rows, cols, matrix.ErrInvalidDimensions)
	}

	return &Matrix[S]{r: rows, c: cols, data: make([]S, rows*cols)}, nil
}

// FromRows copies a rectangular row-set literal into a new Matrix.
//
// Errors:
//   - matrix.ErrInvalidDimensions (empty or ragged input).
func FromRows[S any](rows [][]S) (*Matrix[S], error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("algebra: FromRows: %w", matrix.ErrInvalidDimensions)
	}
	m, err := newMatrix[S](len(rows), len(rows[0]))
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != m.c {
			return nil, fmt.Errorf("algebra: FromRows: row %d: %w", i, matrix.ErrInvalidDimensions)
		}
		copy(m.data[i*m.c:(i+1)*m.c], row)
	}

	return m, nil
}

// Rows returns the row count.
func (m *Matrix[S]) Rows() int { return m.r }

// Cols returns the column count.
func (m *Matrix[S]) Cols() int { return m.c }

// At returns entry (i, j) or matrix.ErrOutOfRange.
func (m *Matrix[S]) At(i, j int) (S, error) {
	var zero S
	if i < 0 || i >= m.r || j < 0 || j >= m.c {
		return zero, fmt.Errorf("algebra: At(%d,%d): %w", i, j, matrix.ErrOutOfRange)
	}

	return m.data[i*m.c+j], nil
}

// Set assigns entry (i, j) or returns matrix.ErrOutOfRange.
func (m *Matrix[S]) Set(i, j int, v S) error {
	if i < 0 || i >= m.r || j < 0 || j >= m.c {
		return fmt.Errorf("algebra: Set(%d,%d): %w", i, j, matrix.ErrOutOfRange)
	}
	m.data[i*m.c+j] = v

	return nil
}

// Row returns a copy of row i, or nil when i is out of range.
func (m *Matrix[S]) Row(i int) []S {
	if i < 0 || i >= m.r {
		return nil
	}

	return append([]S(nil), m.data[i*m.c:(i+1)*m.c]...)
}

// Block copies the h×w window whose top-left corner is (r0, c0).
func (m *Matrix[S]) Block(r0, c0, h, w int) (*Matrix[S], error) {
	if r0 < 0 || c0 < 0 || h <= 0 || w <= 0 || r0+h > m.r || c0+w > m.c {
		return nil, fmt.Errorf("algebra: Block(%d,%d,%d,%d) of %dx%d: %w", r0, c0, h, w, m.r, m.c, matrix.ErrOutOfRange)
	}
	out := &Matrix[S]{r: h, c: w, data: make([]S, h*w)}
	for i := 0; i < h; i++ {
		copy(out.data[i*w:(i+1)*w], m.data[(r0+i)*m.c+c0:(r0+i)*m.c+c0+w])
	}

	return out, nil
}

// WithBlock returns a copy of m with src written at (r0, c0). m is not modified.
func (m *Matrix[S]) WithBlock(r0, c0 int, src *Matrix[S]) (*Matrix[S], error) {
	if r0 < 0 || c0 < 0 || r0+src.r > m.r || c0+src.c > m.c {
		return nil, fmt.Errorf("algebra: WithBlock %dx%d at (%d,%d) into %dx%d: %w",
			src.r, src.c, r0, c0, m.r, m.c, matrix.ErrOutOfRange)
	}
	out := &Matrix[S]{r: m.r, c: m.c, data: append([]S(nil), m.data...)}
	for i := 0; i < src.r; i++ {
		copy(out.data[(r0+i)*m.c+c0:(r0+i)*m.c+c0+src.c], src.data[i*src.c:(i+1)*src.c])
	}

	return out, nil
}

// RawRows returns a deep copy of the entries as rows.
func (m *Matrix[S]) RawRows() [][]S {
	out := make([][]S, m.r)
	for i := range out {
		out[i] = m.Row(i)
	}

	return out
}

// Dense converts a float64 matrix back into package matrix storage.
func Dense(m *Matrix[float64]) (*matrix.Dense, error) {
	return matrix.NewDenseFrom(m.RawRows())
}
