// SPDX-License-Identifier: MIT

// Package matrix - Dense storage for transformation matrices.
//
// Layout:
//   - One flat row-major buffer; entry (i, j) lives at i*cols + j.
//   - Indexers report ErrOutOfRange instead of panicking.
//   - Set honours a finite-value policy inherited from the kernel that
//     allocated the matrix (see WithNoValidateNaNInf).
//
// Complexity:
//   - NewDense, NewDenseFrom, Identity, Clone, RawRows: O(r*c).
//   - At, Set: O(1). Row: O(c).

package matrix

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// method tags used by denseErrorf
const (
	ctxAt   = "At"
	ctxSet  = "Set"
	ctxFrom = "From"
	ctxRow  = "Row"
)

func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a row-major float64 matrix with at least one row and column.
type Dense struct {
	r, c           int
	data           []float64 // len == r*c
	validateNaNInf bool      // Set rejects NaN/Inf when true
}

var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense returns a zero rows×cols matrix.
// Returns ErrInvalidDimensions unless rows > 0 and cols > 0.
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols), validateNaNInf: DefaultValidateNaNInf}, nil
}

// newDenseWithPolicy is NewDense with an explicit finite-value policy, for
// kernels that resolved Options.
func newDenseWithPolicy(rows, cols int, validateNaNInf bool) (*Dense, error) {
	m, err := NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	m.validateNaNInf = validateNaNInf

	return m, nil
}

// NewDenseFrom copies a rectangular literal such as {{1, 0}, {0.5, 0.5}}.
//
// Implementation:
//   - Stage 1: reject an empty literal and ragged rows.
//   - Stage 2: copy row by row, rejecting non-finite entries.
//
// Errors:
//   - ErrInvalidDimensions (empty or ragged), ErrNaNInf.
func NewDenseFrom(rows [][]float64) (*Dense, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("Dense.%s: %w", ctxFrom, ErrInvalidDimensions)
	}
	cols := len(rows[0])
	for i := range rows {
		if len(rows[i]) != cols {
			return nil, fmt.Errorf("Dense.%s: row %d has %d cols, want %d: %w",
				ctxFrom, i, len(rows[i]), cols, ErrInvalidDimensions)
		}
	}
	m, err := NewDense(len(rows), cols)
	if err != nil {
		return nil, fmt.Errorf("Dense.%s: %w", ctxFrom, err)
	}
	for i, row := range rows {
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, denseErrorf(ctxFrom, i, j, ErrNaNInf)
			}
		}
		copy(m.data[i*cols:], row)
	}

	return m, nil
}

// Identity returns the n×n identity, the starting point of knot insertion.
func Identity(n int) (*Dense, error) {
	m, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}

	return m, nil
}

func (m *Dense) Rows() int { return m.r }

func (m *Dense) Cols() int { return m.c }

// Shape returns (Rows, Cols).
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

func (m *Dense) offset(row, col int) (int, bool) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, false
	}

	return row*m.c + col, true
}

// At returns entry (row, col).
func (m *Dense) At(row, col int) (float64, error) {
	off, ok := m.offset(row, col)
	if !ok {
		return 0, denseErrorf(ctxAt, row, col, ErrOutOfRange)
	}

	return m.data[off], nil
}

// Set stores v at (row, col). Non-finite v is refused with ErrNaNInf unless
// the matrix was allocated under WithNoValidateNaNInf.
func (m *Dense) Set(row, col int, v float64) error {
	off, ok := m.offset(row, col)
	if !ok {
		return denseErrorf(ctxSet, row, col, ErrOutOfRange)
	}
	if m.validateNaNInf && (math.IsNaN(v) || math.IsInf(v, 0)) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	m.data[off] = v

	return nil
}

// Row returns a copy of row i.
func (m *Dense) Row(i int) ([]float64, error) {
	if i < 0 || i >= m.r {
		return nil, denseErrorf(ctxRow, i, 0, ErrOutOfRange)
	}

	return append([]float64(nil), m.data[i*m.c:(i+1)*m.c]...), nil
}

// RawRows returns the entries as freshly allocated rows.
func (m *Dense) RawRows() [][]float64 {
	out := make([][]float64, m.r)
	for i := range out {
		out[i] = append([]float64(nil), m.data[i*m.c:(i+1)*m.c]...)
	}

	return out
}

// Clone returns an independent copy with the same policy.
func (m *Dense) Clone() Matrix {
	return &Dense{r: m.r, c: m.c, data: append([]float64(nil), m.data...), validateNaNInf: m.validateNaNInf}
}

// String prints one bracketed row per line, e.g. "[1, 0.5]\n[0, -2]\n".
func (m *Dense) String() string {
	var b strings.Builder
	for i := 0; i < m.r; i++ {
		b.WriteByte('[')
		for j := 0; j < m.c; j++ {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strconv.FormatFloat(m.data[i*m.c+j], 'g', -1, 64))
		}
		b.WriteString("]\n")
	}

	return b.String()
}
