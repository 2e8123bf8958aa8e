// SPDX-License-Identifier: MIT

package algebra

import "errors"

// Shape and singularity failures reuse the matrix sentinels
// (matrix.ErrDimensionMismatch, matrix.ErrSingular, ...). The errors below
// are specific to the numeric/symbolic split.
var (
	// ErrNotSymbolic is returned when a graph-only operation (Symbols, Compile)
	// is requested from the numeric algebra.
	ErrNotSymbolic = errors.New("algebra: operation requires the symbolic algebra")

	// ErrNotSymbol is returned when a compile input is not a free symbol.
	ErrNotSymbol = errors.New("algebra: compile input is not a symbol")
)
