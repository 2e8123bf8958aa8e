// SPDX-License-Identifier: MIT

// Package matrix - sentinel errors.
//
// Kernels return these wrapped with their operation name, e.g.
// "Solve: condition estimate +Inf: matrix: singular matrix"; match with
// errors.Is. Checks run in the order nil, shape/index, NaN/Inf, numeric.

package matrix

import "errors"

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive
	// or that a row-set literal is ragged.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set) return this, never panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g. Mul where a.Cols != b.Rows, or a vector of the wrong length.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNilMatrix indicates that a nil matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrSingular is returned when a linear system is exactly or numerically singular.
	ErrSingular = errors.New("matrix: singular matrix")
)
