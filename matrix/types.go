// SPDX-License-Identifier: MIT

package matrix

// Matrix is the read/write view the kernels accept. *Dense is the only
// implementation in this module; the interface keeps the kernels usable with
// caller-provided storage.
type Matrix interface {
	Rows() int
	Cols() int

	// At returns entry (i, j), or ErrOutOfRange.
	At(i, j int) (float64, error)

	// Set stores v at (i, j), or returns ErrOutOfRange.
	Set(i, j int, v float64) error

	// Clone returns an independent deep copy.
	Clone() Matrix
}
