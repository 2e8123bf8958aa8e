// SPDX-License-Identifier: MIT

package bspline

import "errors"

// Every operator wraps one of these with its name, e.g.
// fmt.Errorf("CropT: %w", ErrOutOfDomain). Match with errors.Is.
var (
	// ErrInvalidBasis indicates a malformed knot vector or degree: fewer than
	// 2·(degree+1) knots, a decreasing or non-finite knot, a negative degree.
	ErrInvalidBasis = errors.New("bspline: invalid basis")

	// ErrDegreeMismatch indicates curves of different degree in an operation
	// that requires equal degrees.
	ErrDegreeMismatch = errors.New("bspline: degree mismatch")

	// ErrOutOfDomain indicates crop bounds outside the knot span, an inserted
	// knot outside the span, or a non-positive extension length.
	ErrOutOfDomain = errors.New("bspline: parameter out of domain")

	// ErrSingularSystem indicates a degenerate knot configuration: the
	// extrapolation system is singular or a shift transform has a zero pivot.
	ErrSingularSystem = errors.New("bspline: singular system")

	// ErrCoefficientCount indicates a coefficient slice whose length differs
	// from the basis length.
	ErrCoefficientCount = errors.New("bspline: coefficient count does not match basis")

	// ErrSegmentShape indicates concat input whose segment groups or
	// durations do not line up.
	ErrSegmentShape = errors.New("bspline: inconsistent segment shape")
)
