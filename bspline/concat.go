// SPDX-License-Identifier: MIT

package bspline

import (
	"fmt"
	"math"
)

// Concat joins consecutive segments into one curve per dimension.
//
// segments[s][d] is dimension d of segment s; durations[s] scales the knots
// of segment s, which are expected on the unit interval. The knots of every
// later segment are offset by the previous end, their first degree+1 knots
// (coinciding with the previous closing knots) are dropped, and the
// coefficient sequences are appended.
//
// Continuity at a seam is only what the knot multiplicity there provides;
// callers match boundary coefficients themselves when they need smoothness.
//
// Errors:
//   - ErrSegmentShape: no segments, len(durations) != len(segments), or
//     groups of different sizes.
//   - ErrOutOfDomain: a non-positive or non-finite duration.
//   - ErrDegreeMismatch: a dimension changes degree between segments.
func Concat[S any](segments [][]*Curve[S], durations []float64) ([]*Curve[S], error) {
	if len(segments) == 0 || len(segments[0]) == 0 {
		return nil, fmt.Errorf("Concat: no segments: %w", ErrSegmentShape)
	}
	if len(durations) != len(segments) {
		return nil, fmt.Errorf("Concat: %d durations for %d segments: %w", len(durations), len(segments), ErrSegmentShape)
	}
	for s, d := range durations {
		if math.IsNaN(d) || math.IsInf(d, 0) || d <= 0 {
			return nil, fmt.Errorf("Concat: duration %d is %v: %w", s, d, ErrOutOfDomain)
		}
	}

	dims := len(segments[0])
	knots := make([][]float64, dims)
	coeffs := make([][]S, dims)
	for d, c := range segments[0] {
		for _, k := range c.basis.knots {
			knots[d] = append(knots[d], k*durations[0])
		}
		coeffs[d] = c.Coefficients()
	}

	for s := 1; s < len(segments); s++ {
		if len(segments[s]) != dims {
			return nil, fmt.Errorf("Concat: segment %d has %d dimensions, want %d: %w", s, len(segments[s]), dims, ErrSegmentShape)
		}
		for d, c := range segments[s] {
			deg := segments[0][d].basis.degree
			if c.basis.degree != deg {
				return nil, fmt.Errorf("Concat: segment %d dimension %d has degree %d, want %d: %w",
					s, d, c.basis.degree, deg, ErrDegreeMismatch)
			}
			offset := knots[d][len(knots[d])-1]
			for _, k := range c.basis.knots[deg+1:] {
				knots[d] = append(knots[d], k*durations[s]+offset)
			}
			coeffs[d] = append(coeffs[d], c.coeffs...)
		}
	}

	out := make([]*Curve[S], dims)
	for d := range out {
		b, err := NewBasis(knots[d], segments[0][d].basis.degree)
		if err != nil {
			return nil, fmt.Errorf("Concat: dimension %d: %w", d, err)
		}
		if out[d], err = NewCurve(b, coeffs[d]); err != nil {
			return nil, fmt.Errorf("Concat: dimension %d: %w", d, err)
		}
	}
	Logger().Debug("concat", "segments", len(segments), "dimensions", dims)

	return out, nil
}
