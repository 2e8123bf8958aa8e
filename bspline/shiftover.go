// SPDX-License-Identifier: MIT

package bspline

import (
	"fmt"

	"github.com/katalvlaran/bspline/matrix"
)

// ShiftOverKnotT advances the domain of b by one knot interval: the first
// interval [knots[0], knots[degree+1]] is cropped off and an interval of the
// length of the last one is extrapolated at the end.
//
// With n the multiplicity of knots[degree+1] and m the derived (or
// WithBoundaryKnots) end multiplicity, T has shape (N+m-n)×N: the crop rows
// followed by the extrapolation's boundary block. The basis start must be
// clamped (degree+1 equal leading knots).
//
// Errors:
//   - ErrInvalidBasis: unclamped start or a single interval.
//   - ErrOutOfDomain, ErrSingularSystem: from the extrapolation.
func ShiftOverKnotT(b *Basis, opts ...Option) (*matrix.Dense, []float64, error) {
	k, deg, N := b.knots, b.degree, b.Len()
	L := len(k)
	_, hi := b.Domain()
	first := k[deg+1]
	if first >= hi {
		return nil, nil, fmt.Errorf("ShiftOverKnotT: single knot interval: %w", ErrInvalidBasis)
	}
	n := b.Multiplicity(first)
	if deg+n+1 > L-deg-1 {
		return nil, nil, fmt.Errorf("ShiftOverKnotT: end is not clamped: %w", ErrInvalidBasis)
	}

	Tc, _, err := CropT(b, first, hi)
	if err != nil {
		return nil, nil, fmt.Errorf("ShiftOverKnotT: %w", err)
	}
	if Tc.Rows() != N-n {
		return nil, nil, fmt.Errorf("ShiftOverKnotT: start is not clamped: %w", ErrInvalidBasis)
	}
	step := hi - k[L-deg-2]
	Te, _, m, err := extrapolate(b, step, gatherOptions(opts...))
	if err != nil {
		return nil, nil, fmt.Errorf("ShiftOverKnotT: %w", err)
	}

	rows := N + m - n
	T, err := matrix.NewDense(rows, N)
	if err != nil {
		return nil, nil, fmt.Errorf("ShiftOverKnotT: %w", err)
	}
	if err = matrix.SetBlock(T, 0, 0, Tc); err != nil {
		return nil, nil, fmt.Errorf("ShiftOverKnotT: %w", err)
	}
	block, err := matrix.NewDense(deg+1, deg+1)
	if err != nil {
		return nil, nil, fmt.Errorf("ShiftOverKnotT: %w", err)
	}
	for r := 0; r <= deg; r++ {
		for c := 0; c <= deg; c++ {
			v, _ := Te.At(N+m-deg-1+r, N-deg-1+c)
			_ = block.Set(r, c, v)
		}
	}
	if err = matrix.SetBlock(T, rows-deg-1, N-deg-1, block); err != nil {
		return nil, nil, fmt.Errorf("ShiftOverKnotT: %w", err)
	}

	knots := make([]float64, 0, L+m-n)
	for i := 0; i <= deg; i++ {
		knots = append(knots, k[deg+n])
	}
	knots = append(knots, k[deg+n+1:L-deg-1]...)
	for i := 0; i < m; i++ {
		knots = append(knots, k[L-deg-1])
	}
	for i := 0; i <= deg; i++ {
		knots = append(knots, hi+step)
	}
	Logger().Debug("shift over knot", "cropped", n, "boundaryKnots", m, "rows", rows, "cols", N)

	return T, knots, nil
}
