// SPDX-License-Identifier: MIT

package bspline

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/bspline/matrix"
)

// CropT builds the exact restriction of b to [min, max].
//
// Implementation:
//   - Stage 1: raise the multiplicity of min and max to degree+1 by knot insertion.
//   - Stage 2: keep the knots from the first copy of min to the last copy of
//     max, and the matching transform rows.
//
// Errors:
//   - ErrOutOfDomain: min >= max, a bound outside [knots[0], knots[-1]], NaN.
func CropT(b *Basis, min, max float64) (*matrix.Dense, []float64, error) {
	lo, hi := b.Domain()
	if math.IsNaN(min) || math.IsNaN(max) || min < lo || max > hi || min >= max {
		return nil, nil, fmt.Errorf("CropT: [%v, %v] in [%v, %v]: %w", min, max, lo, hi, ErrOutOfDomain)
	}

	deg := b.degree
	var ins []float64
	for i := b.Multiplicity(min); i < deg+1; i++ {
		ins = append(ins, min)
	}
	for i := b.Multiplicity(max); i < deg+1; i++ {
		ins = append(ins, max)
	}
	T, knots, err := InsertKnotsT(b, ins)
	if err != nil {
		return nil, nil, fmt.Errorf("CropT: %w", err)
	}

	jmin := sort.SearchFloat64s(knots, min)
	jmax := sort.Search(len(knots), func(i int) bool { return knots[i] > max })
	rows, err := matrix.SliceRows(T, jmin, jmax-deg-1)
	if err != nil {
		return nil, nil, fmt.Errorf("CropT: %w", err)
	}
	Logger().Debug("crop", "min", min, "max", max, "inserted", len(ins), "rows", rows.Rows())

	return rows, append([]float64(nil), knots[jmin:jmax]...), nil
}
