// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/bspline/matrix"
	"github.com/stretchr/testify/require"
)

// TestWithSingularRcond_Validation checks that nonsensical thresholds panic at construction.
func TestWithSingularRcond_Validation(t *testing.T) {
	for _, bad := range []float64{-1e-3, 1, 2, math.NaN(), math.Inf(1)} {
		require.Panics(t, func() { matrix.WithSingularRcond(bad) }, "rcond=%v", bad)
	}
	require.NotPanics(t, func() { matrix.WithSingularRcond(0) })
}

// TestWithSingularRcond_Effect tightens the threshold until a well-posed but
// poorly scaled system is rejected.
func TestWithSingularRcond_Effect(t *testing.T) {
	a := dense(t, [][]float64{{1, 0}, {0, 1e-3}})
	b := dense(t, [][]float64{{1}, {1}})

	x, err := matrix.Solve(a, b)
	require.NoError(t, err)
	v, _ := x.At(1, 0)
	require.InDelta(t, 1000, v, 1e-9)

	_, err = matrix.Solve(a, b, matrix.WithSingularRcond(0.5))
	require.ErrorIs(t, err, matrix.ErrSingular)
}

// TestWithNoValidateNaNInf_Propagates checks that the relaxed policy travels
// into the matrices a kernel allocates.
func TestWithNoValidateNaNInf_Propagates(t *testing.T) {
	a := dense(t, [][]float64{{2}})
	b := dense(t, [][]float64{{4}})

	strict, err := matrix.Solve(a, b)
	require.NoError(t, err)
	require.ErrorIs(t, strict.Set(0, 0, math.NaN()), matrix.ErrNaNInf)

	relaxed, err := matrix.Solve(a, b, matrix.WithNoValidateNaNInf(), nil)
	require.NoError(t, err)
	require.NoError(t, relaxed.Set(0, 0, math.NaN()))

	sliced, err := matrix.SliceRows(relaxed, 0, 1)
	require.NoError(t, err)
	require.NoError(t, sliced.Set(0, 0, math.Inf(-1)))
}
