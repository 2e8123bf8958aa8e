package bspline_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/katalvlaran/bspline/algebra"
	"github.com/katalvlaran/bspline/bspline"
	"github.com/katalvlaran/bspline/expr"
	"github.com/stretchr/testify/require"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

// cubic is the clamped cubic basis [0,0,0,0,1,2,3,3,3,3] (N=6).
func cubic(t *testing.T) *bspline.Basis {
	t.Helper()
	b, err := bspline.NewBasis([]float64{0, 0, 0, 0, 1, 2, 3, 3, 3, 3}, 3)
	require.NoError(t, err)

	return b
}

func cubicCurve(t *testing.T) *bspline.Curve[float64] {
	t.Helper()
	c, err := bspline.NewCurve(cubic(t), []float64{1, 3, -2, 4, 0.5, 2})
	require.NoError(t, err)

	return c
}

func TestNewBasisValidation(t *testing.T) {
	for name, tc := range map[string]struct {
		knots  []float64
		degree int
	}{
		"too short":       {[]float64{0, 0, 0, 1, 1, 1}, 3},
		"decreasing":      {[]float64{0, 0, 2, 1, 3, 3}, 1},
		"nan":             {[]float64{0, 0, math.NaN(), 3, 3}, 1},
		"infinite":        {[]float64{0, 0, 1, math.Inf(1), 3}, 1},
		"negative degree": {[]float64{0, 1}, -1},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := bspline.NewBasis(tc.knots, tc.degree)
			require.ErrorIs(t, err, bspline.ErrInvalidBasis)
		})
	}
}

func TestBasisQueries(t *testing.T) {
	b := cubic(t)
	require.Equal(t, 6, b.Len())
	require.Equal(t, 3, b.Degree())
	lo, hi := b.Domain()
	require.Equal(t, [2]float64{0, 3}, [2]float64{lo, hi})
	require.Equal(t, 4, b.Multiplicity(0))
	require.Equal(t, 1, b.Multiplicity(1))
	require.Equal(t, 0, b.Multiplicity(1.5))

	require.Empty(t, cmp.Diff([]float64{0, 1.0 / 3, 1, 2, 8.0 / 3, 3}, b.Greville(), approx))

	k := b.Knots()
	k[0] = -1
	require.Equal(t, 0.0, b.Knots()[0], "Knots must return a copy")
}

func TestPartitionOfUnity(t *testing.T) {
	b := cubic(t)
	pts := []float64{0, 0.3, 1, 1.5, 2.7, 3}
	vals, err := b.Evaluate(pts)
	require.NoError(t, err)
	require.Equal(t, len(pts), vals.Rows())
	require.Equal(t, b.Len(), vals.Cols())
	for i, row := range vals.RawRows() {
		sum := 0.0
		for _, v := range row {
			sum += v
		}
		require.InDelta(t, 1.0, sum, 1e-12, "x=%v", pts[i])
	}
}

func TestEvaluateNonFinite(t *testing.T) {
	b := cubic(t)
	for _, x := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := b.Evaluate([]float64{0.5, x})
		require.ErrorIs(t, err, bspline.ErrOutOfDomain, "x=%v", x)
	}
}

func TestEvaluateBasisSymbolicPoint(t *testing.T) {
	b := cubic(t)
	x := expr.NewSymbol("x")
	sym := bspline.EvaluateBasis[expr.Node](algebra.Symbolic{}, b, x)
	require.Len(t, sym, b.Len())

	for _, xv := range []float64{0, 0.25, 1, 1.7, 3} {
		num := bspline.EvaluateBasis[float64](algebra.Numeric{}, b, xv)
		got := make([]float64, len(sym))
		for i, n := range sym {
			v, err := expr.Eval(n, expr.Env{x: xv})
			require.NoError(t, err)
			got[i] = v
		}
		require.Empty(t, cmp.Diff(num, got, approx), "x=%v", xv)
	}
}

func TestDegreeZeroBasis(t *testing.T) {
	b, err := bspline.NewBasis([]float64{0, 1, 2, 4}, 0)
	require.NoError(t, err)
	require.Equal(t, []float64{0.5, 1.5, 3}, b.Greville())

	c, err := bspline.NewCurve(b, []float64{1, 2, 3})
	require.NoError(t, err)
	// (k_i, k_i+1] with a closed first interval
	require.Equal(t, 1.0, bspline.Value(c, 0))
	require.Equal(t, 1.0, bspline.Value(c, 1))
	require.Equal(t, 2.0, bspline.Value(c, 1.5))
	require.Equal(t, 3.0, bspline.Value(c, 4))
}
