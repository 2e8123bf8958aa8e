package bspline_test

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/katalvlaran/bspline/algebra"
	"github.com/katalvlaran/bspline/bspline"
	"github.com/katalvlaran/bspline/expr"
	"github.com/katalvlaran/bspline/matrix"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

var sym = algebra.Symbolic{}

func TestNewCurveCount(t *testing.T) {
	_, err := bspline.NewCurve(cubic(t), []float64{1, 2})
	require.ErrorIs(t, err, bspline.ErrCoefficientCount)
	_, err = bspline.NewCurve[float64](nil, nil)
	require.ErrorIs(t, err, bspline.ErrInvalidBasis)
}

func TestEvaluateAtSymbolic(t *testing.T) {
	c := cubicCurve(t)
	x := expr.NewSymbol("x")
	v := bspline.EvaluateAt[expr.Node](sym, bspline.Lift[expr.Node](sym, c), x)
	for _, xv := range []float64{0, 0.5, 1.2, 2, 3} {
		got, err := expr.Eval(v, expr.Env{x: xv})
		require.NoError(t, err)
		require.InDelta(t, bspline.Value(c, xv), got, 1e-12, "x=%v", xv)
	}

	// symbolic coefficients at a numeric point stay linear in the coefficients
	cs := expr.Symbols("c", 6)
	sc, err := bspline.NewCurve(cubic(t), expr.Nodes(cs))
	require.NoError(t, err)
	e := bspline.EvaluateAt[expr.Node](sym, sc, expr.Const(1.2))
	env := expr.Env{}
	for i, v := range c.Coefficients() {
		env[cs[i]] = v
	}
	got, err := expr.Eval(e, env)
	require.NoError(t, err)
	require.InDelta(t, 0.337, got, 1e-12)
}

func TestRunningIntegral(t *testing.T) {
	c := cubicCurve(t)
	I, err := bspline.RunningIntegral[float64](num, c)
	require.NoError(t, err)
	require.Equal(t, 4, I.Degree())
	require.Equal(t, []float64{0, 0, 0, 0, 0, 1, 2, 3, 3, 3, 3, 3}, I.Basis().Knots())
	require.Empty(t, cmp.Diff([]float64{0, 0.25, 1.75, 0.25, 3.25, 3.5, 4}, I.Coefficients(), approx))

	d, err := bspline.Derivative[float64](num, I)
	require.NoError(t, err)
	require.Equal(t, c.Basis().Knots(), d.Basis().Knots())
	require.Empty(t, cmp.Diff(c.Coefficients(), d.Coefficients(), approx))
}

func TestDefiniteIntegral(t *testing.T) {
	c := cubicCurve(t)
	v, err := bspline.DefiniteIntegral[float64](num, c, 0.5, 2.5)
	require.NoError(t, err)
	require.InDelta(t, 2.443359375, v, 1e-12)

	whole, err := bspline.DefiniteIntegral[float64](num, c, 0, 3)
	require.NoError(t, err)
	require.InDelta(t, 4.0, whole, 1e-12)

	for _, a := range []float64{0, 0.7, 1, 3} {
		z, err := bspline.DefiniteIntegral[float64](num, c, a, a)
		require.NoError(t, err)
		require.Equal(t, 0.0, z)
	}

	// symbolic upper bound
	b := expr.NewSymbol("b")
	e, err := bspline.DefiniteIntegral[expr.Node](sym, bspline.Lift[expr.Node](sym, c), expr.Const(0.5), b)
	require.NoError(t, err)
	got, err := expr.Eval(e, expr.Env{b: 2.5})
	require.NoError(t, err)
	require.InDelta(t, 2.443359375, got, 1e-12)
}

func TestDerivative(t *testing.T) {
	c := cubicCurve(t)
	d, err := bspline.Derivative[float64](num, c)
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0, 0, 1, 2, 3, 3, 3}, d.Basis().Knots())
	require.Empty(t, cmp.Diff([]float64{6, -7.5, 6, -5.25, 4.5}, d.Coefficients(), approx))

	// central difference check
	const h = 1e-6
	x := 1.3
	fd := (bspline.Value(c, x+h) - bspline.Value(c, x-h)) / (2 * h)
	require.InDelta(t, fd, bspline.Value(d, x), 1e-6)

	b0, err := bspline.NewBasis([]float64{0, 1, 2}, 0)
	require.NoError(t, err)
	c0, err := bspline.NewCurve(b0, []float64{1, 2})
	require.NoError(t, err)
	_, err = bspline.Derivative[float64](num, c0)
	require.ErrorIs(t, err, bspline.ErrInvalidBasis)
}

func unitSegment(t *testing.T, coeffs []float64) *bspline.Curve[float64] {
	t.Helper()
	b, err := bspline.NewBasis([]float64{0, 0, 0, 0, 0.5, 1, 1, 1, 1}, 3)
	require.NoError(t, err)
	c, err := bspline.NewCurve(b, coeffs)
	require.NoError(t, err)

	return c
}

func TestConcat(t *testing.T) {
	seg := unitSegment(t, []float64{0, 1, 3, 2, 4})
	out, err := bspline.Concat([][]*bspline.Curve[float64]{{seg}, {seg}}, []float64{1, 1})
	require.NoError(t, err)
	require.Len(t, out, 1)
	c := out[0]
	require.Equal(t, []float64{0, 0, 0, 0, 0.5, 1, 1, 1, 1, 1.5, 2, 2, 2, 2}, c.Basis().Knots())
	require.Len(t, c.Coefficients(), 10)
	// the midpoint of the joined curve is the end of the first segment
	require.InDelta(t, bspline.Value(seg, 1), bspline.Value(c, 1), 1e-12)
	require.InDelta(t, 4.0, bspline.Value(c, 1), 1e-12)
	// inside the second segment the curve is the first one translated in time
	require.InDelta(t, bspline.Value(seg, 0.3), bspline.Value(c, 1.3), 1e-12)

	// durations scale the segments
	out, err = bspline.Concat([][]*bspline.Curve[float64]{{seg, seg}, {seg, seg}}, []float64{2, 0.5})
	require.NoError(t, err)
	require.Len(t, out, 2)
	lo, hi := out[1].Basis().Domain()
	require.Equal(t, [2]float64{0, 2.5}, [2]float64{lo, hi})
}

func TestConcatErrors(t *testing.T) {
	seg := unitSegment(t, []float64{0, 1, 3, 2, 4})
	b2, err := bspline.NewBasis([]float64{0, 0, 0, 0.5, 1, 1, 1}, 2)
	require.NoError(t, err)
	quad, err := bspline.NewCurve(b2, []float64{0, 1, 2, 3})
	require.NoError(t, err)

	_, err = bspline.Concat([][]*bspline.Curve[float64]{{seg}, {quad}}, []float64{1, 1})
	require.ErrorIs(t, err, bspline.ErrDegreeMismatch)
	_, err = bspline.Concat([][]*bspline.Curve[float64]{{seg}, {seg}}, []float64{1})
	require.ErrorIs(t, err, bspline.ErrSegmentShape)
	_, err = bspline.Concat([][]*bspline.Curve[float64]{{seg}, {seg, seg}}, []float64{1, 1})
	require.ErrorIs(t, err, bspline.ErrSegmentShape)
	_, err = bspline.Concat[float64](nil, nil)
	require.ErrorIs(t, err, bspline.ErrSegmentShape)
	_, err = bspline.Concat([][]*bspline.Curve[float64]{{seg}}, []float64{0})
	require.ErrorIs(t, err, bspline.ErrOutOfDomain)
}

func TestSampleMatchesEvaluation(t *testing.T) {
	c := interior(t)
	times := floats.Span(make([]float64, 37), 0, 9)
	got, err := bspline.Sample(c, times)
	require.NoError(t, err)
	want := make([]float64, len(times))
	for i, x := range times {
		want[i] = bspline.Value(c, x)
	}
	require.Empty(t, cmp.Diff(want, got, approx))

	// outside the domain the end pieces are extended
	e, err := bspline.Extrapolate[float64](num, c, 2)
	require.NoError(t, err)
	out, err := bspline.Sample(c, []float64{10})
	require.NoError(t, err)
	require.InDelta(t, bspline.Value(e, 10), out[0], 1e-9)

	all, err := bspline.SampleAll([]*bspline.Curve[float64]{c, e}, []float64{0, 9})
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.InDelta(t, all[0][1], all[1][1], 1e-9)

	_, err = bspline.Sample(c, []float64{math.NaN()})
	require.ErrorIs(t, err, bspline.ErrOutOfDomain)
}

func TestShiftFirstKnotsNumeric(t *testing.T) {
	c := interior(t)
	coeffs, err := bspline.ShiftFirstKnots[float64](num, c, 0.37)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff([]float64{0.587026625, 1.5106775, 2.767, 0.4, 2.7}, coeffs[:5], approx))

	back, err := bspline.ShiftFirstKnots(num, mustCurve(t, c.Basis(), coeffs), 0.37, bspline.WithInverse())
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(c.Coefficients(), back, approx))

	s, err := bspline.ShiftFirstKnotsCurve(c, 0.37)
	require.NoError(t, err)
	require.Equal(t, []float64{0.37, 0.37, 0.37, 0.37, 1}, s.Basis().Knots()[:5])
	require.Less(t, maxDiff(c, s, 0.37, 0.38, 0.9, 1, 1.5, 4, 9), 1e-9)

	_, err = bspline.ShiftFirstKnotsCurve(c, 1.5)
	require.ErrorIs(t, err, bspline.ErrOutOfDomain)
}

func TestShiftFirstKnotsNonZeroStart(t *testing.T) {
	b, err := bspline.NewBasis([]float64{2, 2, 2, 2, 3, 4.5, 5, 6, 6, 6, 6}, 3)
	require.NoError(t, err)
	c := mustCurve(t, b, []float64{1, -1, 2, 0.5, 3, 1, 2})
	s, err := bspline.ShiftFirstKnotsCurve(c, 2.4)
	require.NoError(t, err)
	require.Less(t, maxDiff(c, s, 2.4, 2.9, 3, 4, 5.5, 6), 1e-9)
}

func TestShiftFirstKnotsSymbolic(t *testing.T) {
	c := interior(t)
	want, err := bspline.ShiftFirstKnots[float64](num, c, 0.37)
	require.NoError(t, err)

	// symbolic shift parameter, numeric coefficients
	ts := expr.NewSymbol("t")
	lifted := bspline.Lift[expr.Node](sym, c)
	out, err := bspline.ShiftFirstKnots[expr.Node](sym, lifted, ts)
	require.NoError(t, err)
	got := make([]float64, len(out))
	for i, n := range out {
		got[i], err = expr.Eval(n, expr.Env{ts: 0.37})
		require.NoError(t, err)
	}
	require.Empty(t, cmp.Diff(want, got, approx))

	// a constant shift folds to constants
	folded, err := bspline.ShiftFirstKnots[expr.Node](sym, lifted, expr.Const(0.37))
	require.NoError(t, err)
	vals, ok := algebra.Floats[expr.Node](sym, folded)
	require.True(t, ok)
	require.Empty(t, cmp.Diff(want, vals, approx))

	// forward then inverse is the identity on symbolic coefficients
	cs := expr.Symbols("c", c.Basis().Len())
	sc := mustCurve(t, c.Basis(), expr.Nodes(cs))
	fwd, err := bspline.ShiftFirstKnots[expr.Node](sym, sc, ts)
	require.NoError(t, err)
	inv, err := bspline.ShiftFirstKnots[expr.Node](sym, mustCurve(t, c.Basis(), fwd), ts, bspline.WithInverse())
	require.NoError(t, err)
	env := expr.Env{ts: 0.6}
	for i, v := range c.Coefficients() {
		env[cs[i]] = v
	}
	for i, n := range inv {
		v, err := expr.Eval(n, env)
		require.NoError(t, err)
		require.InDelta(t, c.Coefficients()[i], v, 1e-8)
	}

	// a constant t on the first interior knot has no inverse
	_, err = bspline.ShiftFirstKnots[expr.Node](sym, lifted, expr.Const(1), bspline.WithInverse())
	require.ErrorIs(t, err, bspline.ErrSingularSystem)
	_, err = bspline.ShiftFirstKnots[expr.Node](sym, sc, expr.Const(1), bspline.WithInverse())
	require.ErrorIs(t, err, bspline.ErrSingularSystem)
}

func TestCompilerCachesShapes(t *testing.T) {
	c := interior(t)
	comp := bspline.NewCompiler(0)
	lifted := bspline.Lift[expr.Node](sym, c)

	first, err := bspline.ShiftFirstKnots[expr.Node](sym, lifted, expr.Const(0.2), bspline.WithCompiler(comp))
	require.NoError(t, err)
	require.Equal(t, 1, comp.Len())
	second, err := bspline.ShiftFirstKnots[expr.Node](sym, lifted, expr.Const(0.2), bspline.WithCompiler(comp))
	require.NoError(t, err)
	require.Equal(t, 1, comp.Len())
	require.Equal(t, first, second)

	_, err = bspline.ShiftFirstKnots[expr.Node](sym, lifted, expr.Const(0.2), bspline.WithCompiler(comp), bspline.WithInverse())
	require.NoError(t, err)
	require.Equal(t, 2, comp.Len())

	comp.Flush()
	require.Equal(t, 0, comp.Len())

	ttl := bspline.NewCompiler(time.Minute)
	_, err = bspline.ShiftFirstKnots[expr.Node](sym, lifted, expr.Const(0.2), bspline.WithCompiler(ttl))
	require.NoError(t, err)
	require.Equal(t, 1, ttl.Len())

	require.Panics(t, func() { bspline.WithCompiler(nil) })
}

func TestShiftApprox(t *testing.T) {
	c := interior(t)
	a, err := bspline.ShiftApprox(c, 0.5)
	require.NoError(t, err)
	require.Equal(t, c.Basis().Len(), a.Basis().Len())
	k := a.Basis().Knots()
	require.Equal(t, []float64{0.5, 0.5, 0.5, 0.5}, k[:4])
	require.InDelta(t, 0.5+8.5/9, k[4], 1e-12)

	// interpolation at the new Greville points
	for _, g := range a.Basis().Greville() {
		require.InDelta(t, bspline.Value(c, g), bspline.Value(a, g), 1e-9)
	}

	// a straight line is representable on any basis, so the re-basing is exact there
	line := mustCurve(t, c.Basis(), c.Basis().Greville())
	la, err := bspline.ShiftApprox(line, 0.5)
	require.NoError(t, err)
	for _, x := range []float64{0.5, 1, 3.3, 7, 9} {
		require.InDelta(t, x, bspline.Value(la, x), 1e-9)
	}

	_, err = bspline.ShiftApprox(c, 9)
	require.ErrorIs(t, err, bspline.ErrOutOfDomain)
}

func TestTransformShapeMismatch(t *testing.T) {
	c := cubicCurve(t)
	T, err := matrix.Identity(4)
	require.NoError(t, err)
	_, err = bspline.Transform[float64](num, T, c.Basis().Knots(), c)
	require.ErrorIs(t, err, bspline.ErrCoefficientCount)
}

func mustCurve[S any](t *testing.T, b *bspline.Basis, coeffs []S) *bspline.Curve[S] {
	t.Helper()
	c, err := bspline.NewCurve(b, coeffs)
	require.NoError(t, err)

	return c
}
