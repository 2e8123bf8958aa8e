// Package splines is the root of the bspline module: coefficient
// transformations for B-spline trajectories in a receding-horizon optimiser.
//
// A receding-horizon controller re-solves the same trajectory problem every
// cycle over a window that slides forward in time. The previous solution is
// the natural warm start, but its coefficients live on the previous knot
// vector. This module maps them onto the next one.
//
// What is in the box?
//
//   - Knot insertion, cropping and extrapolation as explicit transformation
//     matrices T with c' = T·c.
//   - Shift-over-knot: drop the first knot interval, extend by one at the end.
//   - Shift-first-knots: move the clamped start to an arbitrary t, with the
//     inverse, for numeric or symbolic t.
//   - Running and definite integrals, derivatives, concatenation of segments
//     and fast sampling.
//   - One code path for plain float64 values and for symbolic expressions,
//     with compiled symbolic transforms cached per basis shape.
//
// Packages:
//
//	matrix/      dense float64 matrices, kernels and the LU-backed Solve
//	expr/        expression graphs: construction, folding, compilation
//	algebra/     the numeric/symbolic dispatch (Algebra, Matrix[S])
//	bspline/     bases, curves and every transformation builder
//	trajectory/  multi-axis trajectories, YAML plans and CSV export
//	examples/    a runnable receding-horizon loop
//
// Quick example:
//
//	b, _ := bspline.NewBasis([]float64{0, 0, 0, 0, 1, 2, 3, 3, 3, 3}, 3)
//	c, _ := bspline.NewCurve(b, []float64{0, 1, 3, 2, 4, 5})
//	next, _ := bspline.ShiftOverKnot[float64](algebra.Numeric{}, c)
//	// next lives on [1, 4] and equals c on [1, 3].
package splines
