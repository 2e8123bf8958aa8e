// SPDX-License-Identifier: MIT

// Package bspline implements basis and coefficient transformations of
// B-spline curves for receding-horizon trajectory optimisation.
//
// A Basis is an immutable (knot vector, degree) pair; a Curve[S] pairs a
// Basis with one coefficient per basis function. S is float64 for plain
// numbers or expr.Node when the coefficients are decision variables of an
// optimisation problem. Every operation returns a new value; nothing is
// mutated in place.
//
// Matrix builders compute a transform T and the knot vector of the new basis
// without touching coefficients:
//
//	InsertKnotsT     Boehm knot insertion, (N+k)×N
//	CropT            restriction to [min, max], exact
//	ExtrapolateT     extension by tExtra with C^degree continuity, (N+m)×N
//	ShiftOverKnotT   crop the first interval and extrapolate one at the end
//	ShiftFirstKnotsT move the first degree+1 knots to t, upper triangular
//
// Curve operators apply a builder through an algebra.Algebra[S]: InsertKnots,
// Crop, Extrapolate, ShiftOverKnot, ShiftFirstKnots, plus RunningIntegral,
// DefiniteIntegral, Derivative, Concat and the de Boor Sample used for export.
//
// Interval membership in the Cox–de Boor recursion is expressed with 0/1
// comparison masks, so evaluation at a symbolic point builds a branch-free
// graph.
//
// Typical receding-horizon step:
//
//	c2, err := bspline.ShiftOverKnot(algebra.Numeric{}, c)
//	// c2 covers [k[degree+1], end+Δ] and matches c on the overlap.
//
// Logging is silent by default; see SetLogger.
package bspline
