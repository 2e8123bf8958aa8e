// Package algebra is the seam between plain dense linear algebra and
// expression-graph construction.
//
// Spline transform builders are written once against Algebra[S]; the scalar
// type S decides what a call produces:
//
//   - Numeric (S = float64) runs dense kernels from package matrix and solves
//     through a pivoted LU factorisation.
//   - Symbolic (S = expr.Node) builds graph nodes; Solve eliminates over the
//     graph and Compile turns a built graph into a reusable callable.
//
// Interval tests are expressed through Ge/Gt/Le, which return 0/1 scalars in
// both algebras, so code written against Algebra never branches on data.
//
// Matrices produced here are always freshly allocated; no builder shares
// storage with a previous build.
package algebra
