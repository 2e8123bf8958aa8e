// Package matrix provides the dense, row-major float64 matrices that carry
// spline transformation matrices between the builders and the operators.
//
// The matrix package provides:
//
//   - Dense: safe row-major storage with bounds-checked At/Set and a finite-value policy.
//   - Kernels: Mul, MatVec, SliceRows, SetBlock, ZeroSmall, AllClose.
//   - Solve: square linear systems through a partial-pivot LU factorisation with
//     a reciprocal-condition guard, so singular systems surface as ErrSingular
//     instead of NaN-filled results.
//
// Every kernel allocates its result; inputs are never aliased or mutated
// (SetBlock is the single in-place helper and only touches its destination).
//
// Transform matrices are small: (degree+1)² systems plus banded knot
// insertion products, so dense storage is the right trade-off.
package matrix
