// SPDX-License-Identifier: MIT

// Package trajectory holds multi-axis spline trajectories: one
// bspline.Curve[float64] per named axis, all sharing one basis.
//
// It is the caller-facing side of the receding-horizon loop. Each cycle the
// optimiser takes the previous solution, applies Advance (drop the first
// knot interval, extend by one at the end), ShiftStart, Extend or Crop, and
// uses the resulting coefficients as the warm start of the next problem.
// The transform is built once per step and applied to every axis.
//
// Trajectories are persisted as YAML documents:
//
//	degree: 3
//	knots: [0, 0, 0, 0, 1, 2, 2, 2, 2]
//	axes:
//	  - name: x
//	    coefficients: [0, 1, 2, 3, 4]
//
// and multi-segment plans list segments with durations given in seconds or
// as Go duration strings ("1.5s", "250ms"). WriteCSV exports samples for
// plotting.
package trajectory
