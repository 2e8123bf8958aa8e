// SPDX-License-Identifier: MIT

package bspline

import "math"

const (
	// DefaultTolerance is the magnitude under which entries of a solved
	// transform are replaced by exact zeros.
	DefaultTolerance = 1e-10
)

const (
	panicToleranceInvalid = "bspline: WithTolerance: tol must be finite and >= 0"
	panicBoundaryInvalid  = "bspline: WithBoundaryKnots: m must be >= 1"
	panicCompilerNil      = "bspline: WithCompiler: nil compiler"
)

// Option configures builders and operators. Options that do not apply to an
// operation are ignored by it.
type Option func(*Options)

// Options is the resolved configuration.
type Options struct {
	tolerance     float64   // DefaultTolerance
	boundaryKnots int       // 0: derived from the knot vector
	inverse       bool      // ShiftFirstKnots applies Tinv
	compiler      *Compiler // nil: compile on every symbolic call
}

// WithTolerance sets the zeroing threshold for solved transforms.
// Panics if tol is NaN, Inf or negative.
func WithTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicToleranceInvalid)
	}

	return func(o *Options) { o.tolerance = tol }
}

// WithBoundaryKnots overrides how many copies of the old end knot an
// extrapolation keeps. Panics if m < 1.
func WithBoundaryKnots(m int) Option {
	if m < 1 {
		panic(panicBoundaryInvalid)
	}

	return func(o *Options) { o.boundaryKnots = m }
}

// WithInverse makes ShiftFirstKnots apply the inverse transform.
func WithInverse() Option {
	return func(o *Options) { o.inverse = true }
}

// WithCompiler routes symbolic ShiftFirstKnots calls through c, so each
// basis shape is compiled once. Panics on nil.
func WithCompiler(c *Compiler) Option {
	if c == nil {
		panic(panicCompilerNil)
	}

	return func(o *Options) { o.compiler = c }
}

func gatherOptions(opts ...Option) Options {
	o := Options{tolerance: DefaultTolerance}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
