// SPDX-License-Identifier: MIT

// Package matrix: numeric policy for dense kernels.
// This file defines:
//   - documented defaults (constants),
//   - Option / Options (functional options with internal state),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that resolves the effective policy.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - Safe by construction: panic only on invalid parameters (programmer error).
package matrix

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultValidateNaNInf toggles strict finite-value validation in Set and constructors.
	DefaultValidateNaNInf = true

	// DefaultSingularRcond is the reciprocal-condition threshold below which Solve
	// reports ErrSingular instead of returning a numerically meaningless answer.
	DefaultSingularRcond = 1e-14
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicRcondInvalid = "matrix: WithSingularRcond: rcond must be finite, in [0,1)"
)

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept `...Option`.
type Options struct {
	validateNaNInf bool    // DefaultValidateNaNInf
	singularRcond  float64 // DefaultSingularRcond
}

// WithNoValidateNaNInf disables finite-value validation on the matrices a
// kernel allocates. Intended for diagnostics only.
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// WithSingularRcond sets the reciprocal condition number under which Solve
// treats its system as singular.
// Panics if rcond is NaN/Inf, negative or ≥ 1.
func WithSingularRcond(rcond float64) Option {
	if math.IsNaN(rcond) || math.IsInf(rcond, 0) || rcond < 0 || rcond >= 1 {
		panic(panicRcondInvalid)
	}

	return func(o *Options) { o.singularRcond = rcond }
}

// defaultOptions returns the documented zero-configuration policy.
func defaultOptions() Options {
	return Options{
		validateNaNInf: DefaultValidateNaNInf,
		singularRcond:  DefaultSingularRcond,
	}
}

// gatherOptions applies opts over the defaults in order (last write wins).
func gatherOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
