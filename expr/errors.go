// SPDX-License-Identifier: MIT

package expr

import "errors"

var (
	// ErrUnboundSymbol indicates a symbol reachable from an output that has no
	// value in the evaluation environment or is not a declared input of Compile.
	ErrUnboundSymbol = errors.New("expr: unbound symbol")

	// ErrArity indicates a call with the wrong number of argument groups or a
	// group of the wrong length.
	ErrArity = errors.New("expr: argument arity mismatch")

	// ErrNilNode indicates that a nil node was passed where a graph is required.
	ErrNilNode = errors.New("expr: nil node")
)
