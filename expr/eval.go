// SPDX-License-Identifier: MIT

package expr

import "fmt"

// Env binds symbols to numbers for Eval.
type Env map[*Symbol]float64

// Eval evaluates n under env. Shared subgraphs are evaluated once.
//
// Errors:
//   - ErrNilNode, ErrUnboundSymbol.
func Eval(n Node, env Env) (float64, error) {
	if n == nil {
		return 0, ErrNilNode
	}
	memo := make(map[*Operation]float64)

	return eval(n, env, memo)
}

func eval(n Node, env Env, memo map[*Operation]float64) (float64, error) {
	switch v := n.(type) {
	case Const:
		return float64(v), nil
	case *Symbol:
		x, ok := env[v]
		if !ok {
			return 0, fmt.Errorf("Eval %q: %w", v.name, ErrUnboundSymbol)
		}

		return x, nil
	case *Operation:
		if r, ok := memo[v]; ok {
			return r, nil
		}
		x, err := eval(v.x, env, memo)
		if err != nil {
			return 0, err
		}
		var y float64
		if !v.op.unary() {
			if y, err = eval(v.y, env, memo); err != nil {
				return 0, err
			}
		}
		r := evalOp(v.op, x, y)
		memo[v] = r

		return r, nil
	}

	return 0, ErrNilNode
}

// Substitute replaces symbols by the nodes in repl and rebuilds the graph,
// folding every subgraph that becomes constant. Symbols missing from repl stay free.
func Substitute(n Node, repl map[*Symbol]Node) Node {
	memo := make(map[*Operation]Node)

	return substitute(n, repl, memo)
}

func substitute(n Node, repl map[*Symbol]Node, memo map[*Operation]Node) Node {
	switch v := n.(type) {
	case *Symbol:
		if r, ok := repl[v]; ok {
			return r
		}

		return v
	case *Operation:
		if r, ok := memo[v]; ok {
			return r
		}
		x := substitute(v.x, repl, memo)
		var y Node
		if !v.op.unary() {
			y = substitute(v.y, repl, memo)
		}
		r := build(v.op, x, y)
		memo[v] = r

		return r
	}

	return n
}

// Diff returns d n / d wrt. Comparison masks are piecewise constant, so their
// derivative is taken as 0.
func Diff(n Node, wrt *Symbol) Node {
	memo := make(map[*Operation]Node)

	return diff(n, wrt, memo)
}

func diff(n Node, wrt *Symbol, memo map[*Operation]Node) Node {
	switch v := n.(type) {
	case Const:
		return Const(0)
	case *Symbol:
		if v == wrt {
			return Const(1)
		}

		return Const(0)
	case *Operation:
		if r, ok := memo[v]; ok {
			return r
		}
		var r Node
		switch v.op {
		case OpAdd:
			r = Add(diff(v.x, wrt, memo), diff(v.y, wrt, memo))
		case OpSub:
			r = Sub(diff(v.x, wrt, memo), diff(v.y, wrt, memo))
		case OpMul:
			r = Add(Mul(diff(v.x, wrt, memo), v.y), Mul(v.x, diff(v.y, wrt, memo)))
		case OpDiv:
			num := Sub(Mul(diff(v.x, wrt, memo), v.y), Mul(v.x, diff(v.y, wrt, memo)))
			r = Div(num, Mul(v.y, v.y))
		case OpNeg:
			r = Neg(diff(v.x, wrt, memo))
		default:
			r = Const(0)
		}
		memo[v] = r

		return r
	}

	return Const(0)
}

// FreeSymbols lists the symbols reachable from ns in first-visit order.
func FreeSymbols(ns ...Node) []*Symbol {
	var out []*Symbol
	seenSym := make(map[*Symbol]bool)
	seenOp := make(map[*Operation]bool)
	var walk func(Node)
	walk = func(n Node) {
		switch v := n.(type) {
		case *Symbol:
			if !seenSym[v] {
				seenSym[v] = true
				out = append(out, v)
			}
		case *Operation:
			if seenOp[v] {
				return
			}
			seenOp[v] = true
			walk(v.x)
			if !v.op.unary() {
				walk(v.y)
			}
		}
	}
	for _, n := range ns {
		if n != nil {
			walk(n)
		}
	}

	return out
}
