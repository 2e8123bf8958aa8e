// SPDX-License-Identifier: MIT

package expr

import (
	"fmt"
	"strconv"
)

// Node is an immutable vertex of an expression graph.
// Implementations: Const, *Symbol, *Operation.
type Node interface {
	fmt.Stringer
	isNode()
}

// Const is a literal value.
type Const float64

func (Const) isNode() {}

func (c Const) String() string { return strconv.FormatFloat(float64(c), 'g', -1, 64) }

// Symbol is a free variable. Identity is the pointer: two symbols with the
// same name are still different variables.
type Symbol struct {
	name string
}

// NewSymbol returns a fresh free variable.
func NewSymbol(name string) *Symbol { return &Symbol{name: name} }

// Symbols returns n fresh variables named name_0 … name_{n-1}.
func Symbols(name string, n int) []*Symbol {
	out := make([]*Symbol, n)
	for i := range out {
		out[i] = NewSymbol(name + "_" + strconv.Itoa(i))
	}

	return out
}

func (*Symbol) isNode() {}

// Name returns the symbol's display name.
func (s *Symbol) Name() string { return s.name }

func (s *Symbol) String() string { return s.name }

// Op identifies the operator of an Operation node.
type Op uint8

// Supported operators. Comparisons yield 0 or 1.
const (
	OpAdd Op = iota + 1
	OpSub
	OpMul
	OpDiv
	OpNeg
	OpGe
	OpGt
	OpLe
	OpLt
)

var opSymbols = map[Op]string{
	OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/", OpNeg: "-",
	OpGe: ">=", OpGt: ">", OpLe: "<=", OpLt: "<",
}

func (o Op) String() string {
	if s, ok := opSymbols[o]; ok {
		return s
	}

	return "op(" + strconv.Itoa(int(o)) + ")"
}

// unary reports whether the operator takes a single operand.
func (o Op) unary() bool { return o == OpNeg }

// Operation applies an operator to one or two operands.
type Operation struct {
	op   Op
	x, y Node // y is nil for unary operators
}

func (*Operation) isNode() {}

// Op returns the operator.
func (e *Operation) Op() Op { return e.op }

// Operands returns the operands; the second is nil for unary operators.
func (e *Operation) Operands() (Node, Node) { return e.x, e.y }

func (e *Operation) String() string {
	if e.op.unary() {
		return "(-" + e.x.String() + ")"
	}

	return "(" + e.x.String() + " " + e.op.String() + " " + e.y.String() + ")"
}

// Value reports the numeric value of n when it is a constant.
func Value(n Node) (float64, bool) {
	c, ok := n.(Const)

	return float64(c), ok
}

// IsZero reports whether n is the constant 0.
func IsZero(n Node) bool {
	v, ok := Value(n)

	return ok && v == 0
}

func isOne(n Node) bool {
	v, ok := Value(n)

	return ok && v == 1
}

// Nodes widens a symbol slice to a node slice.
func Nodes(syms []*Symbol) []Node {
	out := make([]Node, len(syms))
	for i, s := range syms {
		out[i] = s
	}

	return out
}

// Consts wraps plain numbers as constant nodes.
func Consts(vs []float64) []Node {
	out := make([]Node, len(vs))
	for i, v := range vs {
		out[i] = Const(v)
	}

	return out
}

// Add returns x + y.
func Add(x, y Node) Node { return build(OpAdd, x, y) }

// Sub returns x - y.
func Sub(x, y Node) Node { return build(OpSub, x, y) }

// Mul returns x * y.
func Mul(x, y Node) Node { return build(OpMul, x, y) }

// Div returns x / y.
func Div(x, y Node) Node { return build(OpDiv, x, y) }

// Neg returns -x.
func Neg(x Node) Node { return build(OpNeg, x, nil) }

// Ge returns 1 where x >= y, else 0.
func Ge(x, y Node) Node { return build(OpGe, x, y) }

// Gt returns 1 where x > y, else 0.
func Gt(x, y Node) Node { return build(OpGt, x, y) }

// Le returns 1 where x <= y, else 0.
func Le(x, y Node) Node { return build(OpLe, x, y) }

// Lt returns 1 where x < y, else 0.
func Lt(x, y Node) Node { return build(OpLt, x, y) }

// Sum folds Add over ns; the empty sum is 0.
func Sum(ns ...Node) Node {
	var acc Node = Const(0)
	for _, n := range ns {
		acc = Add(acc, n)
	}

	return acc
}

// build applies constant folding and neutral-element elimination before
// allocating a new Operation.
func build(op Op, x, y Node) Node {
	xv, xc := Value(x)
	if op.unary() {
		if xc {
			return Const(evalOp(op, xv, 0))
		}
		if inner, ok := x.(*Operation); ok && inner.op == OpNeg {
			return inner.x
		}

		return &Operation{op: op, x: x}
	}

	yv, yc := Value(y)
	if xc && yc {
		return Const(evalOp(op, xv, yv))
	}
	switch op {
	case OpAdd:
		if IsZero(x) {
			return y
		}
		if IsZero(y) {
			return x
		}
	case OpSub:
		if IsZero(y) {
			return x
		}
		if IsZero(x) {
			return Neg(y)
		}
	case OpMul:
		if IsZero(x) || IsZero(y) {
			return Const(0)
		}
		if isOne(x) {
			return y
		}
		if isOne(y) {
			return x
		}
	case OpDiv:
		if IsZero(x) {
			return Const(0)
		}
		if isOne(y) {
			return x
		}
	}

	return &Operation{op: op, x: x, y: y}
}

// evalOp is the numeric semantics shared by folding, Eval and compiled tapes.
func evalOp(op Op, x, y float64) float64 {
	switch op {
	case OpAdd:
		return x + y
	case OpSub:
		return x - y
	case OpMul:
		return x * y
	case OpDiv:
		return x / y
	case OpNeg:
		return -x
	case OpGe:
		return mask(x >= y)
	case OpGt:
		return mask(x > y)
	case OpLe:
		return mask(x <= y)
	case OpLt:
		return mask(x < y)
	}

	panic("expr: unknown operator " + op.String())
}

func mask(b bool) float64 {
	if b {
		return 1
	}

	return 0
}
