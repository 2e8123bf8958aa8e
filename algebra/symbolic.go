// SPDX-License-Identifier: MIT

package algebra

import (
	"fmt"
	"math"

	"github.com/katalvlaran/bspline/expr"
	"github.com/katalvlaran/bspline/matrix"
)

// Symbolic is the expression-graph algebra.
type Symbolic struct{}

var _ Algebra[expr.Node] = Symbolic{}

func (Symbolic) Kind() Kind                        { return KindSymbolic }
func (Symbolic) Const(v float64) expr.Node         { return expr.Const(v) }
func (Symbolic) Add(x, y expr.Node) expr.Node      { return expr.Add(x, y) }
func (Symbolic) Sub(x, y expr.Node) expr.Node      { return expr.Sub(x, y) }
func (Symbolic) Mul(x, y expr.Node) expr.Node      { return expr.Mul(x, y) }
func (Symbolic) Div(x, y expr.Node) expr.Node      { return expr.Div(x, y) }
func (Symbolic) Neg(x expr.Node) expr.Node         { return expr.Neg(x) }
func (Symbolic) Ge(x, y expr.Node) expr.Node       { return expr.Ge(x, y) }
func (Symbolic) Gt(x, y expr.Node) expr.Node       { return expr.Gt(x, y) }
func (Symbolic) Le(x, y expr.Node) expr.Node       { return expr.Le(x, y) }
func (Symbolic) IsZero(x expr.Node) bool           { return expr.IsZero(x) }
func (Symbolic) Float(x expr.Node) (float64, bool) { return expr.Value(x) }

func (s Symbolic) Zeros(rows, cols int) (*Matrix[expr.Node], error) {
	return zeros[expr.Node](s, rows, cols)
}

func (s Symbolic) Eye(n int) (*Matrix[expr.Node], error) { return eye[expr.Node](s, n) }

func (s Symbolic) Lift(m *matrix.Dense) *Matrix[expr.Node] { return lift[expr.Node](s, m) }

func (s Symbolic) MatMul(a, b *Matrix[expr.Node]) (*Matrix[expr.Node], error) {
	return matMul[expr.Node](s, a, b)
}

func (s Symbolic) MatVec(a *Matrix[expr.Node], x []expr.Node) ([]expr.Node, error) {
	return matVec[expr.Node](s, a, x)
}

// Solve runs Gauss-Jordan elimination over the graph.
//
// Implementation:
//   - Stage 1: per column pick a pivot row among the remaining ones. Known
//     constants are preferred by magnitude; otherwise the first entry that is
//     not a structural zero is taken.
//   - Stage 2: eliminate the column from every other row of [A | B].
//   - Stage 3: divide each row by its pivot.
//
// Pivots that are non-constant expressions are assumed non-zero at run time.
//
// Errors:
//   - matrix.ErrDimensionMismatch, matrix.ErrSingular (column with only structural zeros).
func (s Symbolic) Solve(a, b *Matrix[expr.Node]) (*Matrix[expr.Node], error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("Solve: %w", matrix.ErrNilMatrix)
	}
	if a.r != a.c || b.r != a.r {
		return nil, fmt.Errorf("Solve: A %dx%d, B %dx%d: %w", a.r, a.c, b.r, b.c, matrix.ErrDimensionMismatch)
	}
	n, w := a.r, a.c+b.c
	aug := make([][]expr.Node, n)
	for i := range aug {
		aug[i] = append(a.Row(i), b.Row(i)...)
	}

	for col := 0; col < n; col++ {
		p := pickPivot(aug, col)
		if p < 0 {
			return nil, fmt.Errorf("Solve: column %d: %w", col, matrix.ErrSingular)
		}
		aug[col], aug[p] = aug[p], aug[col]
		piv := aug[col][col]
		for r := 0; r < n; r++ {
			if r == col || expr.IsZero(aug[r][col]) {
				continue
			}
			f := expr.Div(aug[r][col], piv)
			for j := col; j < w; j++ {
				if expr.IsZero(aug[col][j]) {
					continue
				}
				aug[r][j] = expr.Sub(aug[r][j], expr.Mul(f, aug[col][j]))
			}
			aug[r][col] = expr.Const(0)
		}
	}

	out, err := newMatrix[expr.Node](n, b.c)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		for j := 0; j < b.c; j++ {
			out.data[i*b.c+j] = expr.Div(aug[i][n+j], aug[i][i])
		}
	}

	return out, nil
}

func pickPivot(aug [][]expr.Node, col int) int {
	best, bestAbs, firstSym := -1, 0.0, -1
	for r := col; r < len(aug); r++ {
		e := aug[r][col]
		if expr.IsZero(e) {
			continue
		}
		if v, ok := expr.Value(e); ok {
			if math.Abs(v) > bestAbs {
				best, bestAbs = r, math.Abs(v)
			}
		} else if firstSym < 0 {
			firstSym = r
		}
	}
	if best >= 0 {
		return best
	}

	return firstSym
}

// Symbols returns n fresh symbols name_0 … name_{n-1}.
func (Symbolic) Symbols(name string, n int) ([]expr.Node, error) {
	return expr.Nodes(expr.Symbols(name, n)), nil
}

// Compile compiles outputs with the given input groups. Every input must be a
// free symbol.
//
// Errors:
//   - ErrNotSymbol, plus expr compile errors.
func (Symbolic) Compile(name string, inputs [][]expr.Node, outputs []expr.Node) (Callable[expr.Node], error) {
	groups := make([][]*expr.Symbol, len(inputs))
	for g, in := range inputs {
		groups[g] = make([]*expr.Symbol, len(in))
		for i, n := range in {
			sym, ok := n.(*expr.Symbol)
			if !ok {
				return nil, fmt.Errorf("Compile %s: input %d.%d (%v): %w", name, g, i, n, ErrNotSymbol)
			}
			groups[g][i] = sym
		}
	}
	f, err := expr.Compile(name, groups, outputs)
	if err != nil {
		return nil, err
	}

	return Function{f: f}, nil
}

// Function adapts a compiled expr.Function to Callable. Call specialises the
// tape for node arguments; Numeric evaluates it directly on float64.
type Function struct {
	f *expr.Function
}

// Call replays the tape over node arguments.
func (fn Function) Call(args ...[]expr.Node) ([]expr.Node, error) { return fn.f.Apply(args...) }

// Numeric replays the tape over plain numbers.
func (fn Function) Numeric(args ...[]float64) ([]float64, error) { return fn.f.Call(args...) }

// Name returns the compiled function's name.
func (fn Function) Name() string { return fn.f.Name() }
