// SPDX-License-Identifier: MIT

package algebra

import (
	"fmt"

	"github.com/katalvlaran/bspline/matrix"
)

// Kind tells the two algebras apart without a type switch on S.
type Kind uint8

const (
	// KindNumeric is the float64 algebra.
	KindNumeric Kind = iota
	// KindSymbolic is the expression-graph algebra.
	KindSymbolic
)

func (k Kind) String() string {
	if k == KindSymbolic {
		return "symbolic"
	}

	return "numeric"
}

// Scalar is the elementwise part of an algebra.
type Scalar[S any] interface {
	Const(v float64) S
	Add(x, y S) S
	Sub(x, y S) S
	Mul(x, y S) S
	Div(x, y S) S
	Neg(x S) S
	// Ge, Gt and Le return the 0/1 scalar of the comparison.
	Ge(x, y S) S
	Gt(x, y S) S
	Le(x, y S) S
	// IsZero reports a structural zero: the exact constant 0.
	IsZero(x S) bool
	// Float reports the numeric value of x when it is known.
	Float(x S) (float64, bool)
}

// Algebra is the full numeric/symbolic dispatch interface used by the
// spline transforms.
type Algebra[S any] interface {
	Scalar[S]

	Kind() Kind

	Zeros(rows, cols int) (*Matrix[S], error)
	Eye(n int) (*Matrix[S], error)
	MatMul(a, b *Matrix[S]) (*Matrix[S], error)
	MatVec(a *Matrix[S], x []S) ([]S, error)
	// Solve returns X with A·X = B.
	Solve(a, b *Matrix[S]) (*Matrix[S], error)
	// Lift embeds a constant matrix.
	Lift(m *matrix.Dense) *Matrix[S]

	// Symbols returns n fresh free variables (symbolic only).
	Symbols(name string, n int) ([]S, error)
	// Compile turns outputs over the symbolic inputs into a callable (symbolic only).
	Compile(name string, inputs [][]S, outputs []S) (Callable[S], error)
}

// Callable is a compiled graph. Arguments are grouped like the compile inputs.
type Callable[S any] interface {
	Call(args ...[]S) ([]S, error)
}

// Consts lifts plain numbers into the algebra.
func Consts[S any](sc Scalar[S], vs []float64) []S {
	out := make([]S, len(vs))
	for i, v := range vs {
		out[i] = sc.Const(v)
	}

	return out
}

// Floats lowers a slice whose entries all have known values; ok is false otherwise.
func Floats[S any](sc Scalar[S], xs []S) ([]float64, bool) {
	out := make([]float64, len(xs))
	for i, x := range xs {
		v, ok := sc.Float(x)
		if !ok {
			return nil, false
		}
		out[i] = v
	}

	return out, true
}

// Dot returns sum_i x[i]*y[i], skipping structural zeros.
func Dot[S any](sc Scalar[S], x, y []S) (S, error) {
	acc := sc.Const(0)
	if len(x) != len(y) {
		return acc, fmt.Errorf("Dot: %d vs %d: %w", len(x), len(y), matrix.ErrDimensionMismatch)
	}
	for i := range x {
		if sc.IsZero(x[i]) || sc.IsZero(y[i]) {
			continue
		}
		acc = sc.Add(acc, sc.Mul(x[i], y[i]))
	}

	return acc, nil
}

// zeros fills a new rows×cols matrix with the algebra's 0.
func zeros[S any](sc Scalar[S], rows, cols int) (*Matrix[S], error) {
	m, err := newMatrix[S](rows, cols)
	if err != nil {
		return nil, err
	}
	z := sc.Const(0)
	for i := range m.data {
		m.data[i] = z
	}

	return m, nil
}

func eye[S any](sc Scalar[S], n int) (*Matrix[S], error) {
	m, err := zeros(sc, n, n)
	if err != nil {
		return nil, err
	}
	one := sc.Const(1)
	for i := 0; i < n; i++ {
		m.data[i*n+i] = one
	}

	return m, nil
}

// matMul is the row-by-column product; structural zeros are skipped so that
// symbolic products of sparse transforms stay small.
func matMul[S any](sc Scalar[S], a, b *Matrix[S]) (*Matrix[S], error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("MatMul: %w", matrix.ErrNilMatrix)
	}
	if a.c != b.r {
		return nil, fmt.Errorf("MatMul: %dx%d · %dx%d: %w", a.r, a.c, b.r, b.c, matrix.ErrDimensionMismatch)
	}
	out, err := zeros(sc, a.r, b.c)
	if err != nil {
		return nil, err
	}
	for i := 0; i < a.r; i++ {
		for k := 0; k < a.c; k++ {
			aik := a.data[i*a.c+k]
			if sc.IsZero(aik) {
				continue
			}
			for j := 0; j < b.c; j++ {
				bkj := b.data[k*b.c+j]
				if sc.IsZero(bkj) {
					continue
				}
				out.data[i*b.c+j] = sc.Add(out.data[i*b.c+j], sc.Mul(aik, bkj))
			}
		}
	}

	return out, nil
}

func matVec[S any](sc Scalar[S], a *Matrix[S], x []S) ([]S, error) {
	if a == nil {
		return nil, fmt.Errorf("MatVec: %w", matrix.ErrNilMatrix)
	}
	if len(x) != a.c {
		return nil, fmt.Errorf("MatVec: %dx%d · %d: %w", a.r, a.c, len(x), matrix.ErrDimensionMismatch)
	}
	out := make([]S, a.r)
	for i := 0; i < a.r; i++ {
		v, err := Dot(sc, a.data[i*a.c:(i+1)*a.c], x)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}

	return out, nil
}

func lift[S any](sc Scalar[S], m *matrix.Dense) *Matrix[S] {
	out := &Matrix[S]{r: m.Rows(), c: m.Cols(), data: make([]S, m.Rows()*m.Cols())}
	for i, row := range m.RawRows() {
		for j, v := range row {
			out.data[i*out.c+j] = sc.Const(v)
		}
	}

	return out
}
