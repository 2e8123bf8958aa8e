// SPDX-License-Identifier: MIT

package algebra

import (
	"fmt"

	"github.com/katalvlaran/bspline/matrix"
)

// Numeric is the float64 algebra. Products and solves run on package matrix.
type Numeric struct{}

var _ Algebra[float64] = Numeric{}

func (Numeric) Kind() Kind                      { return KindNumeric }
func (Numeric) Const(v float64) float64         { return v }
func (Numeric) Add(x, y float64) float64        { return x + y }
func (Numeric) Sub(x, y float64) float64        { return x - y }
func (Numeric) Mul(x, y float64) float64        { return x * y }
func (Numeric) Div(x, y float64) float64        { return x / y }
func (Numeric) Neg(x float64) float64           { return -x }
func (Numeric) Ge(x, y float64) float64         { return mask(x >= y) }
func (Numeric) Gt(x, y float64) float64         { return mask(x > y) }
func (Numeric) Le(x, y float64) float64         { return mask(x <= y) }
func (Numeric) IsZero(x float64) bool           { return x == 0 }
func (Numeric) Float(x float64) (float64, bool) { return x, true }

func mask(b bool) float64 {
	if b {
		return 1
	}

	return 0
}

func (n Numeric) Zeros(rows, cols int) (*Matrix[float64], error) { return zeros[float64](n, rows, cols) }

func (n Numeric) Eye(size int) (*Matrix[float64], error) { return eye[float64](n, size) }

func (n Numeric) Lift(m *matrix.Dense) *Matrix[float64] { return lift[float64](n, m) }

// MatMul multiplies through matrix.Mul.
func (n Numeric) MatMul(a, b *Matrix[float64]) (*Matrix[float64], error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("MatMul: %w", matrix.ErrNilMatrix)
	}
	da, err := Dense(a)
	if err != nil {
		return nil, fmt.Errorf("MatMul: %w", err)
	}
	db, err := Dense(b)
	if err != nil {
		return nil, fmt.Errorf("MatMul: %w", err)
	}
	p, err := matrix.Mul(da, db)
	if err != nil {
		return nil, err
	}

	return n.Lift(p), nil
}

// MatVec multiplies through matrix.MatVec.
func (Numeric) MatVec(a *Matrix[float64], x []float64) ([]float64, error) {
	if a == nil {
		return nil, fmt.Errorf("MatVec: %w", matrix.ErrNilMatrix)
	}
	da, err := Dense(a)
	if err != nil {
		return nil, fmt.Errorf("MatVec: %w", err)
	}

	return matrix.MatVec(da, x)
}

// Solve factorises A with partial pivoting (gonum LU) and returns X with A·X = B.
//
// Errors:
//   - matrix.ErrDimensionMismatch, matrix.ErrSingular.
func (Numeric) Solve(a, b *Matrix[float64]) (*Matrix[float64], error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("Solve: %w", matrix.ErrNilMatrix)
	}
	da, err := Dense(a)
	if err != nil {
		return nil, fmt.Errorf("Solve: %w", err)
	}
	db, err := Dense(b)
	if err != nil {
		return nil, fmt.Errorf("Solve: %w", err)
	}
	x, err := matrix.Solve(da, db)
	if err != nil {
		return nil, err
	}

	return Numeric{}.Lift(x), nil
}

// Symbols always fails: the numeric algebra has no free variables.
func (Numeric) Symbols(string, int) ([]float64, error) {
	return nil, fmt.Errorf("Symbols: %w", ErrNotSymbolic)
}

// Compile always fails: there is no graph to compile.
func (Numeric) Compile(string, [][]float64, []float64) (Callable[float64], error) {
	return nil, fmt.Errorf("Compile: %w", ErrNotSymbolic)
}
