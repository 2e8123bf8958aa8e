// SPDX-License-Identifier: MIT
package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/bspline/matrix"
)

// ExampleSolve solves a small system and assembles it into a larger matrix.
func ExampleSolve() {
	a, _ := matrix.NewDenseFrom([][]float64{{4, 0}, {1, 2}})
	b, _ := matrix.NewDenseFrom([][]float64{{8}, {6}})

	x, err := matrix.Solve(a, b)
	if err != nil {
		fmt.Println(err)
		return
	}
	dst, _ := matrix.Identity(3)
	_ = matrix.SetBlock(dst, 1, 2, x)
	fmt.Print(dst)
	// Output:
	// [1, 0, 0]
	// [0, 1, 2]
	// [0, 0, 2]
}
