// SPDX-License-Identifier: MIT

package operator_test

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/velmor/velmor/operator"
)

// ExampleToMatrix demonstrates compiling a small expression tree — a
// parameter-weighted sum of a stiffness leaf and the identity — into one
// dense matrix.
func ExampleToMatrix() {
	k, _ := operator.NewMatrixOperator(mat.NewDense(2, 2, []float64{2, -1, -1, 2}))
	id, _ := operator.NewIdentityOperator(2)

	shifted, _ := operator.NewLincombOperator(
		[]operator.Operator{k, id},
		[]operator.Coefficient{
			operator.Constant(1),
			operator.Functional(func(mu operator.Parameters) float64 { return mu["shift"] }),
		})

	m, _ := operator.ToMatrix(shifted,
		operator.WithFormat(operator.FormatDense),
		operator.WithParameters(operator.Parameters{"shift": 10}))

	fmt.Println(mat.Formatted(m))
	// Output:
	// ⎡12  -1⎤
	// ⎣-1  12⎦
}

// ExampleNewBlockOperator demonstrates block assembly with an inferred
// zero block.
func ExampleNewBlockOperator() {
	a, _ := operator.NewMatrixOperator(mat.NewDense(1, 1, []float64{5}))
	b, _ := operator.NewMatrixOperator(mat.NewDense(1, 2, []float64{6, 7}))
	c, _ := operator.NewMatrixOperator(mat.NewDense(1, 2, []float64{8, 9}))

	blk, _ := operator.NewBlockOperator([][]operator.Operator{
		{a, b},
		{nil, c}, // nil denotes a zero block
	})

	m, _ := operator.ToMatrix(blk, operator.WithFormat(operator.FormatDense))
	fmt.Println(mat.Formatted(m))
	// Output:
	// ⎡5  6  7⎤
	// ⎣0  8  9⎦
}
