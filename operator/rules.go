// SPDX-License-Identifier: MIT
// Package operator: the rule table — one conversion rule per variant.
//
// Purpose:
//   - Map each node variant to the rule producing its concrete matrix.
//     Dispatch is purely by variant type; the table is closed and
//     exhaustive, so an unmatched variant is a programming error
//     surfaced as ErrUnsupportedOperator, not a runtime possibility once
//     the set is complete.
//   - Rules recurse through apply with the caller's format request; no
//     global format is enforced mid-tree — children convert
//     independently and the parent rule reconciles dense/sparse results.
//
// Determinism:
//   - Fixed child orders (row-major blocks, left-to-right lincomb folds);
//     conversion of the same tree with the same arguments is idempotent
//     and never mutates nodes.

package operator

import (
	"reflect"

	sparse "github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// conversionRule turns one node into a matrix, recursing via apply.
type conversionRule func(op Operator, f Format, mu Parameters) (mat.Matrix, error)

// conversionRules is the closed dispatch table, keyed by variant type.
// Populated in init: the composite rules recurse through apply, which
// reads this table, so a declaration-time literal would form an
// initialization cycle.
var conversionRules map[reflect.Type]conversionRule

func init() {
	conversionRules = map[reflect.Type]conversionRule{
		reflect.TypeOf((*MatrixOperator)(nil)):      convertMatrixOperator,
		reflect.TypeOf((*VectorArrayOperator)(nil)): convertVectorArrayOperator,
		reflect.TypeOf((*BlockOperator)(nil)):       convertBlockOperator,
		reflect.TypeOf((*AdjointOperator)(nil)):     convertAdjointOperator,
		reflect.TypeOf((*Concatenation)(nil)):       convertConcatenation,
		reflect.TypeOf((*LincombOperator)(nil)):     convertLincombOperator,
		reflect.TypeOf((*IdentityOperator)(nil)):    convertIdentityOperator,
		reflect.TypeOf((*ZeroOperator)(nil)):        convertZeroOperator,
		reflect.TypeOf((*ComponentProjection)(nil)): convertComponentProjection,
	}
}

// apply dispatches op to its rule and reconciles the result with the
// requested format. This is the engine's only entry; it holds no mutable
// state, so concurrent conversions need no coordination.
func apply(op Operator, f Format, mu Parameters) (mat.Matrix, error) {
	if op == nil {
		return nil, ErrNilOperator
	}
	rule, ok := conversionRules[reflect.TypeOf(op)]
	if !ok {
		return nil, opErrorf("apply", ErrUnsupportedOperator)
	}
	res, err := rule(op, f, mu)
	if err != nil {
		return nil, err
	}

	return finalize(res, f)
}

// convertMatrixOperator returns the stored matrix unchanged; finalize
// densifies or re-encodes when the caller pinned a format.
func convertMatrixOperator(op Operator, _ Format, _ Parameters) (mat.Matrix, error) {
	return op.(*MatrixOperator).m, nil
}

// convertVectorArrayOperator returns the array's buffer with rows as
// columns (or as rows under the transposed flag).
func convertVectorArrayOperator(op Operator, _ Format, _ Parameters) (mat.Matrix, error) {
	v := op.(*VectorArrayOperator)
	d, err := v.arr.Dense()
	if err != nil {
		// Complex or empty arrays have no float64 matrix form.
		return nil, opErrorf("VectorArrayOperator", ErrUnsupportedOperator)
	}
	if v.transposed {
		return d, nil
	}

	return mat.DenseCopyOf(d.T()), nil
}

// convertBlockOperator converts every block independently and assembles:
// dense when the caller pinned dense or no block came back sparse,
// sparse (COO under auto) otherwise, with dense
// sub-blocks promoted implicitly during assembly.
func convertBlockOperator(op Operator, f Format, mu Parameters) (mat.Matrix, error) {
	b := op.(*BlockOperator)
	nr, nc := len(b.rowDims), len(b.colDims)
	grid := make([][]mat.Matrix, nr)
	anySparse := false
	for i := 0; i < nr; i++ {
		grid[i] = make([]mat.Matrix, nc)
		for j := 0; j < nc; j++ {
			if b.blocks[i][j] == nil {
				continue // zero block
			}
			blk, err := apply(b.blocks[i][j], f, mu)
			if err != nil {
				return nil, err
			}
			if isSparse(blk) {
				anySparse = true
			}
			grid[i][j] = blk
		}
	}

	rangeDim, sourceDim := b.RangeDim(), b.SourceDim()
	if f == FormatDense || (f == FormatAuto && !anySparse) {
		out := mat.NewDense(rangeDim, sourceDim, nil)
		rowOff := 0
		for i := 0; i < nr; i++ {
			colOff := 0
			for j := 0; j < nc; j++ {
				if blk := grid[i][j]; blk != nil {
					out.Slice(rowOff, rowOff+b.rowDims[i], colOff, colOff+b.colDims[j]).(*mat.Dense).Copy(blk)
				}
				colOff += b.colDims[j]
			}
			rowOff += b.rowDims[i]
		}

		return out, nil
	}

	d := sparse.NewDOK(rangeDim, sourceDim)
	rowOff := 0
	for i := 0; i < nr; i++ {
		colOff := 0
		for j := 0; j < nc; j++ {
			if blk := grid[i][j]; blk != nil {
				addToDOK(d, blk, rowOff, colOff, 1)
			}
			colOff += b.colDims[j]
		}
		rowOff += b.rowDims[i]
	}
	if f == FormatAuto {
		return d.ToCOO(), nil
	}

	return d, nil
}

// convertAdjointOperator transposes the converted inner operator,
// right-multiplies by the range product when present, and solves against
// the source product when present (a Riesz change of basis, not a plain
// product).
func convertAdjointOperator(op Operator, f Format, mu Parameters) (mat.Matrix, error) {
	a := op.(*AdjointOperator)
	inner, err := apply(a.op, f, mu)
	if err != nil {
		return nil, err
	}
	res := transposeKeep(inner)

	if a.rangeProduct != nil {
		rp, err := apply(a.rangeProduct, f, mu)
		if err != nil {
			return nil, err
		}
		if res, err = mul(res, rp); err != nil {
			return nil, opErrorf("AdjointOperator", err)
		}
	}
	if a.sourceProduct != nil {
		sp, err := apply(a.sourceProduct, f, mu)
		if err != nil {
			return nil, err
		}
		solved, err := solveAgainst(sp, res)
		if err != nil {
			return nil, opErrorf("AdjointOperator", ErrSingularMatrix)
		}
		res = solved
	}

	return res, nil
}

// convertConcatenation multiplies second·first (right operand times left
// operand, consistent with function composition).
func convertConcatenation(op Operator, f Format, mu Parameters) (mat.Matrix, error) {
	c := op.(*Concatenation)
	first, err := apply(c.first, f, mu)
	if err != nil {
		return nil, err
	}
	second, err := apply(c.second, f, mu)
	if err != nil {
		return nil, err
	}
	res, err := mul(second, first)
	if err != nil {
		return nil, opErrorf("Concatenation", err)
	}

	return res, nil
}

// convertLincombOperator evaluates the coefficients once against the
// parameter context, then folds the weighted terms left-to-right
// starting from the first.
func convertLincombOperator(op Operator, f Format, mu Parameters) (mat.Matrix, error) {
	l := op.(*LincombOperator)
	weights := make([]float64, len(l.coeffs))
	for i, c := range l.coeffs {
		weights[i] = c.Evaluate(mu)
	}

	first, err := apply(l.ops[0], f, mu)
	if err != nil {
		return nil, err
	}
	res := scale(weights[0], first)
	for i := 1; i < len(l.ops); i++ {
		term, err := apply(l.ops[i], f, mu)
		if err != nil {
			return nil, err
		}
		if res, err = addScaled(res, weights[i], term); err != nil {
			return nil, opErrorf("LincombOperator", err)
		}
	}

	return res, nil
}

// convertIdentityOperator emits the identity: dense eye, or the default
// sparse scheme under auto.
func convertIdentityOperator(op Operator, f Format, _ Parameters) (mat.Matrix, error) {
	id := op.(*IdentityOperator)
	switch {
	case f == FormatDense:
		return eyeDense(id.dim), nil
	case f == FormatAuto:
		return encode(eyeDOK(id.dim), DefaultSparseFormat)
	default:
		return eyeDOK(id.dim), nil
	}
}

// convertZeroOperator emits the zero matrix. Under auto the result is
// sparse, not dense — a deliberate asymmetry favoring sparsity for
// placeholders.
func convertZeroOperator(op Operator, f Format, _ Parameters) (mat.Matrix, error) {
	z := op.(*ZeroOperator)
	if f == FormatDense {
		return mat.NewDense(z.rangeDim, z.sourceDim, nil), nil
	}
	empty := sparse.NewDOK(z.rangeDim, z.sourceDim)
	if f == FormatAuto {
		return encode(empty, DefaultSparseFormat)
	}

	return empty, nil
}

// convertComponentProjection emits the one-hot selection matrix. The
// sparse path builds the pattern directly in coordinate form, never
// materializing a dense one-hot matrix unless dense was requested.
func convertComponentProjection(op Operator, f Format, _ Parameters) (mat.Matrix, error) {
	p := op.(*ComponentProjection)
	k := len(p.components)
	if f == FormatDense {
		out := mat.NewDense(k, p.sourceDim, nil)
		for i, j := range p.components {
			out.Set(i, j, 1)
		}

		return out, nil
	}

	rows := make([]int, k)
	cols := make([]int, k)
	data := make([]float64, k)
	for i, j := range p.components {
		rows[i], cols[i], data[i] = i, j, 1
	}
	coo := sparse.NewCOO(k, p.sourceDim, rows, cols, data)
	if f == FormatAuto {
		return encode(coo, DefaultSparseFormat)
	}

	return coo, nil
}
