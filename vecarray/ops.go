// SPDX-License-Identifier: MIT
// Package vecarray: read-only batch kernels.
//
// Purpose:
//   - Implement the bulk linear-algebra surface that never mutates the
//     receiver: inner products, linear combinations, per-row norms,
//     component extraction, argmax and real/imag splits.
//   - Ride BLAS kernels (blas64 for real data, cblas128 for complex) with
//     fixed loop orders for determinism.
//
// Numeric policy:
//   - Complex inner products conjugate the right operand (x·conj(y)).
//   - L2NormSquared accumulates the real part of the conjugated square
//     sum, so it is exact for complex data as well.

package vecarray

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/blas/cblas128"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Dot returns the Len(a)×Len(other) matrix of pairwise inner products
// between real arrays: out[i][j] = <a[i], other[j]>.
//
// Errors: ErrDimensionMismatch on width mismatch; ErrComplexData when
// either operand is complex (use DotC).
// Complexity: O(n*m*d).
func (a *Array) Dot(other *Array) ([][]float64, error) {
	if err := validateNotNil(a); err != nil {
		return nil, arrayErrorf("Dot", err)
	}
	if err := validateNotNil(other); err != nil {
		return nil, arrayErrorf("Dot", err)
	}
	if err := validateSameDim(a, other); err != nil {
		return nil, arrayErrorf("Dot", err)
	}
	if a.buf.complexData || other.buf.complexData {
		return nil, arrayErrorf("Dot", ErrComplexData)
	}

	out := make([][]float64, a.n)
	for i := 0; i < a.n; i++ {
		row := make([]float64, other.n)
		av := blas64.Vector{N: a.buf.cols, Inc: 1, Data: a.buf.rowReal(i)}
		for j := 0; j < other.n; j++ {
			row[j] = blas64.Dot(av, blas64.Vector{N: other.buf.cols, Inc: 1, Data: other.buf.rowReal(j)})
		}
		out[i] = row
	}

	return out, nil
}

// DotC returns the pairwise inner-product matrix for arrays of either
// element type, conjugating the right operand:
// out[i][j] = Σ_k a[i][k] * conj(other[j][k]).
//
// Errors: ErrDimensionMismatch.
// Complexity: O(n*m*d).
func (a *Array) DotC(other *Array) ([][]complex128, error) {
	if err := validateNotNil(a); err != nil {
		return nil, arrayErrorf("DotC", err)
	}
	if err := validateNotNil(other); err != nil {
		return nil, arrayErrorf("DotC", err)
	}
	if err := validateSameDim(a, other); err != nil {
		return nil, arrayErrorf("DotC", err)
	}

	out := make([][]complex128, a.n)
	for i := 0; i < a.n; i++ {
		row := make([]complex128, other.n)
		ai := a.rowAsComplex(i, nil)
		var scratch []complex128
		for j := 0; j < other.n; j++ {
			bj := other.rowAsComplex(j, &scratch)
			// Dotc conjugates its first argument, so pass other first.
			row[j] = cblas128.Dotc(
				cblas128.Vector{N: len(bj), Inc: 1, Data: bj},
				cblas128.Vector{N: len(ai), Inc: 1, Data: ai})
		}
		out[i] = row
	}

	return out, nil
}

// PairwiseDot returns one inner product per row pair of two equal-length
// real arrays: out[i] = <a[i], other[i]>.
//
// Errors: ErrDimensionMismatch, ErrIndexCount on unequal lengths,
// ErrComplexData.
// Complexity: O(n*d).
func (a *Array) PairwiseDot(other *Array) ([]float64, error) {
	if err := validateNotNil(a); err != nil {
		return nil, arrayErrorf("PairwiseDot", err)
	}
	if err := validateNotNil(other); err != nil {
		return nil, arrayErrorf("PairwiseDot", err)
	}
	if err := validateSameDim(a, other); err != nil {
		return nil, arrayErrorf("PairwiseDot", err)
	}
	if a.n != other.n {
		return nil, arrayErrorf("PairwiseDot", ErrIndexCount)
	}
	if a.buf.complexData || other.buf.complexData {
		return nil, arrayErrorf("PairwiseDot", ErrComplexData)
	}

	out := make([]float64, a.n)
	for i := 0; i < a.n; i++ {
		out[i] = floats.Dot(a.buf.rowReal(i), other.buf.rowReal(i))
	}

	return out, nil
}

// PairwiseDotC is the complex-aware variant of PairwiseDot, conjugating
// the right operand.
//
// Errors: ErrDimensionMismatch, ErrIndexCount.
func (a *Array) PairwiseDotC(other *Array) ([]complex128, error) {
	if err := validateNotNil(a); err != nil {
		return nil, arrayErrorf("PairwiseDotC", err)
	}
	if err := validateNotNil(other); err != nil {
		return nil, arrayErrorf("PairwiseDotC", err)
	}
	if err := validateSameDim(a, other); err != nil {
		return nil, arrayErrorf("PairwiseDotC", err)
	}
	if a.n != other.n {
		return nil, arrayErrorf("PairwiseDotC", ErrIndexCount)
	}

	out := make([]complex128, a.n)
	var scratchA, scratchB []complex128
	for i := 0; i < a.n; i++ {
		ai := a.rowAsComplex(i, &scratchA)
		bi := other.rowAsComplex(i, &scratchB)
		out[i] = cblas128.Dotc(
			cblas128.Vector{N: len(bi), Inc: 1, Data: bi},
			cblas128.Vector{N: len(ai), Inc: 1, Data: ai})
	}

	return out, nil
}

// Lincomb returns a new array whose r-th vector is the linear combination
// Σ_i coeffRows[r][i] * a[i]. Pass one coefficient row for a single
// combination or several for a batch; each row must have width Len(a).
// The result element type follows the receiver.
//
// Errors: ErrIndexCount on a coefficient row of the wrong width.
// Complexity: O(k*n*d).
func (a *Array) Lincomb(coeffRows ...[]float64) (*Array, error) {
	if err := validateNotNil(a); err != nil {
		return nil, arrayErrorf("Lincomb", err)
	}
	for _, row := range coeffRows {
		if len(row) != a.n {
			return nil, arrayErrorf("Lincomb", ErrIndexCount)
		}
	}

	k := len(coeffRows)
	if a.buf.complexData {
		nb := newComplexBuffer(k, a.buf.cols)
		for r, row := range coeffRows {
			dst := nb.rowCplx(r)
			for i, alpha := range row {
				if alpha == 0 {
					continue
				}
				cblas128.Axpy(complex(alpha, 0),
					cblas128.Vector{N: a.buf.cols, Inc: 1, Data: a.buf.rowCplx(i)},
					cblas128.Vector{N: len(dst), Inc: 1, Data: dst})
			}
		}

		return newHandle(nb, k), nil
	}

	nb := newRealBuffer(k, a.buf.cols)
	for r, row := range coeffRows {
		dst := nb.rowReal(r)
		for i, alpha := range row {
			if alpha == 0 {
				continue
			}
			blas64.Axpy(alpha,
				blas64.Vector{N: a.buf.cols, Inc: 1, Data: a.buf.rowReal(i)},
				blas64.Vector{N: len(dst), Inc: 1, Data: dst})
		}
	}

	return newHandle(nb, k), nil
}

// LincombC is the complex-coefficient variant of Lincomb; the result is
// always complex.
//
// Errors: ErrIndexCount on a coefficient row of the wrong width.
func (a *Array) LincombC(coeffRows ...[]complex128) (*Array, error) {
	if err := validateNotNil(a); err != nil {
		return nil, arrayErrorf("LincombC", err)
	}
	for _, row := range coeffRows {
		if len(row) != a.n {
			return nil, arrayErrorf("LincombC", ErrIndexCount)
		}
	}

	k := len(coeffRows)
	nb := newComplexBuffer(k, a.buf.cols)
	var scratch []complex128
	for r, row := range coeffRows {
		dst := nb.rowCplx(r)
		for i, alpha := range row {
			if alpha == 0 {
				continue
			}
			src := a.rowAsComplex(i, &scratch)
			cblas128.Axpy(alpha,
				cblas128.Vector{N: len(src), Inc: 1, Data: src},
				cblas128.Vector{N: len(dst), Inc: 1, Data: dst})
		}
	}

	return newHandle(nb, k), nil
}

// L1Norm returns the per-row sum of absolute values.
// Complexity: O(n*d).
func (a *Array) L1Norm() []float64 {
	out := make([]float64, a.n)
	for i := 0; i < a.n; i++ {
		if a.buf.complexData {
			var s float64
			for _, v := range a.buf.rowCplx(i) {
				s += cmplx.Abs(v)
			}
			out[i] = s
		} else {
			out[i] = floats.Norm(a.buf.rowReal(i), 1)
		}
	}

	return out
}

// L2Norm returns the per-row Euclidean norm.
// Complexity: O(n*d).
func (a *Array) L2Norm() []float64 {
	out := make([]float64, a.n)
	for i := 0; i < a.n; i++ {
		if a.buf.complexData {
			row := a.buf.rowCplx(i)
			out[i] = cblas128.Nrm2(cblas128.Vector{N: len(row), Inc: 1, Data: row})
		} else {
			row := a.buf.rowReal(i)
			out[i] = blas64.Nrm2(blas64.Vector{N: len(row), Inc: 1, Data: row})
		}
	}

	return out
}

// L2NormSquared returns the per-row squared Euclidean norm as the real
// part of the conjugated square sum, exact for complex data.
// Complexity: O(n*d).
func (a *Array) L2NormSquared() []float64 {
	out := make([]float64, a.n)
	for i := 0; i < a.n; i++ {
		if a.buf.complexData {
			var s float64
			for _, v := range a.buf.rowCplx(i) {
				s += real(v * cmplx.Conj(v))
			}
			out[i] = s
		} else {
			row := a.buf.rowReal(i)
			out[i] = floats.Dot(row, row)
		}
	}

	return out
}

// Components returns the sub-matrix of the selected columns across all
// rows of a real array, one slice per row in original order. Component
// indices are validated against the width even when the array is empty;
// an empty array yields an empty result without erroring.
//
// Errors: ErrIndexOutOfRange, ErrComplexData.
// Complexity: O(n*k).
func (a *Array) Components(idx ...int) ([][]float64, error) {
	if err := validateNotNil(a); err != nil {
		return nil, arrayErrorf("Components", err)
	}
	if err := validateComponents(idx, a.buf.cols); err != nil {
		return nil, arrayErrorf("Components", err)
	}
	if a.buf.complexData {
		return nil, arrayErrorf("Components", ErrComplexData)
	}

	out := make([][]float64, a.n)
	for i := 0; i < a.n; i++ {
		row := a.buf.rowReal(i)
		sub := make([]float64, len(idx))
		for k, j := range idx {
			sub[k] = row[j]
		}
		out[i] = sub
	}

	return out, nil
}

// ComponentsC is the complex-aware variant of Components.
//
// Errors: ErrIndexOutOfRange.
func (a *Array) ComponentsC(idx ...int) ([][]complex128, error) {
	if err := validateNotNil(a); err != nil {
		return nil, arrayErrorf("ComponentsC", err)
	}
	if err := validateComponents(idx, a.buf.cols); err != nil {
		return nil, arrayErrorf("ComponentsC", err)
	}

	out := make([][]complex128, a.n)
	var scratch []complex128
	for i := 0; i < a.n; i++ {
		row := a.rowAsComplex(i, &scratch)
		sub := make([]complex128, len(idx))
		for k, j := range idx {
			sub[k] = row[j]
		}
		out[i] = sub
	}

	return out, nil
}

// Amax returns, per row, the index and magnitude of the entry with the
// largest absolute value (first occurrence on ties). For the zero-width
// degenerate case every row reports the sentinel index -1 with magnitude
// zero; this is a defined edge case, not an error.
// Complexity: O(n*d).
func (a *Array) Amax() (indices []int, values []float64) {
	indices = make([]int, a.n)
	values = make([]float64, a.n)
	if a.buf.cols == 0 {
		for i := range indices {
			indices[i] = -1
		}

		return indices, values
	}

	for i := 0; i < a.n; i++ {
		best, bestAbs := 0, math.Inf(-1)
		for j := 0; j < a.buf.cols; j++ {
			var abs float64
			if a.buf.complexData {
				abs = cmplx.Abs(a.buf.rowCplx(i)[j])
			} else {
				abs = math.Abs(a.buf.rowReal(i)[j])
			}
			if abs > bestAbs {
				best, bestAbs = j, abs
			}
		}
		indices[i], values[i] = best, bestAbs
	}

	return indices, values
}

// Real returns a deep real array holding the real parts of the vectors.
// Complexity: O(n*d).
func (a *Array) Real() *Array {
	nb := newRealBuffer(a.n, a.buf.cols)
	for i := 0; i < a.n; i++ {
		dst := nb.rowReal(i)
		if a.buf.complexData {
			for j, v := range a.buf.rowCplx(i) {
				dst[j] = real(v)
			}
		} else {
			copy(dst, a.buf.rowReal(i))
		}
	}

	return newHandle(nb, a.n)
}

// Imag returns a deep real array holding the imaginary parts of the
// vectors (all zeros for a real array).
// Complexity: O(n*d).
func (a *Array) Imag() *Array {
	nb := newRealBuffer(a.n, a.buf.cols)
	if a.buf.complexData {
		for i := 0; i < a.n; i++ {
			dst := nb.rowReal(i)
			for j, v := range a.buf.rowCplx(i) {
				dst[j] = imag(v)
			}
		}
	}

	return newHandle(nb, a.n)
}

// Dense materializes the logical rows of a real array as a Len()×Dim()
// gonum matrix (a private copy, safe to mutate).
//
// Errors: ErrComplexData; ErrBadShape when the array has no rows or zero
// width (gonum cannot represent empty matrices).
// Complexity: O(n*d).
func (a *Array) Dense() (*mat.Dense, error) {
	if err := validateNotNil(a); err != nil {
		return nil, arrayErrorf("Dense", err)
	}
	if a.buf.complexData {
		return nil, arrayErrorf("Dense", ErrComplexData)
	}
	if a.n == 0 || a.buf.cols == 0 {
		return nil, arrayErrorf("Dense", ErrBadShape)
	}

	data := make([]float64, a.n*a.buf.cols)
	copy(data, a.buf.re[:a.n*a.buf.cols])

	return mat.NewDense(a.n, a.buf.cols, data), nil
}

// rowAsComplex returns row i as complex values. Complex buffers return
// the live row view; real buffers convert into *scratch (allocated once
// and reused across calls) or a fresh slice when scratch is nil.
func (a *Array) rowAsComplex(i int, scratch *[]complex128) []complex128 {
	if a.buf.complexData {
		return a.buf.rowCplx(i)
	}
	var s []complex128
	if scratch != nil && len(*scratch) == a.buf.cols {
		s = *scratch
	} else {
		s = make([]complex128, a.buf.cols)
		if scratch != nil {
			*scratch = s
		}
	}
	for j, v := range a.buf.rowReal(i) {
		s[j] = complex(v, 0)
	}

	return s
}
