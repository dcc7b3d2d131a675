// SPDX-License-Identifier: MIT
// Package operator: dense/sparse reconciliation kernels.
//
// Purpose:
//   - Implement the small set of matrix combinators the conversion rules
//     share: representation-keeping transpose, promotion-aware product
//     and weighted accumulation, and the exact direct solve backing
//     adjoint source products.
//
// Promotion policy (single source of truth for the rules):
//   - product/sum of operands is sparse iff every operand is sparse;
//     any dense operand promotes the result to dense.
//   - Solves always produce dense results (the factorization is dense).

package operator

import (
	"fmt"

	sparse "github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// opErrorf wraps err with an operation tag, preserving the original
// sentinel via %w. Use only when err != nil.
func opErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// transposeKeep returns mᵀ in the same representation class as m:
// sparse stays sparse (re-assembled, since generic transpose views would
// hide the sparsity capability), dense stays dense.
// Complexity: O(nnz) sparse, O(r*c) dense.
func transposeKeep(m mat.Matrix) mat.Matrix {
	if !isSparse(m) {
		return mat.DenseCopyOf(m.T())
	}
	r, c := m.Dims()
	d := sparse.NewDOK(c, r)
	if nz, ok := m.(nonZeroDoer); ok {
		nz.DoNonZero(func(i, j int, v float64) { d.Set(j, i, v) })
	} else {
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				if v := m.At(i, j); v != 0 {
					d.Set(j, i, v)
				}
			}
		}
	}

	return d.ToCSR()
}

// mul computes a·b with standard promotion: sparse only when both
// operands are sparse. When representations mix, the sparse operand is
// consumed directly by the dense kernel, which exploits it as the left
// multiplicand without an explicit transpose detour.
//
// Errors: ErrDimensionMismatch.
func mul(a, b mat.Matrix) (mat.Matrix, error) {
	_, ac := a.Dims()
	br, _ := b.Dims()
	if ac != br {
		return nil, ErrDimensionMismatch
	}
	if isSparse(a) && isSparse(b) {
		var out sparse.CSR
		out.Mul(a, b)

		return &out, nil
	}
	var out mat.Dense
	out.Mul(a, b)

	return &out, nil
}

// scale returns c*m keeping m's representation class.
func scale(c float64, m mat.Matrix) mat.Matrix {
	if !isSparse(m) {
		var out mat.Dense
		out.Scale(c, m)

		return &out
	}
	r, cols := m.Dims()
	d := sparse.NewDOK(r, cols)
	if nz, ok := m.(nonZeroDoer); ok {
		nz.DoNonZero(func(i, j int, v float64) { d.Set(i, j, c*v) })
	} else {
		for i := 0; i < r; i++ {
			for j := 0; j < cols; j++ {
				if v := m.At(i, j); v != 0 {
					d.Set(i, j, c*v)
				}
			}
		}
	}

	return d.ToCSR()
}

// addScaled folds acc + c*m with standard promotion: the sum stays
// sparse only while every term is sparse. acc is never mutated; lincomb
// folding relies on fresh results each step.
//
// Errors: ErrDimensionMismatch.
func addScaled(acc mat.Matrix, c float64, m mat.Matrix) (mat.Matrix, error) {
	ar, ac := acc.Dims()
	mr, mc := m.Dims()
	if ar != mr || ac != mc {
		return nil, ErrDimensionMismatch
	}

	if isSparse(acc) && isSparse(m) {
		d := toDOK(acc)
		addToDOK(d, m, 0, 0, c)

		return d.ToCSR(), nil
	}

	out := mat.DenseCopyOf(acc)
	var scaled mat.Dense
	scaled.Scale(c, m)
	out.Add(out, &scaled)

	return out, nil
}

// addToDOK accumulates c*m into d at the given row/column offset,
// visiting only stored entries for sparse m.
func addToDOK(d *sparse.DOK, m mat.Matrix, rowOff, colOff int, c float64) {
	if nz, ok := m.(nonZeroDoer); ok {
		nz.DoNonZero(func(i, j int, v float64) {
			d.Set(rowOff+i, colOff+j, d.At(rowOff+i, colOff+j)+c*v)
		})

		return
	}
	r, cols := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < cols; j++ {
			if v := m.At(i, j); v != 0 {
				d.Set(rowOff+i, colOff+j, d.At(rowOff+i, colOff+j)+c*v)
			}
		}
	}
}

// solveAgainst computes X with product·X = rhs via an exact dense LU
// factorization. Sparse products are densified for factoring; the
// conversion contract is "equivalent matrix", so only direct solves
// qualify.
//
// Errors: ErrSingularMatrix when the product matrix is singular (or
// numerically unusable).
func solveAgainst(product, rhs mat.Matrix) (*mat.Dense, error) {
	var x mat.Dense
	if err := x.Solve(densify(product), densify(rhs)); err != nil {
		return nil, opErrorf("solve", ErrSingularMatrix)
	}

	return &x, nil
}

// eyeDense returns the n×n dense identity.
func eyeDense(n int) *mat.Dense {
	out := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		out.Set(i, i, 1)
	}

	return out
}

// eyeDOK returns the n×n identity staged as DOK for scheme encoding.
func eyeDOK(n int) *sparse.DOK {
	d := sparse.NewDOK(n, n)
	for i := 0; i < n; i++ {
		d.Set(i, i, 1)
	}

	return d
}
