// SPDX-License-Identifier: MIT
// Package operator: output formats and dense/sparse bridging.
//
// Purpose:
//   - Define the closed set of recognized output formats: dense plus the
//     sparse schemes the backing library can round-trip (COO, CSR, CSC,
//     DOK).
//   - Centralize the representation checks and re-encoders every rule
//     needs: isSparse, densify, DOK staging, scheme encoding, and the
//     finalize step that makes each node's result honor the requested
//     format.
//
// Policy:
//   - FormatAuto never forces a representation change; rules choose.
//   - encode/finalize are cheap when the value already has the requested
//     concrete type.

package operator

import (
	sparse "github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// Format names the requested output representation for a conversion.
type Format string

// Recognized formats. FormatAuto lets each rule choose between dense and
// sparse on its own.
const (
	FormatAuto  Format = ""
	FormatDense Format = "dense"
	FormatCOO   Format = "coo"
	FormatCSR   Format = "csr"
	FormatCSC   Format = "csc"
	FormatDOK   Format = "dok"
)

// DefaultSparseFormat is the scheme used for placeholders (Zero,
// Identity, ComponentProjection) when no format was requested. Sparse by
// deliberate policy: collaborators rely on receiving sparse placeholders.
const DefaultSparseFormat = FormatCSC

// ValidateFormat checks f against the recognized set.
//
// Errors: ErrInvalidFormat.
// Complexity: O(1).
func ValidateFormat(f Format) error {
	switch f {
	case FormatAuto, FormatDense, FormatCOO, FormatCSR, FormatCSC, FormatDOK:
		return nil
	default:
		return ErrInvalidFormat
	}
}

// sparseScheme reports whether f names a sparse storage scheme.
func (f Format) sparseScheme() bool {
	switch f {
	case FormatCOO, FormatCSR, FormatCSC, FormatDOK:
		return true
	default:
		return false
	}
}

// nonZeroDoer is the capability sparse matrices expose for visiting
// stored entries without densifying.
type nonZeroDoer interface {
	DoNonZero(fn func(i, j int, v float64))
}

// isSparse reports whether m uses a sparse representation. The check is
// capability-based (NNZ), so the rules never depend on a specific sparse
// backend type.
func isSparse(m mat.Matrix) bool {
	_, ok := m.(sparse.Sparser)

	return ok
}

// densify returns m in dense form; a *mat.Dense passes through untouched.
func densify(m mat.Matrix) *mat.Dense {
	if d, ok := m.(*mat.Dense); ok {
		return d
	}

	return mat.DenseCopyOf(m)
}

// toDOK stages m as a DOK matrix, the scratch representation used for
// sparse assembly and re-encoding. Sparse inputs are walked via their
// stored entries; dense inputs are scanned.
// Complexity: O(nnz) sparse, O(r*c) dense.
func toDOK(m mat.Matrix) *sparse.DOK {
	r, c := m.Dims()
	d := sparse.NewDOK(r, c)
	if nz, ok := m.(nonZeroDoer); ok {
		nz.DoNonZero(func(i, j int, v float64) {
			if v != 0 {
				d.Set(i, j, v)
			}
		})

		return d
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := m.At(i, j); v != 0 {
				d.Set(i, j, v)
			}
		}
	}

	return d
}

// encode re-encodes m into the requested sparse scheme, converting from
// dense or from another scheme as needed. Pass-through when m already has
// the requested concrete type.
func encode(m mat.Matrix, f Format) (mat.Matrix, error) {
	switch f {
	case FormatCOO:
		if c, ok := m.(*sparse.COO); ok {
			return c, nil
		}

		return toDOK(m).ToCOO(), nil
	case FormatCSR:
		if c, ok := m.(*sparse.CSR); ok {
			return c, nil
		}

		return toDOK(m).ToCSR(), nil
	case FormatCSC:
		if c, ok := m.(*sparse.CSC); ok {
			return c, nil
		}

		return toDOK(m).ToCSC(), nil
	case FormatDOK:
		if d, ok := m.(*sparse.DOK); ok {
			return d, nil
		}

		return toDOK(m), nil
	default:
		return nil, ErrInvalidFormat
	}
}

// finalize reconciles a rule result with the requested format: identity
// for FormatAuto, densification for FormatDense, scheme re-encoding
// otherwise. Applied after every rule so parents always see
// format-compatible children.
func finalize(m mat.Matrix, f Format) (mat.Matrix, error) {
	switch {
	case f == FormatAuto:
		return m, nil
	case f == FormatDense:
		return densify(m), nil
	case f.sparseScheme():
		return encode(m, f)
	default:
		return nil, ErrInvalidFormat
	}
}
