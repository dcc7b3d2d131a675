// SPDX-License-Identifier: MIT
// Package operator: the public conversion entry point.

package operator

import "gonum.org/v1/gonum/mat"

// ToMatrix compiles an operator expression tree into a single concrete
// matrix equivalent to the tree's action.
//
// Behavior highlights:
//   - With no options the format is auto: each node picks its natural
//     dense/sparse representation and mixed results promote to dense
//     (zero, identity and projection leaves stay sparse).
//   - WithFormat pins the output representation; the whole result is
//     re-encoded to exactly that type before returning.
//   - WithParameters supplies the context parameter-dependent
//     coefficients are evaluated against, once per conversion.
//   - Conversion never mutates the tree and is idempotent: converting
//     the same tree twice with the same arguments yields equal matrices.
//
// Errors: ErrInvalidFormat (before any conversion work), ErrNilOperator,
// ErrUnsupportedOperator, ErrDimensionMismatch, ErrSingularMatrix.
//
// Complexity: bounded by the dense assembly of the result plus one
// conversion per node; sparse-only trees never materialize dense
// intermediates.
func ToMatrix(op Operator, opts ...ConvertOption) (mat.Matrix, error) {
	o := gatherConvertOptions(opts...)
	if err := ValidateFormat(o.format); err != nil {
		return nil, opErrorf("ToMatrix", err)
	}
	if op == nil {
		return nil, opErrorf("ToMatrix", ErrNilOperator)
	}

	return apply(op, o.format, o.mu)
}
