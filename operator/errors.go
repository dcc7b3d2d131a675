// SPDX-License-Identifier: MIT
// Package operator: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the
// operator package. All conversions MUST return these sentinels and tests
// MUST check them via errors.Is. No conversion panics on user-triggered
// error conditions.

package operator

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "operator: ..." for consistency and to
// allow easy grepping across logs. If context is essential, wrap with
// fmt.Errorf("ctx: %w", ErrX) at the outer boundary — callers will still
// use errors.Is to match.
//
// ERROR PRIORITY (documented, enforced in tests):
// invalid format -> nil operator -> shape -> dimension mismatch ->
// unsupported variant/feature -> numeric failure (singular solve).

var (
	// ErrInvalidFormat is returned for an output format string outside the
	// recognized set, before any conversion work begins.
	ErrInvalidFormat = errors.New("operator: invalid matrix format")

	// ErrUnsupportedOperator marks a variant/feature combination with no
	// defined conversion: an unregistered node type, a non-square adjoint
	// inner product, or a complex-valued vector-array leaf.
	ErrUnsupportedOperator = errors.New("operator: unsupported operator")

	// ErrNilOperator indicates a nil Operator (node or child) where a
	// concrete node is required.
	ErrNilOperator = errors.New("operator: nil operator")

	// ErrNilMatrix indicates a nil matrix or vector array behind a leaf.
	ErrNilMatrix = errors.New("operator: nil matrix")

	// ErrBadShape is returned for malformed construction input: ragged or
	// empty block grids, non-positive placeholder dimensions, mismatched
	// coefficient counts.
	ErrBadShape = errors.New("operator: invalid shape")

	// ErrDimensionMismatch indicates incompatible operand dimensions, e.g.
	// concatenating operators whose inner dimensions disagree.
	ErrDimensionMismatch = errors.New("operator: dimension mismatch")

	// ErrIndexOutOfRange indicates a component index outside the source
	// dimension of a projection.
	ErrIndexOutOfRange = errors.New("operator: index out of range")

	// ErrSingularMatrix propagates from the exact direct solve used for
	// adjoint source products when the inner-product matrix is singular.
	ErrSingularMatrix = errors.New("operator: singular matrix")
)
