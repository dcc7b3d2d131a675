// SPDX-License-Identifier: MIT
// Package vecarray: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the
// vecarray package. All operations MUST return these sentinels and tests
// MUST check them via errors.Is. No operation panics on user-triggered
// error conditions; panics are reserved for programmer errors in option
// constructors.

package vecarray

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "vecarray: ..." for consistency and to
// allow easy grepping across logs. DO NOT %w wrap these sentinels when
// returning directly; if context is essential, wrap with
// fmt.Errorf("ctx: %w", ErrX) at the outer boundary — callers will still
// use errors.Is to match.
//
// ERROR PRIORITY (documented, enforced in tests):
// nil receiver -> shape -> dimension mismatch -> index violations ->
// element-type restrictions.

var (
	// ErrNilArray indicates that a nil *Array (receiver or argument) was used.
	ErrNilArray = errors.New("vecarray: nil array")

	// ErrBadShape is returned when constructed input is malformed:
	// rank > 2 data, inconsistent row widths, or negative counts.
	ErrBadShape = errors.New("vecarray: invalid shape")

	// ErrDimensionMismatch indicates incompatible vector widths between
	// operands, e.g. Append or Axpy where dim(self) != dim(other).
	ErrDimensionMismatch = errors.New("vecarray: dimension mismatch")

	// ErrIndexOutOfRange indicates that a row or component index is outside
	// valid bounds.
	ErrIndexOutOfRange = errors.New("vecarray: index out of range")

	// ErrDuplicateIndex indicates a repeated row index where uniqueness is
	// required (all in-place mutators).
	ErrDuplicateIndex = errors.New("vecarray: duplicate index")

	// ErrIndexCount indicates a coefficient or operand batch whose length
	// does not match the number of selected rows.
	ErrIndexCount = errors.New("vecarray: selection count mismatch")

	// ErrComplexData marks an operation that is defined for real-valued
	// arrays only (use Real/Imag or the C-suffixed variant instead).
	ErrComplexData = errors.New("vecarray: operation requires real data")

	// ErrSelfMove is returned by Append when asked to move rows out of the
	// destination array itself.
	ErrSelfMove = errors.New("vecarray: cannot move rows from the array into itself")

	// ErrKeyNotFound indicates that a requested member key is absent from a
	// multi-array container on Load.
	ErrKeyNotFound = errors.New("vecarray: dataset key not found")
)
