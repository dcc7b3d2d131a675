// SPDX-License-Identifier: MIT
// Package: vecarray
//
// Purpose:
//   - Provide a single, canonical source of truth for common validation
//     checks (nil receivers, row selections, component selections, width
//     compatibility).
//   - Keep mutators minimal by delegating precondition checks here.
//   - Return plain sentinel errors (no wrapping) so call sites can wrap
//     uniformly via arrayErrorf.
//
// Determinism & Performance:
//   - All checks are pure and deterministic; the uniqueness check allocates
//     one map only when more than one index is given.
//
// Note:
//   - Validators run BEFORE any copy-on-write split, so a failed check
//     leaves shared buffers untouched (atomicity contract).

package vecarray

import "fmt"

// arrayErrorf wraps err with an operation tag, preserving the original
// sentinel via %w. Use only when err != nil.
func arrayErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// validateNotNil ensures the array reference is non-nil.
// Complexity: O(1).
func validateNotNil(a *Array) error {
	if a == nil {
		return ErrNilArray
	}

	return nil
}

// validateRowIndices checks that every index is inside [0, n) and, when
// unique is requested, that no index repeats. An empty selection is legal
// and means "all rows".
// Complexity: O(k) time, O(k) space for the uniqueness set.
func validateRowIndices(idx []int, n int, unique bool) error {
	if len(idx) == 0 {
		return nil
	}
	var seen map[int]struct{}
	if unique && len(idx) > 1 {
		seen = make(map[int]struct{}, len(idx))
	}
	for _, i := range idx {
		if i < 0 || i >= n {
			return ErrIndexOutOfRange
		}
		if seen != nil {
			if _, dup := seen[i]; dup {
				return ErrDuplicateIndex
			}
			seen[i] = struct{}{}
		}
	}

	return nil
}

// validateComponents checks that every component index is inside [0, dim).
// The check applies even when the array is empty: out-of-range component
// selections fail, empty arrays do not.
// Complexity: O(k).
func validateComponents(idx []int, dim int) error {
	for _, j := range idx {
		if j < 0 || j >= dim {
			return ErrIndexOutOfRange
		}
	}

	return nil
}

// validateSameDim ensures two arrays carry the same vector width.
// Assumes both are non-nil (caller must ensure).
// Complexity: O(1).
func validateSameDim(a, b *Array) error {
	if a.Dim() != b.Dim() {
		return ErrDimensionMismatch
	}

	return nil
}

// selectionLen resolves the effective number of selected rows: the whole
// array when idx is empty, len(idx) otherwise.
func selectionLen(idx []int, n int) int {
	if len(idx) == 0 {
		return n
	}

	return len(idx)
}

// validateCoeffCount ensures a per-row coefficient batch matches the
// selection length. Uniform coefficients always pass.
// Complexity: O(1).
func validateCoeffCount(c Coeff, selected int) error {
	if c.uniform() {
		return nil
	}
	if c.count() != selected {
		return ErrIndexCount
	}

	return nil
}
