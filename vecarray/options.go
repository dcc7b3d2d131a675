// SPDX-License-Identifier: MIT

// Package vecarray: functional configuration for Copy/Append/Zeros/Load.
// This file defines:
//   - CopyOption / AppendOption / ZerosOption / LoadOption (functional
//     options over unexported state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gather*Options helpers (internal) that enforce invariants.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each flag impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
//   - Options fields are unexported; public APIs consume ...Option values.

package vecarray

// DEFAULTS - single source of truth for zero-value behavior.
const (
	// DefaultDeep controls whether Copy materializes a private buffer.
	// false ⇒ a whole-array copy aliases the buffer (refcount++).
	DefaultDeep = false

	// DefaultMoveFrom controls whether Append empties its source afterward.
	DefaultMoveFrom = false

	// DefaultReserve is the extra row capacity pre-allocated by Zeros.
	DefaultReserve = 0

	// DefaultSingleVector reinterprets loaded data as one vector when true.
	DefaultSingleVector = false

	// DefaultTranspose transposes loaded data when true.
	DefaultTranspose = false
)

const panicReserveNegative = "vecarray: WithReserve: reserve must be >= 0"

// ---------- Copy ----------

// CopyOption mutates copy options. Safe to apply repeatedly (idempotent).
type CopyOption func(*copyOptions)

type copyOptions struct {
	deep    bool  // DefaultDeep
	indices []int // nil ⇒ whole array
}

// WithDeep forces Copy to materialize a fresh private buffer even for a
// whole-array copy.
// Complexity: O(1) to set.
func WithDeep() CopyOption {
	return func(o *copyOptions) { o.deep = true }
}

// WithIndices restricts Copy to the selected rows (in the given order,
// duplicates permitted). Any index subset always materializes a fresh
// buffer regardless of WithDeep.
// Complexity: O(1) to set; validation happens in Copy.
func WithIndices(idx ...int) CopyOption {
	return func(o *copyOptions) { o.indices = idx }
}

// gatherCopyOptions applies user setters on top of defaults
// (last-writer-wins).
func gatherCopyOptions(user ...CopyOption) copyOptions {
	o := copyOptions{deep: DefaultDeep}
	for _, set := range user {
		set(&o)
	}

	return o
}

// ---------- Append ----------

// AppendOption mutates append options.
type AppendOption func(*appendOptions)

type appendOptions struct {
	moveFrom bool // DefaultMoveFrom
}

// WithMoveFrom empties the source array after its rows were copied in
// (move semantics).
func WithMoveFrom() AppendOption {
	return func(o *appendOptions) { o.moveFrom = true }
}

func gatherAppendOptions(user ...AppendOption) appendOptions {
	o := appendOptions{moveFrom: DefaultMoveFrom}
	for _, set := range user {
		set(&o)
	}

	return o
}

// ---------- Zeros ----------

// ZerosOption mutates construction options for Zeros.
type ZerosOption func(*zerosOptions)

type zerosOptions struct {
	reserve int // DefaultReserve
}

// WithReserve pre-allocates capacity for at least n rows so subsequent
// appends reuse spare storage instead of reallocating.
// Panics if n < 0 (programmer error).
func WithReserve(n int) ZerosOption {
	if n < 0 {
		panic(panicReserveNegative)
	}

	return func(o *zerosOptions) { o.reserve = n }
}

func gatherZerosOptions(user ...ZerosOption) zerosOptions {
	o := zerosOptions{reserve: DefaultReserve}
	for _, set := range user {
		set(&o)
	}

	return o
}

// ---------- Load ----------

// LoadOption mutates load options.
type LoadOption func(*loadOptions)

type loadOptions struct {
	key          string // member name inside a multi-array container
	singleVector bool   // DefaultSingleVector
	transpose    bool   // DefaultTranspose
}

// WithKey selects a named member inside a .npz container. Ignored for
// plain .npy files.
func WithKey(key string) LoadOption {
	return func(o *loadOptions) { o.key = key }
}

// WithSingleVector reinterprets the loaded data as exactly one vector;
// the input must be a row or a column. Mutually exclusive with
// WithTranspose (Load reports ErrBadShape on the combination).
func WithSingleVector() LoadOption {
	return func(o *loadOptions) { o.singleVector = true }
}

// WithTranspose transposes the dataset on load.
func WithTranspose() LoadOption {
	return func(o *loadOptions) { o.transpose = true }
}

func gatherLoadOptions(user ...LoadOption) loadOptions {
	o := loadOptions{singleVector: DefaultSingleVector, transpose: DefaultTranspose}
	for _, set := range user {
		set(&o)
	}

	return o
}
