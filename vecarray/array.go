// SPDX-License-Identifier: MIT
// Package vecarray: the Array container and its copy-on-write mutators.
//
// Purpose:
//   - Wrap a shared numeric buffer plus a logical length and a shared
//     reference count into the public batch-of-vectors container.
//   - Enforce the copy-on-write contract: every mutator validates first,
//     then splits off an exclusive buffer if the current one is shared,
//     then mutates. A failed validation never touches shared state.
//
// Behavior highlights:
//   - Shallow copies alias the buffer and bump the shared count; any index
//     subset or deep request materializes a private buffer.
//   - Element type is promoted real→complex lazily, on the first operation
//     whose operands require it; promotion always allocates a new buffer
//     and therefore doubles as the copy-on-write split.
//   - The reference count is manipulated atomically, so handles dropped on
//     other goroutines can only cause a harmless extra deep copy, never a
//     shared-buffer corruption.

package vecarray

import (
	"fmt"
	"strings"
	"sync/atomic"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/blas/cblas128"
)

// Array is a batch of Len() equal-width row vectors with copy-on-write
// sharing. The zero value is not usable; use the constructors.
type Array struct {
	buf  *buffer
	n    int    // logical length, n <= buf.rows
	refs *int64 // shared across all handles aliasing buf
}

// ---------- Constructors ----------

// New builds a real array from row data. Every row must have the same
// width; an empty slice yields a 0×0 array.
//
// Errors: ErrBadShape on inconsistent row widths.
// Complexity: O(n*d) copy.
func New(rows [][]float64) (*Array, error) {
	n := len(rows)
	dim := 0
	if n > 0 {
		dim = len(rows[0])
	}
	for _, r := range rows {
		if len(r) != dim {
			return nil, arrayErrorf("New", ErrBadShape)
		}
	}
	b := newRealBuffer(n, dim)
	for i, r := range rows {
		copy(b.rowReal(i), r)
	}

	return newHandle(b, n), nil
}

// NewComplex builds a complex array from row data.
//
// Errors: ErrBadShape on inconsistent row widths.
// Complexity: O(n*d) copy.
func NewComplex(rows [][]complex128) (*Array, error) {
	n := len(rows)
	dim := 0
	if n > 0 {
		dim = len(rows[0])
	}
	for _, r := range rows {
		if len(r) != dim {
			return nil, arrayErrorf("NewComplex", ErrBadShape)
		}
	}
	b := newComplexBuffer(n, dim)
	for i, r := range rows {
		copy(b.rowCplx(i), r)
	}

	return newHandle(b, n), nil
}

// FromVector wraps a single vector as a 1×len(v) array (the rank-1 →
// one-row reshape used throughout the package).
// Complexity: O(d).
func FromVector(v []float64) *Array {
	b := newRealBuffer(1, len(v))
	copy(b.re, v)

	return newHandle(b, 1)
}

// Zeros builds a real array of count zero vectors of the given width,
// optionally pre-reserving extra capacity (WithReserve) for later appends.
//
// Errors: ErrBadShape when count or dim is negative.
func Zeros(count, dim int, opts ...ZerosOption) (*Array, error) {
	if count < 0 || dim < 0 {
		return nil, arrayErrorf("Zeros", ErrBadShape)
	}
	o := gatherZerosOptions(opts...)
	rows := count
	if o.reserve > rows {
		rows = o.reserve
	}

	return newHandle(newRealBuffer(rows, dim), count), nil
}

// newHandle wraps an exclusively owned buffer into a fresh handle.
func newHandle(b *buffer, n int) *Array {
	r := int64(1)

	return &Array{buf: b, n: n, refs: &r}
}

// ---------- Accessors ----------

// Len returns the logical number of vectors in the array.
func (a *Array) Len() int { return a.n }

// Dim returns the fixed vector width. Width zero is legal (degenerate
// vectors).
func (a *Array) Dim() int { return a.buf.cols }

// IsComplex reports whether the array currently stores complex elements.
func (a *Array) IsComplex() bool { return a.buf.complexData }

// At returns element (i, j) of a real array.
//
// Errors: ErrIndexOutOfRange; ErrComplexData for complex arrays (use AtC).
func (a *Array) At(i, j int) (float64, error) {
	if i < 0 || i >= a.n || j < 0 || j >= a.buf.cols {
		return 0, arrayErrorf("At", ErrIndexOutOfRange)
	}
	if a.buf.complexData {
		return 0, arrayErrorf("At", ErrComplexData)
	}

	return a.buf.rowReal(i)[j], nil
}

// AtC returns element (i, j) of an array of either element type.
//
// Errors: ErrIndexOutOfRange.
func (a *Array) AtC(i, j int) (complex128, error) {
	if i < 0 || i >= a.n || j < 0 || j >= a.buf.cols {
		return 0, arrayErrorf("AtC", ErrIndexOutOfRange)
	}
	if a.buf.complexData {
		return a.buf.rowCplx(i)[j], nil
	}

	return complex(a.buf.rowReal(i)[j], 0), nil
}

// String implements fmt.Stringer for easy debugging.
func (a *Array) String() string {
	var sb strings.Builder
	for i := 0; i < a.n; i++ {
		sb.WriteString("[")
		for j := 0; j < a.buf.cols; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			if a.buf.complexData {
				fmt.Fprintf(&sb, "%g", a.buf.rowCplx(i)[j])
			} else {
				fmt.Fprintf(&sb, "%g", a.buf.rowReal(i)[j])
			}
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}

// ---------- Ownership ----------

// ensureUnique splits off an exclusive deep copy when the buffer is
// shared. Mutators call it exactly once, after validation and before the
// first write. Idempotent for exclusively owned buffers.
func (a *Array) ensureUnique() {
	if atomic.LoadInt64(a.refs) > 1 {
		a.swapBuffer(a.buf.clone())
	}
}

// swapBuffer installs an exclusively owned replacement buffer, leaving
// the old share group.
func (a *Array) swapBuffer(nb *buffer) {
	atomic.AddInt64(a.refs, -1)
	r := int64(1)
	a.buf = nb
	a.refs = &r
	a.n = min(a.n, nb.rows)
}

// makeExclusive prepares the array for mutation with the given target
// element type: promotes (which implies a private copy) or clones when
// shared.
func (a *Array) makeExclusive(needComplex bool) {
	if needComplex && !a.buf.complexData {
		a.swapBuffer(a.buf.promoted())

		return
	}
	a.ensureUnique()
}

// Release drops this handle's participation in buffer sharing. Go has no
// destructors; long-lived pipelines that churn through shallow copies can
// call Release to keep the shared count accurate and avoid one extra deep
// copy on the next mutation. Using the array after Release is a bug.
func (a *Array) Release() {
	if a != nil && a.refs != nil {
		atomic.AddInt64(a.refs, -1)
		a.refs = nil
		a.buf = nil
		a.n = 0
	}
}

// ---------- Copy / Append / Remove ----------

// Copy returns a copy of the array.
//
// With no options (or only defaults) the copy is shallow: it aliases the
// buffer and increments the shared count; copy-on-write isolates later
// mutations of either handle. WithDeep, or any WithIndices selection,
// materializes a fresh private buffer. Index selections keep the given
// order and may repeat rows.
//
// Errors: ErrIndexOutOfRange for indices outside [0, Len()).
// Complexity: O(1) shallow, O(k*d) materializing.
func (a *Array) Copy(opts ...CopyOption) (*Array, error) {
	if err := validateNotNil(a); err != nil {
		return nil, arrayErrorf("Copy", err)
	}
	o := gatherCopyOptions(opts...)

	// Whole-array shallow copy: alias the buffer, bump the shared count.
	if o.indices == nil && !o.deep {
		atomic.AddInt64(a.refs, 1)

		return &Array{buf: a.buf, n: a.n, refs: a.refs}, nil
	}

	// Whole-array deep copy: trim to the logical length.
	if o.indices == nil {
		return newHandle(a.sliceRows(identityIndices(a.n)), a.n), nil
	}

	if err := validateRowIndices(o.indices, a.n, false); err != nil {
		return nil, arrayErrorf("Copy", err)
	}

	return newHandle(a.sliceRows(o.indices), len(o.indices)), nil
}

// Append copies other's rows onto the end of the array, reusing spare
// capacity when available and reallocating with a doubling policy
// otherwise. WithMoveFrom empties other afterward. Both arrays must have
// equal width; the element type is promoted to the common type.
//
// Errors: ErrDimensionMismatch; ErrSelfMove when moving from the receiver
// itself; ErrNilArray.
// Complexity: amortized O(m*d) per call.
func (a *Array) Append(other *Array, opts ...AppendOption) error {
	if err := validateNotNil(a); err != nil {
		return arrayErrorf("Append", err)
	}
	if err := validateNotNil(other); err != nil {
		return arrayErrorf("Append", err)
	}
	o := gatherAppendOptions(opts...)
	if o.moveFrom && a == other {
		return arrayErrorf("Append", ErrSelfMove)
	}
	if err := validateSameDim(a, other); err != nil {
		return arrayErrorf("Append", err)
	}

	m := other.n
	if m == 0 {
		if o.moveFrom {
			other.clear()
		}

		return nil
	}

	// Copy-on-write on the destination (and on a shared source when the
	// move will empty it).
	a.makeExclusive(a.buf.complexData || other.buf.complexData)
	if o.moveFrom {
		other.ensureUnique()
	}

	// Grow only when the spare capacity cannot hold the new rows.
	if m > a.buf.rows-a.n {
		a.swapBuffer(a.buf.grown(a.n+m, a.n))
	}

	src := other.buf
	for i := 0; i < m; i++ {
		dst := a.n + i
		switch {
		case a.buf.complexData && src.complexData:
			copy(a.buf.rowCplx(dst), src.rowCplx(i))
		case a.buf.complexData:
			row := a.buf.rowCplx(dst)
			for j, v := range src.rowReal(i) {
				row[j] = complex(v, 0)
			}
		default:
			copy(a.buf.rowReal(dst), src.rowReal(i))
		}
	}
	a.n += m

	if o.moveFrom {
		other.clear()
	}

	return nil
}

// Remove deletes the selected rows, compacting the remainder in original
// order. An empty selection removes every row. The surviving rows are
// copied into a fresh exact-size buffer, never left aliasing a larger
// shared one.
//
// Errors: ErrIndexOutOfRange.
// Complexity: O(n*d).
func (a *Array) Remove(idx ...int) error {
	if err := validateNotNil(a); err != nil {
		return arrayErrorf("Remove", err)
	}
	if len(idx) == 0 {
		a.clear()

		return nil
	}
	if err := validateRowIndices(idx, a.n, false); err != nil {
		return arrayErrorf("Remove", err)
	}

	drop := make(map[int]struct{}, len(idx))
	for _, i := range idx {
		drop[i] = struct{}{}
	}
	remaining := make([]int, 0, a.n-len(drop))
	for i := 0; i < a.n; i++ {
		if _, gone := drop[i]; !gone {
			remaining = append(remaining, i)
		}
	}

	nb := a.sliceRows(remaining)
	a.swapBuffer(nb)
	a.n = len(remaining)

	return nil
}

// clear resets the array to zero length over a fresh 0×dim buffer of the
// same element type, releasing the old storage.
func (a *Array) clear() {
	var nb *buffer
	if a.buf.complexData {
		nb = newComplexBuffer(0, a.buf.cols)
	} else {
		nb = newRealBuffer(0, a.buf.cols)
	}
	a.swapBuffer(nb)
	a.n = 0
}

// sliceRows materializes the selected rows (valid indices, duplicates
// allowed) into a fresh exact-size buffer of the same element type.
func (a *Array) sliceRows(idx []int) *buffer {
	if a.buf.complexData {
		nb := newComplexBuffer(len(idx), a.buf.cols)
		for k, i := range idx {
			copy(nb.rowCplx(k), a.buf.rowCplx(i))
		}

		return nb
	}
	nb := newRealBuffer(len(idx), a.buf.cols)
	for k, i := range idx {
		copy(nb.rowReal(k), a.buf.rowReal(i))
	}

	return nb
}

// identityIndices returns [0, 1, ..., n-1].
func identityIndices(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	return idx
}

// ---------- In-place mutators ----------

// Scal scales the selected rows in place: v[i] *= alpha[i]. The
// coefficient is either uniform or one per selected row; a complex
// coefficient promotes the array.
//
// Errors: ErrIndexOutOfRange, ErrDuplicateIndex, ErrIndexCount.
// Complexity: O(k*d).
func (a *Array) Scal(c Coeff, idx ...int) error {
	if err := validateNotNil(a); err != nil {
		return arrayErrorf("Scal", err)
	}
	if err := validateRowIndices(idx, a.n, true); err != nil {
		return arrayErrorf("Scal", err)
	}
	sel := selectionLen(idx, a.n)
	if err := validateCoeffCount(c, sel); err != nil {
		return arrayErrorf("Scal", err)
	}

	a.makeExclusive(c.isComplex())
	if sel == 0 || a.buf.cols == 0 {
		return nil
	}

	if a.buf.complexData {
		for k := 0; k < sel; k++ {
			row := a.buf.rowCplx(rowAt(idx, k))
			cblas128.Scal(c.at(k), cblas128.Vector{N: len(row), Inc: 1, Data: row})
		}

		return nil
	}

	// Real uniform whole-array fast path: one BLAS call over the
	// contiguous logical region.
	if c.uniform() && len(idx) == 0 {
		flat := a.buf.re[:a.n*a.buf.cols]
		blas64.Scal(real(c.scalar), blas64.Vector{N: len(flat), Inc: 1, Data: flat})

		return nil
	}
	for k := 0; k < sel; k++ {
		row := a.buf.rowReal(rowAt(idx, k))
		blas64.Scal(real(c.at(k)), blas64.Vector{N: len(row), Inc: 1, Data: row})
	}

	return nil
}

// Axpy updates the selected rows in place: v[i] += alpha[i] * x[i]. The
// operand x provides either one row per selected row or exactly one row
// broadcast to all of them. A uniformly zero coefficient is a no-op
// (checked before the copy-on-write split); the ±1 cases skip the
// multiply entirely. Element types are promoted to the common type of the
// receiver, the coefficient and x.
//
// Errors: ErrDimensionMismatch, ErrIndexOutOfRange, ErrDuplicateIndex,
// ErrIndexCount.
// Complexity: O(k*d).
func (a *Array) Axpy(c Coeff, x *Array, idx ...int) error {
	if err := validateNotNil(a); err != nil {
		return arrayErrorf("Axpy", err)
	}
	if err := validateNotNil(x); err != nil {
		return arrayErrorf("Axpy", err)
	}
	if err := validateSameDim(a, x); err != nil {
		return arrayErrorf("Axpy", err)
	}
	if err := validateRowIndices(idx, a.n, true); err != nil {
		return arrayErrorf("Axpy", err)
	}
	sel := selectionLen(idx, a.n)
	if x.n != sel && x.n != 1 {
		return arrayErrorf("Axpy", ErrIndexCount)
	}
	if err := validateCoeffCount(c, sel); err != nil {
		return arrayErrorf("Axpy", err)
	}

	// Uniform zero: nothing would change; skip the copy-on-write split.
	if c.allEqual(0) {
		return nil
	}

	a.makeExclusive(a.buf.complexData || x.buf.complexData || c.isComplex())
	if sel == 0 || a.buf.cols == 0 {
		return nil
	}

	broadcast := x.n == 1
	xRow := func(k int) int {
		if broadcast {
			return 0
		}

		return k
	}

	if a.buf.complexData {
		var scratch []complex128
		if !x.buf.complexData {
			scratch = make([]complex128, a.buf.cols)
		}
		src := func(k int) []complex128 {
			if x.buf.complexData {
				return x.buf.rowCplx(xRow(k))
			}
			for j, v := range x.buf.rowReal(xRow(k)) {
				scratch[j] = complex(v, 0)
			}

			return scratch
		}
		switch {
		case c.allEqual(1):
			for k := 0; k < sel; k++ {
				dst, s := a.buf.rowCplx(rowAt(idx, k)), src(k)
				for j := range dst {
					dst[j] += s[j]
				}
			}
		case c.allEqual(-1):
			for k := 0; k < sel; k++ {
				dst, s := a.buf.rowCplx(rowAt(idx, k)), src(k)
				for j := range dst {
					dst[j] -= s[j]
				}
			}
		default:
			for k := 0; k < sel; k++ {
				dst, s := a.buf.rowCplx(rowAt(idx, k)), src(k)
				cblas128.Axpy(c.at(k),
					cblas128.Vector{N: len(s), Inc: 1, Data: s},
					cblas128.Vector{N: len(dst), Inc: 1, Data: dst})
			}
		}

		return nil
	}

	switch {
	case c.allEqual(1):
		for k := 0; k < sel; k++ {
			dst, s := a.buf.rowReal(rowAt(idx, k)), x.buf.rowReal(xRow(k))
			for j := range dst {
				dst[j] += s[j]
			}
		}
	case c.allEqual(-1):
		for k := 0; k < sel; k++ {
			dst, s := a.buf.rowReal(rowAt(idx, k)), x.buf.rowReal(xRow(k))
			for j := range dst {
				dst[j] -= s[j]
			}
		}
	default:
		for k := 0; k < sel; k++ {
			dst, s := a.buf.rowReal(rowAt(idx, k)), x.buf.rowReal(xRow(k))
			blas64.Axpy(real(c.at(k)),
				blas64.Vector{N: len(s), Inc: 1, Data: s},
				blas64.Vector{N: len(dst), Inc: 1, Data: dst})
		}
	}

	return nil
}

// rowAt resolves the k-th selected row: k itself for a whole-array
// selection, idx[k] otherwise.
func rowAt(idx []int, k int) int {
	if len(idx) == 0 {
		return k
	}

	return idx[k]
}
