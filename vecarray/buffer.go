// SPDX-License-Identifier: MIT
// Package vecarray: internal numeric buffer.
//
// Purpose:
//   - Own the flat, row-major storage behind an Array: a capacity of rows
//     times a fixed width, in either real (float64) or complex (complex128)
//     element type.
//   - Keep growth, cloning and real→complex promotion in one place so the
//     Array layer only deals in whole-buffer swaps.
//
// Invariants:
//   - cols is fixed for the buffer's lifetime.
//   - Exactly one of re/cx is non-nil, selected by complexData.
//   - len(re) == rows*cols (resp. cx); the logical length lives on the
//     Array, never here.

package vecarray

// growthFactor is the capacity multiplier applied when an append outgrows
// the spare rows of the current buffer.
const growthFactor = 2

// buffer is a resizable 2-D row-major block of scalars.
type buffer struct {
	rows int // capacity in rows
	cols int // fixed vector width

	re []float64    // real storage, nil when complexData
	cx []complex128 // complex storage, nil unless complexData

	complexData bool
}

// newRealBuffer allocates a zeroed real buffer of rows×cols.
func newRealBuffer(rows, cols int) *buffer {
	return &buffer{rows: rows, cols: cols, re: make([]float64, rows*cols)}
}

// newComplexBuffer allocates a zeroed complex buffer of rows×cols.
func newComplexBuffer(rows, cols int) *buffer {
	return &buffer{rows: rows, cols: cols, cx: make([]complex128, rows*cols), complexData: true}
}

// clone returns an exclusive deep copy of the buffer.
// Complexity: O(rows*cols).
func (b *buffer) clone() *buffer {
	if b.complexData {
		nb := newComplexBuffer(b.rows, b.cols)
		copy(nb.cx, b.cx)

		return nb
	}
	nb := newRealBuffer(b.rows, b.cols)
	copy(nb.re, b.re)

	return nb
}

// promoted returns a complex buffer holding the same values.
// Promotion always produces a new buffer; a complex buffer clones itself.
// Complexity: O(rows*cols).
func (b *buffer) promoted() *buffer {
	if b.complexData {
		return b.clone()
	}
	nb := newComplexBuffer(b.rows, b.cols)
	for i, v := range b.re {
		nb.cx[i] = complex(v, 0)
	}

	return nb
}

// grown returns a fresh buffer with at least minRows capacity, carrying
// over the first n logical rows. Uses a doubling policy so repeated
// appends amortize to O(1) copies per row.
func (b *buffer) grown(minRows, n int) *buffer {
	newRows := b.rows * growthFactor
	if newRows < minRows {
		newRows = minRows
	}
	var nb *buffer
	if b.complexData {
		nb = newComplexBuffer(newRows, b.cols)
		copy(nb.cx, b.cx[:n*b.cols])
	} else {
		nb = newRealBuffer(newRows, b.cols)
		copy(nb.re, b.re[:n*b.cols])
	}

	return nb
}

// rowReal returns the i-th row of a real buffer as a mutable slice view.
func (b *buffer) rowReal(i int) []float64 {
	return b.re[i*b.cols : (i+1)*b.cols]
}

// rowCplx returns the i-th row of a complex buffer as a mutable slice view.
func (b *buffer) rowCplx(i int) []complex128 {
	return b.cx[i*b.cols : (i+1)*b.cols]
}
