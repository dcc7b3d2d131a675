// SPDX-License-Identifier: MIT

package vecarray_test

import (
	"testing"

	"github.com/velmor/velmor/vecarray"
)

// benchArray builds an n×d array with deterministic values.
func benchArray(b *testing.B, n, d int) *vecarray.Array {
	b.Helper()
	rows := make([][]float64, n)
	for i := range rows {
		row := make([]float64, d)
		for j := range row {
			row[j] = float64((i*d+j)%13) - 6
		}
		rows[i] = row
	}
	a, err := vecarray.New(rows)
	if err != nil {
		b.Fatalf("New failed: %v", err)
	}

	return a
}

// BenchmarkAxpy_Uniform measures the whole-array BLAS update path.
func BenchmarkAxpy_Uniform(b *testing.B) {
	a := benchArray(b, 100, 1000)
	x := benchArray(b, 100, 1000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := a.Axpy(vecarray.Uniform(0.5), x); err != nil {
			b.Fatalf("Axpy failed: %v", err)
		}
	}
}

// BenchmarkScal_Uniform measures the contiguous whole-array scaling fast
// path.
func BenchmarkScal_Uniform(b *testing.B) {
	a := benchArray(b, 100, 1000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := a.Scal(vecarray.Uniform(1.0000001)); err != nil {
			b.Fatalf("Scal failed: %v", err)
		}
	}
}

// BenchmarkCopyOnWrite measures the shallow copy plus first-mutation
// split, the dominant cost of the sharing scheme.
func BenchmarkCopyOnWrite(b *testing.B) {
	a := benchArray(b, 100, 1000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c, err := a.Copy()
		if err != nil {
			b.Fatalf("Copy failed: %v", err)
		}
		if err := c.Scal(vecarray.Uniform(2)); err != nil {
			b.Fatalf("Scal failed: %v", err)
		}
		c.Release()
	}
}

// BenchmarkDot measures the pairwise inner-product matrix.
func BenchmarkDot(b *testing.B) {
	a := benchArray(b, 50, 1000)
	x := benchArray(b, 50, 1000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := a.Dot(x); err != nil {
			b.Fatalf("Dot failed: %v", err)
		}
	}
}

// BenchmarkLincomb measures a batched combination.
func BenchmarkLincomb(b *testing.B) {
	a := benchArray(b, 50, 1000)
	coeffs := make([]float64, 50)
	for i := range coeffs {
		coeffs[i] = float64(i%5) - 2
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := a.Lincomb(coeffs); err != nil {
			b.Fatalf("Lincomb failed: %v", err)
		}
	}
}
