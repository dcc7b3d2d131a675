// SPDX-License-Identifier: MIT

package vecarray_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velmor/velmor/vecarray"
)

// TestDot_PairwiseMatrix verifies the full inner-product matrix and the
// real-only contract.
func TestDot_PairwiseMatrix(t *testing.T) {
	a := mustNew(t, [][]float64{{1, 0}, {0, 2}})
	b := mustNew(t, [][]float64{{3, 4}, {1, 1}, {0, -1}})

	out, err := a.Dot(b)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, []float64{3, 1, 0}, out[0])
	assert.Equal(t, []float64{8, 2, -2}, out[1])

	cx, err := vecarray.NewComplex([][]complex128{{1i, 0}})
	require.NoError(t, err)
	_, err = a.Dot(cx)
	assert.ErrorIs(t, err, vecarray.ErrComplexData)
}

// TestDotC_ConjugatesRight verifies the complex inner product conjugates
// the right operand: <x, y> = Σ x_k * conj(y_k).
func TestDotC_ConjugatesRight(t *testing.T) {
	x, err := vecarray.NewComplex([][]complex128{{1 + 1i, 2}})
	require.NoError(t, err)
	y, err := vecarray.NewComplex([][]complex128{{1 - 1i, 1i}})
	require.NoError(t, err)

	out, err := x.DotC(y)
	require.NoError(t, err)
	// (1+i)*conj(1-i) + 2*conj(i) = (1+i)*(1+i) + 2*(-i) = 2i - 2i = 0.
	assert.Equal(t, complex(0, 0), out[0][0])

	// Conjugate symmetry: <y, x> = conj(<x, y>).
	rev, err := y.DotC(x)
	require.NoError(t, err)
	assert.Equal(t, out[0][0], rev[0][0])
}

// TestPairwiseDot_LengthContract verifies per-pair products require equal
// lengths.
func TestPairwiseDot_LengthContract(t *testing.T) {
	a := mustNew(t, [][]float64{{1, 2}, {3, 4}})
	b := mustNew(t, [][]float64{{1, 1}, {0, 1}})

	out, err := a.PairwiseDot(b)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 4}, out)

	short := mustNew(t, [][]float64{{1, 1}})
	_, err = a.PairwiseDot(short)
	assert.ErrorIs(t, err, vecarray.ErrIndexCount)
}

// TestLincomb_SingleAndBatch verifies single and batched combinations and
// the coefficient-width check.
func TestLincomb_SingleAndBatch(t *testing.T) {
	a := mustNew(t, [][]float64{{1, 0}, {0, 1}, {1, 1}})

	single, err := a.Lincomb([]float64{2, 3, -1})
	require.NoError(t, err)
	assert.Equal(t, 1, single.Len())
	assert.Equal(t, []float64{1, 2}, rowOf(t, single, 0))

	batch, err := a.Lincomb([]float64{1, 0, 0}, []float64{0, 0, 2})
	require.NoError(t, err)
	assert.Equal(t, 2, batch.Len())
	assert.Equal(t, []float64{1, 0}, rowOf(t, batch, 0))
	assert.Equal(t, []float64{2, 2}, rowOf(t, batch, 1))

	_, err = a.Lincomb([]float64{1, 2})
	assert.ErrorIs(t, err, vecarray.ErrIndexCount)
}

// TestLincombC_AlwaysComplex verifies complex-coefficient combinations of
// a real array produce a complex result.
func TestLincombC_AlwaysComplex(t *testing.T) {
	a := mustNew(t, [][]float64{{1, 0}, {0, 1}})

	out, err := a.LincombC([]complex128{1i, 1})
	require.NoError(t, err)
	assert.True(t, out.IsComplex())
	v0, err := out.AtC(0, 0)
	require.NoError(t, err)
	v1, err := out.AtC(0, 1)
	require.NoError(t, err)
	assert.Equal(t, complex(0, 1), v0)
	assert.Equal(t, complex(1, 0), v1)
}

// TestNorms_Consistency verifies L1, L2 and the squared-L2 identity on
// both element types.
func TestNorms_Consistency(t *testing.T) {
	a := mustNew(t, [][]float64{{3, -4}, {0, 0}})

	assert.Equal(t, []float64{7, 0}, a.L1Norm())
	assert.Equal(t, []float64{5, 0}, a.L2Norm())
	assert.Equal(t, []float64{25, 0}, a.L2NormSquared())

	cx, err := vecarray.NewComplex([][]complex128{{3i, 4}})
	require.NoError(t, err)
	assert.InDelta(t, 7.0, cx.L1Norm()[0], 1e-12)
	assert.InDelta(t, 5.0, cx.L2Norm()[0], 1e-12)
	assert.InDelta(t, 25.0, cx.L2NormSquared()[0], 1e-12)

	// The identity L2² == (L2)² within floating tolerance.
	b := mustNew(t, [][]float64{{0.1, 0.2, 0.3}})
	n := b.L2Norm()[0]
	assert.InDelta(t, n*n, b.L2NormSquared()[0], 1e-12)
}

// TestComponents_SelectionAndBounds verifies column extraction, bounds
// validation on empty arrays and the complex rejection.
func TestComponents_SelectionAndBounds(t *testing.T) {
	a := mustNew(t, [][]float64{{1, 2, 3}, {4, 5, 6}})

	out, err := a.Components(2, 0)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{3, 1}, {6, 4}}, out)

	_, err = a.Components(3)
	assert.ErrorIs(t, err, vecarray.ErrIndexOutOfRange)

	// Bounds are checked even with zero rows; valid indices succeed.
	empty, err := vecarray.Zeros(0, 3)
	require.NoError(t, err)
	_, err = empty.Components(5)
	assert.ErrorIs(t, err, vecarray.ErrIndexOutOfRange)
	got, err := empty.Components(1)
	require.NoError(t, err)
	assert.Empty(t, got)
}

// TestAmax_TiesAndDegenerate verifies first-occurrence tie breaking and
// the zero-width sentinel.
func TestAmax_TiesAndDegenerate(t *testing.T) {
	a := mustNew(t, [][]float64{{1, -3, 3}, {-2, 2, 0}})
	idx, val := a.Amax()
	assert.Equal(t, []int{1, 0}, idx, "first occurrence wins ties on |v|")
	assert.Equal(t, []float64{3, 2}, val)

	deg, err := vecarray.Zeros(2, 0)
	require.NoError(t, err)
	idx, val = deg.Amax()
	assert.Equal(t, []int{-1, -1}, idx)
	assert.Equal(t, []float64{0, 0}, val)
}

// TestRealImag_Split verifies the real/imaginary part extraction on both
// element types.
func TestRealImag_Split(t *testing.T) {
	cx, err := vecarray.NewComplex([][]complex128{{1 + 2i, -3i}})
	require.NoError(t, err)

	re := cx.Real()
	im := cx.Imag()
	assert.False(t, re.IsComplex())
	assert.Equal(t, []float64{1, 0}, rowOf(t, re, 0))
	assert.Equal(t, []float64{2, -3}, rowOf(t, im, 0))

	r := mustNew(t, [][]float64{{5, 6}})
	assert.Equal(t, []float64{5, 6}, rowOf(t, r.Real(), 0))
	assert.Equal(t, []float64{0, 0}, rowOf(t, r.Imag(), 0))
}

// TestDense_PrivateCopy verifies the gonum bridge returns an isolated
// matrix and rejects complex or empty arrays.
func TestDense_PrivateCopy(t *testing.T) {
	a := mustNew(t, [][]float64{{1, 2}, {3, 4}})

	d, err := a.Dense()
	require.NoError(t, err)
	assert.Equal(t, 1.0, d.At(0, 0))
	d.Set(0, 0, 99)
	assert.Equal(t, []float64{1, 2}, rowOf(t, a, 0), "mutating the matrix must not touch the array")

	cx, err := vecarray.NewComplex([][]complex128{{1i}})
	require.NoError(t, err)
	_, err = cx.Dense()
	assert.ErrorIs(t, err, vecarray.ErrComplexData)

	empty, err := vecarray.Zeros(0, 2)
	require.NoError(t, err)
	_, err = empty.Dense()
	assert.ErrorIs(t, err, vecarray.ErrBadShape)
}

// TestL2Norm_NoOverflowPath checks the BLAS-backed norm on magnitudes a
// naive square-sum would overflow.
func TestL2Norm_NoOverflowPath(t *testing.T) {
	big := math.MaxFloat64 / 4
	a := mustNew(t, [][]float64{{big, 0}})
	assert.InDelta(t, big, a.L2Norm()[0], big*1e-12)
}
