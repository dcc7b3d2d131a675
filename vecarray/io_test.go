// SPDX-License-Identifier: MIT

package vecarray_test

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/sbinet/npyio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/velmor/velmor/vecarray"
)

// writeNpz builds a .npz container with the given named matrices.
func writeNpz(t *testing.T, path string, members map[string]*mat.Dense) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, m := range members {
		w, err := zw.Create(name + ".npy")
		require.NoError(t, err)
		require.NoError(t, npyio.Write(w, m))
	}
	require.NoError(t, zw.Close())
}

// TestSaveLoad_RoundTrip verifies a save/load cycle preserves shape and
// values exactly.
func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.npy")
	a := mustNew(t, [][]float64{{1.5, -2}, {0, 3.25}, {7, 8}})

	require.NoError(t, a.Save(path))

	b, err := vecarray.Load(path)
	require.NoError(t, err)
	require.Equal(t, a.Len(), b.Len())
	require.Equal(t, a.Dim(), b.Dim())
	for i := 0; i < a.Len(); i++ {
		assert.Equal(t, rowOf(t, a, i), rowOf(t, b, i))
	}
}

// TestLoad_Npz verifies keyed container access and the missing-key error.
func TestLoad_Npz(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.npz")
	writeNpz(t, path, map[string]*mat.Dense{
		"ones": mat.NewDense(2, 2, []float64{1, 1, 1, 1}),
	})

	a, err := vecarray.Load(path, vecarray.WithKey("ones"))
	require.NoError(t, err)
	assert.Equal(t, 2, a.Len())
	assert.Equal(t, []float64{1, 1}, rowOf(t, a, 0))

	_, err = vecarray.Load(path, vecarray.WithKey("missing"))
	assert.ErrorIs(t, err, vecarray.ErrKeyNotFound)
}

// TestLoad_SingleVector verifies the one-row/one-column flattening and its
// shape contract.
func TestLoad_SingleVector(t *testing.T) {
	dir := t.TempDir()

	col := filepath.Join(dir, "col.npy")
	a := mustNew(t, [][]float64{{1}, {2}, {3}})
	require.NoError(t, a.Save(col))

	v, err := vecarray.Load(col, vecarray.WithSingleVector())
	require.NoError(t, err)
	assert.Equal(t, 1, v.Len())
	assert.Equal(t, []float64{1, 2, 3}, rowOf(t, v, 0))

	wide := filepath.Join(dir, "wide.npy")
	b := mustNew(t, [][]float64{{1, 2}, {3, 4}})
	require.NoError(t, b.Save(wide))
	_, err = vecarray.Load(wide, vecarray.WithSingleVector())
	assert.ErrorIs(t, err, vecarray.ErrBadShape)

	// Mutually exclusive with transposition.
	_, err = vecarray.Load(col, vecarray.WithSingleVector(), vecarray.WithTranspose())
	assert.ErrorIs(t, err, vecarray.ErrBadShape)
}

// TestLoad_Transpose verifies the on-load transposition.
func TestLoad_Transpose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.npy")
	a := mustNew(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, a.Save(path))

	b, err := vecarray.Load(path, vecarray.WithTranspose())
	require.NoError(t, err)
	assert.Equal(t, 3, b.Len())
	assert.Equal(t, 2, b.Dim())
	assert.Equal(t, []float64{1, 4}, rowOf(t, b, 0))
	assert.Equal(t, []float64{3, 6}, rowOf(t, b, 2))
}

// TestLoadMatrix_Facade verifies the direct-to-matrix facade.
func TestLoadMatrix_Facade(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.npy")
	a := mustNew(t, [][]float64{{1, 2}, {3, 4}})
	require.NoError(t, a.Save(path))

	m, err := vecarray.LoadMatrix(path)
	require.NoError(t, err)
	r, c := m.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, 4.0, m.At(1, 1))
}

// TestSave_Errors verifies the element-type and shape contracts of Save.
func TestSave_Errors(t *testing.T) {
	dir := t.TempDir()

	cx, err := vecarray.NewComplex([][]complex128{{1i}})
	require.NoError(t, err)
	err = cx.Save(filepath.Join(dir, "cx.npy"))
	assert.ErrorIs(t, err, vecarray.ErrComplexData)

	empty, err := vecarray.Zeros(0, 3)
	require.NoError(t, err)
	err = empty.Save(filepath.Join(dir, "empty.npy"))
	assert.ErrorIs(t, err, vecarray.ErrBadShape)
}
