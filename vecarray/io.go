// SPDX-License-Identifier: MIT
// Package vecarray: construction from and persistence to external storage.
//
// Purpose:
//   - Load a named numeric dataset from a NumPy container: a plain .npy
//     stream, or a member of a .npz archive selected by key.
//   - Save an array back out as .npy.
//
// Shape policy:
//   - Rank must be ≤ 2; rank-1 (and rank-0) input is reshaped to a single
//     row. WithSingleVector flattens a one-row or one-column dataset into
//     a single vector; WithTranspose transposes on load. The two options
//     are mutually exclusive.
//   - Fortran-ordered files are normalized to row-major before any option
//     is applied.

package vecarray

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"
)

// npzExt marks multi-array container files handled via archive/zip.
const npzExt = ".npz"

// Load reads a float64 dataset from path and wraps it as an Array.
// For .npz containers WithKey selects the member (first member when no
// key is given); members are matched with and without the ".npy" suffix.
//
// Errors: ErrBadShape for rank > 2 data or conflicting options;
// ErrKeyNotFound for a missing container key; I/O and format errors from
// the underlying reader are passed through wrapped.
func Load(path string, opts ...LoadOption) (*Array, error) {
	o := gatherLoadOptions(opts...)
	if o.singleVector && o.transpose {
		return nil, arrayErrorf("Load", ErrBadShape)
	}

	rows, cols, data, err := readDataset(path, o.key)
	if err != nil {
		return nil, err
	}

	if o.singleVector {
		if rows != 1 && cols != 1 {
			return nil, arrayErrorf("Load", ErrBadShape)
		}
		rows, cols = 1, rows*cols
	}
	if o.transpose {
		rows, cols, data = transposeFlat(rows, cols, data)
	}

	b := newRealBuffer(rows, cols)
	copy(b.re, data)

	return newHandle(b, rows), nil
}

// Save writes a real array as a .npy file (row-major, shape Len×Dim).
//
// Errors: ErrComplexData; ErrBadShape for empty arrays; I/O errors are
// passed through wrapped.
func (a *Array) Save(path string) error {
	if err := validateNotNil(a); err != nil {
		return arrayErrorf("Save", err)
	}
	m, err := a.Dense()
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("Save: %w", err)
	}
	defer f.Close()
	if err := npyio.Write(f, m); err != nil {
		return fmt.Errorf("Save: %w", err)
	}

	return nil
}

// readDataset opens a .npy stream or a .npz member and returns its
// normalized row-major shape and data.
func readDataset(path, key string) (rows, cols int, data []float64, err error) {
	if strings.EqualFold(filepath.Ext(path), npzExt) {
		return readNpzMember(path, key)
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("Load: %w", err)
	}
	defer f.Close()

	return readNpy(f)
}

// readNpzMember walks the zip container for the keyed member (or the
// first one) and decodes it.
func readNpzMember(path, key string) (rows, cols int, data []float64, err error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("Load: %w", err)
	}
	defer zr.Close()

	var member *zip.File
	for _, f := range zr.File {
		if key == "" || f.Name == key || f.Name == key+".npy" {
			member = f
			break
		}
	}
	if member == nil {
		return 0, 0, nil, fmt.Errorf("Load: key %q in %q: %w", key, path, ErrKeyNotFound)
	}

	rc, err := member.Open()
	if err != nil {
		return 0, 0, nil, fmt.Errorf("Load: %w", err)
	}
	defer rc.Close()

	return readNpy(rc)
}

// readNpy decodes one .npy stream into a row-major rows×cols block.
// Rank-1 and rank-0 data become a single row; Fortran order is
// normalized away.
func readNpy(r io.Reader) (rows, cols int, data []float64, err error) {
	rd, err := npyio.NewReader(r)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("Load: %w", err)
	}
	shape := rd.Header.Descr.Shape
	if len(shape) > 2 {
		return 0, 0, nil, arrayErrorf("Load", ErrBadShape)
	}

	if err := rd.Read(&data); err != nil {
		return 0, 0, nil, fmt.Errorf("Load: %w", err)
	}

	switch len(shape) {
	case 2:
		rows, cols = shape[0], shape[1]
	case 1:
		rows, cols = 1, shape[0]
	default:
		rows, cols = 1, len(data)
	}

	// A Fortran-ordered (r,c) block is a row-major (c,r) block; transpose
	// it back into the declared orientation.
	if rd.Header.Descr.Fortran && len(shape) == 2 {
		_, _, data = transposeFlat(cols, rows, data)
	}

	return rows, cols, data, nil
}

// transposeFlat transposes a row-major rows×cols block.
func transposeFlat(rows, cols int, data []float64) (int, int, []float64) {
	out := make([]float64, len(data))
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out[j*rows+i] = data[i*cols+j]
		}
	}

	return cols, rows, out
}

// LoadMatrix is a convenience facade: Load a dataset and materialize it
// directly as a dense matrix, bypassing the Array when only a matrix is
// needed.
func LoadMatrix(path string, opts ...LoadOption) (*mat.Dense, error) {
	a, err := Load(path, opts...)
	if err != nil {
		return nil, err
	}

	return a.Dense()
}
