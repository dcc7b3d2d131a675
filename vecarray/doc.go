// Package vecarray provides batch containers of equal-width numeric
// vectors with copy-on-write sharing.
//
// The vecarray package provides:
//
//   - Array, an N×D container of row vectors backed by a flat, row-major
//     buffer shared between shallow copies until the first mutation.
//   - Bulk linear-algebra operations (Scal, Axpy, Dot, Lincomb, norms,
//     Components, Amax) with BLAS-backed kernels for real and complex
//     element types.
//   - Lazy element-type promotion: an array starts real and is promoted
//     to complex on the first operation that requires it.
//   - Load/Save against NumPy .npy/.npz containers.
//
// Arrays are best treated as single-owner values: share storage only
// through explicit Copy calls, and let copy-on-write isolate mutations.
//
// See the examples in the operator package for usage patterns.
package vecarray
