// Package velmor is an in-memory numeric core for projection-based model
// reduction: batch vector containers and a compiler that flattens operator
// algebra into concrete matrices.
//
// 🚀 What is velmor?
//
//	A small, focused library that brings together:
//		• vecarray: copy-on-write batches of equal-width vectors with
//		  BLAS-backed bulk operations (scal, axpy, dot, lincomb, norms)
//		• operator: an immutable operator algebra (blocks, adjoints,
//		  concatenations, linear combinations, projections, placeholders)
//		  and ToMatrix, which compiles any tree into one dense or sparse
//		  matrix
//
// ✨ Why choose velmor?
//
//   - Aliasing-safe – shallow copies share storage until the first mutation
//   - Format-aware – dense and COO/CSR/CSC/DOK results, reconciled per node
//   - Exact – adjoint inner-product handling uses direct solves, never
//     iterative approximations
//   - Pure Go on top of gonum – no cgo, no hidden global state
//
// Everything is organized under two subpackages:
//
//	vecarray/ — Array container, COW buffers, npy/npz load & save
//	operator/ — operator node variants, rule table, ToMatrix entry point
//
// See the examples in the operator package for usage patterns.
package velmor
