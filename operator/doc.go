// Package operator describes linear maps as immutable expression trees
// and compiles them into concrete matrices.
//
// The operator package provides:
//
//   - A closed set of node variants: concrete matrix leaves (dense or
//     sparse), vector-array-backed leaves, block assemblies, adjoints
//     with optional inner products, concatenations, linear combinations
//     with parameter-dependent coefficients, identity and zero
//     placeholders, and component projections.
//   - ToMatrix, a recursive compiler that walks a tree bottom-up,
//     converts every leaf, reconciles dense and sparse child results per
//     node, and returns one matrix in the requested format.
//
// Trees are pure expressions: nodes never mutate children, conversion is
// idempotent, and concurrent conversions of the same tree are safe.
//
// See the package examples for usage patterns.
package operator
