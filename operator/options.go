// SPDX-License-Identifier: MIT

// Package operator: functional configuration for ToMatrix and adjoint
// construction. This file defines:
//   - ConvertOption / AdjointOption (functional options over unexported
//     state),
//   - documented defaults (constants),
//   - WithX constructors,
//   - gather*Options helpers (internal).
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - Options fields are unexported; public APIs consume ...Option values.
//   - Format strings are validated at the ToMatrix boundary, not here, so
//     an invalid format surfaces as ErrInvalidFormat rather than a panic.

package operator

// DefaultFormat is the conversion format when none is requested: each
// rule chooses its own dense/sparse representation.
const DefaultFormat = FormatAuto

// ---------- ToMatrix ----------

// ConvertOption mutates conversion options. Safe to apply repeatedly.
type ConvertOption func(*convertOptions)

type convertOptions struct {
	format Format     // DefaultFormat
	mu     Parameters // nil ⇒ empty context
}

// WithFormat requests a specific output representation: FormatDense or
// one of the sparse schemes. Validated eagerly by ToMatrix.
func WithFormat(f Format) ConvertOption {
	return func(o *convertOptions) { o.format = f }
}

// WithParameters supplies the parameter context coefficients are
// evaluated against (once per conversion).
func WithParameters(mu Parameters) ConvertOption {
	return func(o *convertOptions) { o.mu = mu }
}

func gatherConvertOptions(user ...ConvertOption) convertOptions {
	o := convertOptions{format: DefaultFormat}
	for _, set := range user {
		set(&o)
	}

	return o
}

// ---------- Adjoint construction ----------

// AdjointOption attaches inner products to NewAdjointOperator.
type AdjointOption func(*adjointOptions)

type adjointOptions struct {
	sourceProduct Operator
	rangeProduct  Operator
}

// WithSourceProduct attaches the source-side inner-product operator; the
// compiled adjoint solves against it instead of multiplying.
func WithSourceProduct(p Operator) AdjointOption {
	return func(o *adjointOptions) { o.sourceProduct = p }
}

// WithRangeProduct attaches the range-side inner-product operator; the
// compiled adjoint right-multiplies by it.
func WithRangeProduct(p Operator) AdjointOption {
	return func(o *adjointOptions) { o.rangeProduct = p }
}

func gatherAdjointOptions(user ...AdjointOption) adjointOptions {
	var o adjointOptions
	for _, set := range user {
		set(&o)
	}

	return o
}
