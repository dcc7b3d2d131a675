// SPDX-License-Identifier: MIT
// Package vecarray: scalar coefficients for Scal/Axpy.
//
// Purpose:
//   - Represent "one scalar for everything" or "one coefficient per
//     selected row" behind a single value type, so mutators take exactly
//     one coefficient argument.
//   - Classify the uniform-zero / ±1 cases once, feeding the fast paths in
//     Axpy (skip entirely, add, subtract) without re-scanning per row.
//
// A Coeff built from real constructors keeps the array real; complex
// constructors (or a complex value) trigger element-type promotion in the
// receiving array.

package vecarray

// Coeff is either a uniform scalar or a per-row coefficient batch.
// The zero value is the uniform scalar 0.
type Coeff struct {
	perRow []complex128 // nil ⇒ uniform scalar
	scalar complex128
	cplx   bool // true if any source value had a nonzero imaginary part
}

// Uniform returns a Coeff applying the real scalar alpha to every
// selected row.
func Uniform(alpha float64) Coeff {
	return Coeff{scalar: complex(alpha, 0)}
}

// UniformC returns a Coeff applying the complex scalar alpha to every
// selected row. If imag(alpha) == 0 the coefficient stays real and does
// not force promotion.
func UniformC(alpha complex128) Coeff {
	return Coeff{scalar: alpha, cplx: imag(alpha) != 0}
}

// PerRow returns a Coeff with one real coefficient per selected row.
// The length must match the selection at the call site (validated there).
func PerRow(alphas []float64) Coeff {
	c := make([]complex128, len(alphas))
	for i, v := range alphas {
		c[i] = complex(v, 0)
	}

	return Coeff{perRow: c}
}

// PerRowC returns a Coeff with one complex coefficient per selected row.
func PerRowC(alphas []complex128) Coeff {
	c := make([]complex128, len(alphas))
	copy(c, alphas)
	cplx := false
	for _, v := range alphas {
		if imag(v) != 0 {
			cplx = true
			break
		}
	}

	return Coeff{perRow: c, cplx: cplx}
}

// uniform reports whether the coefficient is a single scalar.
func (c Coeff) uniform() bool { return c.perRow == nil }

// count returns the per-row batch length (0 for uniform).
func (c Coeff) count() int { return len(c.perRow) }

// isComplex reports whether applying the coefficient requires complex
// storage in the target.
func (c Coeff) isComplex() bool { return c.cplx }

// at returns the coefficient for the i-th selected row.
func (c Coeff) at(i int) complex128 {
	if c.perRow == nil {
		return c.scalar
	}

	return c.perRow[i]
}

// allEqual reports whether every coefficient equals v (the basis of the
// 0 / +1 / −1 fast paths).
func (c Coeff) allEqual(v complex128) bool {
	if c.perRow == nil {
		return c.scalar == v
	}
	if len(c.perRow) == 0 {
		return false
	}
	for _, a := range c.perRow {
		if a != v {
			return false
		}
	}

	return true
}
