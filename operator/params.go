// SPDX-License-Identifier: MIT
// Package operator: parameter contexts and scalar coefficients.
//
// Linear combinations carry one scalar coefficient per operand. A
// coefficient is either a plain constant or a functional evaluated
// against the parameter context exactly once per conversion — the
// compiler never resolves symbolic parameters beyond this call.

package operator

// Parameters is the parameter context a conversion is evaluated against.
// A nil map is a valid empty context.
type Parameters map[string]float64

// Coefficient yields the scalar weight of a linear-combination operand
// for a given parameter context.
type Coefficient interface {
	// Evaluate resolves the coefficient against mu. Implementations must
	// be pure: same mu, same value.
	Evaluate(mu Parameters) float64
}

// constant is a parameter-independent coefficient.
type constant float64

func (c constant) Evaluate(Parameters) float64 { return float64(c) }

// Constant returns a coefficient with a fixed value.
func Constant(v float64) Coefficient { return constant(v) }

// functional adapts a plain function into a Coefficient.
type functional func(Parameters) float64

func (f functional) Evaluate(mu Parameters) float64 { return f(mu) }

// Functional returns a parameter-dependent coefficient backed by fn.
// fn must treat a nil context as empty.
func Functional(fn func(Parameters) float64) Coefficient { return functional(fn) }
