// Package vm implements the host side of the JavaScript embedding
// boundary: runtime and context lifecycle, scalar marshaling between
// host values and script values, the bridge that exposes host closures
// as script globals, and the translation of engine failures into typed
// errors.
//
// # Ownership
//
// A [Runtime] owns the engine's global state. A [Context] owns one
// evaluation environment and holds a non-owning reference to its
// Runtime; close the Context first, the Runtime last. Script values
// never escape as host-visible handles: every value produced by an
// evaluation or call is converted to a string, int32, float64, or bool
// (or consumed as an error message) within the operation that produced
// it.
//
// # Errors
//
// A thrown script exception or parse failure surfaces as *[ScriptError]
// with the thrown value's own string form. Coercion is never an error:
// evaluating "'abc'" as an integer yields 0 by the engine's NaN rules,
// exactly as the interpreter defines it.
//
// Most callers should use the package-root Engine facade instead of
// assembling Runtime and Context by hand.
package vm
