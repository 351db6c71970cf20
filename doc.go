// Package namedvars provides a registry of typed, named variables.
//
// A Variable exposes one storage location under a name so that front ends such as
// command consoles and settings panels can read it, write it, and convert it to and
// from text without knowing where the value lives.
//
// # Value Strategies
//
// Every variable is backed by exactly one Value:
//
//   - Stored owns the value (see Create).
//   - Functional calls a getter and an optional setter (see Func).
//   - Reference accesses a slot owned elsewhere, located again on each access
//     (see NewReference and RefOf).
//
// # Scopes
//
// A Scope owns its variables and guarantees that names are unique. It resolves the
// parser for each new variable through its parser.Resolver, which defaults to
// parser.Default and can be replaced with WithResolver:
//
//	s := namedvars.NewScope()
//	count, _ := namedvars.Create(s, "count", 0)
//	_ = count.ParseAndSet("42")
//
//	v, _ := s.Lookup("count")
//	n, _ := namedvars.As[int](v)
//
// Lookups return the type-erased Var; As and LookupAs recover the typed Variable
// and report *ErrTypeMismatch when the requested type differs from the declared one.
package namedvars
