// Package types implements spec.md §3/§4.1–§4.2: the dense-integer
// type store (Scope), the SimpleType model, and the coalesced
// RepresentationalType produced at the output boundary.
package types

// Ref is a dense integer index into a Scope's type arena.
//
// Cycles in the constraint graph are expressed as back-edges through
// these integers rather than through owning pointers, so the store can
// hand out two independent mutable views into distinct cells without
// fighting the aliasing rules a pointer-based representation would
// require.
type Ref int

// Unit is the sentinel ref the store always pre-installs at index 0.
const Unit Ref = 0
