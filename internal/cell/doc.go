// Package cell implements the fixed-size storage block backing a polymorphic
// value, together with the storage-kind decision.
//
// A Cell holds exactly one live object in one of two representations: directly
// inside its inline words, or behind a single owning heap pointer. The Cell
// itself carries no discriminant; which representation is live is implied by
// the operation table currently describing the owning container.
//
// KindFor decides the representation for a concrete type: inline storage is
// used only for types that fit the configured capacity and alignment and are
// relocatable, meaning their bits contain no references the garbage collector
// would need to see. Everything else is heap-owned through a real pointer the
// collector scans.
package cell
