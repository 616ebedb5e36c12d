// Package optable defines the per-(concrete type, storage kind) operation
// table and the process-wide registry that interns it.
//
// A Table is the manual vtable of the container: nine entry points covering
// destroy, copy and move construction from managed and raw sources, and the
// four assignment variants, plus the access entry that exposes the stored
// object. Tables are immutable after construction. The Registry guarantees
// exactly one canonical *Table per (type, kind) pair for the process
// lifetime, created lazily on first use, so containers can compare table
// pointers to detect same-type assignment.
package optable
