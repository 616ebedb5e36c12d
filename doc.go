// Package polyvalue provides a value-semantic polymorphic container for Go.
//
// A Value[B] holds exactly one object of some concrete type whose pointer
// type implements the base interface B. It behaves like a plain value: it is
// clonable and movable, never aliases the object it was built from, and is
// never empty between construction and Dispose. Small, relocatable concrete
// types are stored inline in the container's own fixed-size cell with zero
// heap allocations; everything else is heap-owned behind a single pointer,
// with moves degrading to an O(1) pointer transfer.
//
// # Architecture Overview
//
// The library is organized into a small set of packages with distinct
// responsibilities:
//
//	polyvalue/           Root package: the Value container and its operations
//	├── errors/          Structured error types for debugging
//	└── internal/
//	    ├── cell/        Fixed-size storage cell and the storage-kind decision
//	    └── optable/     Per-(type, kind) operation tables and their registry
//
// # How It Works
//
// For every (concrete type, storage kind) pair the library generates, once
// per process, an immutable operation table: destroy, copy and move
// construction from managed and raw sources, the four assignment variants,
// and the access entry. A Value is one storage cell plus a reference to the
// canonical table describing its current content:
//
//	┌────────────────────────────────────────────────────────────┐
//	│ Value[B]  =  cell (3 words inline │ owning ptr)  +  *Table │
//	└────────────────────────────────────────────────────────────┘
//
// All container operations dispatch through the table; the container itself
// never inspects the concrete type. Same-type assignment is detected by
// comparing table pointers and assigns in place; cross-type assignment
// destroys the old object exactly once, switches tables and rebuilds.
//
// # Quick Start
//
//	type Shape interface{ Area() float64 }
//
//	type Circle struct{ Radius float64 }
//
//	func (c *Circle) Area() float64 { return math.Pi * c.Radius * c.Radius }
//
//	v, err := polyvalue.New[Shape](Circle{Radius: 2})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer v.Dispose()
//
//	fmt.Println(v.Get().Area())
//
// Circle is three words or smaller and holds no references, so the Value
// above never touches the heap.
//
// # Storage Decision
//
// A concrete type is stored inline exactly when it fits the configured
// capacity (default three pointer words) and alignment, and is relocatable:
// its bits contain no pointers, slices, maps, channels, functions, interfaces
// or strings, so they may live outside the garbage collector's view.
// Reference-bearing types are heap-owned regardless of size. The decision is
// made once per concrete type and policy, never per instance.
//
// # Value Discipline
//
// A Value must not be duplicated by plain Go assignment after first use;
// Clone and Move are the sanctioned duplication paths, and misuse panics. A
// moved-from Value may only be reassigned or disposed. Dispose runs the
// concrete type's optional Dispose hook exactly once.
//
// # Thread Safety
//
// A Value has no internal synchronization; concurrent mutation of one
// instance is the caller's problem, as for any plain value. Operation tables
// are interned once and immutable afterwards, so distinct Values of the same
// concrete type are safe to use from different goroutines.
package polyvalue
