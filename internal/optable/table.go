package optable

import (
	"reflect"
	"unsafe"

	"github.com/Hitoprl/polymorphic-value/internal/cell"
)

// Table is the immutable record of behavior entry points for one
// (concrete type, storage kind) pair. All entries assume that source and
// destination hold the same concrete type in the same representation; the
// container guarantees that by switching tables before crossing types.
type Table struct {
	// Type identifies the concrete type the entries operate on.
	Type reflect.Type

	// Kind discriminates which cell representation the entries expect.
	Kind cell.Kind

	// Disposable records whether the concrete type carries a Dispose hook.
	Disposable bool

	// Destroy releases the cell's current object. For heap kind a nil owning
	// pointer (moved-from cell) is a no-op.
	Destroy func(c *cell.Cell)

	// Copy builds into an empty dst cell from another managed cell.
	Copy func(dst, src *cell.Cell)

	// CopyRaw builds into an empty dst cell from a non-managed object.
	CopyRaw func(dst *cell.Cell, src unsafe.Pointer)

	// Move builds into an empty dst cell from another managed cell, consuming
	// it. Heap kind transfers the owning pointer without touching the object.
	Move func(dst, src *cell.Cell)

	// MoveRaw builds into an empty dst cell from a non-managed object the
	// caller relinquishes.
	MoveRaw func(dst *cell.Cell, src unsafe.Pointer)

	// CopyAssign assigns another cell's object over dst's current object.
	CopyAssign func(dst, src *cell.Cell)

	// CopyAssignRaw assigns a non-managed object over dst's current object.
	CopyAssignRaw func(dst *cell.Cell, src unsafe.Pointer)

	// MoveAssign assigns another cell's object over dst's, consuming the
	// source. Heap kind swaps the two owning pointers without touching either
	// object.
	MoveAssign func(dst, src *cell.Cell)

	// MoveAssignRaw assigns a relinquished non-managed object over dst's.
	MoveAssignRaw func(dst *cell.Cell, src unsafe.Pointer)

	// Access returns the stored object, boxed as a pointer to the concrete
	// type (or as the erased value itself when the table was built for an
	// interface type with the slice check disabled).
	Access func(c *cell.Cell) any
}
