package cell

import (
	"reflect"
	"unsafe"
)

// Words is the number of pointer-sized words of inline storage in a Cell.
const Words = 3

// Size and Align bound what the inline representation can physically hold.
const (
	Size  = Words * unsafe.Sizeof(uintptr(0))
	Align = unsafe.Alignof(uintptr(0))
)

// Kind discriminates the two storage representations.
type Kind uint8

const (
	KindInline Kind = iota
	KindHeap
)

var kindNames = [...]string{
	KindInline: "inline",
	KindHeap:   "heap",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Cell is a fixed-size block holding exactly one live object: either an
// inline copy of a relocatable type in the inline words, or a heap-owned
// object behind the heap pointer. heap is a real pointer type so the object
// it owns stays visible to the collector.
//
// All manipulation beyond raw access goes through the operation table entries
// generated for the stored concrete type.
type Cell struct {
	inline [Words]uintptr
	heap   unsafe.Pointer
}

// InlinePtr returns the address of the inline words.
func (c *Cell) InlinePtr() unsafe.Pointer {
	return unsafe.Pointer(&c.inline[0])
}

// Heap returns the owning pointer of a heap-kind cell.
func (c *Cell) Heap() unsafe.Pointer {
	return c.heap
}

// SetHeap installs the owning pointer. The cell must not currently own one.
func (c *Cell) SetHeap(p unsafe.Pointer) {
	c.heap = p
}

// TakeHeap transfers the owning pointer out of the cell, leaving the cell in
// the moved-from state (nil pointer, destroy becomes a no-op).
func (c *Cell) TakeHeap() unsafe.Pointer {
	p := c.heap
	c.heap = nil
	return p
}

// SwapHeap exchanges the owning pointers of two heap-kind cells.
func (c *Cell) SwapHeap(o *Cell) {
	c.heap, o.heap = o.heap, c.heap
}

// Limits is the per-container storage policy: the maximum object size and
// alignment eligible for the inline representation.
type Limits struct {
	Capacity  uintptr
	Alignment uintptr
}

// DefaultLimits returns the full physical inline block: three pointer words
// at pointer alignment.
func DefaultLimits() Limits {
	return Limits{Capacity: Size, Alignment: Align}
}

// Clamp bounds the limits to what a Cell can honor. Both are raised to at
// least one pointer, since the heap representation always needs room for one,
// and capped at the physical inline block.
func (l Limits) Clamp() Limits {
	ptr := unsafe.Sizeof(uintptr(0))
	if l.Capacity < ptr {
		l.Capacity = ptr
	}
	if l.Capacity > Size {
		l.Capacity = Size
	}
	// The inline words provide exactly pointer alignment, which is also the
	// strictest alignment the Go ABI gives ordinary types.
	l.Alignment = Align
	return l
}

// KindFor decides the storage representation for a concrete type under the
// given limits. The decision is a pure function of the type and the limits:
// inline iff the type fits the capacity and alignment bounds and is
// relocatable.
func KindFor(t reflect.Type, l Limits) Kind {
	if t.Size() <= l.Capacity && uintptr(t.Align()) <= l.Alignment && Relocatable(t) {
		return KindInline
	}
	return KindHeap
}
