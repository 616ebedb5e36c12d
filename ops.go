package polyvalue

import (
	"reflect"
	"unsafe"

	"github.com/Hitoprl/polymorphic-value/errors"
	"github.com/Hitoprl/polymorphic-value/internal/cell"
	"github.com/Hitoprl/polymorphic-value/internal/optable"
)

// tableFor resolves the canonical operation table for concrete type D stored
// under policy o, validating the base/concrete pairing on the way. The fast
// path is a registry lookup with no allocations; the table is generated only
// the first time a (type, kind) pair is seen.
func tableFor[B any, D any](phase errors.Phase, o *options) (*optable.Table, error) {
	bt := reflect.TypeFor[B]()
	if bt.Kind() != reflect.Interface {
		return nil, errors.InvalidBase(phase, bt.String())
	}
	dt := reflect.TypeFor[D]()
	if dt.Kind() != reflect.Interface {
		if _, ok := any((*D)(nil)).(B); !ok {
			return nil, errors.NotImplementing(phase, dt.String(), bt.String())
		}
	}

	k := cell.KindFor(dt, o.limits)
	if k == cell.KindHeap && !o.allowAlloc {
		return nil, errors.AllocDisallowed(phase, dt.String(), dt.Size())
	}

	key := optable.Key{Type: dt, Kind: k}
	if t := optable.Shared().Lookup(key); t != nil {
		return t, nil
	}
	return optable.Shared().Intern(key, func() *optable.Table {
		return buildTable[D](dt, k)
	}), nil
}

func buildTable[D any](dt reflect.Type, k cell.Kind) *optable.Table {
	if dt.Kind() == reflect.Interface {
		// Slice check disabled: the erased interface value itself is stored
		// and shares its underlying object with the source.
		return heapTable[D](dt, true)
	}
	if k == cell.KindInline {
		return inlineTable[D](dt)
	}
	return heapTable[D](dt, false)
}

// inlineTable generates the entries for a relocatable type held in the cell's
// inline words. Construction and assignment both reduce to a plain Go
// assignment of the inline bits, so the managed and raw variants share one
// body, as do the copy and move variants.
func inlineTable[D any](dt reflect.Type) *optable.Table {
	assign := func(dst, src *cell.Cell) {
		*(*D)(dst.InlinePtr()) = *(*D)(src.InlinePtr())
	}
	assignRaw := func(dst *cell.Cell, src unsafe.Pointer) {
		*(*D)(dst.InlinePtr()) = *(*D)(src)
	}

	_, disposable := any((*D)(nil)).(Disposer)
	destroy := func(*cell.Cell) {}
	if disposable {
		destroy = func(c *cell.Cell) {
			any((*D)(c.InlinePtr())).(Disposer).Dispose()
		}
	}

	return &optable.Table{
		Type:          dt,
		Kind:          cell.KindInline,
		Disposable:    disposable,
		Destroy:       destroy,
		Copy:          assign,
		CopyRaw:       assignRaw,
		Move:          assign,
		MoveRaw:       assignRaw,
		CopyAssign:    assign,
		CopyAssignRaw: assignRaw,
		MoveAssign:    assign,
		MoveAssignRaw: assignRaw,
		Access: func(c *cell.Cell) any {
			return (*D)(c.InlinePtr())
		},
	}
}

// heapTable generates the entries for a heap-owned type. The copy entries
// allocate exactly one object and assign into it; the managed move entries
// transfer or swap the owning pointer without touching the object, which is
// the point of the heap representation. Raw moves cannot steal the caller's
// storage and degrade to copies.
//
// derefAccess is set for interface types stored with the slice check
// disabled, where access must return the erased value rather than a pointer
// into the cell.
func heapTable[D any](dt reflect.Type, derefAccess bool) *optable.Table {
	_, disposable := any((*D)(nil)).(Disposer)

	destroy := func(c *cell.Cell) {
		p := c.TakeHeap()
		if p == nil {
			return // moved-from
		}
		if disposable {
			any((*D)(p)).(Disposer).Dispose()
		}
	}

	copyCell := func(dst, src *cell.Cell) {
		p := new(D)
		*p = *(*D)(src.Heap())
		dst.SetHeap(unsafe.Pointer(p))
	}
	copyRaw := func(dst *cell.Cell, src unsafe.Pointer) {
		p := new(D)
		*p = *(*D)(src)
		dst.SetHeap(unsafe.Pointer(p))
	}
	// A moved-from destination owns no object to assign over; the in-place
	// entries rebuild instead. The container permits reassigning a moved-from
	// Value, and the same-table fast path must honor that.
	assignCell := func(dst, src *cell.Cell) {
		if dst.Heap() == nil {
			copyCell(dst, src)
			return
		}
		*(*D)(dst.Heap()) = *(*D)(src.Heap())
	}
	assignRaw := func(dst *cell.Cell, src unsafe.Pointer) {
		if dst.Heap() == nil {
			copyRaw(dst, src)
			return
		}
		*(*D)(dst.Heap()) = *(*D)(src)
	}

	access := func(c *cell.Cell) any {
		return (*D)(c.Heap())
	}
	if derefAccess {
		access = func(c *cell.Cell) any {
			return *(*D)(c.Heap())
		}
	}

	return &optable.Table{
		Type:       dt,
		Kind:       cell.KindHeap,
		Disposable: disposable,
		Destroy:    destroy,
		Copy:       copyCell,
		CopyRaw:    copyRaw,
		Move: func(dst, src *cell.Cell) {
			dst.SetHeap(src.TakeHeap())
		},
		MoveRaw:       copyRaw,
		CopyAssign:    assignCell,
		CopyAssignRaw: assignRaw,
		MoveAssign: func(dst, src *cell.Cell) {
			dst.SwapHeap(src)
		},
		MoveAssignRaw: assignRaw,
		Access:        access,
	}
}
