package polyvalue

import (
	"reflect"
	"unsafe"

	"go.uber.org/zap"

	"github.com/Hitoprl/polymorphic-value/errors"
	"github.com/Hitoprl/polymorphic-value/internal/cell"
	"github.com/Hitoprl/polymorphic-value/internal/optable"
)

// StorageKind discriminates the two storage representations of a Value.
type StorageKind = cell.Kind

const (
	StorageInline = cell.KindInline
	StorageHeap   = cell.KindHeap
)

// Disposer is the optional cleanup hook a stored concrete type may implement.
// Dispose is invoked exactly once, when the object is destroyed: on
// Value.Dispose, on reassignment with a different concrete type, and on
// Emplace.
type Disposer interface {
	Dispose()
}

// SetLogger installs a logger for the library's internal diagnostics, such as
// operation table interning. The default logger discards everything.
func SetLogger(logger *zap.Logger) {
	optable.SetLogger(logger)
}

// TableCount reports how many operation tables the process has interned so
// far. Primarily a diagnostic.
func TableCount() int {
	return optable.Shared().Len()
}

// Value is a polymorphic value: a container owning exactly one object of some
// concrete type whose pointer type implements the base interface B. Unlike an
// interface variable it has value semantics: Clone produces an independent
// deep copy of the object, and the container is never nil-like between
// construction and Dispose.
//
// The zero Value is dead; it may only be the target of CopyFrom, MoveFrom,
// Assign or Emplace. A Value must not be duplicated by plain Go assignment
// after first use; use Clone or Move.
type Value[B any] struct {
	// addr detects duplication by plain assignment, in the manner of
	// strings.Builder: it is lazily bound to the Value's own address and
	// checked on every operation.
	addr *Value[B]

	table *optable.Table
	opts  *options
	cell  cell.Cell
}

// noescape hides p from escape analysis. The pointers passed through it are
// only ever read for the duration of a single table entry call and never
// retained.
//
//go:nosplit
func noescape(p unsafe.Pointer) unsafe.Pointer {
	x := uintptr(p)
	return unsafe.Pointer(x ^ 0) //nolint:staticcheck
}

// cellOf launders the address of a cell before handing it to a table entry.
// Entries use their cell arguments only for the duration of the call; without
// this, every container touched by an indirect call would be forced to the
// heap, defeating the inline representation.
func cellOf(c *cell.Cell) *cell.Cell {
	return (*cell.Cell)(noescape(unsafe.Pointer(c)))
}

func (v *Value[B]) copyCheck() {
	if v.addr == nil {
		// Bind on first use. noescape keeps the self-pointer from dragging
		// the whole Value to the heap; it never outlives the Value itself.
		v.addr = (*Value[B])(noescape(unsafe.Pointer(v)))
	} else if v.addr != v {
		panic("polyvalue: illegal use of Value copied by assignment; use Clone or Move")
	}
}

func (v *Value[B]) mustLive() {
	if v.table == nil {
		panic("polyvalue: use of zero or disposed Value")
	}
}

// New builds a Value owning a copy of from. When the declared source type is
// an interface the concrete type has already been erased and storing the
// value would lose derived state, so construction is rejected with
// errors.KindWouldSlice unless WithSliceCheck(false) was given.
//
// The source is consumed by move: for heap-stored types New performs exactly
// one allocation, for inline types none.
func New[B any, D any](from D, opts ...Option) (Value[B], error) {
	return build[B, D](errors.PhaseBuild, from, resolveOptions(opts))
}

// MustNew is New panicking on error, for sources known valid at compile time.
func MustNew[B any, D any](from D, opts ...Option) Value[B] {
	v, err := New[B, D](from, opts...)
	if err != nil {
		panic(err)
	}
	return v
}

// Make builds a Value owning from with the concrete type named explicitly at
// the call site, the analog of in-place construction:
//
//	v, err := polyvalue.Make[Shape, Circle](Circle{Radius: 2})
//
// Behavior is that of New; the spelling exists so construction sites that
// want the concrete type visible can say so.
func Make[B any, D any](from D, opts ...Option) (Value[B], error) {
	return build[B, D](errors.PhaseBuild, from, resolveOptions(opts))
}

func build[B any, D any](phase errors.Phase, from D, o *options) (Value[B], error) {
	if err := checkSource[B, D](phase, from, o); err != nil {
		return Value[B]{}, err
	}
	tbl, err := tableFor[B, D](phase, o)
	if err != nil {
		return Value[B]{}, err
	}
	var c cell.Cell
	tbl.MoveRaw(cellOf(&c), noescape(unsafe.Pointer(&from)))
	return Value[B]{table: tbl, opts: o, cell: c}, nil
}

// checkSource validates a construction or assignment source before any
// mutation happens. Concrete source types need no dynamic checking: their
// base conformance is a static property verified by tableFor. Interface
// sources are where erasure bites.
func checkSource[B any, D any](phase errors.Phase, from D, o *options) error {
	dt := reflect.TypeFor[D]()
	if dt.Kind() != reflect.Interface {
		return nil
	}
	dyn := reflect.TypeOf(from)
	if dyn == nil {
		return errors.NilValue(phase, dt.String())
	}
	if o.sliceCheck {
		return errors.WouldSlice(phase, dt.String(), dyn.String())
	}
	if _, ok := any(from).(B); !ok {
		return errors.NotImplementing(phase, dyn.String(), reflect.TypeFor[B]().String())
	}
	return nil
}

// Get returns the stored object through the base interface. For concrete
// stored types the interface's dynamic type is the pointer to the concrete
// type, pointing into the container's own storage: mutations through it are
// mutations of the contained object. The returned interface stays valid until
// the Value is disposed, reassigned or re-emplaced, and must not outlive the
// container itself.
func (v *Value[B]) Get() B {
	v.copyCheck()
	v.mustLive()
	return v.table.Access(cellOf(&v.cell)).(B)
}

// Clone copy-constructs an independent Value from v. The storage
// representation is preserved: inline stays inline with no allocation, heap
// clones into exactly one new allocation.
func (v *Value[B]) Clone() Value[B] {
	v.copyCheck()
	v.mustLive()
	var c cell.Cell
	v.table.Copy(cellOf(&c), cellOf(&v.cell))
	return Value[B]{table: v.table, opts: v.opts, cell: c}
}

// Move move-constructs a new Value from v, consuming it. Heap storage is
// transferred as a pointer without touching the object. Afterwards v is
// moved-from: it may only be reassigned or disposed.
func (v *Value[B]) Move() Value[B] {
	v.copyCheck()
	v.mustLive()
	var c cell.Cell
	v.table.Move(cellOf(&c), cellOf(&v.cell))
	return Value[B]{table: v.table, opts: v.opts, cell: c}
}

// CopyFrom copy-assigns src's object onto v. When both hold the same concrete
// type in the same representation the object is assigned in place with no
// allocation and no destruction; otherwise v's object is destroyed exactly
// once and a copy of src's is built under src's table. Self-assignment is a
// no-op. A zero v is treated as copy construction and adopts src's policy.
func (v *Value[B]) CopyFrom(src *Value[B]) {
	v.copyCheck()
	if v == src {
		return
	}
	src.copyCheck()
	src.mustLive()

	switch {
	case v.table == nil:
		v.table = src.table
		v.opts = src.opts
		v.table.Copy(cellOf(&v.cell), cellOf(&src.cell))
	case v.table == src.table:
		v.table.CopyAssign(cellOf(&v.cell), cellOf(&src.cell))
	default:
		v.table.Destroy(cellOf(&v.cell))
		v.table = src.table
		v.table.Copy(cellOf(&v.cell), cellOf(&src.cell))
	}
}

// MoveFrom move-assigns src's object onto v, consuming src. Same concrete
// type in heap storage swaps the two owning pointers; different types destroy
// v's object and transfer src's. Self-assignment is a no-op. A zero v is
// treated as move construction and adopts src's policy.
func (v *Value[B]) MoveFrom(src *Value[B]) {
	v.copyCheck()
	if v == src {
		return
	}
	src.copyCheck()
	src.mustLive()

	switch {
	case v.table == nil:
		v.table = src.table
		v.opts = src.opts
		v.table.Move(cellOf(&v.cell), cellOf(&src.cell))
	case v.table == src.table:
		v.table.MoveAssign(cellOf(&v.cell), cellOf(&src.cell))
	default:
		v.table.Destroy(cellOf(&v.cell))
		v.table = src.table
		v.table.Move(cellOf(&v.cell), cellOf(&src.cell))
	}
}

// Dispose destroys the stored object, running its Dispose hook if it has one.
// Afterwards the Value is dead and may only be reassigned. Disposing a zero
// or already-disposed Value is a no-op.
func (v *Value[B]) Dispose() {
	v.copyCheck()
	if v.table == nil {
		return
	}
	v.table.Destroy(cellOf(&v.cell))
	v.table = nil
	v.cell = cell.Cell{}
}

// StorageKind reports whether the current object lives inline or on the heap.
func (v *Value[B]) StorageKind() StorageKind {
	v.copyCheck()
	v.mustLive()
	return v.table.Kind
}

// ConcreteType returns the reflect.Type of the stored concrete type.
func (v *Value[B]) ConcreteType() reflect.Type {
	v.copyCheck()
	v.mustLive()
	return v.table.Type
}

// Assign copy-assigns a bare concrete value onto v, the analog of assigning a
// derived object over the container. All checks run before any mutation, so a
// rejected assignment leaves v unchanged. Same concrete type as the current
// content assigns in place; a different type destroys the old object, switches
// tables and rebuilds. A zero v is treated as construction under the default
// policy.
func Assign[B any, D any](v *Value[B], from D) error {
	v.copyCheck()
	o := v.opts
	if o == nil {
		o = defaultOptions
	}
	if err := checkSource[B, D](errors.PhaseAssign, from, o); err != nil {
		return err
	}
	tbl, err := tableFor[B, D](errors.PhaseAssign, o)
	if err != nil {
		return err
	}

	switch {
	case v.table == nil:
		v.table = tbl
		v.opts = o
		tbl.MoveRaw(cellOf(&v.cell), noescape(unsafe.Pointer(&from)))
	case v.table == tbl:
		tbl.CopyAssignRaw(cellOf(&v.cell), noescape(unsafe.Pointer(&from)))
	default:
		v.table.Destroy(cellOf(&v.cell))
		v.table = tbl
		tbl.CopyRaw(cellOf(&v.cell), noescape(unsafe.Pointer(&from)))
	}
	return nil
}

// Emplace destroys v's current object and builds a new one of the explicitly
// named concrete type D from from, under v's sticky policy. The destroy
// happens unconditionally, even when the type is unchanged, mirroring
// destroy-then-rebuild emplacement. Checks run first, so a rejected emplace
// leaves v unchanged.
func Emplace[B any, D any](v *Value[B], from D) error {
	v.copyCheck()
	o := v.opts
	if o == nil {
		o = defaultOptions
	}
	if err := checkSource[B, D](errors.PhaseEmplace, from, o); err != nil {
		return err
	}
	tbl, err := tableFor[B, D](errors.PhaseEmplace, o)
	if err != nil {
		return err
	}

	if v.table != nil {
		v.table.Destroy(cellOf(&v.cell))
	}
	v.table = tbl
	v.opts = o
	tbl.MoveRaw(cellOf(&v.cell), noescape(unsafe.Pointer(&from)))
	return nil
}
