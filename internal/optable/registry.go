package optable

import (
	"reflect"
	"sync"

	"go.uber.org/zap"

	"github.com/Hitoprl/polymorphic-value/internal/cell"
)

// Key identifies one table: a concrete type together with the storage kind
// the policy decided for it.
type Key struct {
	Type reflect.Type
	Kind cell.Kind
}

// Registry interns operation tables. Tables are created lazily on first use
// and never replaced or mutated afterwards, so concurrent readers need no
// coordination beyond the lookup lock.
//
// A plain RWMutex-guarded map is used instead of sync.Map: the composite Key
// would be boxed on every sync.Map lookup, and the inline construction path
// promises zero allocations.
type Registry struct {
	mu     sync.RWMutex
	tables map[Key]*Table
}

func NewRegistry() *Registry {
	return &Registry{
		tables: make(map[Key]*Table),
	}
}

// Lookup returns the canonical table for k, or nil if none was interned yet.
func (r *Registry) Lookup(k Key) *Table {
	r.mu.RLock()
	t := r.tables[k]
	r.mu.RUnlock()
	return t
}

// Intern returns the canonical table for k, invoking build to create it on
// first use. Every caller observes the same *Table instance, which is what
// makes table-pointer comparison a valid same-type test.
func (r *Registry) Intern(k Key, build func() *Table) *Table {
	if t := r.Lookup(k); t != nil {
		return t
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if t := r.tables[k]; t != nil {
		return t
	}

	t := build()
	r.tables[k] = t
	Logger().Debug("operation table interned",
		zap.Stringer("type", k.Type),
		zap.Stringer("kind", k.Kind))
	return t
}

// Len reports how many tables have been interned.
func (r *Registry) Len() int {
	r.mu.RLock()
	n := len(r.tables)
	r.mu.RUnlock()
	return n
}

var shared = NewRegistry()

// Shared returns the process-wide registry used by the container package.
func Shared() *Registry {
	return shared
}
