package cell

import (
	"reflect"
	"sync"
)

var relocCache sync.Map // reflect.Type -> bool

// Relocatable reports whether values of t may be stored as raw bits outside
// the collector's view and moved by plain assignment. That holds exactly when
// the type contains no collector-visible references at any depth: no pointers,
// slices, maps, channels, functions, interfaces or strings.
//
// Results are cached per type; the inline construction fast path calls this on
// every build.
func Relocatable(t reflect.Type) bool {
	if v, ok := relocCache.Load(t); ok {
		return v.(bool)
	}
	r := relocatable(t)
	relocCache.Store(t, r)
	return r
}

func relocatable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Array:
		return relocatable(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if !relocatable(t.Field(i).Type) {
				return false
			}
		}
		return true
	default:
		// Ptr, Slice, Map, Chan, Func, Interface, String, UnsafePointer.
		return false
	}
}
