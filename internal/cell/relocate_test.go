package cell

import (
	"reflect"
	"testing"
)

func TestRelocatable(t *testing.T) {
	type flat struct {
		A int32
		B float64
		C bool
	}
	type nested struct {
		F flat
		G [2]uint16
	}
	type holdsString struct{ S string }
	type holdsSlice struct{ V []byte }
	type holdsMap struct{ M map[int]int }
	type holdsFunc struct{ F func() }
	type holdsChan struct{ C chan int }
	type holdsIface struct{ I any }
	type holdsPtr struct{ P *flat }
	type deepRef struct {
		N nested
		X [3]holdsString
	}

	tests := []struct {
		name string
		typ  reflect.Type
		want bool
	}{
		{"int", reflect.TypeOf(0), true},
		{"float64", reflect.TypeOf(0.0), true},
		{"complex128", reflect.TypeOf(complex(1, 2)), true},
		{"bool", reflect.TypeOf(false), true},
		{"flat struct", reflect.TypeOf(flat{}), true},
		{"nested struct and array", reflect.TypeOf(nested{}), true},
		{"array of scalars", reflect.TypeOf([4]int{}), true},
		{"string", reflect.TypeOf(""), false},
		{"pointer", reflect.TypeOf((*int)(nil)), false},
		{"slice", reflect.TypeOf([]int{}), false},
		{"map", reflect.TypeOf(map[int]int{}), false},
		{"struct with string", reflect.TypeOf(holdsString{}), false},
		{"struct with slice", reflect.TypeOf(holdsSlice{}), false},
		{"struct with map", reflect.TypeOf(holdsMap{}), false},
		{"struct with func", reflect.TypeOf(holdsFunc{}), false},
		{"struct with chan", reflect.TypeOf(holdsChan{}), false},
		{"struct with interface", reflect.TypeOf(holdsIface{}), false},
		{"struct with pointer", reflect.TypeOf(holdsPtr{}), false},
		{"reference buried deep", reflect.TypeOf(deepRef{}), false},
		{"array of reference-bearing structs", reflect.TypeOf([2]holdsSlice{}), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Relocatable(tt.typ); got != tt.want {
				t.Errorf("Relocatable(%s) = %v, want %v", tt.typ, got, tt.want)
			}
		})
	}
}

func TestRelocatableCached(t *testing.T) {
	type probe struct{ A, B int }
	typ := reflect.TypeOf(probe{})

	first := Relocatable(typ)
	second := Relocatable(typ)
	if first != second {
		t.Fatal("cached answer differs from first computation")
	}
	if _, ok := relocCache.Load(typ); !ok {
		t.Fatal("decision was not cached")
	}
}
