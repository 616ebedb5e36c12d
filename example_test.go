package polyvalue_test

import (
	"fmt"

	polyvalue "github.com/Hitoprl/polymorphic-value"
)

func ExampleNew() {
	v, err := polyvalue.New[Shape](Square{Side: 3})
	if err != nil {
		fmt.Println(err)
		return
	}
	defer v.Dispose()

	fmt.Println(v.Get().Area(), v.StorageKind())
	// Output: 9 inline
}

func ExampleValue_Clone() {
	v := polyvalue.MustNew[Shape](Square{Side: 2})
	defer v.Dispose()

	c := v.Clone()
	defer c.Dispose()

	v.Get().(*Square).Side = 10
	fmt.Println(v.Get().Area(), c.Get().Area())
	// Output: 100 4
}

func ExampleAssign() {
	v := polyvalue.MustNew[Shape](Square{Side: 2})
	defer v.Dispose()

	if err := polyvalue.Assign(&v, Named{Name: "triangle"}); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(v.ConcreteType(), v.StorageKind())
	// Output: polyvalue_test.Named heap
}

func ExampleNew_slicing() {
	var s Shape = &Square{Side: 1}

	// The static type of s is the interface itself: the concrete type has
	// been erased, so construction is rejected.
	_, err := polyvalue.New[Shape](s)
	fmt.Println(err != nil)
	// Output: true
}
