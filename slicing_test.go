package polyvalue_test

import (
	"errors"
	"testing"

	polyvalue "github.com/Hitoprl/polymorphic-value"
	perrors "github.com/Hitoprl/polymorphic-value/errors"
)

func TestErasedSourceRejected(t *testing.T) {
	var s Shape = &Square{Side: 2}

	_, err := polyvalue.New[Shape](s)
	if !errors.Is(err, &perrors.Error{Phase: perrors.PhaseBuild, Kind: perrors.KindWouldSlice}) {
		t.Fatalf("err = %v, want would_slice in build phase", err)
	}
}

func TestErasedSourceRejectedOnAssign(t *testing.T) {
	v := polyvalue.MustNew[Shape](Square{Side: 1})
	defer v.Dispose()

	var s Shape = &Rect{W: 2, H: 2}
	err := polyvalue.Assign(&v, s)
	if !errors.Is(err, &perrors.Error{Phase: perrors.PhaseAssign, Kind: perrors.KindWouldSlice}) {
		t.Fatalf("err = %v, want would_slice in assign phase", err)
	}
	if got := v.Get().Area(); got != 1 {
		t.Errorf("rejected assignment changed the target: Area() = %v, want 1", got)
	}
}

func TestNilInterfaceSourceRejected(t *testing.T) {
	var s Shape

	_, err := polyvalue.New[Shape](s)
	if !errors.Is(err, &perrors.Error{Phase: perrors.PhaseBuild, Kind: perrors.KindNilValue}) {
		t.Fatalf("err = %v, want nil_value in build phase", err)
	}

	// Nil stays rejected with the slice check disabled; there is no object
	// to store either way.
	_, err = polyvalue.New[Shape](s, polyvalue.WithSliceCheck(false))
	if !errors.Is(err, &perrors.Error{Phase: perrors.PhaseBuild, Kind: perrors.KindNilValue}) {
		t.Fatalf("err = %v, want nil_value with slice check disabled", err)
	}
}

func TestSliceCheckDisabledStoresErasedValue(t *testing.T) {
	sq := &Square{Side: 3}
	var s Shape = sq

	v, err := polyvalue.New[Shape](s, polyvalue.WithSliceCheck(false))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer v.Dispose()

	if got := v.StorageKind(); got != polyvalue.StorageHeap {
		t.Errorf("StorageKind() = %s, want heap for an erased source", got)
	}
	if got := v.Get().Area(); got != 9 {
		t.Errorf("Area() = %v, want 9", got)
	}

	// The stored interface value shares its underlying object with the
	// source; this is the documented trade-off of disabling the check.
	sq.Side = 5
	if got := v.Get().Area(); got != 25 {
		t.Errorf("Area() after source mutation = %v, want 25 (shared object)", got)
	}
}

func TestSliceCheckDisabledStillChecksConformance(t *testing.T) {
	var x any = &NotAShape{X: 1}

	_, err := polyvalue.New[Shape](x, polyvalue.WithSliceCheck(false))
	if !errors.Is(err, &perrors.Error{Phase: perrors.PhaseBuild, Kind: perrors.KindNotImplementing}) {
		t.Fatalf("err = %v, want not_implementing in build phase", err)
	}
}
