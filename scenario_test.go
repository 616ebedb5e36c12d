package polyvalue_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	polyvalue "github.com/Hitoprl/polymorphic-value"
)

// TestMixedLifecycleAccounting runs a longer mixed sequence and checks the
// full destruction ledger at the end: every tracked object built over the
// run is disposed exactly once, in spite of moves, cross-kind reassignment
// and cloning.
func TestMixedLifecycleAccounting(t *testing.T) {
	resetTracked()

	// Build one inline and one heap tracked object.
	a := polyvalue.MustNew[Shape](Tracked{ID: 1})
	b := polyvalue.MustNew[Shape](HeavyTracked{ID: 2})

	require.Equal(t, polyvalue.StorageInline, a.StorageKind())
	require.Equal(t, polyvalue.StorageHeap, b.StorageKind())

	// Clone the heap one: a second object with the same ID now exists.
	c := b.Clone()
	require.NotSame(t, b.Get().(*HeavyTracked), c.Get().(*HeavyTracked))

	// Move the heap original; the object itself must not be copied.
	pb := b.Get().(*HeavyTracked)
	d := b.Move()
	require.Same(t, pb, d.Get().(*HeavyTracked))

	// Cross-kind copy assignment: a's inline Tracked{1} is destroyed, a
	// becomes a heap copy of d's object.
	a.CopyFrom(&d)
	require.Equal(t, []int64{1}, trackedDisposed)
	require.Equal(t, polyvalue.StorageHeap, a.StorageKind())

	// Re-emplace c back to an inline type: its HeavyTracked{2} copy dies.
	require.NoError(t, polyvalue.Emplace(&c, Tracked{ID: 3}))
	require.Equal(t, []int64{1, 2}, trackedDisposed)

	// Tear everything down. b is moved-from, so only a, c and d still own
	// objects: HeavyTracked{2} (copied into a), Tracked{3}, HeavyTracked{2}.
	b.Dispose()
	require.Equal(t, []int64{1, 2}, trackedDisposed)

	a.Dispose()
	c.Dispose()
	d.Dispose()
	require.Equal(t, []int64{1, 2, 2, 3, 2}, trackedDisposed)
}

// TestInterningIsStableAcrossValues checks that independently built
// containers of the same concrete type share one operation table, observable
// through in-place assignment behavior rather than reconstruction.
func TestInterningIsStableAcrossValues(t *testing.T) {
	resetTracked()

	a := polyvalue.MustNew[Shape](Tracked{ID: 10})
	b := polyvalue.MustNew[Shape](Tracked{ID: 20})

	// Same-type copy assignment must not destroy: same canonical table.
	a.CopyFrom(&b)
	require.Empty(t, trackedDisposed)
	require.EqualValues(t, 20, a.Get().Area())

	a.Dispose()
	b.Dispose()
	require.Equal(t, []int64{20, 20}, trackedDisposed)
}

// TestPolicyRoundTrip drives a Value built under a restrictive policy through
// the operations that policy still permits.
func TestPolicyRoundTrip(t *testing.T) {
	v, err := polyvalue.New[Shape](Square{Side: 2}, polyvalue.WithAllocations(false))
	require.NoError(t, err)
	defer v.Dispose()

	// Inline-to-inline churn is fine without allocations.
	require.NoError(t, polyvalue.Assign(&v, Rect{W: 2, H: 3}))
	require.EqualValues(t, 6, v.Get().Area())
	require.NoError(t, polyvalue.Emplace(&v, Square{Side: 4}))
	require.EqualValues(t, 16, v.Get().Area())

	// Heap types stay rejected through every mutation path, and the policy
	// survives cloning.
	require.Error(t, polyvalue.Assign(&v, Grid{}))
	require.Error(t, polyvalue.Emplace(&v, Named{Name: "x"}))

	c := v.Clone()
	defer c.Dispose()
	require.Error(t, polyvalue.Assign(&c, Grid{}))
	require.EqualValues(t, 16, c.Get().Area())
}
