package polyvalue

import "github.com/Hitoprl/polymorphic-value/internal/cell"

// options captures the storage policy a Value was built under. The policy is
// sticky: assignment and emplacement reuse the policy of the target, not the
// package defaults.
type options struct {
	limits     cell.Limits
	allowAlloc bool
	sliceCheck bool
}

// defaultOptions is shared by every Value built without explicit options, so
// the common construction path performs no per-call policy work.
var defaultOptions = &options{
	limits:     cell.DefaultLimits(),
	allowAlloc: true,
	sliceCheck: true,
}

// Option configures the storage policy of a Value at construction time.
type Option func(*options)

// WithAllocations controls whether the Value may fall back to heap storage.
// With allocations disabled, constructing or assigning a concrete type that
// does not fit inline fails with errors.KindAllocDisallowed instead of
// allocating.
func WithAllocations(allow bool) Option {
	return func(o *options) { o.allowAlloc = allow }
}

// WithInlineCapacity sets the inline capacity threshold in bytes. The value
// is a selection threshold, not a buffer size: types larger than it go to the
// heap, and it is clamped to the fixed cell size on the high end and one
// pointer word on the low end.
func WithInlineCapacity(bytes uintptr) Option {
	return func(o *options) { o.limits.Capacity = bytes }
}

// WithInlineAlignment sets the inline alignment threshold in bytes. Types
// requiring stricter alignment than the cell provides go to the heap.
func WithInlineAlignment(align uintptr) Option {
	return func(o *options) { o.limits.Alignment = align }
}

// WithSliceCheck controls rejection of construction through an interface
// static type. Disabling it stores the erased interface value itself, which
// shares the underlying object with the source instead of copying it; see
// the package documentation before reaching for this.
func WithSliceCheck(enabled bool) Option {
	return func(o *options) { o.sliceCheck = enabled }
}

func resolveOptions(opts []Option) *options {
	if len(opts) == 0 {
		return defaultOptions
	}
	o := *defaultOptions
	for _, apply := range opts {
		apply(&o)
	}
	o.limits = o.limits.Clamp()
	return &o
}
