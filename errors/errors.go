package errors

import (
	"fmt"
	"strings"
)

// Phase indicates which container operation the error occurred in
type Phase string

const (
	PhaseBuild   Phase = "build"   // construction from a value or type tag
	PhaseAssign  Phase = "assign"  // copy/move assignment
	PhaseEmplace Phase = "emplace" // destroy-and-rebuild with a new type
	PhaseAccess  Phase = "access"  // dispatch access to the stored object
)

// Kind categorizes the error
type Kind string

const (
	KindWouldSlice      Kind = "would_slice"
	KindAllocDisallowed Kind = "alloc_disallowed"
	KindInvalidBase     Kind = "invalid_base"
	KindNotImplementing Kind = "not_implementing"
	KindNilValue        Kind = "nil_value"
)

// Error is the structured error type used throughout the library
type Error struct {
	Cause    error
	Phase    Phase
	Kind     Kind
	GoType   string
	BaseType string
	Detail   string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.GoType != "" || e.BaseType != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.BaseType != "" {
			b.WriteString("type ")
			b.WriteString(e.GoType)
			b.WriteString(", base ")
			b.WriteString(e.BaseType)
		} else if e.GoType != "" {
			b.WriteString("type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("base ")
			b.WriteString(e.BaseType)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.BaseType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// GoType sets the concrete Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// BaseType sets the base interface name
func (b *Builder) BaseType(t string) *Builder {
	b.err.BaseType = t
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// WouldSlice creates a slicing-violation error: the declared type of the
// source expression has already erased the concrete type, so storing it would
// discard derived state.
func WouldSlice(phase Phase, declared, dynamic string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindWouldSlice,
		GoType: declared,
		Detail: fmt.Sprintf("value would slice: declared type is an interface erasing %s", dynamic),
	}
}

// AllocDisallowed creates a policy-violation error for a type whose storage
// decision resolved to heap while allocations are disallowed.
func AllocDisallowed(phase Phase, goType string, size uintptr) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindAllocDisallowed,
		GoType: goType,
		Detail: fmt.Sprintf("allocations are not allowed: %d bytes need heap storage", size),
	}
}

// InvalidBase creates an error for a base type parameter that is not an
// interface.
func InvalidBase(phase Phase, baseType string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindInvalidBase,
		BaseType: baseType,
		Detail:   "base type is not an interface",
	}
}

// NotImplementing creates an error for a concrete type whose pointer type
// does not implement the base interface.
func NotImplementing(phase Phase, goType, baseType string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindNotImplementing,
		GoType:   goType,
		BaseType: baseType,
		Detail:   "concrete type does not implement the base interface",
	}
}

// NilValue creates an error for a nil interface source value.
func NilValue(phase Phase, goType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNilValue,
		GoType: goType,
		Detail: "source interface value is nil",
	}
}
