// Package errors provides structured error types for the polymorphic-value
// library.
//
// Errors are categorized by Phase (which container operation was attempted)
// and Kind (error category). The Error type includes the Go type and base
// interface names involved, a human-readable detail, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseBuild, errors.KindAllocDisallowed).
//		GoType("main.BigShape").
//		Detail("type needs heap storage").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.WouldSlice(errors.PhaseAssign, "main.Shape", "*main.Circle")
//	err := errors.AllocDisallowed(errors.PhaseBuild, "main.BigShape", 48)
//
// All errors implement the standard error interface and support errors.Is/As;
// Is matches on the (Phase, Kind) pair.
package errors
