// Package errors provides structured error reporting for the ink engine.
//
// Engine operations return errors to their caller. Code that sits between a
// host event source and the engine (a responder, a frame loop) has nowhere
// to return them to, so it hands them to the global [ErrorHandler] via
// [Report] instead.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindGeometry indicates rejected geometry input (non-finite points or bounds).
	KindGeometry
	// KindConfig indicates an invalid configuration or script file.
	KindConfig
	// KindRender indicates a painting or image export failure.
	KindRender
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindGeometry:
		return "geometry"
	case KindConfig:
		return "config"
	case KindRender:
		return "render"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// InkError represents a structured error in the ink engine.
type InkError struct {
	// Op is the operation that failed (e.g., "ripple.StartRipple").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error, if captured.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *InkError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *InkError) Unwrap() error {
	return e.Err
}

// Geometry builds a KindGeometry error for op.
func Geometry(op, format string, args ...any) *InkError {
	return &InkError{Op: op, Kind: KindGeometry, Err: fmt.Errorf(format, args...)}
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "ripple.listener").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported through this package.
type ErrorHandler interface {
	// HandleError is called when an error is reported.
	HandleError(err *InkError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
