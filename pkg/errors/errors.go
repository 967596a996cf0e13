// Package errors provides structured error reporting for the lazyload
// engine. The visibility core itself has no failure modes; errors come
// from the edges (image decoding, scenario configuration) and flow to a
// global handler instead of surfacing as panics.
package errors

import (
	"fmt"
	"time"
)

// Kind identifies the category of an error.
type Kind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown Kind = iota
	// KindDecode indicates an image decode failure.
	KindDecode
	// KindFetch indicates a resource fetch failure.
	KindFetch
	// KindConfig indicates a scenario or configuration error.
	KindConfig
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k Kind) String() string {
	switch k {
	case KindDecode:
		return "decode"
	case KindFetch:
		return "fetch"
	case KindConfig:
		return "config"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// LazyError represents a structured error in the lazyload engine.
type LazyError struct {
	// Op is the operation that failed (e.g., "lazyimage.Decode").
	Op string
	// Kind categorizes the error.
	Kind Kind
	// Err is the underlying error.
	Err error
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *LazyError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *LazyError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked.
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

// Handler receives errors reported by the lazyload engine.
type Handler interface {
	// HandleError is called when an error occurs.
	HandleError(err *LazyError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
