// Package result provides the two-arm "error-or-value" carrier used at
// every fallible boundary of the Tsetlin Machine core, and the four-way
// failure taxonomy (OK, BadJSON, ValueError, NotFitted) named by the
// estimator API surface.
//
// The carrier is a thin, named wrapper over github.com/samber/mo's
// Either monad rather than a bespoke sum type, so call sites get Match/
// MustRight/IsLeft for free while the left arm stays a domain-specific
// Failure (code + message + wrapped cause) instead of a bare error.
package result

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/samber/mo"
)

// Code is one of the four exit statuses the estimator API surface can
// report. It intentionally excludes Go's broader error space: every
// fallible entry point collapses its failure onto one of these.
type Code int

const (
	// OK indicates success; Failure values never carry this code.
	OK Code = iota
	// BadJSON covers parse errors, type errors, and schema violations
	// encountered while decoding params or state.
	BadJSON
	// ValueError covers constraint violations: out-of-range
	// hyperparameters, malformed X/y, dimension mismatches.
	ValueError
	// NotFitted is returned when predict/evaluate/read_state is called
	// on a Fresh estimator.
	NotFitted
)

func (c Code) String() string {
	switch c {
	case OK:
		return "OK"
	case BadJSON:
		return "BAD_JSON"
	case ValueError:
		return "VALUE_ERROR"
	case NotFitted:
		return "NOT_FITTED_ERROR"
	default:
		return fmt.Sprintf("Code(%d)", int(c))
	}
}

// Failure is the left arm of every Either returned by this module: a
// status code paired with a human message and, optionally, the
// underlying cause (preserved via github.com/pkg/errors so callers can
// still walk the cause chain).
type Failure struct {
	Code    Code
	Message string
	cause   error
}

func (f Failure) Error() string {
	if f.cause != nil {
		return fmt.Sprintf("%s: %s: %v", f.Code, f.Message, f.cause)
	}
	return fmt.Sprintf("%s: %s", f.Code, f.Message)
}

// Cause returns the wrapped error, or nil if Failure was constructed
// without one.
func (f Failure) Cause() error {
	return f.cause
}

// New builds a Failure with no wrapped cause.
func New(code Code, message string) Failure {
	return Failure{Code: code, Message: message}
}

// Newf builds a Failure with a formatted message.
func Newf(code Code, format string, args ...any) Failure {
	return Failure{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds a Failure that preserves cause via pkg/errors, so a
// caller can still inspect the original error with errors.Cause.
func Wrap(code Code, cause error, message string) Failure {
	return Failure{Code: code, Message: message, cause: errors.Wrap(cause, message)}
}

// Either is the estimator-facing two-arm result: Left is a Failure,
// Right is the successful value.
type Either[T any] = mo.Either[Failure, T]

// Ok wraps a successful value in the right arm.
func Ok[T any](value T) Either[T] {
	return mo.Right[Failure, T](value)
}

// Fail wraps a Failure in the left arm.
func Fail[T any](f Failure) Either[T] {
	return mo.Left[Failure, T](f)
}

// FailCode is shorthand for Fail(New(code, message)).
func FailCode[T any](code Code, message string) Either[T] {
	return Fail[T](New(code, message))
}
