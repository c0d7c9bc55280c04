// Package errors defines the launcher's error taxonomy.
//
// Configuration and environment errors are collected at startup and shown
// in the error view; provider errors are recovered locally as "no results
// from that launcher" and only logged.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind classifies an error by where it is handled
type Kind string

const (
	KindConfiguration Kind = "configuration"
	KindProvider      Kind = "provider"
	KindEnvironment   Kind = "environment"
)

// Error is the structured error type used across lookout
type Error struct {
	Kind Kind
	// Name is a short title, e.g. "Duplicate Alias"
	Name    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Name, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Name, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches another *Error of the same kind and name.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && (t.Name == "" || e.Name == t.Name)
}

// Traceback returns the cause text, or "" when there is none.
func (e *Error) Traceback() string {
	if e.Cause == nil {
		return ""
	}
	return e.Cause.Error()
}

// Configuration creates a malformed-configuration error.
func Configuration(name, message string, cause error) *Error {
	return &Error{Kind: KindConfiguration, Name: name, Message: message, Cause: cause}
}

// Provider creates an error for a launcher that failed to produce results.
func Provider(name, message string, cause error) *Error {
	return &Error{Kind: KindProvider, Name: name, Message: message, Cause: cause}
}

// Environment creates an error for a missing environment variable or resource.
func Environment(name, message string, cause error) *Error {
	return &Error{Kind: KindEnvironment, Name: name, Message: message, Cause: cause}
}

// KindOf returns the kind of the first *Error in err's chain, or "".
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsProvider reports whether err is a provider error.
func IsProvider(err error) bool {
	return KindOf(err) == KindProvider
}

// Sentinels usable with errors.Is for a whole kind.
var (
	ErrConfiguration = &Error{Kind: KindConfiguration}
	ErrProvider      = &Error{Kind: KindProvider}
	ErrEnvironment   = &Error{Kind: KindEnvironment}
)

// ErrNoMatch is returned by providers that have nothing for the query.
var ErrNoMatch = Provider("No Match", "launcher has no result for the query", nil)
