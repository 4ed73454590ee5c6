// Package apperr defines the typed failures shared by every use case and
// transport adapter.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure independently of the transport that reports it.
type Kind int

const (
	// KindInternal is an unexpected fault. Its message is never shown to clients.
	KindInternal Kind = iota
	// KindValidation is a missing or empty required field.
	KindValidation
	// KindConflict is a uniqueness violation such as a duplicate email.
	KindConflict
	// KindAuthentication covers bad credentials and missing or invalid tokens.
	KindAuthentication
	// KindNotFound is a resource that is absent or not owned by the caller.
	KindNotFound
)

// internalMessage is what clients see for KindInternal failures.
const internalMessage = "internal server error"

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindAuthentication:
		return "authentication"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// Error is a failure with a kind and a client-safe message.
type Error struct {
	Kind    Kind
	Message string
	// Err is the underlying cause, if any. It is logged but not exposed.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Kind == KindInternal {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation returns a KindValidation error.
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// Conflict returns a KindConflict error.
func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// Authentication returns a KindAuthentication error.
func Authentication(msg string) *Error {
	return &Error{Kind: KindAuthentication, Message: msg}
}

// NotFound returns a KindNotFound error.
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Internal wraps an unexpected cause.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: internalMessage, Err: err}
}

// KindOf reports the kind of the first *Error in err's chain.
// Untyped errors are treated as internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// PublicMessage returns the message that may be shown to a client.
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Message
	}
	return internalMessage
}
