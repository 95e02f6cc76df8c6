package core

import (
	"errors"
	"fmt"
)

// Kind classifies an authentication failure so the transport layer can map
// it to a status code without inspecting messages.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalidInput
	KindConflict
	KindUnauthorized
	KindNotFound
	KindExpired
	KindMismatch
)

// Error is the error type returned by the authentication core. Message is
// safe to show to clients; Err carries the internal cause, if any.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Errf builds an error with the given kind and formatted message.
func Errf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an error around an internal cause.
func Wrap(kind Kind, err error, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind from an error chain. Errors that carry no kind
// are treated as internal.
func KindOf(err error) Kind {
	var coreErr *Error
	if errors.As(err, &coreErr) {
		return coreErr.Kind
	}
	return KindInternal
}

// MessageOf returns the client-safe message for an error. Internal errors
// get a generic message so driver details never leak out.
func MessageOf(err error) string {
	var coreErr *Error
	if errors.As(err, &coreErr) && coreErr.Kind != KindInternal {
		return coreErr.Message
	}
	return "internal server error"
}
