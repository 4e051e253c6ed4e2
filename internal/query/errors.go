package query

import (
	"errors"
	"fmt"
)

// Kind classifies why a catalog operation could not be satisfied
type Kind int

const (
	// KindInvalidRequest means required input was missing or malformed
	KindInvalidRequest Kind = iota + 1
	// KindNotFound means the requested resource or page does not exist
	KindNotFound
	// KindUnprocessable means the request was well-formed but cannot be satisfied
	KindUnprocessable
)

func (k Kind) String() string {
	switch k {
	case KindInvalidRequest:
		return "invalid_request"
	case KindNotFound:
		return "not_found"
	case KindUnprocessable:
		return "unprocessable"
	default:
		return "unknown"
	}
}

// Error is a classified failure returned by the query engine and the service layer
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

// InvalidRequest creates a KindInvalidRequest error
func InvalidRequest(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidRequest, Message: fmt.Sprintf(format, args...)}
}

// NotFound creates a KindNotFound error
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Unprocessable creates a KindUnprocessable error wrapping an optional cause
func Unprocessable(err error, format string, args ...any) *Error {
	return &Error{Kind: KindUnprocessable, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf reports the classification of err, if it carries one
func KindOf(err error) (Kind, bool) {
	var qe *Error
	if errors.As(err, &qe) {
		return qe.Kind, true
	}
	return 0, false
}
