// Package apperrors defines the ledger's error taxonomy. Services return these
// before any write happens; handlers map the kind to an HTTP status and surface
// the message verbatim so admins can correct their input.
package apperrors

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Kind classifies a domain validation failure.
type Kind int

const (
	// InvalidAmount: non-positive or out-of-policy monetary value.
	InvalidAmount Kind = iota + 1
	// NotFound: referenced member, window or investment does not exist.
	NotFound
	// InvalidStateTransition: e.g. fulfilling a non-queued exit request.
	InvalidStateTransition
	// InvalidReference: unknown original_record_type on a reversal.
	InvalidReference
)

// Error carries a kind and a caller-facing message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// E builds a kinded error with a formatted message.
func E(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of err, or 0 if err is not a taxonomy error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// StatusCode maps an error to its HTTP status. Every taxonomy kind is a
// client correction (400); anything else is a server failure.
func StatusCode(err error) int {
	switch KindOf(err) {
	case InvalidAmount, NotFound, InvalidStateTransition, InvalidReference:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
