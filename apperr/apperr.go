package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Kind is the stable machine-readable classification of a business error.
type Kind string

const (
	KindInvalidInput      Kind = "invalid_input"
	KindNotFound          Kind = "not_found"
	KindInvalidTransition Kind = "invalid_transition"
	KindInvalidStatus     Kind = "invalid_status"
	KindEmptyCart         Kind = "empty_cart"
	KindNoItems           Kind = "no_items"
	KindSKUExhausted      Kind = "sku_exhausted"
	KindConflict          Kind = "conflict"
	KindInternal          Kind = "internal"
)

// Error carries a kind plus a human message, optionally wrapping a cause.
// Details holds structured payloads such as per-item bulk results.
type Error struct {
	Kind    Kind
	Message string
	Err     error
	Details interface{}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds a business error with the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying cause.
func Wrap(err error, kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Internal wraps an unexpected failure. The cause is kept for logs but masked
// in release-mode responses.
func Internal(err error, message string) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf extracts the kind from err, or KindInternal for unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

func statusFor(kind Kind) int {
	switch kind {
	case KindInvalidInput, KindInvalidTransition, KindInvalidStatus, KindEmptyCart, KindNoItems:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes err as a JSON error response with the HTTP status mapped
// from its kind. Internal causes are only echoed in debug mode.
func Respond(c *gin.Context, err error) {
	var e *Error
	if !errors.As(err, &e) {
		e = Internal(err, "unexpected error")
	}

	body := gin.H{"error": e.Message, "kind": e.Kind}
	if e.Details != nil {
		body["details"] = e.Details
	}
	if e.Kind == KindInternal {
		body["error"] = "internal server error"
		if gin.Mode() == gin.DebugMode {
			body["detail"] = e.Error()
		}
	}
	c.JSON(statusFor(e.Kind), body)
}
