package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for the API boundary. Every failure the payment
// workflow or access evaluator can produce maps to exactly one kind.
type Kind int

const (
	KindUnexpected Kind = iota
	KindValidation
	KindAmountMismatch
	KindNotFound
	KindInvalidState
	KindAuthorization
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string) error {
	return &Error{Kind: KindValidation, Msg: msg}
}

func Validationf(format string, args ...any) error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

// AmountMismatch signals that the submitted amount no longer matches the
// content's recorded price. The client should reload and retry.
func AmountMismatch(got, want float64) error {
	return &Error{
		Kind: KindAmountMismatch,
		Msg:  fmt.Sprintf("amount %.2f does not match the current price %.2f", got, want),
	}
}

func NotFound(resource string) error {
	return &Error{Kind: KindNotFound, Msg: resource + " not found"}
}

// InvalidState signals an attempted transition on a request that is no longer
// pending, or a duplicate submission while one is pending.
func InvalidState(msg string) error {
	return &Error{Kind: KindInvalidState, Msg: msg}
}

func Authorization(msg string) error {
	return &Error{Kind: KindAuthorization, Msg: msg}
}

func Wrap(err error, msg string) error {
	return &Error{Kind: KindUnexpected, Msg: msg, Err: err}
}

// KindOf returns the kind of err, or KindUnexpected for anything outside the
// taxonomy.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnexpected
}

func IsKind(err error, k Kind) bool { return KindOf(err) == k }

// StatusCode maps an error to its HTTP status class.
func StatusCode(err error) int {
	switch KindOf(err) {
	case KindValidation, KindAmountMismatch:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidState:
		return http.StatusConflict
	case KindAuthorization:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-facing message. Unexpected errors are masked so
// internals never leak through the API.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindUnexpected {
		return e.Msg
	}
	return "Internal server error"
}
