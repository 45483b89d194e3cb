package workflow

import (
	"errors"
	"log/slog"

	"fulfillment/internal/pkg/errs"
)

// Code is the public error taxonomy of the fulfillment workflow.
type Code string

const (
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidState Code = "INVALID_STATE"
	CodeValidation   Code = "VALIDATION"
	CodeStoreError   Code = "STORE_ERROR"
)

// PartialFailure names the records of a composite write whose outcome could not
// be confirmed. Applied may hold a change that Failed lacks until an operator
// reconciles them.
type PartialFailure struct {
	Applied string
	Failed  string
}

// Error is the only error type returned by the Facade.
type Error struct {
	Code    Code
	Message string
	Partial *PartialFailure

	cause error
}

func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Retryable reports whether repeating the same call may succeed. Only store
// failures are transient; the other codes describe the request or the state of
// the order and repeat identically.
func (e *Error) Retryable() bool {
	return e.Code == CodeStoreError
}

// Classify maps an error from the command and query layer onto the public
// taxonomy. A nil error yields nil.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}

	var wfErr *Error
	if errors.As(err, &wfErr) {
		return wfErr
	}

	e := &Error{Message: err.Error(), cause: err}

	var partial *errs.PartialFailureError
	switch {
	case errors.As(err, &partial):
		e.Code = CodeStoreError
		e.Partial = &PartialFailure{Applied: partial.Applied, Failed: partial.Failed}
	case errors.Is(err, errs.ErrObjectNotFound):
		e.Code = CodeNotFound
	case errors.Is(err, errs.ErrStateTransitionIsInvalid),
		errors.Is(err, errs.ErrPreconditionFailed),
		errors.Is(err, errs.ErrObjectAlreadyExists):
		e.Code = CodeInvalidState
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		e.Code = CodeValidation
	default:
		e.Code = CodeStoreError
	}
	return e
}

// LogValue keeps the partial failure detail visible in structured logs.
func (e *Error) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("code", string(e.Code)),
		slog.String("message", e.Message),
	}
	if e.Partial != nil {
		attrs = append(attrs,
			slog.String("applied", e.Partial.Applied),
			slog.String("failed", e.Partial.Failed),
		)
	}
	return slog.GroupValue(attrs...)
}
