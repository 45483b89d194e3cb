package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrObjectNotFound           = errors.New("object not found")
	ErrObjectAlreadyExists      = errors.New("object already exists")
	ErrValueIsInvalid           = errors.New("value is invalid")
	ErrValueIsOutOfRange        = errors.New("value is out of range")
	ErrValueIsRequired          = errors.New("value is required")
	ErrPreconditionFailed       = errors.New("precondition failed")
	ErrStateTransitionIsInvalid = errors.New("state transition is invalid")
	ErrPartialFailure           = errors.New("partial failure")
)

// sanitize flattens multi-line values so that every error renders on one line.
func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " ")
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %s)", msg, cause.Error())
}

// ObjectNotFoundError reports a lookup by identifier that matched nothing.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return withCause(
			fmt.Sprintf("%s: param is: %s, ID is: %s", ErrObjectNotFound, e.ParamName, sanitize(e.ID)),
			e.Cause,
		)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ObjectAlreadyExistsError reports an insert rejected by a uniqueness constraint.
type ObjectAlreadyExistsError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectAlreadyExistsError(paramName string, id any) *ObjectAlreadyExistsError {
	return &ObjectAlreadyExistsError{ParamName: paramName, ID: id}
}

func NewObjectAlreadyExistsErrorWithCause(paramName string, id any, cause error) *ObjectAlreadyExistsError {
	return &ObjectAlreadyExistsError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectAlreadyExistsError) Error() string {
	return withCause(
		fmt.Sprintf("%s: %s %s", ErrObjectAlreadyExists, e.ParamName, sanitize(e.ID)),
		e.Cause,
	)
}

func (e *ObjectAlreadyExistsError) Unwrap() error {
	return ErrObjectAlreadyExists
}

// ValueIsInvalidError reports a value that failed validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName), e.Cause)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside of [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	return withCause(
		fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
			ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max)),
		e.Cause,
	)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError reports a missing mandatory value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName), e.Cause)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// PreconditionFailedError reports a conditional write that matched no row because
// the record no longer carried the expected state.
type PreconditionFailedError struct {
	Entity   string
	ID       any
	Expected string
	Cause    error
}

func NewPreconditionFailedError(entity string, id any, expected string) *PreconditionFailedError {
	return &PreconditionFailedError{Entity: entity, ID: id, Expected: expected}
}

func NewPreconditionFailedErrorWithCause(entity string, id any, expected string, cause error) *PreconditionFailedError {
	return &PreconditionFailedError{Entity: entity, ID: id, Expected: expected, Cause: cause}
}

func (e *PreconditionFailedError) Error() string {
	return withCause(
		fmt.Sprintf("%s: %s %s is no longer %s", ErrPreconditionFailed, e.Entity, sanitize(e.ID), e.Expected),
		e.Cause,
	)
}

func (e *PreconditionFailedError) Unwrap() error {
	return ErrPreconditionFailed
}

// StateTransitionIsInvalidError reports a status change that the lifecycle forbids.
type StateTransitionIsInvalidError struct {
	Entity string
	From   string
	To     string
	Cause  error
}

func NewStateTransitionIsInvalidError(entity, from, to string) *StateTransitionIsInvalidError {
	return &StateTransitionIsInvalidError{Entity: entity, From: from, To: to}
}

func NewStateTransitionIsInvalidErrorWithCause(entity, from, to string, cause error) *StateTransitionIsInvalidError {
	return &StateTransitionIsInvalidError{Entity: entity, From: from, To: to, Cause: cause}
}

func (e *StateTransitionIsInvalidError) Error() string {
	return withCause(
		fmt.Sprintf("%s: %s cannot move from %s to %s", ErrStateTransitionIsInvalid, e.Entity, e.From, e.To),
		e.Cause,
	)
}

func (e *StateTransitionIsInvalidError) Unwrap() error {
	return ErrStateTransitionIsInvalid
}

// PartialFailureError reports a two-record write whose outcome could not be
// confirmed as all-or-nothing. Applied names the record whose write went through,
// Failed the one that did not.
type PartialFailureError struct {
	Applied string
	Failed  string
	Cause   error
}

func NewPartialFailureError(applied, failed string, cause error) *PartialFailureError {
	return &PartialFailureError{Applied: applied, Failed: failed, Cause: cause}
}

func (e *PartialFailureError) Error() string {
	return withCause(
		fmt.Sprintf("%s: %s was written but %s was not", ErrPartialFailure, e.Applied, e.Failed),
		e.Cause,
	)
}

func (e *PartialFailureError) Unwrap() error {
	return ErrPartialFailure
}
