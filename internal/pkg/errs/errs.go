package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrObjectNotFound    = errors.New("object not found")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsOutOfRange = errors.New("value is out of range")
	ErrValueIsRequired   = errors.New("value is required")
	ErrAccessDenied      = errors.New("access denied")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrTransient         = errors.New("transient storage failure")
)

// sanitize keeps multi-line values on a single line of the error message.
func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " ")
}

// ObjectNotFoundError reports that an entity with the given ID does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{
		ParamName: paramName,
		ID:        id,
	}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{
		ParamName: paramName,
		ID:        id,
		Cause:     cause,
	}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError reports a value that violates a domain rule.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{
		ParamName: paramName,
		Cause:     cause,
	}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
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
	return &ValueIsOutOfRangeError{
		ParamName: paramName,
		Value:     value,
		Min:       minValue,
		Max:       maxValue,
	}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{
		ParamName: paramName,
		Value:     value,
		Min:       minValue,
		Max:       maxValue,
		Cause:     cause,
	}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
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
	return &ValueIsRequiredError{
		ParamName: paramName,
		Cause:     cause,
	}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// AccessDeniedError reports a caller acting on an entity it neither owns
// nor is privileged to manage.
type AccessDeniedError struct {
	ParamName string
	ID        any
}

func NewAccessDeniedError(paramName string, id any) *AccessDeniedError {
	return &AccessDeniedError{
		ParamName: paramName,
		ID:        id,
	}
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrAccessDenied, e.ParamName, sanitize(e.ID))
}

func (e *AccessDeniedError) Unwrap() error {
	return ErrAccessDenied
}

// InvalidTransitionError reports a status change that the entity's
// transition table does not allow.
type InvalidTransitionError struct {
	Entity string
	ID     any
	From   fmt.Stringer
	To     fmt.Stringer
}

func NewInvalidTransitionError(entity string, id any, from, to fmt.Stringer) *InvalidTransitionError {
	return &InvalidTransitionError{
		Entity: entity,
		ID:     id,
		From:   from,
		To:     to,
	}
}

func (e *InvalidTransitionError) Error() string {
	if e.ID == nil {
		return fmt.Sprintf("%s: %s cannot move from %s to %s", ErrInvalidTransition, e.Entity, e.From, e.To)
	}
	return fmt.Sprintf("%s: %s %s cannot move from %s to %s",
		ErrInvalidTransition, e.Entity, sanitize(e.ID), e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// TransientError wraps a storage failure (lock contention, serialization
// conflict, deadlock) after which the whole operation may be retried.
type TransientError struct {
	Cause error
}

func NewTransientError(cause error) *TransientError {
	return &TransientError{Cause: cause}
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("%s (cause: %v)", ErrTransient, e.Cause)
}

func (e *TransientError) Unwrap() []error {
	return []error{ErrTransient, e.Cause}
}

// RuleViolationError reports a business rule broken by a specific entity.
// Rule is the sentinel callers match with errors.Is.
type RuleViolationError struct {
	Rule   error
	Entity string
	ID     any
	Detail string
}

func NewRuleViolationError(rule error, entity string, id any, detail string) *RuleViolationError {
	return &RuleViolationError{
		Rule:   rule,
		Entity: entity,
		ID:     id,
		Detail: detail,
	}
}

func (e *RuleViolationError) Error() string {
	msg := fmt.Sprintf("%v: %s %s", e.Rule, e.Entity, sanitize(e.ID))
	if e.Detail != "" {
		msg += " (" + sanitize(e.Detail) + ")"
	}
	return msg
}

func (e *RuleViolationError) Unwrap() error {
	return e.Rule
}
