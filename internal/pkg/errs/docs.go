// Package errs provides the error taxonomy shared by the ordering service.
//
// Every error type follows the same shape:
//   - a sentinel error variable (e.g. ErrObjectNotFound) matched with errors.Is
//   - a struct carrying the offending parameter or entity
//   - constructor functions, with and without a cause
//   - Error() for formatting and Unwrap() returning the sentinel
//
// The kinds cover validation (ErrValueIsRequired, ErrValueIsInvalid,
// ErrValueIsOutOfRange), lookup (ErrObjectNotFound), authorization
// (ErrAccessDenied), state machines (ErrInvalidTransition) and retryable
// storage conflicts (ErrTransient). Allocation rule violations live next to
// the allocation engine in the services package.
package errs
