// Package errs holds the error vocabulary of the service.
//
// Value errors (ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError)
// come from constructors and wrap the matching sentinel, so callers test them
// with errors.Is. ObjectNotFoundError unwraps to ErrObjectNotFound.
//
// Workflow operations reject a whole batch with a *BatchError. Its Kind
// drives the HTTP status and its Violations name every offending order.
// KindOf classifies any error, typed or not.
package errs
