// Package errs provides the error taxonomy shared by the domain, the application
// handlers and the adapters.
//
// Every error type follows the same shape: a sentinel variable, a struct carrying
// the details, a constructor (with a WithCause variant where a cause makes sense),
// Error() for the message and Unwrap() returning the sentinel, so callers classify
// with errors.Is and inspect details with errors.As.
//
// The types group into three families that the HTTP adapter maps to status codes:
//   - not found: ObjectNotFoundError
//   - invalid request: ValueIsInvalidError, ValueIsRequiredError, ValueIsOutOfRangeError,
//     ObjectAlreadyExistsError, InsufficientStockError
//   - invalid state: InvalidStateError, InvalidTransitionError
package errs
