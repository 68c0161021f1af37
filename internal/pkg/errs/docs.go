// Package errs defines the error taxonomy of the checkout service.
//
// Validation errors (required, invalid, out of range) describe bad input.
// Domain errors describe refused operations: an illegal status transition, a
// gateway that failed or timed out, a webhook for an unknown preference, a
// second invoice for an order, a record reconciled twice, an actor without the
// needed capability. Every type wraps a sentinel, so callers classify with
// errors.Is and the HTTP layer maps sentinels to status codes.
package errs
