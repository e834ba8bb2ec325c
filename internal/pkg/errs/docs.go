// Package errs provides standardized error types for the storefront order engine.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: malformed or missing input
//   - ObjectNotFoundError: unknown order, product, coupon or saved address
//   - TransitionNotAllowedError: illegal order or delivery status change
//   - CouponInvalidError: coupon absent, expired, exhausted or inactive at checkout
//   - ErrInvalidLink: uniform outcome for every capability link failure
//   - NotificationFailedError: outbound channel failure, logged and swallowed
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is matches the sentinel
//
// The HTTP adapter classifies errors with errors.Is against the sentinels,
// so handlers never need to know which concrete type was raised.
package errs
