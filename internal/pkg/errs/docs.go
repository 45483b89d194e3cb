// Package errs provides standardized error types for the fulfillment application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ObjectNotFoundError: For when an object cannot be found
//   - ObjectAlreadyExistsError: For inserts rejected by a uniqueness constraint
//   - PreconditionFailedError: For conditional writes that matched no row
//   - StateTransitionIsInvalidError: For status changes the lifecycle forbids
//   - PartialFailureError: For two-record writes that may have diverged
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is classifies it
//
// The workflow facade relies on the sentinels to map every failure onto the
// public NOT_FOUND / INVALID_STATE / VALIDATION / STORE_ERROR taxonomy.
package errs
