// Package errs defines the error taxonomy used across the application.
//
// Four shapes cover the failure modes the boundary needs to tell apart:
//
//   - ValueIsRequiredError: a mandatory value is missing
//   - ValueIsInvalidError / ValueIsOutOfRangeError: a value fails validation
//   - ObjectNotFoundError: a lookup by identifier found nothing
//   - VersionConflictError: an optimistic write lost a concurrent race
//
// Every type pairs with a sentinel (ErrValueIsRequired and so on) that its
// Unwrap returns, so callers classify with errors.Is regardless of which
// layer produced the error. Constructors come in plain and WithCause forms;
// the cause is joined into the chain and stays visible to errors.Is as well.
package errs
