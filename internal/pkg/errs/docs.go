// Package errs provides the typed errors used across parceltrack.
//
// Every error kind follows the same pattern:
//   - a sentinel (ErrObjectNotFound, ErrForbidden, ErrInvalidTransition, ...)
//   - a struct carrying the details, built by New* constructors
//   - Unwrap returning the sentinel so callers classify with errors.Is
//
// Domain and application code only create these errors; the HTTP adapter is the
// single place that maps them to status codes:
//
//	ObjectNotFound            -> 404
//	Forbidden                 -> 403
//	ValueIsRequired/Invalid   -> 400
//	InvalidTransition         -> 400
//	VersionIsInvalid          -> 409
//	InvalidCredentials        -> 401
package errs
