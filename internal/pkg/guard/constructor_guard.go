// Package guard provides ConstructorGuard, a marker embedded in value objects,
// commands and queries to detect instances that bypassed their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is set only by NewConstructorGuard, so a zero value means the
// owning struct was created as a literal.
//
// Example:
//
//	type CancelParcelCommand struct {
//	    parcelID kernel.UUID
//	    guard    guard.ConstructorGuard
//	}
//
//	func (c CancelParcelCommand) Validate() error {
//	    return c.guard.Validate(ErrCancelParcelCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
