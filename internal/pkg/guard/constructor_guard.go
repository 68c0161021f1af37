// Package guard holds ConstructorGuard, embedded by commands and queries so that a
// zero-value struct can be told apart from one built through its constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a value as constructed. The zero value is "not constructed".
//
// Example:
//
//	type TransitionOrderCommand struct {
//	    number string
//	    guard  guard.ConstructorGuard
//	}
//
//	func (c TransitionOrderCommand) Validate() error {
//	    return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard in the constructed state.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
