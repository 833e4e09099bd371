// Package guard holds ConstructorGuard, the marker embedded in domain values
// and command objects so that a zero value can be told apart from one built
// by its constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is given.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is set only by NewConstructorGuard. Embed it and call
// Validate from the owner's Validate method:
//
//	var ErrRequestNotConstructed = errors.New("request must be created via NewRequest")
//
//	func (r *Request) Validate() error {
//	    return r.guard.Validate(ErrRequestNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

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
