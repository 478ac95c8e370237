// Package guard detects values that bypassed their constructor.
//
// Commands and value objects embed a ConstructorGuard; their Validate method
// fails for zero values, so handlers never act on an unvalidated command.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes nil.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is set only by NewConstructorGuard.
//
//	type ShipShipmentCommand struct {
//	    shipmentID kernel.UUID
//	    guard      guard.ConstructorGuard
//	}
//
//	func (c ShipShipmentCommand) Validate() error {
//	    return c.guard.Validate(ErrShipShipmentCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks the embedding value as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is
// nil) if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
