package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrApplyPaymentCommandIsNotConstructed = errors.New(
	"ApplyPaymentCommand must be created via NewApplyPaymentCommand constructor",
)

// ApplyPaymentCommand allocates a payment to a list of orders. A nil amounts
// slice asks for auto-distribution in list order; otherwise amounts[i] is
// applied to orderIDs[i].
//
// Example:
//
//	cmd, err := NewApplyPaymentCommand(paymentID, []kernel.UUID{firstID, secondID}, nil, caller)
//	if err != nil {
//	    return err
//	}
//	p, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, order.ErrOrderNotPending):
//	    // one of the orders was already paid or cancelled
//	case errors.Is(err, errs.ErrTransient):
//	    // lock contention, retry the whole call
//	}
type ApplyPaymentCommand struct { //nolint:recvcheck //using for validation
	paymentID kernel.UUID
	orderIDs  []kernel.UUID
	amounts   []kernel.Money
	caller    kernel.Caller

	guard guard.ConstructorGuard
}

// NewApplyPaymentCommand validates identifiers and the caller only. Rules
// that depend on stored state (and the duplicate check, which is reported
// after the payment status) are left to the handler.
func NewApplyPaymentCommand(
	paymentID kernel.UUID,
	orderIDs []kernel.UUID,
	amounts []kernel.Money,
	caller kernel.Caller,
) (ApplyPaymentCommand, error) {
	cmd := ApplyPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPaymentID(paymentID),
		cmd.setCaller(caller),
	); err != nil {
		return ApplyPaymentCommand{}, err
	}

	cmd.orderIDs = append([]kernel.UUID(nil), orderIDs...)
	if amounts != nil {
		cmd.amounts = append(make([]kernel.Money, 0, len(amounts)), amounts...)
	}

	return cmd, nil
}

func (c ApplyPaymentCommand) Validate() error {
	return c.guard.Validate(ErrApplyPaymentCommandIsNotConstructed)
}

func (c ApplyPaymentCommand) PaymentID() kernel.UUID {
	return c.paymentID
}

// OrderIDs returns the targets in the order they were given.
func (c ApplyPaymentCommand) OrderIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.orderIDs...)
}

// Amounts returns nil for auto-distribution.
func (c ApplyPaymentCommand) Amounts() []kernel.Money {
	if c.amounts == nil {
		return nil
	}
	return append(make([]kernel.Money, 0, len(c.amounts)), c.amounts...)
}

func (c ApplyPaymentCommand) Caller() kernel.Caller {
	return c.caller
}

func (c *ApplyPaymentCommand) setPaymentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.paymentID = id
	return nil
}

func (c *ApplyPaymentCommand) setCaller(caller kernel.Caller) error {
	if err := caller.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("caller", err)
	}
	c.caller = caller
	return nil
}
