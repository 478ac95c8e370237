package commands

import (
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/payment"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrSettlePaymentCommandIsNotConstructed = errors.New(
	"SettlePaymentCommand must be created via NewSettlePaymentCommand constructor",
)

// SettlePaymentCommand is the administrative action that completes or fails
// a pending payment.
type SettlePaymentCommand struct { //nolint:recvcheck //using for validation
	paymentID kernel.UUID
	outcome   payment.Status
	caller    kernel.Caller

	guard guard.ConstructorGuard
}

// NewSettlePaymentCommand accepts payment.Completed or payment.Failed as outcome.
func NewSettlePaymentCommand(paymentID kernel.UUID, outcome payment.Status, caller kernel.Caller) (SettlePaymentCommand, error) {
	cmd := SettlePaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPaymentID(paymentID),
		cmd.setOutcome(outcome),
		cmd.setCaller(caller),
	); err != nil {
		return SettlePaymentCommand{}, err
	}

	return cmd, nil
}

func (c SettlePaymentCommand) Validate() error {
	return c.guard.Validate(ErrSettlePaymentCommandIsNotConstructed)
}

func (c SettlePaymentCommand) PaymentID() kernel.UUID {
	return c.paymentID
}

func (c SettlePaymentCommand) Outcome() payment.Status {
	return c.outcome
}

func (c SettlePaymentCommand) Caller() kernel.Caller {
	return c.caller
}

func (c *SettlePaymentCommand) setPaymentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.paymentID = id
	return nil
}

func (c *SettlePaymentCommand) setOutcome(outcome payment.Status) error {
	if outcome != payment.Completed && outcome != payment.Failed {
		return errs.NewValueIsInvalidErrorWithCause(
			"outcome",
			fmt.Errorf("%s is not a settlement outcome", outcome),
		)
	}
	c.outcome = outcome
	return nil
}

func (c *SettlePaymentCommand) setCaller(caller kernel.Caller) error {
	if err := caller.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("caller", err)
	}
	c.caller = caller
	return nil
}
