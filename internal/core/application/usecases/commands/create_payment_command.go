package commands

import (
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/payment"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrCreatePaymentCommandIsNotConstructed = errors.New(
	"CreatePaymentCommand must be created via NewCreatePaymentCommand constructor",
)

// CreatePaymentCommand records a payment captured by an external step.
type CreatePaymentCommand struct { //nolint:recvcheck //using for validation
	paymentID kernel.UUID
	amount    kernel.Money
	method    payment.Method

	guard guard.ConstructorGuard
}

func NewCreatePaymentCommand(paymentID kernel.UUID, amount kernel.Money, method payment.Method) (CreatePaymentCommand, error) {
	cmd := CreatePaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPaymentID(paymentID),
		cmd.setAmount(amount),
		cmd.setMethod(method),
	); err != nil {
		return CreatePaymentCommand{}, err
	}

	return cmd, nil
}

func (c CreatePaymentCommand) Validate() error {
	return c.guard.Validate(ErrCreatePaymentCommandIsNotConstructed)
}

func (c CreatePaymentCommand) PaymentID() kernel.UUID {
	return c.paymentID
}

func (c CreatePaymentCommand) Amount() kernel.Money {
	return c.amount
}

func (c CreatePaymentCommand) Method() payment.Method {
	return c.method
}

func (c *CreatePaymentCommand) setPaymentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.paymentID = id
	return nil
}

func (c *CreatePaymentCommand) setAmount(amount kernel.Money) error {
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%s is not greater than 0", amount))
	}
	c.amount = amount
	return nil
}

func (c *CreatePaymentCommand) setMethod(method payment.Method) error {
	if err := method.Validate(); err != nil {
		return err
	}
	c.method = method
	return nil
}
