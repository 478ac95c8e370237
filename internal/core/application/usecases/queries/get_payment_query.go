package queries

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrGetPaymentQueryIsNotConstructed = errors.New(
	"GetPaymentQuery must be created via NewGetPaymentQuery constructor",
)

// GetPaymentQuery reads a payment with its applied and remaining amounts.
// Payments have no owner, so any caller may read one; a caller who is not
// privileged only sees the allocations against orders it owns.
type GetPaymentQuery struct {
	paymentID kernel.UUID
	caller    kernel.Caller

	guard guard.ConstructorGuard
}

func NewGetPaymentQuery(paymentID kernel.UUID, caller kernel.Caller) (GetPaymentQuery, error) {
	if err := paymentID.Validate(); err != nil {
		return GetPaymentQuery{}, err
	}
	if err := caller.Validate(); err != nil {
		return GetPaymentQuery{}, errs.NewValueIsRequiredErrorWithCause("caller", err)
	}

	return GetPaymentQuery{
		paymentID: paymentID,
		caller:    caller,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetPaymentQuery) Validate() error {
	return q.guard.Validate(ErrGetPaymentQueryIsNotConstructed)
}

func (q GetPaymentQuery) PaymentID() kernel.UUID {
	return q.paymentID
}

func (q GetPaymentQuery) Caller() kernel.Caller {
	return q.caller
}
