package payment

import (
	"errors"
	"fmt"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

// Allocation records an amount of one payment applied to one order.
// Allocations are immutable and never deleted; corrections are made with
// new payments.
type Allocation struct {
	id        kernel.UUID
	orderID   kernel.UUID
	paymentID kernel.UUID
	amount    kernel.Money
	createdAt time.Time
}

// RestoreAllocation rebuilds an allocation read from storage.
func RestoreAllocation(
	id, orderID, paymentID kernel.UUID,
	amount kernel.Money,
	createdAt time.Time,
) (Allocation, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), paymentID.Validate()); err != nil {
		return Allocation{}, err
	}
	if !amount.IsPositive() {
		return Allocation{}, errs.NewValueIsInvalidErrorWithCause(
			"applied amount",
			fmt.Errorf("%s is not greater than 0", amount),
		)
	}
	return Allocation{
		id:        id,
		orderID:   orderID,
		paymentID: paymentID,
		amount:    amount,
		createdAt: createdAt,
	}, nil
}

func (a Allocation) ID() kernel.UUID {
	return a.id
}

func (a Allocation) OrderID() kernel.UUID {
	return a.orderID
}

func (a Allocation) PaymentID() kernel.UUID {
	return a.paymentID
}

// AppliedAmount is the amount moved from the payment to the order.
func (a Allocation) AppliedAmount() kernel.Money {
	return a.amount
}

func (a Allocation) CreatedAt() time.Time {
	return a.createdAt
}
