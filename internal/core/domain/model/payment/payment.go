package payment

import (
	"errors"
	"fmt"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

var (
	// ErrPaymentIsNotConstructed is returned when a Payment was not created
	// through NewPayment or RestorePayment.
	ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment constructor")

	// ErrPaymentNotPending is returned when allocating a payment that is
	// already Completed or Failed.
	ErrPaymentNotPending = errors.New("payment is not pending")

	// ErrAmountExceedsPaymentBalance is returned when allocations would exceed
	// the payment's remaining amount.
	ErrAmountExceedsPaymentBalance = errors.New("amount exceeds payment remaining balance")

	// ErrDuplicateAllocation is returned when the payment already has an
	// allocation for the order.
	ErrDuplicateAllocation = errors.New("payment is already allocated to order")
)

// Payment is a captured amount that can be spread over one or more orders.
//
// Payment follows these invariants:
//   - amount is positive and never changes
//   - the sum of allocations never exceeds amount
//   - at most one allocation per order
//   - status moves only Pending -> Completed or Pending -> Failed
type Payment struct {
	id          kernel.UUID
	amount      kernel.Money
	method      Method
	status      Status
	allocations []Allocation

	// unsaved holds allocations created since the payment was loaded.
	unsaved []Allocation

	isConstructed bool
}

// NewPayment records a captured payment in Pending status.
func NewPayment(id kernel.UUID, amount kernel.Money, method Method) (*Payment, error) {
	p := &Payment{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setAmount(amount),
		method.Validate(),
	); err != nil {
		return nil, err
	}

	p.method = method
	return p, nil
}

// RestorePayment rebuilds a payment and its allocations from persistence.
func RestorePayment(
	id kernel.UUID,
	amount kernel.Money,
	method Method,
	status Status,
	allocations []Allocation,
) (*Payment, error) {
	p := &Payment{
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setAmount(amount),
		method.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	p.method = method
	p.status = status
	p.allocations = make([]Allocation, len(allocations))
	copy(p.allocations, allocations)
	return p, nil
}

func (p *Payment) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPaymentIsNotConstructed
	}
	return nil
}

func (p *Payment) ID() kernel.UUID {
	return p.id
}

func (p *Payment) Amount() kernel.Money {
	return p.amount
}

func (p *Payment) Method() Method {
	return p.method
}

func (p *Payment) Status() Status {
	return p.status
}

// Allocations returns a copy of every allocation, persisted or not.
func (p *Payment) Allocations() []Allocation {
	out := make([]Allocation, len(p.allocations))
	copy(out, p.allocations)
	return out
}

// UnsavedAllocations returns allocations created since the payment was
// loaded. Repositories insert them and then call MarkAllocationsSaved.
func (p *Payment) UnsavedAllocations() []Allocation {
	out := make([]Allocation, len(p.unsaved))
	copy(out, p.unsaved)
	return out
}

// MarkAllocationsSaved clears the unsaved list.
func (p *Payment) MarkAllocationsSaved() {
	p.unsaved = nil
}

// AmountApplied is the sum of all allocations.
func (p *Payment) AmountApplied() kernel.Money {
	applied := kernel.ZeroMoney()
	for _, a := range p.allocations {
		applied = applied.Add(a.AppliedAmount())
	}
	return applied
}

// Remaining is amount minus AmountApplied.
func (p *Payment) Remaining() kernel.Money {
	return p.amount.SaturatingSub(p.AmountApplied())
}

// HasAllocationFor reports whether the payment was already applied to orderID.
func (p *Payment) HasAllocationFor(orderID kernel.UUID) bool {
	for _, a := range p.allocations {
		if a.OrderID().IsEqual(orderID) {
			return true
		}
	}
	return false
}

// Allocate creates an allocation of amount to orderID.
//
// Business rules:
//   - the payment must be Pending
//   - amount must be positive and not exceed Remaining
//   - the payment must not already be allocated to the order
func (p *Payment) Allocate(allocationID, orderID kernel.UUID, amount kernel.Money, at time.Time) (Allocation, error) {
	if p.status != Pending {
		return Allocation{}, errs.NewRuleViolationError(
			ErrPaymentNotPending, "payment", p.id, "status is "+p.status.String(),
		)
	}
	if p.HasAllocationFor(orderID) {
		return Allocation{}, errs.NewRuleViolationError(
			ErrDuplicateAllocation, "payment", p.id, "order "+orderID.String(),
		)
	}
	if remaining := p.Remaining(); amount.GreaterThan(remaining) {
		return Allocation{}, errs.NewRuleViolationError(
			ErrAmountExceedsPaymentBalance,
			"payment",
			p.id,
			fmt.Sprintf("amount %s, remaining %s", amount, remaining),
		)
	}

	allocation, err := RestoreAllocation(allocationID, orderID, p.id, amount, at)
	if err != nil {
		return Allocation{}, err
	}

	p.allocations = append(p.allocations, allocation)
	p.unsaved = append(p.unsaved, allocation)
	return allocation, nil
}

// Complete settles a pending payment.
func (p *Payment) Complete() error {
	return p.transitionTo(Completed)
}

// Fail marks a pending payment as failed. Its allocations stop counting
// toward order paid amounts; order statuses are left as they are.
func (p *Payment) Fail() error {
	return p.transitionTo(Failed)
}

func (p *Payment) transitionTo(target Status) error {
	if !p.status.CanTransitionTo(target) {
		return errs.NewInvalidTransitionError("payment", p.id, p.status, target)
	}
	p.status = target
	return nil
}

func (p *Payment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Payment) setAmount(amount kernel.Money) error {
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%s is not greater than 0", amount))
	}
	p.amount = amount
	return nil
}
