package services

import (
	"errors"
	"fmt"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/payment"
	"ordering/internal/pkg/errs"
)

// ErrDuplicateTarget is returned when the same order appears more than once
// in one allocation request.
var ErrDuplicateTarget = errors.New("order listed more than once")

// AllocationOutcome describes what a successful Apply changed.
type AllocationOutcome struct {
	// Allocations created by this call, in target order.
	Allocations []payment.Allocation
	// Orders that received an allocation and must be persisted.
	Orders []*order.Order
	// PaidOrders lists the orders moved to Paid by this call.
	PaidOrders []kernel.UUID
}

// AllocationEngine applies a payment to one or more orders.
//
// Two policies are supported:
//   - auto-distribute (no amounts): walk the targets in the given order,
//     give each min(outstanding, remaining), skip orders with nothing
//     outstanding and stop once the payment is exhausted
//   - explicit: amounts[i] goes to orders[i]
//
// Every precondition is checked before the first mutation, so a failed Apply
// leaves the payment and the orders untouched. Locking and the transaction
// boundary belong to the caller.
type AllocationEngine struct {
	newID func() kernel.UUID
	now   func() time.Time
}

func NewAllocationEngine() *AllocationEngine {
	return &AllocationEngine{
		newID: kernel.NewUUID,
		now:   time.Now,
	}
}

// NewAllocationEngineWithClock is used by tests that assert on created-at.
func NewAllocationEngineWithClock(now func() time.Time) *AllocationEngine {
	e := NewAllocationEngine()
	if now != nil {
		e.now = now
	}
	return e
}

// ValidateTargets checks the shape of a request: at least one order, no order
// twice, and when amounts are given one positive amount per order.
func ValidateTargets(orderIDs []kernel.UUID, amounts []kernel.Money) error {
	if len(orderIDs) == 0 {
		return errs.NewValueIsRequiredError("orderIDs")
	}

	seen := make(map[kernel.UUID]struct{}, len(orderIDs))
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("orderIDs", err)
		}
		if _, ok := seen[id]; ok {
			return errs.NewRuleViolationError(ErrDuplicateTarget, "order", id, "")
		}
		seen[id] = struct{}{}
	}

	if amounts == nil {
		return nil
	}
	if len(amounts) != len(orderIDs) {
		return errs.NewValueIsInvalidErrorWithCause(
			"amounts",
			fmt.Errorf("got %d amounts for %d orders", len(amounts), len(orderIDs)),
		)
	}
	for i, amount := range amounts {
		if !amount.IsPositive() {
			return errs.NewValueIsInvalidErrorWithCause(
				"amounts",
				fmt.Errorf("amount %s for order %s is not greater than 0", amount, orderIDs[i]),
			)
		}
	}
	return nil
}

// Precheck runs the checks that need only the payment and the request:
// the payment is Pending and the targets pass ValidateTargets. Handlers call
// it before locking any order.
func (e *AllocationEngine) Precheck(p *payment.Payment, orderIDs []kernel.UUID, amounts []kernel.Money) error {
	if p == nil {
		return errs.NewValueIsRequiredError("payment")
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if p.Status() != payment.Pending {
		return errs.NewRuleViolationError(
			payment.ErrPaymentNotPending, "payment", p.ID(), "status is "+p.Status().String(),
		)
	}
	return ValidateTargets(orderIDs, amounts)
}

// Apply allocates p to orders on behalf of caller. A nil amounts slice
// selects auto-distribute.
func (e *AllocationEngine) Apply(
	caller kernel.Caller,
	p *payment.Payment,
	orders []*order.Order,
	amounts []kernel.Money,
) (AllocationOutcome, error) {
	orderIDs := make([]kernel.UUID, 0, len(orders))
	for _, o := range orders {
		if o == nil {
			return AllocationOutcome{}, errs.NewValueIsRequiredError("order")
		}
		orderIDs = append(orderIDs, o.ID())
	}
	if err := e.Precheck(p, orderIDs, amounts); err != nil {
		return AllocationOutcome{}, err
	}

	for _, o := range orders {
		if !caller.CanAccess(o.CustomerID()) {
			return AllocationOutcome{}, errs.NewAccessDeniedError("order", o.ID())
		}
	}
	for _, o := range orders {
		if o.Status() != order.Pending {
			return AllocationOutcome{}, errs.NewRuleViolationError(
				order.ErrOrderNotPending, "order", o.ID(), "status is "+o.Status().String(),
			)
		}
	}

	var plan []plannedAllocation
	if amounts == nil {
		plan = planAutoDistribute(p.Remaining(), orders)
	} else {
		var err error
		if plan, err = planExplicit(p, orders, amounts); err != nil {
			return AllocationOutcome{}, err
		}
	}

	for _, step := range plan {
		if p.HasAllocationFor(step.order.ID()) {
			return AllocationOutcome{}, errs.NewRuleViolationError(
				payment.ErrDuplicateAllocation, "payment", p.ID(), "order "+step.order.ID().String(),
			)
		}
	}

	return e.execute(p, plan)
}

type plannedAllocation struct {
	order  *order.Order
	amount kernel.Money
}

func planAutoDistribute(remaining kernel.Money, orders []*order.Order) []plannedAllocation {
	var plan []plannedAllocation
	for _, o := range orders {
		if remaining.IsZero() {
			break
		}
		outstanding := o.Outstanding()
		if outstanding.IsZero() {
			continue
		}

		share := kernel.MinMoney(outstanding, remaining)
		plan = append(plan, plannedAllocation{order: o, amount: share})
		remaining = remaining.SaturatingSub(share)
	}
	return plan
}

func planExplicit(p *payment.Payment, orders []*order.Order, amounts []kernel.Money) ([]plannedAllocation, error) {
	plan := make([]plannedAllocation, 0, len(orders))
	for i, o := range orders {
		if outstanding := o.Outstanding(); amounts[i].GreaterThan(outstanding) {
			return nil, errs.NewRuleViolationError(
				order.ErrAmountExceedsBalance,
				"order",
				o.ID(),
				fmt.Sprintf("amount %s, outstanding %s", amounts[i], outstanding),
			)
		}
		plan = append(plan, plannedAllocation{order: o, amount: amounts[i]})
	}

	if total, remaining := kernel.SumMoney(amounts...), p.Remaining(); total.GreaterThan(remaining) {
		return nil, errs.NewRuleViolationError(
			payment.ErrAmountExceedsPaymentBalance,
			"payment",
			p.ID(),
			fmt.Sprintf("requested %s, remaining %s", total, remaining),
		)
	}
	return plan, nil
}

func (e *AllocationEngine) execute(p *payment.Payment, plan []plannedAllocation) (AllocationOutcome, error) {
	outcome := AllocationOutcome{}
	at := e.now()

	for _, step := range plan {
		allocation, err := p.Allocate(e.newID(), step.order.ID(), step.amount, at)
		if err != nil {
			return AllocationOutcome{}, err
		}
		if err := step.order.RecordPayment(step.amount); err != nil {
			return AllocationOutcome{}, err
		}
		if step.order.IsFullyPaid() {
			if err := step.order.TransitionTo(order.Paid); err != nil {
				return AllocationOutcome{}, err
			}
			outcome.PaidOrders = append(outcome.PaidOrders, step.order.ID())
		}

		outcome.Allocations = append(outcome.Allocations, allocation)
		outcome.Orders = append(outcome.Orders, step.order)
	}
	return outcome, nil
}
