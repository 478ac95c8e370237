package commands

import (
	"context"
	"errors"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
)

// ErrOrderNotFullyPaid is returned when an order is moved to Paid by hand
// while it still has an outstanding balance.
var ErrOrderNotFullyPaid = errors.New("order is not fully paid")

// TransitionOrderStatusCommandHandler applies a manual status change through
// the order status table.
//
// Privileged callers may request any legal transition. The owning customer
// may only cancel. Everyone else gets an access denied error.
type TransitionOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewTransitionOrderStatusCommandHandler(uowFactory OrderUoWFactory) TransitionOrderStatusCommandHandler {
	return TransitionOrderStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h TransitionOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd TransitionOrderStatusCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	caller := cmd.Caller()
	if !caller.IsPrivileged() && (!caller.CanAccess(o.CustomerID()) || cmd.Target() != order.Cancelled) {
		return nil, errs.NewAccessDeniedError("order", o.ID())
	}

	if cmd.Target() == order.Paid && !o.IsFullyPaid() && o.Status().CanTransitionTo(order.Paid) {
		return nil, errs.NewRuleViolationError(
			ErrOrderNotFullyPaid, "order", o.ID(), "outstanding "+o.Outstanding().String(),
		)
	}

	if err = o.TransitionTo(cmd.Target()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
