package commands

import (
	"context"
	"slices"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/payment"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"
)

// ApplyPaymentCommandHandler runs the allocation engine inside one
// transaction. The payment row is locked first, then every target order in
// ascending id order, so concurrent calls sharing a payment or an order are
// serialized and cannot deadlock on each other.
//
// Example:
//
//	handler := NewApplyPaymentCommandHandler(uowFactory, services.NewAllocationEngine())
//	p, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("payment %s has %s left\n", p.ID(), p.Remaining())
type ApplyPaymentCommandHandler struct {
	uowFactory AllocationUoWFactory
	engine     *services.AllocationEngine
}

func NewApplyPaymentCommandHandler(
	uowFactory AllocationUoWFactory,
	engine *services.AllocationEngine,
) ApplyPaymentCommandHandler {
	return ApplyPaymentCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
	}
}

// Handle returns the payment with its allocations after commit. Any failure
// rolls back the transaction, so no allocation or status change is visible.
func (h ApplyPaymentCommandHandler) Handle(ctx context.Context, cmd ApplyPaymentCommand) (*payment.Payment, error) {
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

	paymentRepo := uow.PaymentRepository()
	orderRepo := uow.OrderRepository()

	p, err := paymentRepo.GetForUpdate(ctx, cmd.PaymentID())
	if err != nil {
		return nil, err
	}

	orderIDs := cmd.OrderIDs()
	amounts := cmd.Amounts()
	if err = h.engine.Precheck(p, orderIDs, amounts); err != nil {
		return nil, err
	}

	targets, err := lockOrders(ctx, orderRepo, orderIDs)
	if err != nil {
		return nil, err
	}

	outcome, err := h.engine.Apply(cmd.Caller(), p, targets, amounts)
	if err != nil {
		return nil, err
	}

	if err = paymentRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	for _, o := range outcome.Orders {
		if err = orderRepo.Update(ctx, o); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return p, nil
}

// lockOrders takes row locks in ascending id order and returns the orders in
// the order of ids.
func lockOrders(ctx context.Context, repo ports.OrderRepository, ids []kernel.UUID) ([]*order.Order, error) {
	sorted := slices.Clone(ids)
	slices.SortFunc(sorted, func(a, b kernel.UUID) int {
		return a.Compare(b)
	})

	locked := make(map[kernel.UUID]*order.Order, len(sorted))
	for _, id := range sorted {
		o, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		locked[id] = o
	}

	targets := make([]*order.Order, 0, len(ids))
	for _, id := range ids {
		targets = append(targets, locked[id])
	}
	return targets, nil
}
