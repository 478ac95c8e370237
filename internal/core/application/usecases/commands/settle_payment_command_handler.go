package commands

import (
	"context"

	"ordering/internal/core/domain/model/payment"
	"ordering/internal/pkg/errs"
)

// SettlePaymentCommandHandler completes or fails a payment. Failing a
// payment makes its allocations stop counting toward the orders' paid
// amounts; order statuses are not rolled back.
type SettlePaymentCommandHandler struct {
	uowFactory PaymentUoWFactory
}

func NewSettlePaymentCommandHandler(uowFactory PaymentUoWFactory) SettlePaymentCommandHandler {
	return SettlePaymentCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h SettlePaymentCommandHandler) Handle(ctx context.Context, cmd SettlePaymentCommand) (*payment.Payment, error) {
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

	repo := uow.PaymentRepository()
	p, err := repo.GetForUpdate(ctx, cmd.PaymentID())
	if err != nil {
		return nil, err
	}

	if !cmd.Caller().IsPrivileged() {
		return nil, errs.NewAccessDeniedError("payment", p.ID())
	}

	switch cmd.Outcome() {
	case payment.Completed:
		err = p.Complete()
	default:
		err = p.Fail()
	}
	if err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, p); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return p, nil
}
