package commands

import (
	"context"

	"ordering/internal/core/domain/model/payment"
)

// CreatePaymentCommandHandler stores a new Pending payment.
type CreatePaymentCommandHandler struct {
	uowFactory PaymentUoWFactory
}

func NewCreatePaymentCommandHandler(uowFactory PaymentUoWFactory) CreatePaymentCommandHandler {
	return CreatePaymentCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h CreatePaymentCommandHandler) Handle(ctx context.Context, cmd CreatePaymentCommand) (*payment.Payment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	created, err := payment.NewPayment(cmd.PaymentID(), cmd.Amount(), cmd.Method())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.PaymentRepository().Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}
