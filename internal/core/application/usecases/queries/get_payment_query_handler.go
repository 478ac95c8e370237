package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"ordering/internal/core/domain/model/payment"
	"ordering/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const paymentHeaderSQL = `
	SELECT
		p.id,
		p.amount,
		p.method,
		p.status,
		COALESCE((SELECT SUM(a.applied_amount) FROM allocations a WHERE a.payment_id = p.id), 0) AS applied,
		p.created_at
	FROM payments p
	WHERE p.id = ?`

// paymentAllocationsSQL takes the payment id and an optional owner: a NULL
// owner returns every allocation.
const paymentAllocationsSQL = `
	SELECT a.id, a.order_id, a.payment_id, p.status, a.applied_amount, a.created_at
	FROM allocations a
	JOIN payments p ON p.id = a.payment_id
	JOIN orders o ON o.id = a.order_id
	WHERE a.payment_id = ? AND (?::uuid IS NULL OR o.customer_id = ?::uuid)
	ORDER BY a.created_at, a.id`

type GetPaymentQueryHandler struct {
	db *gorm.DB
}

func NewGetPaymentQueryHandler(db *gorm.DB) GetPaymentQueryHandler {
	return GetPaymentQueryHandler{db: db}
}

// Handle computes applied and remaining over all allocations of the
// payment, whatever the caller is allowed to see of them.
func (h GetPaymentQueryHandler) Handle(ctx context.Context, query GetPaymentQuery) (PaymentView, error) {
	if err := query.Validate(); err != nil {
		return PaymentView{}, err
	}

	db := h.db.WithContext(ctx)
	id := query.PaymentID().Bytes()

	var (
		rawID           uuid.UUID
		amount, applied decimal.Decimal
		method          string
		status          int
		createdAt       time.Time
	)
	err := db.Raw(paymentHeaderSQL, id).Row().Scan(&rawID, &amount, &method, &status, &applied, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return PaymentView{}, errs.NewObjectNotFoundError("payment", query.PaymentID().String())
		}
		return PaymentView{}, err
	}

	view := PaymentView{
		ID:        query.PaymentID(),
		Status:    payment.Status(status),
		CreatedAt: createdAt.UTC(),
	}
	if view.Method, err = payment.ParseMethod(method); err != nil {
		return PaymentView{}, err
	}
	if view.Amount, err = toMoney(amount); err != nil {
		return PaymentView{}, err
	}
	if view.Applied, err = toMoney(applied); err != nil {
		return PaymentView{}, err
	}
	view.Remaining = view.Amount.SaturatingSub(view.Applied)

	var owner *uuid.UUID
	if !query.Caller().IsPrivileged() {
		u := query.Caller().UserID().Bytes()
		owner = &u
	}
	if view.Allocations, err = loadAllocations(db, paymentAllocationsSQL, id, owner, owner); err != nil {
		return PaymentView{}, err
	}

	return view, nil
}
