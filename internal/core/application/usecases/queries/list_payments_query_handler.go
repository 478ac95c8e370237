package queries

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/payment"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// paymentsSQL takes the status filter twice and an optional owner twice; a
// NULL owner lists every payment.
const paymentsSQL = `
	SELECT
		p.id,
		p.amount,
		p.method,
		p.status,
		COALESCE((SELECT SUM(a.applied_amount) FROM allocations a WHERE a.payment_id = p.id), 0) AS applied,
		p.created_at
	FROM payments p
	WHERE (cardinality(?::int[]) = 0 OR p.status = ANY(?::int[]))
		AND (?::uuid IS NULL OR EXISTS (
			SELECT 1
			FROM allocations a
			JOIN orders o ON o.id = a.order_id
			WHERE a.payment_id = p.id AND o.customer_id = ?::uuid
		))
	ORDER BY p.created_at DESC, p.id`

type ListPaymentsQueryHandler struct {
	db *gorm.DB
}

func NewListPaymentsQueryHandler(db *gorm.DB) ListPaymentsQueryHandler {
	return ListPaymentsQueryHandler{db: db}
}

func (h ListPaymentsQueryHandler) Handle(ctx context.Context, query ListPaymentsQuery) ([]PaymentSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	filter := make([]int64, 0, len(query.Statuses()))
	for _, s := range query.Statuses() {
		filter = append(filter, int64(s))
	}

	var owner *uuid.UUID
	if !query.Caller().IsPrivileged() {
		u := query.Caller().UserID().Bytes()
		owner = &u
	}

	rows, err := h.db.WithContext(ctx).Raw(paymentsSQL,
		pq.Array(filter),
		pq.Array(filter),
		owner,
		owner,
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]PaymentSummary, 0)
	for rows.Next() {
		var (
			id              uuid.UUID
			amount, applied decimal.Decimal
			method          string
			status          int
			createdAt       time.Time
		)
		if err = rows.Scan(&id, &amount, &method, &status, &applied, &createdAt); err != nil {
			return nil, err
		}

		summary := PaymentSummary{Status: payment.Status(status), CreatedAt: createdAt.UTC()}
		if summary.ID, err = toUUID(id); err != nil {
			return nil, err
		}
		if summary.Method, err = payment.ParseMethod(method); err != nil {
			return nil, err
		}
		if summary.Amount, err = toMoney(amount); err != nil {
			return nil, err
		}
		if summary.Applied, err = toMoney(applied); err != nil {
			return nil, err
		}
		summary.Remaining = summary.Amount.SaturatingSub(summary.Applied)
		payments = append(payments, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return payments, nil
}
