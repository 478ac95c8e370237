package queries

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const customerOrdersSQL = `
	SELECT
		o.id,
		o.status,
		o.total,
		COALESCE((
			SELECT SUM(a.applied_amount)
			FROM allocations a
			JOIN payments p ON p.id = a.payment_id
			WHERE a.order_id = o.id AND p.status = ANY(?)
		), 0) AS paid,
		o.created_at
	FROM orders o
	WHERE o.customer_id = ?
		AND (cardinality(?::int[]) = 0 OR o.status = ANY(?::int[]))
	ORDER BY o.created_at DESC, o.id`

type ListCustomerOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListCustomerOrdersQueryHandler(db *gorm.DB) ListCustomerOrdersQueryHandler {
	return ListCustomerOrdersQueryHandler{db: db}
}

func (h ListCustomerOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListCustomerOrdersQuery,
) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	filter := make([]int64, 0, len(query.Statuses()))
	for _, s := range query.Statuses() {
		filter = append(filter, int64(s))
	}

	rows, err := h.db.WithContext(ctx).Raw(customerOrdersSQL,
		countedPaymentStatuses(),
		query.CustomerID().Bytes(),
		pq.Array(filter),
		pq.Array(filter),
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]OrderSummary, 0)
	for rows.Next() {
		var id uuid.UUID
		var status int
		var total, paid decimal.Decimal
		var createdAt time.Time
		if err = rows.Scan(&id, &status, &total, &paid, &createdAt); err != nil {
			return nil, err
		}

		summary := OrderSummary{Status: order.Status(status), CreatedAt: createdAt.UTC()}
		if summary.ID, err = toUUID(id); err != nil {
			return nil, err
		}
		if summary.Total, err = toMoney(total); err != nil {
			return nil, err
		}
		if summary.Paid, err = toMoney(paid); err != nil {
			return nil, err
		}
		summary.Outstanding = summary.Total.SaturatingSub(summary.Paid)
		orders = append(orders, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}
