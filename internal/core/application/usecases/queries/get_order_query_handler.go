package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/payment"
	"ordering/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const orderHeaderSQL = `
	SELECT
		o.id,
		o.customer_id,
		o.status,
		o.total,
		COALESCE((
			SELECT SUM(a.applied_amount)
			FROM allocations a
			JOIN payments p ON p.id = a.payment_id
			WHERE a.order_id = o.id AND p.status = ANY(?)
		), 0) AS paid,
		o.created_at,
		o.updated_at
	FROM orders o
	WHERE o.id = ?`

const orderItemsSQL = `
	SELECT product_id, quantity, unit_price
	FROM order_items
	WHERE order_id = ?
	ORDER BY position`

const orderAllocationsSQL = `
	SELECT a.id, a.order_id, a.payment_id, p.status, a.applied_amount, a.created_at
	FROM allocations a
	JOIN payments p ON p.id = a.payment_id
	WHERE a.order_id = ?
	ORDER BY a.created_at, a.id`

// GetOrderQueryHandler builds OrderView from the orders, order_items,
// allocations and payments tables.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	db := h.db.WithContext(ctx)
	id := query.OrderID().Bytes()

	view, err := scanOrderHeader(db.Raw(orderHeaderSQL, countedPaymentStatuses(), id).Row())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return OrderView{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return OrderView{}, err
	}
	if !query.Caller().CanAccess(view.CustomerID) {
		return OrderView{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	if view.Items, err = loadOrderItems(db, id); err != nil {
		return OrderView{}, err
	}
	if view.Allocations, err = loadAllocations(db, orderAllocationsSQL, id); err != nil {
		return OrderView{}, err
	}

	return view, nil
}

func scanOrderHeader(row *sql.Row) (OrderView, error) {
	var (
		id, customerID       uuid.UUID
		status               int
		total, paid          decimal.Decimal
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &customerID, &status, &total, &paid, &createdAt, &updatedAt); err != nil {
		return OrderView{}, err
	}

	var view OrderView
	var err error
	if view.ID, err = toUUID(id); err != nil {
		return OrderView{}, err
	}
	if view.CustomerID, err = toUUID(customerID); err != nil {
		return OrderView{}, err
	}
	if view.Total, err = toMoney(total); err != nil {
		return OrderView{}, err
	}
	if view.Paid, err = toMoney(paid); err != nil {
		return OrderView{}, err
	}
	view.Status = order.Status(status)
	view.Outstanding = view.Total.SaturatingSub(view.Paid)
	view.FullyPaid = view.Paid.GreaterThanOrEqual(view.Total)
	view.CreatedAt = createdAt.UTC()
	view.UpdatedAt = updatedAt.UTC()
	return view, nil
}

func loadOrderItems(db *gorm.DB, orderID uuid.UUID) ([]OrderItemView, error) {
	rows, err := db.Raw(orderItemsSQL, orderID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderItemView, 0)
	for rows.Next() {
		var productID uuid.UUID
		var quantity int
		var unitPrice decimal.Decimal
		if err = rows.Scan(&productID, &quantity, &unitPrice); err != nil {
			return nil, err
		}

		item := OrderItemView{Quantity: quantity}
		if item.ProductID, err = toUUID(productID); err != nil {
			return nil, err
		}
		if item.UnitPrice, err = toMoney(unitPrice); err != nil {
			return nil, err
		}
		item.Subtotal = item.UnitPrice.Times(quantity)
		items = append(items, item)
	}

	return items, rows.Err()
}

// loadAllocations runs an allocation query whose columns match
// orderAllocationsSQL.
func loadAllocations(db *gorm.DB, query string, args ...any) ([]AllocationView, error) {
	rows, err := db.Raw(query, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	allocations := make([]AllocationView, 0)
	for rows.Next() {
		var id, orderID, paymentID uuid.UUID
		var status int
		var amount decimal.Decimal
		var createdAt time.Time
		if err = rows.Scan(&id, &orderID, &paymentID, &status, &amount, &createdAt); err != nil {
			return nil, err
		}

		a := AllocationView{
			PaymentStatus: payment.Status(status),
			CreatedAt:     createdAt.UTC(),
		}
		if a.ID, err = toUUID(id); err != nil {
			return nil, err
		}
		if a.OrderID, err = toUUID(orderID); err != nil {
			return nil, err
		}
		if a.PaymentID, err = toUUID(paymentID); err != nil {
			return nil, err
		}
		if a.AppliedAmount, err = toMoney(amount); err != nil {
			return nil, err
		}
		allocations = append(allocations, a)
	}

	return allocations, rows.Err()
}

