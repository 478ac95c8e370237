package queries

import (
	"context"
	"database/sql"
	"errors"

	"ordering/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListOrderShipmentsQueryHandler struct {
	db *gorm.DB
}

func NewListOrderShipmentsQueryHandler(db *gorm.DB) ListOrderShipmentsQueryHandler {
	return ListOrderShipmentsQueryHandler{db: db}
}

// Handle returns NotFound when the order is missing or the caller may not
// see it.
func (h ListOrderShipmentsQueryHandler) Handle(
	ctx context.Context,
	query ListOrderShipmentsQuery,
) ([]ShipmentView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	id := query.OrderID().Bytes()

	var customerID uuid.UUID
	if err := db.Raw(`SELECT customer_id FROM orders WHERE id = ?`, id).Row().Scan(&customerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return nil, err
	}
	owner, err := toUUID(customerID)
	if err != nil {
		return nil, err
	}
	if !query.Caller().CanAccess(owner) {
		return nil, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	rows, err := db.Raw(`SELECT `+shipmentColumns+` FROM shipments s WHERE s.order_id = ? ORDER BY s.created_at, s.id`, id).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shipments := make([]ShipmentView, 0)
	for rows.Next() {
		view, scanErr := scanShipment(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		shipments = append(shipments, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return shipments, nil
}
