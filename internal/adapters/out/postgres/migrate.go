package postgres

import (
	"ordering/internal/adapters/out/postgres/orderrepo"
	"ordering/internal/adapters/out/postgres/paymentrepo"
	"ordering/internal/adapters/out/postgres/shipmentrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates every table the repositories use.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&paymentrepo.PaymentDTO{},
		&paymentrepo.AllocationDTO{},
		&shipmentrepo.ShipmentDTO{},
	)
}
