// Package commands contains the business operations that modify state.
// Every handler follows the same shape: validate the command, open a unit of
// work, lock and load the aggregates, apply domain logic, persist, commit.
package commands

import (
	"context"

	"ordering/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends on the narrowest combination of repositories it uses.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// PaymentRepoFactory provides access to payment repository within a transaction.
	PaymentRepoFactory interface {
		PaymentRepository() ports.PaymentRepository
	}

	// ShipmentRepoFactory provides access to shipment repository within a transaction.
	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	// OrderUoW is used by commands that only touch orders.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// PaymentUoW is used by commands that only touch payments.
	PaymentUoW interface {
		TxManager
		PaymentRepoFactory
	}

	PaymentUoWFactory interface {
		Create() PaymentUoW
	}

	// AllocationUoW spans a payment and the orders it is applied to.
	//
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   p, err := uow.PaymentRepository().GetForUpdate(ctx, paymentID)
	//   o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
	//   // ... apply, update both
	//
	//   err = uow.Commit(ctx)
	AllocationUoW interface {
		TxManager
		PaymentRepoFactory
		OrderRepoFactory
	}

	AllocationUoWFactory interface {
		Create() AllocationUoW
	}

	// ShipmentUoW spans a shipment and its order.
	ShipmentUoW interface {
		TxManager
		ShipmentRepoFactory
		OrderRepoFactory
	}

	ShipmentUoWFactory interface {
		Create() ShipmentUoW
	}
)
