// Package paymentrepo persists payments and their allocations.
package paymentrepo

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AllocationPairIndex enforces at most one allocation per (order, payment).
const AllocationPairIndex = "idx_allocations_order_payment"

// PaymentDTO is the payments table.
type PaymentDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Amount    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Method    string          `gorm:"type:varchar(16);not null"`
	Status    int             `gorm:"not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PaymentDTO) TableName() string {
	return "payments"
}

// AllocationDTO is the allocations table. Rows are only ever inserted.
type AllocationDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_allocations_order_payment,priority:1"`
	PaymentID     uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_allocations_order_payment,priority:2"`
	AppliedAmount decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CreatedAt     time.Time       `gorm:"not null"`
}

func (AllocationDTO) TableName() string {
	return "allocations"
}

func fromDomain(p *payment.Payment) PaymentDTO {
	return PaymentDTO{
		ID:     p.ID().Bytes(),
		Amount: p.Amount().Amount(),
		Method: p.Method().String(),
		Status: int(p.Status()),
	}
}

func allocationFromDomain(a payment.Allocation) AllocationDTO {
	return AllocationDTO{
		ID:            a.ID().Bytes(),
		OrderID:       a.OrderID().Bytes(),
		PaymentID:     a.PaymentID().Bytes(),
		AppliedAmount: a.AppliedAmount().Amount(),
		CreatedAt:     a.CreatedAt().UTC(),
	}
}

func toDomain(dto PaymentDTO, allocationDTOs []AllocationDTO) (*payment.Payment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	amount, err := kernel.NewMoney(dto.Amount)
	if err != nil {
		return nil, err
	}
	method, err := payment.ParseMethod(dto.Method)
	if err != nil {
		return nil, err
	}

	allocations := make([]payment.Allocation, 0, len(allocationDTOs))
	for _, a := range allocationDTOs {
		allocation, allocErr := allocationToDomain(a)
		if allocErr != nil {
			return nil, allocErr
		}
		allocations = append(allocations, allocation)
	}

	return payment.RestorePayment(id, amount, method, payment.Status(dto.Status), allocations)
}

func allocationToDomain(dto AllocationDTO) (payment.Allocation, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return payment.Allocation{}, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return payment.Allocation{}, err
	}
	paymentID, err := kernel.UUIDFromBytes(dto.PaymentID[:])
	if err != nil {
		return payment.Allocation{}, err
	}
	amount, err := kernel.NewMoney(dto.AppliedAmount)
	if err != nil {
		return payment.Allocation{}, err
	}
	return payment.RestoreAllocation(id, orderID, paymentID, amount, dto.CreatedAt)
}
