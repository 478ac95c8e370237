// Package kernel provides the ledger value types shared by every aggregate of
// the ordering service.
//
// The package includes:
//   - UUID: identifier of orders, payments, allocations, shipments and customers
//   - Money: a non-negative, two-decimal amount backed by shopspring/decimal
//   - Caller: the acting identity together with its privilege flag
//
// Values are immutable. The zero UUID fails Validate so that uninitialized
// identifiers are caught at aggregate construction; the zero Money is 0.00.
package kernel
