// Package order provides the Order aggregate and the order status machine.
//
// The package includes:
//   - Order: the aggregate root holding line items, the persisted total and
//     the paid amount derived from payment allocations
//   - Item: an immutable order line with the unit price captured at creation
//   - Status: the lifecycle enum and its single transition table
//
// Key business rules:
//   - Status follows Pending -> Paid -> Shipped -> Delivered, with
//     Pending/Paid -> Cancelled; Delivered and Cancelled are terminal
//   - Only Pending orders accept payment allocations
//   - An allocation never exceeds the outstanding balance
package order
