// Package services holds the domain services that span more than one
// aggregate.
//
//   - AllocationEngine applies a payment to orders and moves fully paid
//     orders to Paid.
//   - Fulfillment ships and delivers shipments and pushes the owning order
//     through the order status table.
//
// Neither service touches storage. Command handlers load and lock the
// aggregates, call the service and persist the result in one transaction.
package services
