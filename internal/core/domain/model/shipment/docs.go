// Package shipment provides the Shipment aggregate and its status machine.
//
// A shipment moves Pending -> Shipped -> Delivered. Shipping assigns a
// tracking number exactly once and stamps shippedAt; delivering stamps
// deliveredAt. Pushing the owning order forward is done by the fulfillment
// service in the services package, inside the same transaction.
package shipment
