// Package payment provides the Payment aggregate and its Allocation entity.
//
// A Payment is captured outside of this service and recorded here as
// Pending. The allocation engine spreads it over orders by calling
// Allocate, which enforces the remaining balance and the one allocation per
// order rule. Completing or failing a payment is a separate administrative
// step; allocations on failed payments no longer count toward order totals.
package payment
