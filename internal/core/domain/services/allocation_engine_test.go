package services_test

import (
	"testing"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/payment"
	"ordering/internal/core/domain/services"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newOrderFor(t *testing.T, customer kernel.UUID, total string) *order.Order {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), 1, kernel.MustMoney(total))
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), customer, []order.Item{item})
	require.NoError(t, err)
	return o
}

func newPayment(t *testing.T, amount string) *payment.Payment {
	t.Helper()
	p, err := payment.NewPayment(kernel.NewUUID(), kernel.MustMoney(amount), payment.Card)
	require.NoError(t, err)
	return p
}

func adminCaller(t *testing.T) kernel.Caller {
	t.Helper()
	c, err := kernel.NewCaller(kernel.NewUUID(), true)
	require.NoError(t, err)
	return c
}

func customerCaller(t *testing.T, id kernel.UUID) kernel.Caller {
	t.Helper()
	c, err := kernel.NewCaller(id, false)
	require.NoError(t, err)
	return c
}

func money(values ...string) []kernel.Money {
	out := make([]kernel.Money, 0, len(values))
	for _, v := range values {
		out = append(out, kernel.MustMoney(v))
	}
	return out
}

func TestAllocationEngine_Scenarios(t *testing.T) {
	engine := services.NewAllocationEngineWithClock(func() time.Time { return fixedNow })

	t.Run("auto-distribute pays a single order in full", func(t *testing.T) {
		o := newOrderFor(t, kernel.NewUUID(), "200.00")
		p := newPayment(t, "200.00")

		outcome, err := engine.Apply(adminCaller(t), p, []*order.Order{o}, nil)

		require.NoError(t, err)
		require.Len(t, outcome.Allocations, 1)
		assert.Equal(t, "200.00", outcome.Allocations[0].AppliedAmount().String())
		assert.Equal(t, fixedNow, outcome.Allocations[0].CreatedAt())
		assert.Equal(t, order.Paid, o.Status())
		assert.True(t, p.Remaining().IsZero())
		assert.Equal(t, []kernel.UUID{o.ID()}, outcome.PaidOrders)
		assert.Equal(t, payment.Pending, p.Status())
	})

	t.Run("explicit partial amount keeps order pending", func(t *testing.T) {
		o := newOrderFor(t, kernel.NewUUID(), "200.00")
		p := newPayment(t, "200.00")

		outcome, err := engine.Apply(adminCaller(t), p, []*order.Order{o}, money("100.00"))

		require.NoError(t, err)
		require.Len(t, outcome.Allocations, 1)
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, "100.00", o.PaidAmount().String())
		assert.Equal(t, "100.00", p.Remaining().String())
		assert.Empty(t, outcome.PaidOrders)
	})

	t.Run("explicit amount above outstanding is rejected without allocations", func(t *testing.T) {
		o := newOrderFor(t, kernel.NewUUID(), "200.00")
		p := newPayment(t, "200.00")

		_, err := engine.Apply(adminCaller(t), p, []*order.Order{o}, money("500.00"))

		require.ErrorIs(t, err, order.ErrAmountExceedsBalance)
		assert.Empty(t, p.Allocations())
		assert.True(t, o.PaidAmount().IsZero())
		assert.Equal(t, order.Pending, o.Status())
	})
}

func TestAllocationEngine_AutoDistribute(t *testing.T) {
	engine := services.NewAllocationEngine()

	t.Run("should fill orders greedily in list order and stop silently", func(t *testing.T) {
		customer := kernel.NewUUID()
		first := newOrderFor(t, customer, "100.00")
		second := newOrderFor(t, customer, "150.00")
		third := newOrderFor(t, customer, "80.00")
		p := newPayment(t, "180.00")

		outcome, err := engine.Apply(customerCaller(t, customer), p, []*order.Order{first, second, third}, nil)

		require.NoError(t, err)
		require.Len(t, outcome.Allocations, 2)
		assert.Equal(t, "100.00", outcome.Allocations[0].AppliedAmount().String())
		assert.Equal(t, "80.00", outcome.Allocations[1].AppliedAmount().String())
		assert.Equal(t, order.Paid, first.Status())
		assert.Equal(t, order.Pending, second.Status())
		assert.Equal(t, "70.00", second.Outstanding().String())
		assert.Equal(t, order.Pending, third.Status())
		assert.True(t, third.PaidAmount().IsZero())
		assert.True(t, p.Remaining().IsZero())
	})

	t.Run("should apply nothing from an exhausted payment", func(t *testing.T) {
		customer := kernel.NewUUID()
		p := newPayment(t, "50.00")
		_, err := engine.Apply(customerCaller(t, customer), p, []*order.Order{newOrderFor(t, customer, "50.00")}, nil)
		require.NoError(t, err)

		other := newOrderFor(t, customer, "20.00")
		outcome, err := engine.Apply(customerCaller(t, customer), p, []*order.Order{other}, nil)

		require.NoError(t, err)
		assert.Empty(t, outcome.Allocations)
		assert.Len(t, p.Allocations(), 1)
		assert.Equal(t, order.Pending, other.Status())
	})

	t.Run("should skip orders with nothing outstanding", func(t *testing.T) {
		customer := kernel.NewUUID()
		settled, err := order.RestoreOrder(
			kernel.NewUUID(), customer,
			[]order.Item{mustItem(t, "30.00")},
			kernel.MustMoney("30.00"), kernel.MustMoney("30.00"), order.Pending,
		)
		require.NoError(t, err)
		open := newOrderFor(t, customer, "40.00")
		p := newPayment(t, "40.00")

		outcome, err := engine.Apply(customerCaller(t, customer), p, []*order.Order{settled, open}, nil)

		require.NoError(t, err)
		require.Len(t, outcome.Allocations, 1)
		assert.True(t, outcome.Allocations[0].OrderID().IsEqual(open.ID()))
		assert.Equal(t, order.Paid, open.Status())
	})
}

func TestAllocationEngine_Explicit(t *testing.T) {
	engine := services.NewAllocationEngine()

	t.Run("should split a payment across orders", func(t *testing.T) {
		customer := kernel.NewUUID()
		first := newOrderFor(t, customer, "60.00")
		second := newOrderFor(t, customer, "90.00")
		p := newPayment(t, "100.00")

		outcome, err := engine.Apply(customerCaller(t, customer), p, []*order.Order{first, second}, money("60.00", "40.00"))

		require.NoError(t, err)
		assert.Len(t, outcome.Allocations, 2)
		assert.Equal(t, order.Paid, first.Status())
		assert.Equal(t, "50.00", second.Outstanding().String())
		assert.True(t, p.Remaining().IsZero())
	})

	t.Run("should reject amounts above the payment remaining", func(t *testing.T) {
		customer := kernel.NewUUID()
		first := newOrderFor(t, customer, "60.00")
		second := newOrderFor(t, customer, "90.00")
		p := newPayment(t, "100.00")

		_, err := engine.Apply(customerCaller(t, customer), p, []*order.Order{first, second}, money("60.00", "50.00"))

		require.ErrorIs(t, err, payment.ErrAmountExceedsPaymentBalance)
		assert.Empty(t, p.Allocations())
		assert.True(t, first.PaidAmount().IsZero())
	})

	t.Run("should reject mismatched amounts", func(t *testing.T) {
		o := newOrderFor(t, kernel.NewUUID(), "10.00")
		_, err := engine.Apply(adminCaller(t), newPayment(t, "10.00"), []*order.Order{o}, money("5.00", "5.00"))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject zero amounts", func(t *testing.T) {
		o := newOrderFor(t, kernel.NewUUID(), "10.00")
		_, err := engine.Apply(adminCaller(t), newPayment(t, "10.00"), []*order.Order{o}, []kernel.Money{kernel.ZeroMoney()})
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestAllocationEngine_Preconditions(t *testing.T) {
	engine := services.NewAllocationEngine()

	t.Run("should reject a payment that is not pending", func(t *testing.T) {
		p := newPayment(t, "10.00")
		require.NoError(t, p.Complete())
		o := newOrderFor(t, kernel.NewUUID(), "10.00")

		_, err := engine.Apply(adminCaller(t), p, []*order.Order{o}, nil)

		require.ErrorIs(t, err, payment.ErrPaymentNotPending)
		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("should reject an empty target list", func(t *testing.T) {
		_, err := engine.Apply(adminCaller(t), newPayment(t, "10.00"), nil, nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject duplicate targets", func(t *testing.T) {
		o := newOrderFor(t, kernel.NewUUID(), "10.00")
		_, err := engine.Apply(adminCaller(t), newPayment(t, "10.00"), []*order.Order{o, o}, nil)
		require.ErrorIs(t, err, services.ErrDuplicateTarget)
	})

	t.Run("should reject orders of another customer", func(t *testing.T) {
		mine := newOrderFor(t, kernel.NewUUID(), "10.00")
		stranger := customerCaller(t, kernel.NewUUID())
		p := newPayment(t, "10.00")

		_, err := engine.Apply(stranger, p, []*order.Order{mine}, nil)

		require.ErrorIs(t, err, errs.ErrAccessDenied)
		assert.Empty(t, p.Allocations())
	})

	t.Run("should check authorization before order status", func(t *testing.T) {
		o := newOrderFor(t, kernel.NewUUID(), "10.00")
		require.NoError(t, o.TransitionTo(order.Cancelled))

		_, err := engine.Apply(customerCaller(t, kernel.NewUUID()), newPayment(t, "10.00"), []*order.Order{o}, nil)

		require.ErrorIs(t, err, errs.ErrAccessDenied)
	})

	t.Run("should reject orders that are not pending", func(t *testing.T) {
		customer := kernel.NewUUID()
		open := newOrderFor(t, customer, "10.00")
		cancelled := newOrderFor(t, customer, "10.00")
		require.NoError(t, cancelled.TransitionTo(order.Cancelled))
		p := newPayment(t, "20.00")

		_, err := engine.Apply(customerCaller(t, customer), p, []*order.Order{open, cancelled}, nil)

		require.ErrorIs(t, err, order.ErrOrderNotPending)
		assert.True(t, open.PaidAmount().IsZero())
		assert.Empty(t, p.Allocations())
	})

	t.Run("should reject a second allocation to the same order", func(t *testing.T) {
		customer := kernel.NewUUID()
		o := newOrderFor(t, customer, "100.00")
		p := newPayment(t, "100.00")
		_, err := engine.Apply(customerCaller(t, customer), p, []*order.Order{o}, money("40.00"))
		require.NoError(t, err)

		_, err = engine.Apply(customerCaller(t, customer), p, []*order.Order{o}, money("10.00"))

		require.ErrorIs(t, err, payment.ErrDuplicateAllocation)
		assert.Equal(t, "40.00", o.PaidAmount().String())
	})
}

func TestAllocationEngine_Properties(t *testing.T) {
	engine := services.NewAllocationEngine()
	customer := kernel.NewUUID()
	caller := customerCaller(t, customer)

	orders := []*order.Order{
		newOrderFor(t, customer, "19.99"),
		newOrderFor(t, customer, "0.01"),
		newOrderFor(t, customer, "250.00"),
		newOrderFor(t, customer, "33.33"),
	}
	payments := []*payment.Payment{newPayment(t, "20.00"), newPayment(t, "100.00"), newPayment(t, "500.00")}

	for _, p := range payments {
		pending := make([]*order.Order, 0, len(orders))
		for _, o := range orders {
			if o.Status() == order.Pending && !p.HasAllocationFor(o.ID()) {
				pending = append(pending, o)
			}
		}
		if len(pending) == 0 {
			continue
		}
		_, err := engine.Apply(caller, p, pending, nil)
		require.NoError(t, err)
	}

	for _, p := range payments {
		assert.False(t, p.AmountApplied().GreaterThan(p.Amount()), "payment %s over-applied", p.ID())
		assert.True(t, p.Amount().Equal(p.AmountApplied().Add(p.Remaining())))
	}
	for _, o := range orders {
		assert.False(t, o.PaidAmount().GreaterThan(o.Total()), "order %s over-paid", o.ID())
		assert.Equal(t, o.IsFullyPaid(), o.Status() == order.Paid)
	}
}

func TestValidateTargets(t *testing.T) {
	id := kernel.NewUUID()

	require.NoError(t, services.ValidateTargets([]kernel.UUID{id}, nil))
	require.ErrorIs(t, services.ValidateTargets(nil, nil), errs.ErrValueIsRequired)
	require.ErrorIs(t, services.ValidateTargets([]kernel.UUID{id, id}, nil), services.ErrDuplicateTarget)
	require.ErrorIs(t, services.ValidateTargets([]kernel.UUID{{}}, nil), errs.ErrValueIsInvalid)
	require.ErrorIs(t, services.ValidateTargets([]kernel.UUID{id}, money("1.00", "2.00")), errs.ErrValueIsInvalid)
}

func mustItem(t *testing.T, price string) order.Item {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), 1, kernel.MustMoney(price))
	require.NoError(t, err)
	return item
}
