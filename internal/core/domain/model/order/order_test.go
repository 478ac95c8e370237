package order_test

import (
	"testing"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newItem(t *testing.T, quantity int, price string) order.Item {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), quantity, kernel.MustMoney(price))
	require.NoError(t, err)
	return item
}

func newOrder(t *testing.T, prices ...string) *order.Order {
	t.Helper()
	items := make([]order.Item, 0, len(prices))
	for _, price := range prices {
		items = append(items, newItem(t, 1, price))
	}
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), items)
	require.NoError(t, err)
	return o
}

func TestNewItem(t *testing.T) {
	t.Run("should compute subtotal", func(t *testing.T) {
		item := newItem(t, 3, "12.50")

		assert.Equal(t, "37.50", item.Subtotal().String())
		assert.Equal(t, 3, item.Quantity())
	})

	t.Run("should reject quantity below one", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), 0, kernel.MustMoney("1.00"))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject missing product", func(t *testing.T) {
		_, err := order.NewItem(kernel.UUID{}, 1, kernel.MustMoney("1.00"))
		require.Error(t, err)
	})

	t.Run("should reject zero unit price", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), 1, kernel.ZeroMoney())

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "unit price")
	})

	t.Run("should reject quantity above the maximum", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), order.MaxQuantity+1, kernel.MustMoney("1.00"))
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestNewOrder(t *testing.T) {
	t.Run("should create pending order with computed total", func(t *testing.T) {
		items := []order.Item{newItem(t, 2, "50.00"), newItem(t, 1, "100.00")}
		customer := kernel.NewUUID()

		o, err := order.NewOrder(kernel.NewUUID(), customer, items)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, "200.00", o.Total().String())
		assert.True(t, o.PaidAmount().IsZero())
		assert.Equal(t, "200.00", o.Outstanding().String())
		assert.False(t, o.IsFullyPaid())
		assert.True(t, o.CustomerID().IsEqual(customer))
		assert.Len(t, o.Items(), 2)
	})

	t.Run("should reject empty items", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject duplicate products", func(t *testing.T) {
		item := newItem(t, 1, "10.00")

		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), []order.Item{item, item})

		require.ErrorIs(t, err, order.ErrDuplicateProduct)
	})

	t.Run("should join all validation errors", func(t *testing.T) {
		_, err := order.NewOrder(kernel.UUID{}, kernel.UUID{}, nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "customer")
		assert.Contains(t, err.Error(), "items")
	})

	t.Run("should start with an outstanding balance", func(t *testing.T) {
		o := newOrder(t, "0.01")

		assert.False(t, o.IsFullyPaid())
		assert.Equal(t, "0.01", o.Outstanding().String())
	})

	t.Run("should reject a total above the storable maximum", func(t *testing.T) {
		items := []order.Item{newItem(t, order.MaxQuantity, "99999.99")}

		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), items)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Contains(t, err.Error(), "total")
	})

	t.Run("items are copied", func(t *testing.T) {
		o := newOrder(t, "10.00")
		items := o.Items()
		items[0] = newItem(t, 9, "99.00")

		assert.Equal(t, 1, o.Items()[0].Quantity())
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should keep persisted total and paid amount", func(t *testing.T) {
		items := []order.Item{newItem(t, 1, "10.00")}

		o, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), items,
			kernel.MustMoney("10.00"), kernel.MustMoney("4.00"), order.Paid,
		)

		require.NoError(t, err)
		assert.Equal(t, order.Paid, o.Status())
		assert.Equal(t, "6.00", o.Outstanding().String())
	})

	t.Run("should reject invalid status", func(t *testing.T) {
		_, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), []order.Item{newItem(t, 1, "1.00")},
			kernel.MustMoney("1.00"), kernel.ZeroMoney(), order.Unknown,
		)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_Validate(t *testing.T) {
	var o order.Order
	require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)

	var nilOrder *order.Order
	require.ErrorIs(t, nilOrder.Validate(), order.ErrOrderIsNotConstructed)
}

func TestOrder_RecordPayment(t *testing.T) {
	t.Run("should accumulate partial payments", func(t *testing.T) {
		o := newOrder(t, "200.00")

		require.NoError(t, o.RecordPayment(kernel.MustMoney("100.00")))
		assert.Equal(t, "100.00", o.PaidAmount().String())
		assert.False(t, o.IsFullyPaid())
		assert.Equal(t, order.Pending, o.Status())

		require.NoError(t, o.RecordPayment(kernel.MustMoney("100.00")))
		assert.True(t, o.IsFullyPaid())
		assert.True(t, o.Outstanding().IsZero())
	})

	t.Run("should reject amount above outstanding balance", func(t *testing.T) {
		o := newOrder(t, "200.00")

		err := o.RecordPayment(kernel.MustMoney("200.01"))

		require.ErrorIs(t, err, order.ErrAmountExceedsBalance)
		assert.Contains(t, err.Error(), o.ID().String())
		assert.True(t, o.PaidAmount().IsZero())
	})

	t.Run("should reject zero amount", func(t *testing.T) {
		o := newOrder(t, "200.00")

		require.ErrorIs(t, o.RecordPayment(kernel.ZeroMoney()), errs.ErrValueIsInvalid)
	})

	t.Run("should reject non pending order", func(t *testing.T) {
		o := newOrder(t, "200.00")
		require.NoError(t, o.TransitionTo(order.Cancelled))

		err := o.RecordPayment(kernel.MustMoney("1.00"))

		require.ErrorIs(t, err, order.ErrOrderNotPending)
		assert.Contains(t, err.Error(), "Cancelled")
	})
}

func TestOrder_TransitionTo(t *testing.T) {
	t.Run("should walk the happy path", func(t *testing.T) {
		o := newOrder(t, "10.00")

		require.NoError(t, o.TransitionTo(order.Paid))
		require.NoError(t, o.TransitionTo(order.Shipped))
		require.NoError(t, o.TransitionTo(order.Delivered))
		assert.Equal(t, order.Delivered, o.Status())
	})

	t.Run("should reject skipping and leave status unchanged", func(t *testing.T) {
		o := newOrder(t, "10.00")

		err := o.TransitionTo(order.Delivered)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Contains(t, err.Error(), o.ID().String())
		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("terminal statuses reject everything", func(t *testing.T) {
		o := newOrder(t, "10.00")
		require.NoError(t, o.TransitionTo(order.Cancelled))

		for _, target := range allStatuses() {
			require.ErrorIs(t, o.TransitionTo(target), errs.ErrInvalidTransition)
		}
	})
}
