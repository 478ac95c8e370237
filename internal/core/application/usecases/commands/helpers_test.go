package commands_test

import (
	"testing"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/payment"
	"ordering/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/require"
)

func customer(t *testing.T) kernel.Caller {
	t.Helper()
	c, err := kernel.NewCaller(kernel.NewUUID(), false)
	require.NoError(t, err)
	return c
}

func admin(t *testing.T) kernel.Caller {
	t.Helper()
	c, err := kernel.NewCaller(kernel.NewUUID(), true)
	require.NoError(t, err)
	return c
}

func item(t *testing.T, quantity int, price string) order.Item {
	t.Helper()
	i, err := order.NewItem(kernel.NewUUID(), quantity, kernel.MustMoney(price))
	require.NoError(t, err)
	return i
}

func pendingOrder(t *testing.T, owner kernel.UUID, total string) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), owner, []order.Item{item(t, 1, total)})
	require.NoError(t, err)
	return o
}

func orderIn(t *testing.T, owner kernel.UUID, status order.Status) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(
		kernel.NewUUID(), owner,
		[]order.Item{item(t, 1, "10.00")},
		kernel.MustMoney("10.00"), kernel.MustMoney("10.00"), status,
	)
	require.NoError(t, err)
	return o
}

func pendingPayment(t *testing.T, amount string) *payment.Payment {
	t.Helper()
	p, err := payment.NewPayment(kernel.NewUUID(), kernel.MustMoney(amount), payment.Card)
	require.NoError(t, err)
	return p
}

func pendingShipment(t *testing.T, orderID kernel.UUID) *shipment.Shipment {
	t.Helper()
	s, err := shipment.NewShipment(kernel.NewUUID(), orderID)
	require.NoError(t, err)
	return s
}
