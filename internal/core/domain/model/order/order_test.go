package order_test

import (
	"testing"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var placedAt = time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)

func money(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(s)
	require.NoError(t, err)
	return m
}

func newItem(t *testing.T, productID kernel.UUID, qty int, price string) *order.Item {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), productID, qty, money(t, price))
	require.NoError(t, err)
	return item
}

func newOrder(t *testing.T) *order.Order {
	t.Helper()
	addr, err := kernel.NewAddress("Rua A, 1", "Rio", "RJ", "20040-020")
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), addr, "ring twice", placedAt)
	require.NoError(t, err)
	return o
}

func newOrderWithItems(t *testing.T, items ...*order.Item) *order.Order {
	t.Helper()
	o := newOrder(t)
	for _, item := range items {
		require.NoError(t, o.AddItem(item))
	}
	return o
}

func sumSubtotals(o *order.Order) kernel.Money {
	total := kernel.Zero()
	for _, item := range o.Items() {
		total = total.Add(item.Subtotal())
	}
	return total
}

func assertTotalInvariant(t *testing.T, o *order.Order) {
	t.Helper()
	assert.True(t, o.Total().Equal(sumSubtotals(o)), "total %s != sum of subtotals %s", o.Total(), sumSubtotals(o))
}

func TestNewOrder(t *testing.T) {
	t.Run("should create pending order", func(t *testing.T) {
		id := kernel.NewUUID()
		customerID := kernel.NewUUID()

		o, err := order.NewOrder(id, customerID, kernel.Address{}, " notes ", placedAt)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.True(t, o.CustomerID().IsEqual(customerID))
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, "notes", o.Notes())
		assert.Equal(t, placedAt, o.OrderDate())
		assert.True(t, o.Total().IsZero())
		assert.Empty(t, o.Items())
		assert.Nil(t, o.PaymentDate())
		assert.Nil(t, o.ShippingDate())
		assert.Nil(t, o.DeliveryDate())
	})

	t.Run("should reject missing customer", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), kernel.UUID{}, kernel.Address{}, "", placedAt)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "customer id")
	})

	t.Run("should reject zero id", func(t *testing.T) {
		_, err := order.NewOrder(kernel.UUID{}, kernel.NewUUID(), kernel.Address{}, "", placedAt)

		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("empty order is not persistable", func(t *testing.T) {
		o := newOrder(t)

		err := o.ValidateItems()

		require.Error(t, err)
		assert.True(t, errs.IsInvalidState(err))
	})
}

func TestNewItem(t *testing.T) {
	t.Run("should compute subtotal", func(t *testing.T) {
		item := newItem(t, kernel.NewUUID(), 3, "19.90")

		assert.Equal(t, 3, item.Quantity())
		assert.Equal(t, "19.90", item.UnitPrice().String())
		assert.Equal(t, "59.70", item.Subtotal().String())
	})

	t.Run("should reject zero quantity", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), 0, money(t, "1.00"))

		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject zero price", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), 1, kernel.Zero())

		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Contains(t, err.Error(), "unit price")
	})
}

func TestOrder_AddItem(t *testing.T) {
	t.Run("should attach items and recompute total", func(t *testing.T) {
		p, q := kernel.NewUUID(), kernel.NewUUID()
		o := newOrder(t)

		require.NoError(t, o.AddItem(newItem(t, p, 2, "100.00")))
		require.NoError(t, o.AddItem(newItem(t, q, 1, "200.00")))

		assert.Equal(t, "400.00", o.Total().String())
		require.Len(t, o.Items(), 2)
		for _, item := range o.Items() {
			assert.True(t, item.OrderID().IsEqual(o.ID()))
		}
		require.NoError(t, o.ValidateItems())
		assertTotalInvariant(t, o)
	})

	t.Run("should reject second line for same product", func(t *testing.T) {
		p := kernel.NewUUID()
		o := newOrderWithItems(t, newItem(t, p, 1, "10.00"))

		err := o.AddItem(newItem(t, p, 1, "10.00"))

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Len(t, o.Items(), 1)
		assertTotalInvariant(t, o)
	})

	t.Run("should reject when not pending", func(t *testing.T) {
		o := newOrderWithItems(t, newItem(t, kernel.NewUUID(), 1, "10.00"))
		require.NoError(t, o.ChangeStatus(order.Confirmed, placedAt))

		err := o.AddItem(newItem(t, kernel.NewUUID(), 1, "10.00"))

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Contains(t, err.Error(), "CONFIRMED")
		assert.Len(t, o.Items(), 1)
	})

	t.Run("should reject item literal", func(t *testing.T) {
		o := newOrder(t)

		err := o.AddItem(&order.Item{})

		assert.ErrorIs(t, err, order.ErrItemIsNotConstructed)
	})
}

func TestOrder_IncreaseItemQuantity(t *testing.T) {
	t.Run("should keep captured price and recompute", func(t *testing.T) {
		p := kernel.NewUUID()
		o := newOrderWithItems(t, newItem(t, p, 2, "100.00"), newItem(t, kernel.NewUUID(), 1, "5.00"))

		item, err := o.IncreaseItemQuantity(p, 3)

		require.NoError(t, err)
		assert.Equal(t, 5, item.Quantity())
		assert.Equal(t, "100.00", item.UnitPrice().String())
		assert.Equal(t, "500.00", item.Subtotal().String())
		assert.Equal(t, "505.00", o.Total().String())
		assertTotalInvariant(t, o)
	})

	t.Run("should fail for product without line", func(t *testing.T) {
		o := newOrderWithItems(t, newItem(t, kernel.NewUUID(), 2, "100.00"))

		_, err := o.IncreaseItemQuantity(kernel.NewUUID(), 1)

		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should reject non-positive delta", func(t *testing.T) {
		p := kernel.NewUUID()
		o := newOrderWithItems(t, newItem(t, p, 2, "100.00"))

		_, err := o.IncreaseItemQuantity(p, 0)

		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Equal(t, "200.00", o.Total().String())
	})
}

func TestOrder_RemoveItem(t *testing.T) {
	t.Run("should remove line and recompute total", func(t *testing.T) {
		keep := newItem(t, kernel.NewUUID(), 1, "200.00")
		drop := newItem(t, kernel.NewUUID(), 2, "100.00")
		o := newOrderWithItems(t, keep, drop)
		before := o.Items()

		removed, err := o.RemoveItem(drop.ID())

		require.NoError(t, err)
		assert.True(t, removed.ID().IsEqual(drop.ID()))
		assert.True(t, removed.OrderID().IsEqual(o.ID()))
		assert.Equal(t, "200.00", o.Total().String())
		require.Len(t, o.Items(), 1)
		assert.Len(t, before, 2, "earlier Items() copies are not affected")
		assertTotalInvariant(t, o)
	})

	t.Run("should reject removing last item without mutation", func(t *testing.T) {
		only := newItem(t, kernel.NewUUID(), 3, "10.00")
		o := newOrderWithItems(t, only)

		_, err := o.RemoveItem(only.ID())

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Len(t, o.Items(), 1)
		assert.Equal(t, "30.00", o.Total().String())
	})

	t.Run("should fail for unknown item", func(t *testing.T) {
		o := newOrderWithItems(t, newItem(t, kernel.NewUUID(), 1, "10.00"), newItem(t, kernel.NewUUID(), 1, "10.00"))

		_, err := o.RemoveItem(kernel.NewUUID())

		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
		assert.Len(t, o.Items(), 2)
	})

	t.Run("should reject when not pending", func(t *testing.T) {
		first := newItem(t, kernel.NewUUID(), 1, "10.00")
		o := newOrderWithItems(t, first, newItem(t, kernel.NewUUID(), 1, "10.00"))
		require.NoError(t, o.ChangeStatus(order.Cancelled, placedAt))

		_, err := o.RemoveItem(first.ID())

		assert.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Len(t, o.Items(), 2)
	})
}

func TestOrder_ChangeStatus(t *testing.T) {
	t.Run("happy path stamps timestamps", func(t *testing.T) {
		o := newOrderWithItems(t, newItem(t, kernel.NewUUID(), 1, "10.00"))
		t1, t2, t3, t4 := placedAt.Add(time.Hour), placedAt.Add(2*time.Hour), placedAt.Add(3*time.Hour), placedAt.Add(4*time.Hour)

		require.NoError(t, o.ChangeStatus(order.Confirmed, t1))
		require.NotNil(t, o.PaymentDate())
		assert.Equal(t, t1, *o.PaymentDate())
		assert.Nil(t, o.ShippingDate())

		require.NoError(t, o.ChangeStatus(order.Processing, t2))
		assert.Nil(t, o.ShippingDate())

		require.NoError(t, o.ChangeStatus(order.Shipped, t3))
		require.NotNil(t, o.ShippingDate())
		assert.Equal(t, t3, *o.ShippingDate())

		require.NoError(t, o.ChangeStatus(order.Delivered, t4))
		require.NotNil(t, o.DeliveryDate())
		assert.Equal(t, t4, *o.DeliveryDate())
		assert.Equal(t, order.Delivered, o.Status())
	})

	t.Run("delivered to pending fails", func(t *testing.T) {
		o := newOrderWithItems(t, newItem(t, kernel.NewUUID(), 1, "10.00"))
		for _, s := range []order.Status{order.Confirmed, order.Processing, order.Shipped, order.Delivered} {
			require.NoError(t, o.ChangeStatus(s, placedAt))
		}

		err := o.ChangeStatus(order.Pending, placedAt)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.Delivered, o.Status())
	})

	t.Run("cancel stamps nothing", func(t *testing.T) {
		o := newOrderWithItems(t, newItem(t, kernel.NewUUID(), 1, "10.00"))

		require.NoError(t, o.ChangeStatus(order.Cancelled, placedAt))

		assert.Equal(t, order.Cancelled, o.Status())
		assert.Nil(t, o.PaymentDate())
		assert.Nil(t, o.ShippingDate())
		assert.Nil(t, o.DeliveryDate())
	})

	t.Run("shipped cannot be cancelled", func(t *testing.T) {
		o := newOrderWithItems(t, newItem(t, kernel.NewUUID(), 1, "10.00"))
		for _, s := range []order.Status{order.Confirmed, order.Processing, order.Shipped} {
			require.NoError(t, o.ChangeStatus(s, placedAt))
		}

		assert.ErrorIs(t, o.ChangeStatus(order.Cancelled, placedAt), errs.ErrInvalidTransition)
	})
}

func TestOrder_MarkDeleted(t *testing.T) {
	t.Run("pending and cancelled are deletable", func(t *testing.T) {
		pending := newOrderWithItems(t, newItem(t, kernel.NewUUID(), 1, "10.00"))
		cancelled := newOrderWithItems(t, newItem(t, kernel.NewUUID(), 1, "10.00"))
		require.NoError(t, cancelled.ChangeStatus(order.Cancelled, placedAt))

		assert.NoError(t, pending.MarkDeleted(placedAt))
		assert.NoError(t, cancelled.MarkDeleted(placedAt))
	})

	t.Run("confirmed is not deletable", func(t *testing.T) {
		o := newOrderWithItems(t, newItem(t, kernel.NewUUID(), 1, "10.00"))
		require.NoError(t, o.ChangeStatus(order.Confirmed, placedAt))

		err := o.MarkDeleted(placedAt)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidState)
		assert.False(t, o.IsDeletable())
	})
}

func TestOrder_IsPendingSince(t *testing.T) {
	o := newOrderWithItems(t, newItem(t, kernel.NewUUID(), 1, "10.00"))

	assert.True(t, o.IsPendingSince(placedAt.Add(time.Minute)))
	assert.False(t, o.IsPendingSince(placedAt))

	require.NoError(t, o.ChangeStatus(order.Confirmed, placedAt))
	assert.False(t, o.IsPendingSince(placedAt.Add(time.Minute)))
}

func TestRestoreOrder(t *testing.T) {
	id := kernel.NewUUID()
	paid := placedAt.Add(time.Hour)

	restoreItem := func(t *testing.T, qty int, price string) *order.Item {
		item, err := order.RestoreItem(kernel.NewUUID(), id, kernel.NewUUID(), qty, money(t, price))
		require.NoError(t, err)
		return item
	}

	t.Run("should recompute total from items", func(t *testing.T) {
		o, err := order.RestoreOrder(order.RestoreParams{
			ID:          id,
			CustomerID:  kernel.NewUUID(),
			Status:      order.Confirmed,
			Items:       []*order.Item{restoreItem(t, 2, "100.00"), restoreItem(t, 1, "200.00")},
			OrderDate:   placedAt,
			PaymentDate: &paid,
		})

		require.NoError(t, err)
		assert.Equal(t, order.Confirmed, o.Status())
		assert.Equal(t, "400.00", o.Total().String())
		assert.Equal(t, paid, *o.PaymentDate())
		assert.Empty(t, o.DrainEvents())
	})

	t.Run("should reject empty items", func(t *testing.T) {
		_, err := order.RestoreOrder(order.RestoreParams{
			ID: id, CustomerID: kernel.NewUUID(), Status: order.Pending, OrderDate: placedAt,
		})

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject foreign items", func(t *testing.T) {
		foreign, err := order.RestoreItem(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), 1, money(t, "1.00"))
		require.NoError(t, err)

		_, err = order.RestoreOrder(order.RestoreParams{
			ID: id, CustomerID: kernel.NewUUID(), Status: order.Pending, Items: []*order.Item{foreign}, OrderDate: placedAt,
		})

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject unknown status", func(t *testing.T) {
		_, err := order.RestoreOrder(order.RestoreParams{
			ID: id, CustomerID: kernel.NewUUID(), Status: order.Unknown,
			Items: []*order.Item{restoreItem(t, 1, "1.00")}, OrderDate: placedAt,
		})

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_Validate(t *testing.T) {
	var nilOrder *order.Order
	assert.ErrorIs(t, nilOrder.Validate(), order.ErrOrderIsNotConstructed)
	assert.ErrorIs(t, (&order.Order{}).Validate(), order.ErrOrderIsNotConstructed)
	assert.NoError(t, newOrder(t).Validate())
}

func TestOrder_IsEqual(t *testing.T) {
	a := newOrder(t)
	b := newOrder(t)

	assert.True(t, a.IsEqual(a))
	assert.False(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(nil))
}
