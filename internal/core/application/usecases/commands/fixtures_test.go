package commands_test

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"ordering/internal/core/domain/model/customer"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/product"
	"ordering/internal/core/domain/services"

	"github.com/stretchr/testify/require"
)

var createdAt = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func address(t *testing.T) kernel.Address {
	t.Helper()
	a, err := kernel.NewAddress("Main St 1", "Springfield", "SP", "01234-567")
	require.NoError(t, err)
	return a
}

func profile(t *testing.T, email, nationalID string) customer.Profile {
	t.Helper()
	return customer.Profile{
		Name:       "John Doe",
		Email:      email,
		Phone:      "(11) 98765-4321",
		NationalID: nationalID,
		Address:    address(t),
	}
}

func newCustomer(t *testing.T) *customer.Customer {
	t.Helper()
	c, err := customer.NewCustomer(kernel.NewUUID(), profile(t, "john@example.com", "123.456.789-01"), createdAt)
	require.NoError(t, err)
	return c
}

func money(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(s)
	require.NoError(t, err)
	return m
}

var productSeq atomic.Int64

// sequentialID returns ids that compare in creation order, so tests can state
// the order in which handlers lock products.
func sequentialID(t *testing.T) kernel.UUID {
	t.Helper()
	id, err := kernel.UUIDFromString(fmt.Sprintf("00000000-0000-4000-8000-%012d", productSeq.Add(1)))
	require.NoError(t, err)
	return id
}

// newProduct builds a product whose id sorts after every product built before it.
func newProduct(t *testing.T, name, price string, quantity int) *product.Product {
	t.Helper()
	p, err := product.NewProduct(sequentialID(t), product.Details{
		Name:     name,
		Price:    money(t, price),
		Quantity: quantity,
	}, createdAt)
	require.NoError(t, err)
	return p
}

// pendingOrder builds an order holding qty units of each product, reserving their stock.
func pendingOrder(t *testing.T, qty int, products ...*product.Product) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), address(t), "", createdAt)
	require.NoError(t, err)
	r := services.NewInventoryReconciler()
	for _, p := range products {
		_, err = r.PlaceItem(o, p, qty)
		require.NoError(t, err)
	}
	o.DrainEvents()
	return o
}

func productDetails(t *testing.T, name, price string, quantity int) product.Details {
	t.Helper()
	return product.Details{Name: name, Price: money(t, price), Quantity: quantity}
}
