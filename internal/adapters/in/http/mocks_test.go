package http_test

import (
	"context"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/customer"
	"ordering/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
)

type MockCreateCustomerHandler struct{ mock.Mock }

func (m *MockCreateCustomerHandler) Handle(
	ctx context.Context,
	cmd commands.CreateCustomerCommand,
) (*customer.Customer, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

type MockDeleteCustomerHandler struct{ mock.Mock }

func (m *MockDeleteCustomerHandler) Handle(ctx context.Context, cmd commands.DeleteCustomerCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockCreateOrderHandler struct{ mock.Mock }

func (m *MockCreateOrderHandler) Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockChangeOrderStatusHandler struct{ mock.Mock }

func (m *MockChangeOrderStatusHandler) Handle(
	ctx context.Context,
	cmd commands.ChangeOrderStatusCommand,
) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockAddOrderItemHandler struct{ mock.Mock }

func (m *MockAddOrderItemHandler) Handle(
	ctx context.Context,
	cmd commands.AddOrderItemCommand,
) (*order.Order, *order.Item, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*order.Order), args.Get(1).(*order.Item), args.Error(2)
}

type MockCustomerReader struct{ mock.Mock }

func (m *MockCustomerReader) GetCustomer(
	ctx context.Context,
	query queries.GetCustomerQuery,
) (queries.CustomerView, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.CustomerView), args.Error(1)
}

func (m *MockCustomerReader) ListCustomers(
	ctx context.Context,
	query queries.ListCustomersQuery,
) ([]queries.CustomerView, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]queries.CustomerView), args.Error(1)
}

func (m *MockCustomerReader) GetRecentCustomers(
	ctx context.Context,
	query queries.GetRecentCustomersQuery,
) ([]queries.CustomerView, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]queries.CustomerView), args.Error(1)
}

func (m *MockCustomerReader) CountCustomers(ctx context.Context, query queries.CountCustomersQuery) (int64, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(int64), args.Error(1)
}

type MockOrderReader struct{ mock.Mock }

func (m *MockOrderReader) GetOrder(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.OrderView), args.Error(1)
}

func (m *MockOrderReader) ListOrders(ctx context.Context, query queries.ListOrdersQuery) ([]queries.OrderView, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]queries.OrderView), args.Error(1)
}

func (m *MockOrderReader) GetRecentOrders(
	ctx context.Context,
	query queries.GetRecentOrdersQuery,
) ([]queries.OrderView, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]queries.OrderView), args.Error(1)
}

func (m *MockOrderReader) GetPendingOrders(
	ctx context.Context,
	query queries.GetPendingOrdersQuery,
) ([]queries.OrderView, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]queries.OrderView), args.Error(1)
}

func (m *MockOrderReader) GetOrderStats(ctx context.Context, query queries.GetOrderStatsQuery) (queries.OrderStats, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.OrderStats), args.Error(1)
}
