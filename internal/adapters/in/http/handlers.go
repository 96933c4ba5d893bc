package http

import (
	"context"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/customer"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/product"
)

// The server depends on these narrow interfaces; the command and query handler
// structs satisfy them.

type CreateCustomerHandler interface {
	Handle(ctx context.Context, cmd commands.CreateCustomerCommand) (*customer.Customer, error)
}

type UpdateCustomerHandler interface {
	Handle(ctx context.Context, cmd commands.UpdateCustomerCommand) (*customer.Customer, error)
}

type DeleteCustomerHandler interface {
	Handle(ctx context.Context, cmd commands.DeleteCustomerCommand) error
}

type CreateProductHandler interface {
	Handle(ctx context.Context, cmd commands.CreateProductCommand) (*product.Product, error)
}

type UpdateProductHandler interface {
	Handle(ctx context.Context, cmd commands.UpdateProductCommand) (*product.Product, error)
}

type DeleteProductHandler interface {
	Handle(ctx context.Context, cmd commands.DeleteProductCommand) error
}

type CreateOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
}

type ChangeOrderStatusHandler interface {
	Handle(ctx context.Context, cmd commands.ChangeOrderStatusCommand) (*order.Order, error)
}

type AddOrderItemHandler interface {
	Handle(ctx context.Context, cmd commands.AddOrderItemCommand) (*order.Order, *order.Item, error)
}

type RemoveOrderItemHandler interface {
	Handle(ctx context.Context, cmd commands.RemoveOrderItemCommand) (*order.Order, error)
}

type DeleteOrderHandler interface {
	Handle(ctx context.Context, cmd commands.DeleteOrderCommand) error
}

type CustomerReader interface {
	GetCustomer(ctx context.Context, query queries.GetCustomerQuery) (queries.CustomerView, error)
	ListCustomers(ctx context.Context, query queries.ListCustomersQuery) ([]queries.CustomerView, error)
	GetRecentCustomers(ctx context.Context, query queries.GetRecentCustomersQuery) ([]queries.CustomerView, error)
	CountCustomers(ctx context.Context, query queries.CountCustomersQuery) (int64, error)
}

type ProductReader interface {
	GetProduct(ctx context.Context, query queries.GetProductQuery) (queries.ProductView, error)
	ListProducts(ctx context.Context, query queries.ListProductsQuery) ([]queries.ProductView, error)
	CountProducts(ctx context.Context, query queries.CountProductsQuery) (queries.ProductCounts, error)
}

type OrderReader interface {
	GetOrder(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error)
	ListOrders(ctx context.Context, query queries.ListOrdersQuery) ([]queries.OrderView, error)
	GetRecentOrders(ctx context.Context, query queries.GetRecentOrdersQuery) ([]queries.OrderView, error)
	GetPendingOrders(ctx context.Context, query queries.GetPendingOrdersQuery) ([]queries.OrderView, error)
	GetOrderStats(ctx context.Context, query queries.GetOrderStatsQuery) (queries.OrderStats, error)
}

// Handlers bundles everything the server dispatches to.
type Handlers struct {
	CreateCustomer CreateCustomerHandler
	UpdateCustomer UpdateCustomerHandler
	DeleteCustomer DeleteCustomerHandler

	CreateProduct CreateProductHandler
	UpdateProduct UpdateProductHandler
	DeleteProduct DeleteProductHandler

	CreateOrder       CreateOrderHandler
	ChangeOrderStatus ChangeOrderStatusHandler
	AddOrderItem      AddOrderItemHandler
	RemoveOrderItem   RemoveOrderItemHandler
	DeleteOrder       DeleteOrderHandler

	Customers CustomerReader
	Products  ProductReader
	Orders    OrderReader
}
