package cmd

import (
	"log/slog"

	httpadapter "ordering/internal/adapters/in/http"
	"ordering/internal/adapters/out/postgres"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/ports"
	"ordering/internal/jobs"

	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	logger     *slog.Logger
	uowFactory *postgres.GormUnitOfWorkFactory
}

func NewCompositionRoot(
	configs Config,
	gormDB *gorm.DB,
	publisher ports.OrderEventPublisher,
	tp trace.TracerProvider,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		configs: configs,
		gormDB:  gormDB,
		logger:  logger,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB,
			postgres.WithEventPublisher(publisher),
			postgres.WithLogger(logger),
			postgres.WithTracerProvider(tp),
		),
	}
}

func (c *CompositionRoot) customerUoWFactory() commands.CustomerUoWFactory {
	return FuncCustomerUoWFactory(func() commands.CustomerUoW {
		return c.uowFactory.CreateGorm()
	})
}

func (c *CompositionRoot) productUoWFactory() commands.ProductUoWFactory {
	return FuncProductUoWFactory(func() commands.ProductUoW {
		return c.uowFactory.CreateGorm()
	})
}

func (c *CompositionRoot) orderUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.CreateGorm()
	})
}

func (c *CompositionRoot) CreateExpirePendingOrdersCommandHandler() commands.ExpirePendingOrdersCommandHandler {
	return commands.NewExpirePendingOrdersCommandHandler(c.orderUoWFactory())
}

// CreateHTTPHandlers wires every command and query handler the HTTP server dispatches to.
func (c *CompositionRoot) CreateHTTPHandlers() httpadapter.Handlers {
	customerUoW := c.customerUoWFactory()
	productUoW := c.productUoWFactory()
	orderUoW := c.orderUoWFactory()

	return httpadapter.Handlers{
		CreateCustomer: commands.NewCreateCustomerCommandHandler(customerUoW),
		UpdateCustomer: commands.NewUpdateCustomerCommandHandler(customerUoW),
		DeleteCustomer: commands.NewDeleteCustomerCommandHandler(customerUoW),

		CreateProduct: commands.NewCreateProductCommandHandler(productUoW),
		UpdateProduct: commands.NewUpdateProductCommandHandler(productUoW),
		DeleteProduct: commands.NewDeleteProductCommandHandler(productUoW),

		CreateOrder:       commands.NewCreateOrderCommandHandler(orderUoW),
		ChangeOrderStatus: commands.NewChangeOrderStatusCommandHandler(orderUoW),
		AddOrderItem:      commands.NewAddOrderItemCommandHandler(orderUoW),
		RemoveOrderItem:   commands.NewRemoveOrderItemCommandHandler(orderUoW),
		DeleteOrder:       commands.NewDeleteOrderCommandHandler(orderUoW),

		Customers: queries.NewCustomerQueryHandlers(c.gormDB),
		Products:  queries.NewProductQueryHandlers(c.gormDB),
		Orders:    queries.NewOrderQueryHandlers(c.gormDB),
	}
}

func (c *CompositionRoot) CreateServer() *httpadapter.Server {
	return httpadapter.NewServer(c.CreateHTTPHandlers(), c.logger)
}

// CreateJobManager registers the background jobs enabled by configuration.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	jm := jobs.NewJobManager()
	if c.configs.OrderExpiryTTL > 0 {
		jm.Register("order expiry", jobs.NewOrderExpiryJob(
			c.CreateExpirePendingOrdersCommandHandler(),
			c.configs.OrderExpirySchedule,
			c.configs.OrderExpiryTTL,
			c.logger,
		))
	}
	return jm
}

type FuncCustomerUoWFactory func() commands.CustomerUoW

func (f FuncCustomerUoWFactory) Create() commands.CustomerUoW {
	return f()
}

type FuncProductUoWFactory func() commands.ProductUoW

func (f FuncProductUoWFactory) Create() commands.ProductUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
