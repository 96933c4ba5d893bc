//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	postgresadapter "ordering/internal/adapters/out/postgres"
	"ordering/internal/adapters/out/postgres/pgtest"
	"ordering/internal/core/domain/model/customer"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/product"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"gorm.io/gorm"
)

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events []order.Event) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// UnitOfWorkIntegrationTestSuite runs the GORM unit of work against a real PostgreSQL.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	database  *pgtest.Database
	publisher *MockEventPublisher
	spans     *tracetest.SpanRecorder
	factory   *postgresadapter.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())

	suite.publisher = new(MockEventPublisher)
	suite.spans = tracetest.NewSpanRecorder()
	suite.factory = postgresadapter.NewGormUnitOfWorkFactory(suite.database.DB,
		postgresadapter.WithEventPublisher(suite.publisher),
		postgresadapter.WithTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(suite.spans))),
	)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")
	suite.NotNil(uow1.CustomerRepository())
	suite.NotNil(uow1.ProductRepository())
	suite.NotNil(uow1.OrderRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))

	ended := suite.spans.Ended()
	suite.Require().Len(ended, 2)
	suite.Equal("uow.transaction", ended[0].Name())
	suite.Equal("committed", ended[0].Status().Description)
	suite.Equal("rolled back", ended[1].Status().Description)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

// TestUnitOfWork_PlaceOrderAtomically writes the customer, the order and the stock
// change in one transaction and publishes the creation event after commit.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_PlaceOrderAtomically() {
	ctx := context.Background()
	buyer, laptop := suite.seed()

	o := suite.newOrder(buyer)
	_, err := services.NewInventoryReconciler().PlaceItem(o, laptop, 3)
	suite.Require().NoError(err)

	suite.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(events []order.Event) bool {
		return len(events) == 1 &&
			events[0].Type == order.EventCreated &&
			events[0].OrderID == o.ID() &&
			events[0].ItemCount == 1
	})).Return(nil).Once()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.ProductRepository().Update(ctx, laptop))
	suite.Require().NoError(uow.Commit(ctx))

	fresh := suite.factory.Create()
	stored, err := fresh.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal("450.00", stored.Total().String())

	stock, err := fresh.ProductRepository().Get(ctx, laptop.ID())
	suite.Require().NoError(err)
	suite.Equal(7, stock.Quantity())

	suite.publisher.AssertExpectations(suite.T())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsChangesAndEvents() {
	ctx := context.Background()
	buyer, laptop := suite.seed()

	o := suite.newOrder(buyer)
	_, err := services.NewInventoryReconciler().PlaceItem(o, laptop, 2)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.ProductRepository().Update(ctx, laptop))
	suite.Require().NoError(uow.Rollback(ctx))

	fresh := suite.factory.Create()
	_, err = fresh.OrderRepository().Get(ctx, o.ID())
	suite.Require().Error(err, "Order should not exist after rollback")

	stock, err := fresh.ProductRepository().Get(ctx, laptop.ID())
	suite.Require().NoError(err)
	suite.Equal(10, stock.Quantity())

	suite.publisher.AssertNotCalled(suite.T(), "Publish", mock.Anything, mock.Anything)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_PublishFailureKeepsCommit() {
	ctx := context.Background()
	buyer, laptop := suite.seed()

	o := suite.newOrder(buyer)
	_, err := services.NewInventoryReconciler().PlaceItem(o, laptop, 1)
	suite.Require().NoError(err)

	suite.publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))

	_, err = suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.publisher.AssertExpectations(suite.T())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RepositoryIsolation() {
	ctx := context.Background()
	buyer, laptop := suite.seed()

	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()
	suite.Require().NoError(uow1.Begin(ctx))
	suite.Require().NoError(uow2.Begin(ctx))

	order1 := suite.newOrder(buyer)
	order2 := suite.newOrder(buyer)
	suite.addLine(order1, laptop)
	suite.addLine(order2, laptop)

	suite.Require().NoError(uow1.OrderRepository().Add(ctx, order1))
	suite.Require().NoError(uow2.OrderRepository().Add(ctx, order2))

	_, err := uow1.OrderRepository().Get(ctx, order2.ID())
	suite.Require().Error(err, "UOW1 should not see order2")
	_, err = uow2.OrderRepository().Get(ctx, order1.ID())
	suite.Require().Error(err, "UOW2 should not see order1")

	suite.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()
	suite.Require().NoError(uow1.Commit(ctx))
	suite.Require().NoError(uow2.Rollback(ctx))

	fresh := suite.factory.Create()
	_, err = fresh.OrderRepository().Get(ctx, order1.ID())
	suite.Require().NoError(err)
	_, err = fresh.OrderRepository().Get(ctx, order2.ID())
	suite.Require().Error(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	buyer, _ := suite.seed()

	stored, err := suite.factory.Create().CustomerRepository().Get(ctx, buyer.ID())
	suite.Require().NoError(err)
	suite.Equal(buyer.Email(), stored.Email())
}

func (suite *UnitOfWorkIntegrationTestSuite) seed() (*customer.Customer, *product.Product) {
	ctx := context.Background()

	address, err := kernel.NewAddress("Main St 1", "Springfield", "SP", "01234-567")
	suite.Require().NoError(err)
	buyer, err := customer.NewCustomer(kernel.NewUUID(), customer.Profile{
		Name:       "John Doe",
		Email:      "john@example.com",
		Phone:      "(11) 98765-4321",
		NationalID: "123.456.789-01",
		Address:    address,
	}, time.Now())
	suite.Require().NoError(err)

	price, err := kernel.MoneyFromString("150.00")
	suite.Require().NoError(err)
	laptop, err := product.NewProduct(kernel.NewUUID(), product.Details{
		Name:     "Laptop",
		Price:    price,
		Quantity: 10,
	}, time.Now())
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.CustomerRepository().Add(ctx, buyer))
	suite.Require().NoError(uow.ProductRepository().Add(ctx, laptop))
	return buyer, laptop
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder(buyer *customer.Customer) *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), buyer.ID(), buyer.Address(), "", time.Now())
	suite.Require().NoError(err)
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) addLine(o *order.Order, p *product.Product) {
	item, err := order.NewItem(kernel.NewUUID(), p.ID(), 1, p.Price())
	suite.Require().NoError(err)
	suite.Require().NoError(o.AddItem(item))
}

var _ ports.UnitOfWorkFactory = (*postgresadapter.GormUnitOfWorkFactory)(nil)

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
