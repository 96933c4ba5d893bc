// Package postgres provides the GORM-based Unit of Work over the ordering schema.
// A unit of work wraps one database transaction and hands out repositories bound
// to it; after a successful commit it publishes the domain events recorded by the
// order aggregates the repositories touched.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db, WithEventPublisher(publisher), WithLogger(logger))
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.OrderRepository().Add(ctx, order); err != nil {
//	    return err
//	}
//	if err := uow.ProductRepository().Update(ctx, laptop); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx) // events for order are published here
//
// Concurrency Considerations:
//   - Each UnitOfWork instance provides isolated transactions
//   - Multiple goroutines should use separate UnitOfWork instances
//   - Stock and order rows are locked with GetForUpdate inside the transaction
package postgres

import (
	"context"
	"log/slog"

	"ordering/internal/adapters/out/postgres/customerrepo"
	"ordering/internal/adapters/out/postgres/orderrepo"
	"ordering/internal/adapters/out/postgres/productrepo"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

const tracerName = "ordering/postgres"

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// Option configures a GormUnitOfWorkFactory.
type Option func(*GormUnitOfWorkFactory)

// WithEventPublisher sets where order events go after commit. Without it events are dropped.
func WithEventPublisher(publisher ports.OrderEventPublisher) Option {
	return func(f *GormUnitOfWorkFactory) { f.publisher = publisher }
}

// WithLogger sets the logger used for post-commit publish failures.
func WithLogger(logger *slog.Logger) Option {
	return func(f *GormUnitOfWorkFactory) { f.logger = logger }
}

// WithTracerProvider overrides the global tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(f *GormUnitOfWorkFactory) { f.tracer = tp.Tracer(tracerName) }
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
// Factory ensures each business operation gets a fresh unit of work instance
// with proper isolation from other concurrent operations.
type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	publisher ports.OrderEventPublisher
	logger    *slog.Logger
	tracer    trace.Tracer
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
func NewGormUnitOfWorkFactory(db *gorm.DB, opts ...Option) *GormUnitOfWorkFactory {
	f := &GormUnitOfWorkFactory{
		db:     db,
		logger: slog.Default(),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create produces a new UnitOfWork instance ready for business transaction management.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return f.CreateGorm()
}

// CreateGorm is Create returning the concrete type.
func (f *GormUnitOfWorkFactory) CreateGorm() *GormUnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		publisher:         f.publisher,
		logger:            f.logger,
		tracer:            f.tracer,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and tracks the aggregates
// its repositories wrote. It is not safe for concurrent use.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	span              trace.Span
	publisher         ports.OrderEventPublisher
	logger            *slog.Logger
	tracer            trace.Tracer
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction for the unit of work.
// Multiple calls to Begin on the same instance are safe and will not create nested transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	ctx, span := uow.tracer.Start(ctx, "uow.transaction", trace.WithSpanKind(trace.SpanKindInternal))

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		span.RecordError(err)
		span.SetStatus(codes.Error, "begin failed")
		span.End()
		return err
	}

	uow.span = span
	return nil
}

// Commit finalizes the transaction and then publishes the events of every tracked
// order. Publish failures are logged; the data is already committed.
//
// Returns error if no active transaction exists or if the commit operation fails.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	uow.endSpan(err, "commit")
	if err != nil {
		uow.trackedAggregates = uow.trackedAggregates[:0]
		return err
	}

	uow.publishEvents(ctx)
	return nil
}

// Rollback discards all changes made within the current transaction and forgets
// the tracked aggregates. It returns gorm.ErrInvalidTransaction when no transaction
// is active, which is the normal case for the deferred rollback after a commit.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	uow.endSpan(err, "rollback")
	return err
}

// CustomerRepository returns the customer repository bound to the current transaction,
// or to the plain connection when none is active.
func (uow *GormUnitOfWork) CustomerRepository() ports.CustomerRepository {
	return customerrepo.NewGormCustomerRepository(uow.conn(), uow)
}

// ProductRepository returns the product repository bound to the current transaction,
// or to the plain connection when none is active.
func (uow *GormUnitOfWork) ProductRepository() ports.ProductRepository {
	return productrepo.NewGormProductRepository(uow.conn(), uow)
}

// OrderRepository returns the order repository bound to the current transaction,
// or to the plain connection when none is active.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// TrackAggregate registers a domain aggregate as modified within this unit of work.
// Repositories call it after every successful write.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) endSpan(err error, operation string) {
	if uow.span == nil {
		return
	}
	if err != nil {
		uow.span.RecordError(err)
		uow.span.SetStatus(codes.Error, operation+" failed")
	} else if operation == "rollback" {
		uow.span.SetStatus(codes.Error, "rolled back")
	} else {
		uow.span.SetStatus(codes.Ok, "committed")
	}
	uow.span.End()
	uow.span = nil
}

func (uow *GormUnitOfWork) publishEvents(ctx context.Context) {
	tracked := uow.trackedAggregates
	uow.trackedAggregates = make([]trackedAggregate, 0)

	var events []order.Event
	for _, t := range tracked {
		if o, ok := t.Aggregate.(*order.Order); ok {
			events = append(events, o.DrainEvents()...)
		}
	}
	if len(events) == 0 || uow.publisher == nil {
		return
	}

	if err := uow.publisher.Publish(ctx, events); err != nil {
		uow.logger.ErrorContext(ctx, "failed to publish order events",
			slog.Int("events", len(events)),
			slog.Any("error", err),
		)
	}
}
