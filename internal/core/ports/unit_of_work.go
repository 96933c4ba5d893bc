package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork for every command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is one business transaction. Repositories obtained from it after Begin
// share the transaction; everything they write commits or rolls back together.
//
// Handlers follow the same shape:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//	// ... repository calls
//	return uow.Commit(ctx)
//
// Rollback after a successful Commit is a harmless no-op error. A UnitOfWork must
// not be shared between goroutines.
type UnitOfWork interface {
	// Begin starts the transaction. Calling it twice is a no-op.
	Begin(ctx context.Context) error

	// Commit commits the transaction and then publishes the events recorded by the
	// aggregates the repositories wrote.
	Commit(ctx context.Context) error

	// Rollback discards the transaction and the recorded events.
	Rollback(ctx context.Context) error

	CustomerRepository() CustomerRepository
	ProductRepository() ProductRepository
	OrderRepository() OrderRepository
}
