package ports

import (
	"context"

	"ordering/internal/core/domain/model/order"
)

// OrderEventPublisher delivers order domain events to the outside world. It is
// called after the transaction that produced the events has committed.
type OrderEventPublisher interface {
	Publish(ctx context.Context, events []order.Event) error
}
