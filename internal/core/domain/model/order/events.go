package order

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
)

// EventType names an order domain event. The values double as message types on the
// order events topic.
type EventType string

const (
	EventCreated       EventType = "order.created"
	EventStatusChanged EventType = "order.status_changed"
	EventItemAdded     EventType = "order.item_added"
	EventItemRemoved   EventType = "order.item_removed"
	EventDeleted       EventType = "order.deleted"
)

// Event records something that happened to an order. Item fields are set for item
// events, From and To for status changes. Status, Total and ItemCount are the
// order snapshot taken when the events are drained.
type Event struct {
	Type       EventType
	OrderID    kernel.UUID
	CustomerID kernel.UUID
	OccurredAt time.Time

	From Status
	To   Status

	ItemID    kernel.UUID
	ProductID kernel.UUID
	Quantity  int

	Status    Status
	Total     kernel.Money
	ItemCount int
}

func (o *Order) record(e Event) {
	e.OrderID = o.id
	e.CustomerID = o.customerID
	o.events = append(o.events, e)
}

// DrainEvents returns the recorded events stamped with the current order snapshot
// and clears them. The unit of work calls it after commit.
func (o *Order) DrainEvents() []Event {
	if len(o.events) == 0 {
		return nil
	}

	drained := o.events
	o.events = nil
	for i := range drained {
		drained[i].Status = o.status
		drained[i].Total = o.total
		drained[i].ItemCount = len(o.items)
	}
	return drained
}
