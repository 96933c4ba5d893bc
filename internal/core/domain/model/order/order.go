package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

const maxNotesLength = 1000

// ErrOrderIsNotConstructed is returned when an Order was not built by NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// Order is the aggregate root for a customer's purchase. It owns its line items
// exclusively and references the customer and products only by id.
//
// Invariants:
//   - total always equals the sum of item subtotals; RecalculateTotal runs after
//     every item mutation
//   - items can be added or removed only while the order is PENDING
//   - a stored order has at least one item; removing the last one is rejected
//   - status changes follow the transition table on Status; CONFIRMED, SHIPPED
//     and DELIVERED stamp the payment, shipping and delivery times
//
// Order does not touch product stock. Reservation and restock around these
// operations are performed by services.InventoryReconciler.
type Order struct {
	id              kernel.UUID
	customerID      kernel.UUID
	status          Status
	items           []*Item
	total           kernel.Money
	shippingAddress kernel.Address
	notes           string
	orderDate       time.Time
	paymentDate     *time.Time
	shippingDate    *time.Time
	deliveryDate    *time.Time

	// restored is set for orders loaded from storage; only those report item events.
	restored bool
	events   []Event
	guard    guard.ConstructorGuard
}

// NewOrder creates an empty PENDING order placed at orderDate. Items are added with
// AddItem before the order is stored.
//
//	o, err := order.NewOrder(kernel.NewUUID(), customerID, shipping, "leave at the door", now)
//	if err != nil {
//	    return nil, err
//	}
//	item, _ := order.NewItem(kernel.NewUUID(), productID, 2, price)
//	err = o.AddItem(item)
func NewOrder(
	id, customerID kernel.UUID,
	shippingAddress kernel.Address,
	notes string,
	orderDate time.Time,
) (*Order, error) {
	o := &Order{
		status:    Pending,
		orderDate: orderDate.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setShippingAddress(shippingAddress),
		o.setNotes(notes),
	); err != nil {
		return nil, err
	}

	o.record(Event{Type: EventCreated, OccurredAt: o.orderDate})
	return o, nil
}

// RestoreParams is the persisted state of an Order.
type RestoreParams struct {
	ID              kernel.UUID
	CustomerID      kernel.UUID
	Status          Status
	Items           []*Item
	ShippingAddress kernel.Address
	Notes           string
	OrderDate       time.Time
	PaymentDate     *time.Time
	ShippingDate    *time.Time
	DeliveryDate    *time.Time
}

// RestoreOrder rebuilds an Order loaded from storage. The total is recomputed from
// the items rather than trusted from storage.
func RestoreOrder(p RestoreParams) (*Order, error) {
	o := &Order{
		orderDate:    p.OrderDate.UTC(),
		paymentDate:  utcPtr(p.PaymentDate),
		shippingDate: utcPtr(p.ShippingDate),
		deliveryDate: utcPtr(p.DeliveryDate),
		restored:     true,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(p.ID),
		o.setCustomerID(p.CustomerID),
		o.setStatus(p.Status),
		o.setShippingAddress(p.ShippingAddress),
		o.setNotes(p.Notes),
		o.setItems(p.Items),
	); err != nil {
		return nil, err
	}

	o.RecalculateTotal()
	return o, nil
}

// Validate fails for orders that bypassed the constructors.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// ValidateItems fails with an InvalidStateError when the order has no items.
// Repositories call it before writing.
func (o *Order) ValidateItems() error {
	if len(o.items) == 0 {
		return errs.NewInvalidStateError("order", "an order must contain at least one item")
	}
	return nil
}

// IsEqual compares orders by id.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID                 { return o.id }
func (o *Order) CustomerID() kernel.UUID         { return o.customerID }
func (o *Order) Status() Status                  { return o.status }
func (o *Order) Total() kernel.Money             { return o.total }
func (o *Order) ShippingAddress() kernel.Address { return o.shippingAddress }
func (o *Order) Notes() string                   { return o.notes }
func (o *Order) OrderDate() time.Time            { return o.orderDate }
func (o *Order) PaymentDate() *time.Time         { return o.paymentDate }
func (o *Order) ShippingDate() *time.Time        { return o.shippingDate }
func (o *Order) DeliveryDate() *time.Time        { return o.deliveryDate }

// Items returns the order lines in insertion order. The slice is a copy; the items
// themselves must not be mutated by callers.
func (o *Order) Items() []*Item {
	return append([]*Item(nil), o.items...)
}

// FindItem returns the line with the given id.
func (o *Order) FindItem(itemID kernel.UUID) (*Item, bool) {
	for _, item := range o.items {
		if item.id.IsEqual(itemID) {
			return item, true
		}
	}
	return nil, false
}

// FindItemByProduct returns the line for productID. There is at most one.
func (o *Order) FindItemByProduct(productID kernel.UUID) (*Item, bool) {
	for _, item := range o.items {
		if item.productID.IsEqual(productID) {
			return item, true
		}
	}
	return nil, false
}

// AddItem appends a new line, attaches it to this order and recomputes the total.
//
// Each product has at most one line per order: adding a second line for the same
// product is rejected, callers increase the existing line with IncreaseItemQuantity.
func (o *Order) AddItem(item *Item) error {
	if err := o.ensurePending("add items"); err != nil {
		return err
	}
	if err := item.Validate(); err != nil {
		return err
	}
	if _, exists := o.FindItemByProduct(item.productID); exists {
		return errs.NewValueIsInvalidErrorWithCause(
			"product id", fmt.Errorf("order already has a line for product %s", item.productID))
	}

	item.attachTo(o.id)
	o.items = append(o.items, item)
	o.RecalculateTotal()

	if o.restored {
		o.record(Event{
			Type:      EventItemAdded,
			ItemID:    item.id,
			ProductID: item.productID,
			Quantity:  item.quantity,
		})
	}
	return nil
}

// IncreaseItemQuantity adds delta units to the existing line for productID. The
// line keeps the unit price it was created with.
func (o *Order) IncreaseItemQuantity(productID kernel.UUID, delta int) (*Item, error) {
	if err := o.ensurePending("add items"); err != nil {
		return nil, err
	}
	item, ok := o.FindItemByProduct(productID)
	if !ok {
		return nil, errs.NewObjectNotFoundError("order item for product", productID.String())
	}
	if err := item.increaseQuantity(delta); err != nil {
		return nil, err
	}
	o.RecalculateTotal()

	if o.restored {
		o.record(Event{
			Type:      EventItemAdded,
			ItemID:    item.id,
			ProductID: item.productID,
			Quantity:  delta,
		})
	}
	return item, nil
}

// RemoveItem removes the line with itemID and recomputes the total. The removed
// item keeps its order id. Removing the last line fails with an InvalidStateError
// and leaves the order untouched.
func (o *Order) RemoveItem(itemID kernel.UUID) (*Item, error) {
	if err := o.ensurePending("remove items"); err != nil {
		return nil, err
	}

	idx := -1
	for i, item := range o.items {
		if item.id.IsEqual(itemID) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, errs.NewObjectNotFoundError("order item", itemID.String())
	}
	if len(o.items) == 1 {
		return nil, errs.NewInvalidStateError("order", "cannot remove the last item of an order")
	}

	removed := o.items[idx]
	o.items = append(o.items[:idx:idx], o.items[idx+1:]...)
	o.RecalculateTotal()

	o.record(Event{
		Type:      EventItemRemoved,
		ItemID:    removed.id,
		ProductID: removed.productID,
		Quantity:  removed.quantity,
	})
	return removed, nil
}

// RecalculateTotal sets total to the sum of item subtotals.
func (o *Order) RecalculateTotal() {
	total := kernel.Zero()
	for _, item := range o.items {
		total = total.Add(item.subtotal)
	}
	o.total = total
}

// ChangeStatus moves the order to the given status if the transition table allows it
// and stamps the matching timestamp:
//   - CONFIRMED stamps the payment date
//   - SHIPPED stamps the shipping date
//   - DELIVERED stamps the delivery date
//
// CANCELLED stamps nothing; restocking is the caller's job.
func (o *Order) ChangeStatus(to Status, now time.Time) error {
	next, err := o.status.TransitionTo(to)
	if err != nil {
		return err
	}

	stamp := now.UTC()
	switch next {
	case Confirmed:
		o.paymentDate = &stamp
	case Shipped:
		o.shippingDate = &stamp
	case Delivered:
		o.deliveryDate = &stamp
	default:
	}

	from := o.status
	o.status = next
	o.record(Event{Type: EventStatusChanged, From: from, To: next, OccurredAt: stamp})
	return nil
}

// IsDeletable reports whether the order may be deleted: only PENDING and
// CANCELLED orders can.
func (o *Order) IsDeletable() bool {
	return o.status == Pending || o.status == Cancelled
}

// MarkDeleted checks that the order may be deleted and records the deletion event.
// The repository removes the rows.
func (o *Order) MarkDeleted(now time.Time) error {
	if !o.IsDeletable() {
		return errs.NewInvalidStateError("order",
			fmt.Sprintf("only PENDING or CANCELLED orders can be deleted, status is %s", o.status))
	}
	o.record(Event{Type: EventDeleted, OccurredAt: now.UTC()})
	return nil
}

// IsPendingSince reports whether the order is PENDING and was placed before cutoff.
func (o *Order) IsPendingSince(cutoff time.Time) bool {
	return o.status == Pending && o.orderDate.Before(cutoff)
}

func (o *Order) ensurePending(action string) error {
	if o.status != Pending {
		return errs.NewInvalidStateError("order",
			fmt.Sprintf("can only %s while PENDING, status is %s", action, o.status))
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer id", err)
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setShippingAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.shippingAddress = address
	return nil
}

func (o *Order) setNotes(notes string) error {
	notes = strings.TrimSpace(notes)
	if len(notes) > maxNotesLength {
		return errs.NewValueIsOutOfRangeError("notes length", len(notes), 0, maxNotesLength)
	}
	o.notes = notes
	return nil
}

func (o *Order) setItems(items []*Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	restored := make([]*Item, 0, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		if !o.id.IsEqual(kernel.UUID{}) && !item.orderID.IsEqual(o.id) {
			return errs.NewValueIsInvalidErrorWithCause(
				"items", fmt.Errorf("item %s belongs to order %s", item.id, item.orderID))
		}
		restored = append(restored, item)
	}
	o.items = restored
	return nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
