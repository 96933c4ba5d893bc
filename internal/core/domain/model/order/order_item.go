package order

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

// ErrItemIsNotConstructed is returned when an Item was not built by NewItem or RestoreItem.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is an order line: a quantity of one product at the unit price captured
// when the line was created. It lives only inside its Order.
//
// The unit price never changes after creation, so later catalogue price changes do
// not rewrite historical subtotals.
type Item struct {
	id        kernel.UUID
	orderID   kernel.UUID
	productID kernel.UUID
	quantity  int
	unitPrice kernel.Money
	subtotal  kernel.Money
	guard     guard.ConstructorGuard
}

// NewItem creates a line not yet attached to an order. Order.AddItem attaches it.
func NewItem(id, productID kernel.UUID, quantity int, unitPrice kernel.Money) (*Item, error) {
	item := &Item{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setID(id),
		item.setProductID(productID),
		item.setUnitPrice(unitPrice),
		item.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// RestoreItem rebuilds a line of orderID loaded from storage.
func RestoreItem(id, orderID, productID kernel.UUID, quantity int, unitPrice kernel.Money) (*Item, error) {
	item, err := NewItem(id, productID, quantity, unitPrice)
	if err != nil {
		return nil, err
	}
	if err = orderID.Validate(); err != nil {
		return nil, err
	}
	item.orderID = orderID
	return item, nil
}

func (i *Item) ID() kernel.UUID         { return i.id }
func (i *Item) OrderID() kernel.UUID    { return i.orderID }
func (i *Item) ProductID() kernel.UUID  { return i.productID }
func (i *Item) Quantity() int           { return i.quantity }
func (i *Item) UnitPrice() kernel.Money { return i.unitPrice }
func (i *Item) Subtotal() kernel.Money  { return i.subtotal }

// Validate fails for items that bypassed the constructors.
func (i *Item) Validate() error {
	if i == nil {
		return ErrItemIsNotConstructed
	}
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i *Item) attachTo(orderID kernel.UUID) {
	i.orderID = orderID
}

func (i *Item) increaseQuantity(delta int) error {
	if delta <= 0 {
		return errs.NewValueIsOutOfRangeError("quantity", delta, 1, "unbounded")
	}
	return i.setQuantity(i.quantity + delta)
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	i.productID = productID
	return nil
}

func (i *Item) setUnitPrice(price kernel.Money) error {
	if !price.IsPositive() {
		return errs.NewValueIsOutOfRangeError("unit price", price.String(), "0.01", "unbounded")
	}
	i.unitPrice = price
	return nil
}

// setQuantity recomputes the subtotal; it must run after setUnitPrice.
func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}
	subtotal, err := i.unitPrice.Multiply(quantity)
	if err != nil {
		return err
	}
	i.quantity = quantity
	i.subtotal = subtotal
	return nil
}
