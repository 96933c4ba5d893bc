// Package services holds domain services that coordinate more than one aggregate.
package services

import (
	"errors"
	"fmt"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/product"
	"ordering/internal/pkg/errs"
)

// InventoryReconciler keeps product stock in step with order lines. Every
// operation either applies both the order change and the stock change or leaves
// both untouched; on an order-side failure a reservation already taken is released.
//
// Callers load the products involved with a row lock and persist both the order
// and the products in the same unit of work.
//
//	reconciler := services.NewInventoryReconciler()
//	item, err := reconciler.PlaceItem(o, laptop, 2)
//	if err != nil {
//	    return err // laptop stock and o are unchanged
//	}
type InventoryReconciler struct {
	newItemID func() kernel.UUID
}

// NewInventoryReconciler returns a reconciler that gives new order lines random ids.
func NewInventoryReconciler() InventoryReconciler {
	return InventoryReconciler{newItemID: kernel.NewUUID}
}

// PlaceItem reserves quantity units of p for o. When o already has a line for p the
// line grows by quantity and keeps its captured unit price; otherwise a new line is
// created at p's current price. Only the added quantity is checked against stock.
func (r InventoryReconciler) PlaceItem(o *order.Order, p *product.Product, quantity int) (*order.Item, error) {
	if err := errors.Join(o.Validate(), p.Validate()); err != nil {
		return nil, err
	}
	if o.Status() != order.Pending {
		return nil, errs.NewInvalidStateError("order",
			fmt.Sprintf("can only add items while PENDING, status is %s", o.Status()))
	}

	if _, exists := o.FindItemByProduct(p.ID()); exists {
		return r.growLine(o, p, quantity)
	}
	return r.addLine(o, p, quantity)
}

func (r InventoryReconciler) growLine(o *order.Order, p *product.Product, quantity int) (*order.Item, error) {
	if err := p.Reserve(quantity); err != nil {
		return nil, err
	}
	item, err := o.IncreaseItemQuantity(p.ID(), quantity)
	if err != nil {
		return nil, errors.Join(err, p.Release(quantity))
	}
	return item, nil
}

func (r InventoryReconciler) addLine(o *order.Order, p *product.Product, quantity int) (*order.Item, error) {
	item, err := order.NewItem(r.itemID(), p.ID(), quantity, p.Price())
	if err != nil {
		return nil, err
	}
	if err = p.Reserve(quantity); err != nil {
		return nil, err
	}
	if err = o.AddItem(item); err != nil {
		return nil, errors.Join(err, p.Release(quantity))
	}
	return item, nil
}

// RemoveItem removes the line itemID from o and releases its quantity back to p,
// which must be the line's product. Removing the last line fails and releases nothing.
func (r InventoryReconciler) RemoveItem(o *order.Order, itemID kernel.UUID, p *product.Product) (*order.Item, error) {
	if err := errors.Join(o.Validate(), p.Validate()); err != nil {
		return nil, err
	}
	item, ok := o.FindItem(itemID)
	if !ok {
		return nil, errs.NewObjectNotFoundError("order item", itemID.String())
	}
	if !item.ProductID().IsEqual(p.ID()) {
		return nil, errs.NewValueIsInvalidErrorWithCause("product",
			fmt.Errorf("item %s is for product %s, got %s", itemID, item.ProductID(), p.ID()))
	}

	removed, err := o.RemoveItem(itemID)
	if err != nil {
		return nil, err
	}
	if err = p.Release(removed.Quantity()); err != nil {
		return nil, err
	}
	return removed, nil
}

// ChangeStatus applies the transition and, when moving to CANCELLED, releases every
// line's quantity back to its product. products must then hold every product
// referenced by o's lines, keyed by id; it is ignored for other transitions.
func (r InventoryReconciler) ChangeStatus(
	o *order.Order,
	to order.Status,
	products map[kernel.UUID]*product.Product,
	now time.Time,
) error {
	if err := o.Validate(); err != nil {
		return err
	}
	// Rejected transitions fail on the order before products are consulted.
	if to != order.Cancelled || !o.Status().CanTransitionTo(to) {
		return o.ChangeStatus(to, now)
	}

	if err := requireProducts(o, products); err != nil {
		return err
	}
	if err := o.ChangeStatus(to, now); err != nil {
		return err
	}
	return releaseAll(o, products)
}

// Delete marks o deleted. A PENDING order still holds its reservations, so they are
// released; a CANCELLED order released them on cancellation and is not restocked
// again. products is only read for PENDING orders.
func (r InventoryReconciler) Delete(o *order.Order, products map[kernel.UUID]*product.Product, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}

	holdsStock := o.Status() == order.Pending
	if holdsStock {
		if err := requireProducts(o, products); err != nil {
			return err
		}
	}
	if err := o.MarkDeleted(now); err != nil {
		return err
	}
	if !holdsStock {
		return nil
	}
	return releaseAll(o, products)
}

func (r InventoryReconciler) itemID() kernel.UUID {
	if r.newItemID == nil {
		return kernel.NewUUID()
	}
	return r.newItemID()
}

func requireProducts(o *order.Order, products map[kernel.UUID]*product.Product) error {
	for _, item := range o.Items() {
		p, ok := products[item.ProductID()]
		if !ok {
			return errs.NewObjectNotFoundError("product", item.ProductID().String())
		}
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func releaseAll(o *order.Order, products map[kernel.UUID]*product.Product) error {
	for _, item := range o.Items() {
		if err := products[item.ProductID()].Release(item.Quantity()); err != nil {
			return err
		}
	}
	return nil
}
