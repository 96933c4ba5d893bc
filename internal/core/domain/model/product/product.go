// Package product contains the Product aggregate and its inventory ledger.
package product

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

const (
	maxNameLength        = 255
	maxDescriptionLength = 500
)

// ErrProductIsNotConstructed is returned when a Product was not built by NewProduct or RestoreProduct.
var ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")

// Product is a catalogue entry with a price and a quantity on hand.
//
// The quantity on hand is the inventory ledger: Reserve takes units out for an
// order line and Release puts them back on cancellation, item removal or deletion
// of a pending order. Quantity never goes below zero.
type Product struct {
	id          kernel.UUID
	name        string
	description string
	price       kernel.Money
	quantity    int
	createdAt   time.Time
	updatedAt   *time.Time
	guard       guard.ConstructorGuard
}

// Details carries the editable product attributes.
type Details struct {
	Name        string
	Description string
	Price       kernel.Money
	Quantity    int
}

// NewProduct validates details and returns a product stamped with createdAt.
func NewProduct(id kernel.UUID, details Details, createdAt time.Time) (*Product, error) {
	p := &Product{
		createdAt: createdAt.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.applyDetails(details),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreParams is the persisted state of a Product.
type RestoreParams struct {
	ID        kernel.UUID
	Details   Details
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// RestoreProduct rebuilds a Product loaded from storage.
func RestoreProduct(rp RestoreParams) (*Product, error) {
	p := &Product{
		createdAt: rp.CreatedAt.UTC(),
		guard:     guard.NewConstructorGuard(),
	}
	if rp.UpdatedAt != nil {
		u := rp.UpdatedAt.UTC()
		p.updatedAt = &u
	}

	if err := errors.Join(
		p.setID(rp.ID),
		p.applyDetails(rp.Details),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// Update replaces name, description, price and quantity and stamps updatedAt.
// Prices already captured on order lines are not affected. On failure the product is unchanged.
func (p *Product) Update(details Details, now time.Time) error {
	next := *p
	if err := next.applyDetails(details); err != nil {
		return err
	}

	stamp := now.UTC()
	next.updatedAt = &stamp
	*p = next
	return nil
}

// Reserve takes qty units out of stock. It fails with an InsufficientStockError
// naming the product when fewer than qty units are on hand, leaving stock unchanged.
func (p *Product) Reserve(qty int) error {
	if qty <= 0 {
		return errs.NewValueIsOutOfRangeError("quantity", qty, 1, "unbounded")
	}
	if p.quantity < qty {
		return errs.NewInsufficientStockError(p.name, qty, p.quantity)
	}
	p.quantity -= qty
	return nil
}

// Release puts qty units back into stock. There is no upper bound.
func (p *Product) Release(qty int) error {
	if qty <= 0 {
		return errs.NewValueIsOutOfRangeError("quantity", qty, 1, "unbounded")
	}
	p.quantity += qty
	return nil
}

// CanReserve reports whether qty units are on hand.
func (p *Product) CanReserve(qty int) bool {
	return qty > 0 && p.quantity >= qty
}

// IsAvailable reports whether at least one unit is on hand.
func (p *Product) IsAvailable() bool {
	return p.quantity > 0
}

// Validate fails for products that bypassed the constructors.
func (p *Product) Validate() error {
	if p == nil {
		return ErrProductIsNotConstructed
	}
	return p.guard.Validate(ErrProductIsNotConstructed)
}

func (p *Product) ID() kernel.UUID         { return p.id }
func (p *Product) Name() string            { return p.name }
func (p *Product) Description() string     { return p.description }
func (p *Product) Price() kernel.Money     { return p.price }
func (p *Product) Quantity() int           { return p.quantity }
func (p *Product) CreatedAt() time.Time    { return p.createdAt }
func (p *Product) UpdatedAt() *time.Time   { return p.updatedAt }
func (p *Product) IsEqual(o *Product) bool { return o != nil && p.id.IsEqual(o.id) }

func (p *Product) applyDetails(d Details) error {
	return errors.Join(
		p.setName(d.Name),
		p.setDescription(d.Description),
		p.setPrice(d.Price),
		p.setQuantity(d.Quantity),
	)
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	if n := utf8.RuneCountInString(name); n > maxNameLength {
		return errs.NewValueIsOutOfRangeError("name length", n, 1, maxNameLength)
	}
	p.name = name
	return nil
}

func (p *Product) setDescription(description string) error {
	description = strings.TrimSpace(description)
	if n := utf8.RuneCountInString(description); n > maxDescriptionLength {
		return errs.NewValueIsOutOfRangeError("description length", n, 0, maxDescriptionLength)
	}
	p.description = description
	return nil
}

func (p *Product) setPrice(price kernel.Money) error {
	if !price.IsPositive() {
		return errs.NewValueIsOutOfRangeError("price", price.String(), "0.01", "unbounded")
	}
	p.price = price
	return nil
}

func (p *Product) setQuantity(quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 0, "unbounded")
	}
	p.quantity = quantity
	return nil
}
