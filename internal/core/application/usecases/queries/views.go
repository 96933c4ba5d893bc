// Package queries holds the read side: query objects built through guarded
// constructors and handlers that read PostgreSQL directly through GORM, bypassing
// the aggregates. Views are the JSON shapes returned to API clients; command
// results are converted to the same views with the FromX mappers.
package queries

import (
	"time"

	"ordering/internal/core/domain/model/customer"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/product"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const moneyDigits = 2

type AddressView struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
}

func addressView(a kernel.Address) AddressView {
	return AddressView{Street: a.Street(), City: a.City(), State: a.State(), ZipCode: a.ZipCode()}
}

// CustomerView is a customer as exposed to clients.
type CustomerView struct {
	ID         uuid.UUID   `json:"id"`
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	Phone      string      `json:"phone"`
	NationalID string      `json:"nationalId"`
	Address    AddressView `json:"address"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  *time.Time  `json:"updatedAt,omitempty"`
}

// FromCustomer maps a loaded aggregate to its view.
func FromCustomer(c *customer.Customer) CustomerView {
	return CustomerView{
		ID:         c.ID().UUID(),
		Name:       c.Name(),
		Email:      c.Email(),
		Phone:      c.Phone(),
		NationalID: c.NationalID(),
		Address:    addressView(c.Address()),
		CreatedAt:  c.CreatedAt(),
		UpdatedAt:  c.UpdatedAt(),
	}
}

// ProductView is a product as exposed to clients.
type ProductView struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       string     `json:"price"`
	Quantity    int        `json:"quantity"`
	Available   bool       `json:"available"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// FromProduct maps a loaded aggregate to its view.
func FromProduct(p *product.Product) ProductView {
	return ProductView{
		ID:          p.ID().UUID(),
		Name:        p.Name(),
		Description: p.Description(),
		Price:       p.Price().String(),
		Quantity:    p.Quantity(),
		Available:   p.IsAvailable(),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
}

type OrderItemView struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
	UnitPrice string    `json:"unitPrice"`
	Subtotal  string    `json:"subtotal"`
}

// OrderView is an order with its lines as exposed to clients.
type OrderView struct {
	ID              uuid.UUID       `json:"id"`
	CustomerID      uuid.UUID       `json:"customerId"`
	Status          string          `json:"status"`
	Total           string          `json:"total"`
	ShippingAddress AddressView     `json:"shippingAddress"`
	Notes           string          `json:"notes,omitempty"`
	OrderDate       time.Time       `json:"orderDate"`
	PaymentDate     *time.Time      `json:"paymentDate,omitempty"`
	ShippingDate    *time.Time      `json:"shippingDate,omitempty"`
	DeliveryDate    *time.Time      `json:"deliveryDate,omitempty"`
	Items           []OrderItemView `json:"items"`
}

// FromOrder maps a loaded aggregate to its view, keeping line order.
func FromOrder(o *order.Order) OrderView {
	items := make([]OrderItemView, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, OrderItemView{
			ID:        item.ID().UUID(),
			ProductID: item.ProductID().UUID(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice().String(),
			Subtotal:  item.Subtotal().String(),
		})
	}
	return OrderView{
		ID:              o.ID().UUID(),
		CustomerID:      o.CustomerID().UUID(),
		Status:          o.Status().String(),
		Total:           o.Total().String(),
		ShippingAddress: addressView(o.ShippingAddress()),
		Notes:           o.Notes(),
		OrderDate:       o.OrderDate(),
		PaymentDate:     o.PaymentDate(),
		ShippingDate:    o.ShippingDate(),
		DeliveryDate:    o.DeliveryDate(),
		Items:           items,
	}
}

type customerRow struct {
	ID         uuid.UUID
	Name       string
	Email      string
	Phone      string
	NationalID string
	Street     string
	City       string
	State      string
	ZipCode    string
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

func (r customerRow) view() CustomerView {
	return CustomerView{
		ID:         r.ID,
		Name:       r.Name,
		Email:      r.Email,
		Phone:      r.Phone,
		NationalID: r.NationalID,
		Address:    AddressView{Street: r.Street, City: r.City, State: r.State, ZipCode: r.ZipCode},
		CreatedAt:  r.CreatedAt.UTC(),
		UpdatedAt:  utc(r.UpdatedAt),
	}
}

type productRow struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       decimal.Decimal
	Quantity    int
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

func (r productRow) view() ProductView {
	return ProductView{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price.StringFixed(moneyDigits),
		Quantity:    r.Quantity,
		Available:   r.Quantity > 0,
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   utc(r.UpdatedAt),
	}
}

type orderRow struct {
	ID              uuid.UUID
	CustomerID      uuid.UUID
	Status          order.Status
	Total           decimal.Decimal
	ShippingStreet  string
	ShippingCity    string
	ShippingState   string
	ShippingZipCode string
	Notes           string
	OrderDate       time.Time
	PaymentDate     *time.Time
	ShippingDate    *time.Time
	DeliveryDate    *time.Time
}

func (r orderRow) view(items []OrderItemView) OrderView {
	if items == nil {
		items = make([]OrderItemView, 0)
	}
	return OrderView{
		ID:         r.ID,
		CustomerID: r.CustomerID,
		Status:     r.Status.String(),
		Total:      r.Total.StringFixed(moneyDigits),
		ShippingAddress: AddressView{
			Street:  r.ShippingStreet,
			City:    r.ShippingCity,
			State:   r.ShippingState,
			ZipCode: r.ShippingZipCode,
		},
		Notes:        r.Notes,
		OrderDate:    r.OrderDate.UTC(),
		PaymentDate:  utc(r.PaymentDate),
		ShippingDate: utc(r.ShippingDate),
		DeliveryDate: utc(r.DeliveryDate),
		Items:        items,
	}
}

type orderItemRow struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ProductID uuid.UUID
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
