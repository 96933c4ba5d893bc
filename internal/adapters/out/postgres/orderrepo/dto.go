// Package orderrepo persists the Order aggregate and its items with GORM.
package orderrepo

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders row. Items are stored in order_items and loaded with
// Preload, ordered by Position.
type OrderDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status       int             `gorm:"type:smallint;not null"`
	Total        decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Shipping     AddressDTO      `gorm:"embedded;embeddedPrefix:shipping_"`
	Notes        string          `gorm:"type:varchar(1000)"`
	OrderDate    time.Time       `gorm:"not null"`
	PaymentDate  *time.Time
	ShippingDate *time.Time
	DeliveryDate *time.Time
	Items        []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO is the embedded shipping address.
type AddressDTO struct {
	Street  string `gorm:"type:varchar(200)"`
	City    string `gorm:"type:varchar(100)"`
	State   string `gorm:"type:varchar(2)"`
	ZipCode string `gorm:"type:varchar(9)"`
}

// OrderItemDTO is one order_items row.
type OrderItemDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position  int             `gorm:"type:integer;not null"`
	Quantity  int             `gorm:"type:integer;not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Subtotal  decimal.Decimal `gorm:"type:numeric(14,2);not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(o *order.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(o.Items()))
	for i, item := range o.Items() {
		items = append(items, OrderItemDTO{
			ID:        item.ID().UUID(),
			OrderID:   o.ID().UUID(),
			ProductID: item.ProductID().UUID(),
			Position:  i,
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice().Decimal(),
			Subtotal:  item.Subtotal().Decimal(),
		})
	}

	shipping := o.ShippingAddress()
	return OrderDTO{
		ID:         o.ID().UUID(),
		CustomerID: o.CustomerID().UUID(),
		Status:     int(o.Status()),
		Total:      o.Total().Decimal(),
		Shipping: AddressDTO{
			Street:  shipping.Street(),
			City:    shipping.City(),
			State:   shipping.State(),
			ZipCode: shipping.ZipCode(),
		},
		Notes:        o.Notes(),
		OrderDate:    o.OrderDate(),
		PaymentDate:  o.PaymentDate(),
		ShippingDate: o.ShippingDate(),
		DeliveryDate: o.DeliveryDate(),
		Items:        items,
	}
}

// toDomain rebuilds the aggregate with RestoreOrder. The stored total is ignored;
// RestoreOrder recomputes it from the items.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.FromGoogleUUID(dto.ID)
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.FromGoogleUUID(dto.CustomerID)
	if err != nil {
		return nil, err
	}

	shipping, err := kernel.NewAddress(dto.Shipping.Street, dto.Shipping.City, dto.Shipping.State, dto.Shipping.ZipCode)
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(order.RestoreParams{
		ID:              id,
		CustomerID:      customerID,
		Status:          order.Status(dto.Status),
		Items:           items,
		ShippingAddress: shipping,
		Notes:           dto.Notes,
		OrderDate:       dto.OrderDate,
		PaymentDate:     dto.PaymentDate,
		ShippingDate:    dto.ShippingDate,
		DeliveryDate:    dto.DeliveryDate,
	})
}

func itemToDomain(dto OrderItemDTO) (*order.Item, error) {
	id, err := kernel.FromGoogleUUID(dto.ID)
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.FromGoogleUUID(dto.OrderID)
	if err != nil {
		return nil, err
	}
	productID, err := kernel.FromGoogleUUID(dto.ProductID)
	if err != nil {
		return nil, err
	}
	price, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return nil, err
	}

	return order.RestoreItem(id, orderID, productID, dto.Quantity, price)
}
