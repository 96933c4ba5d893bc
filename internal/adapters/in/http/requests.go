package http

import (
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/customer"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/product"
	"ordering/internal/pkg/errs"
)

type addressRequest struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
}

func (r addressRequest) address() (kernel.Address, error) {
	return kernel.NewAddress(r.Street, r.City, r.State, r.ZipCode)
}

type customerRequest struct {
	Name       string         `json:"name"`
	Email      string         `json:"email"`
	Phone      string         `json:"phone"`
	NationalID string         `json:"nationalId"`
	Address    addressRequest `json:"address"`
}

func (r customerRequest) profile() (customer.Profile, error) {
	address, err := r.Address.address()
	if err != nil {
		return customer.Profile{}, err
	}
	return customer.Profile{
		Name:       r.Name,
		Email:      r.Email,
		Phone:      r.Phone,
		NationalID: r.NationalID,
		Address:    address,
	}, nil
}

type productRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Quantity    int    `json:"quantity"`
}

func (r productRequest) details() (product.Details, error) {
	price, err := kernel.MoneyFromString(r.Price)
	if err != nil {
		return product.Details{}, err
	}
	return product.Details{
		Name:        r.Name,
		Description: r.Description,
		Price:       price,
		Quantity:    r.Quantity,
	}, nil
}

type orderLineRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (r orderLineRequest) line() (commands.OrderLine, error) {
	productID, err := kernel.UUIDFromString(r.ProductID)
	if err != nil {
		return commands.OrderLine{}, errs.NewValueIsInvalidErrorWithCause("productId", err)
	}
	return commands.OrderLine{ProductID: productID, Quantity: r.Quantity}, nil
}

type orderRequest struct {
	CustomerID      string             `json:"customerId"`
	Items           []orderLineRequest `json:"items"`
	ShippingAddress *addressRequest    `json:"shippingAddress"`
	Notes           string             `json:"notes"`
}

// command builds the creation command. A missing shipping address stays empty and
// is filled from the customer by the handler.
func (r orderRequest) command(orderID kernel.UUID) (commands.CreateOrderCommand, error) {
	customerID, err := kernel.UUIDFromString(r.CustomerID)
	if err != nil {
		return commands.CreateOrderCommand{}, errs.NewValueIsInvalidErrorWithCause("customerId", err)
	}

	lines := make([]commands.OrderLine, 0, len(r.Items))
	for _, item := range r.Items {
		line, lineErr := item.line()
		if lineErr != nil {
			return commands.CreateOrderCommand{}, lineErr
		}
		lines = append(lines, line)
	}

	var shipping kernel.Address
	if r.ShippingAddress != nil {
		if shipping, err = r.ShippingAddress.address(); err != nil {
			return commands.CreateOrderCommand{}, err
		}
	}

	return commands.NewCreateOrderCommand(orderID, customerID, lines, shipping, r.Notes)
}

type statusRequest struct {
	Status string `json:"status"`
}
