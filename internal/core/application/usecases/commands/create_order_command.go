package commands

import (
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// OrderLine is one requested {product, quantity} pair.
type OrderLine struct {
	ProductID kernel.UUID
	Quantity  int
}

// CreateOrderCommand places a new order for a customer.
//
// Lines for the same product are merged into one line with the summed quantity,
// keeping the position of the first occurrence. An empty shipping address means
// "ship to the customer's address".
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), customerID, []OrderLine{
//	    {ProductID: laptopID, Quantity: 2},
//	    {ProductID: monitorID, Quantity: 1},
//	}, kernel.Address{}, "")
//	if err != nil {
//	    return fmt.Errorf("invalid order request: %w", err)
//	}
//	o, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	customerID      kernel.UUID
	lines           []OrderLine
	shippingAddress kernel.Address
	notes           string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates ids and lines. At least one line is required and
// every quantity must be positive.
func NewCreateOrderCommand(
	orderID, customerID kernel.UUID,
	lines []OrderLine,
	shippingAddress kernel.Address,
	notes string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		shippingAddress: shippingAddress,
		notes:           notes,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID    { return c.orderID }
func (c CreateOrderCommand) CustomerID() kernel.UUID { return c.customerID }
func (c CreateOrderCommand) Notes() string           { return c.notes }

// Lines returns the merged lines in request order.
func (c CreateOrderCommand) Lines() []OrderLine {
	return append([]OrderLine(nil), c.lines...)
}

// ShippingAddress returns the override; IsEmpty() means none was given.
func (c CreateOrderCommand) ShippingAddress() kernel.Address {
	return c.shippingAddress
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer id", err)
	}
	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setLines(lines []OrderLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	merged := make([]OrderLine, 0, len(lines))
	position := make(map[kernel.UUID]int, len(lines))
	for i, line := range lines {
		if err := line.ProductID.Validate(); err != nil {
			return errs.NewValueIsRequiredErrorWithCause(fmt.Sprintf("items[%d].productId", i), err)
		}
		if line.Quantity <= 0 {
			return errs.NewValueIsOutOfRangeError(fmt.Sprintf("items[%d].quantity", i), line.Quantity, 1, "unbounded")
		}
		if at, seen := position[line.ProductID]; seen {
			merged[at].Quantity += line.Quantity
			continue
		}
		position[line.ProductID] = len(merged)
		merged = append(merged, line)
	}

	c.lines = merged
	return nil
}
