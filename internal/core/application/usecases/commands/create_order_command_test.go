package commands_test

import (
	"testing"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	orderID, customerID, productID := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, customerID,
		[]commands.OrderLine{{ProductID: productID, Quantity: 2}}, kernel.Address{}, "leave at door")
	require.NoError(t, err)
	assert.Equal(t, orderID, cmd.OrderID())
	assert.Equal(t, customerID, cmd.CustomerID())
	assert.Equal(t, []commands.OrderLine{{ProductID: productID, Quantity: 2}}, cmd.Lines())
	assert.True(t, cmd.ShippingAddress().IsEmpty())
	assert.Equal(t, "leave at door", cmd.Notes())
	require.NoError(t, cmd.Validate())
}

func TestNewCreateOrderCommand_MergesDuplicateProducts(t *testing.T) {
	laptop, mouse := kernel.NewUUID(), kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), []commands.OrderLine{
		{ProductID: laptop, Quantity: 1},
		{ProductID: mouse, Quantity: 3},
		{ProductID: laptop, Quantity: 2},
	}, kernel.Address{}, "")
	require.NoError(t, err)
	assert.Equal(t, []commands.OrderLine{
		{ProductID: laptop, Quantity: 3},
		{ProductID: mouse, Quantity: 3},
	}, cmd.Lines())
}

func TestNewCreateOrderCommand_EmptyItems(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), nil, kernel.Address{}, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewCreateOrderCommand_NonPositiveQuantity(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(),
		[]commands.OrderLine{{ProductID: kernel.NewUUID(), Quantity: 0}}, kernel.Address{}, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestNewCreateOrderCommand_InvalidOrderID(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.UUID{}, kernel.NewUUID(),
		[]commands.OrderLine{{ProductID: kernel.NewUUID(), Quantity: 1}}, kernel.Address{}, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewCreateOrderCommand_JoinsErrors(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.UUID{}, kernel.UUID{}, nil, kernel.Address{}, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestCreateOrderCommand_LinesIsACopy(t *testing.T) {
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(),
		[]commands.OrderLine{{ProductID: kernel.NewUUID(), Quantity: 1}}, kernel.Address{}, "")
	require.NoError(t, err)
	cmd.Lines()[0].Quantity = 99
	assert.Equal(t, 1, cmd.Lines()[0].Quantity)
}

func TestCreateOrderCommand_NotConstructed(t *testing.T) {
	var cmd commands.CreateOrderCommand
	assert.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
}
