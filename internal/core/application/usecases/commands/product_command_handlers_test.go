package commands_test

import (
	"errors"
	"testing"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateProductCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	f := newFixture()
	id := kernel.NewUUID()
	cmd, err := commands.NewCreateProductCommand(id, productDetails(t, "Keyboard", "49.90", 20))
	require.NoError(t, err)

	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.products.On("Add", ctx, mock.AnythingOfType("*product.Product")).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	p, err := commands.NewCreateProductCommandHandler(f.productFactory()).Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, id, p.ID())
	assert.Equal(t, "49.90", p.Price().String())
	assert.Equal(t, 20, p.Quantity())
	f.assertExpectations(t)
}

func TestCreateProductCommandHandler_Handle_InvalidPrice(t *testing.T) {
	ctx := t.Context()
	f := newFixture()
	cmd, err := commands.NewCreateProductCommand(kernel.NewUUID(), productDetails(t, "Keyboard", "0", 20))
	require.NoError(t, err)

	_, err = commands.NewCreateProductCommandHandler(f.productFactory()).Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	f.uow.AssertNotCalled(t, "Begin", mock.Anything)
}

func TestUpdateProductCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	f := newFixture()
	p := newProduct(t, "Keyboard", "49.90", 20)
	cmd, err := commands.NewUpdateProductCommand(p.ID(), productDetails(t, "Keyboard Pro", "59.90", 15))
	require.NoError(t, err)

	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.products.On("GetForUpdate", ctx, p.ID()).Return(p, nil).Once(),
		f.products.On("Update", ctx, p).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	got, err := commands.NewUpdateProductCommandHandler(f.productFactory()).Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, "Keyboard Pro", got.Name())
	assert.Equal(t, "59.90", got.Price().String())
	assert.Equal(t, 15, got.Quantity())
	assert.NotNil(t, got.UpdatedAt())
	f.assertExpectations(t)
}

func TestUpdateProductCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	f := newFixture()
	id := kernel.NewUUID()
	cmd, err := commands.NewUpdateProductCommand(id, productDetails(t, "Keyboard", "10.00", 1))
	require.NoError(t, err)

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.products.On("GetForUpdate", ctx, id).Return(nil, errs.NewObjectNotFoundError("product", id.String())).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	_, err = commands.NewUpdateProductCommandHandler(f.productFactory()).Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestDeleteProductCommandHandler_Handle(t *testing.T) {
	t.Run("unreferenced product is deleted", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture()
		p := newProduct(t, "Keyboard", "49.90", 20)
		cmd, err := commands.NewDeleteProductCommand(p.ID())
		require.NoError(t, err)

		mock.InOrder(
			f.uow.On("Begin", ctx).Return(nil).Once(),
			f.products.On("GetForUpdate", ctx, p.ID()).Return(p, nil).Once(),
			f.orders.On("ExistsForProduct", ctx, p.ID()).Return(false, nil).Once(),
			f.products.On("Delete", ctx, p.ID()).Return(nil).Once(),
			f.uow.On("Commit", ctx).Return(nil).Once(),
			f.uow.On("Rollback", ctx).Return(nil).Once(),
		)

		require.NoError(t, commands.NewDeleteProductCommandHandler(f.productFactory()).Handle(ctx, cmd))
		f.assertExpectations(t)
	})

	t.Run("referenced product is kept", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture()
		p := newProduct(t, "Keyboard", "49.90", 20)
		cmd, err := commands.NewDeleteProductCommand(p.ID())
		require.NoError(t, err)

		f.uow.On("Begin", ctx).Return(nil).Once()
		f.products.On("GetForUpdate", ctx, p.ID()).Return(p, nil).Once()
		f.orders.On("ExistsForProduct", ctx, p.ID()).Return(true, nil).Once()
		f.uow.On("Rollback", ctx).Return(nil).Once()

		err = commands.NewDeleteProductCommandHandler(f.productFactory()).Handle(ctx, cmd)
		require.ErrorIs(t, err, errs.ErrInvalidState)
		f.products.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("lookup failure propagates", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture()
		id := kernel.NewUUID()
		cmd, err := commands.NewDeleteProductCommand(id)
		require.NoError(t, err)

		f.uow.On("Begin", ctx).Return(nil).Once()
		f.products.On("GetForUpdate", ctx, id).Return(nil, errors.New("lock timeout")).Once()
		f.uow.On("Rollback", ctx).Return(nil).Once()

		err = commands.NewDeleteProductCommandHandler(f.productFactory()).Handle(ctx, cmd)
		require.EqualError(t, err, "lock timeout")
	})
}
