package guard_test

import (
	"errors"
	"sync"
	"testing"

	"ordering/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	t.Run("creates_properly_constructed_guard", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("test object not constructed")))
		require.NoError(t, g.Validate(nil))
	})
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expectedError := errors.New("command not constructed")

		err := g.Validate(expectedError)

		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

func TestConstructorGuardEmbeddedInCommand(t *testing.T) {
	errNotConstructed := errors.New("DeleteOrderCommand must be created via NewDeleteOrderCommand")

	type deleteOrderCommand struct {
		orderID string
		guard   guard.ConstructorGuard
	}

	newCommand := func(orderID string) (deleteOrderCommand, error) {
		if orderID == "" {
			return deleteOrderCommand{}, errors.New("order id is required")
		}
		return deleteOrderCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed_command_is_valid", func(t *testing.T) {
		cmd, err := newCommand("42")
		require.NoError(t, err)
		require.NoError(t, cmd.guard.Validate(errNotConstructed))
	})

	t.Run("literal_command_is_rejected", func(t *testing.T) {
		cmd := deleteOrderCommand{orderID: "42"}
		require.ErrorIs(t, cmd.guard.Validate(errNotConstructed), errNotConstructed)
	})

	t.Run("failed_constructor_returns_zero_value", func(t *testing.T) {
		cmd, err := newCommand("")
		require.Error(t, err)
		require.ErrorIs(t, cmd.guard.Validate(errNotConstructed), errNotConstructed)
	})
}

func TestConstructorGuardConcurrency(t *testing.T) {
	g := guard.NewConstructorGuard()
	validationError := errors.New("not constructed")

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, g.Validate(validationError))
		}()
	}
	wg.Wait()
}
