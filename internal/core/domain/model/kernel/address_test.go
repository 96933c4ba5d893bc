package kernel_test

import (
	"testing"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress(t *testing.T) {
	t.Run("should create full address", func(t *testing.T) {
		a, err := kernel.NewAddress(" Av. Paulista, 1000 ", "São Paulo", "SP", "01310-100")

		require.NoError(t, err)
		assert.Equal(t, "Av. Paulista, 1000", a.Street())
		assert.Equal(t, "São Paulo", a.City())
		assert.Equal(t, "SP", a.State())
		assert.Equal(t, "01310-100", a.ZipCode())
		assert.False(t, a.IsEmpty())
	})

	t.Run("should accept empty address", func(t *testing.T) {
		a, err := kernel.NewAddress("", "", "", "")

		require.NoError(t, err)
		assert.True(t, a.IsEmpty())
	})

	t.Run("should accept zip without hyphen", func(t *testing.T) {
		_, err := kernel.NewAddress("Rua A", "Rio", "RJ", "20040020")

		require.NoError(t, err)
	})

	tests := []struct {
		name    string
		state   string
		zipCode string
		message string
	}{
		{"lower-case state", "sp", "", "state"},
		{"three-letter state", "SPA", "", "state"},
		{"short zip", "", "0131-100", "zip code"},
		{"letters in zip", "", "ABCDE-123", "zip code"},
	}
	for _, tt := range tests {
		t.Run("should reject "+tt.name, func(t *testing.T) {
			_, err := kernel.NewAddress("Rua A", "Rio", tt.state, tt.zipCode)

			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
			assert.Contains(t, err.Error(), tt.message)
		})
	}

	t.Run("should join multiple errors", func(t *testing.T) {
		_, err := kernel.NewAddress("Rua A", "Rio", "x", "y")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "state")
		assert.Contains(t, err.Error(), "zip code")
	})
}
