package guard_test

import (
	"errors"
	"testing"

	"fulfillment/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("properly_constructed_guard_returns_nil", func(t *testing.T) {
		// Given
		g := guard.NewConstructorGuard()

		// When
		err := g.Validate(errors.New("not constructed"))

		// Then
		require.NoError(t, err)
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard
		expectedError := errors.New("packing session not constructed")

		// When
		err := g.Validate(expectedError)

		// Then
		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard

		// When
		err := g.Validate(nil)

		// Then
		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

// TestConstructorGuardUsageExample shows the guard embedded in a command-like type.
func TestConstructorGuardUsageExample(t *testing.T) {
	type Shipment struct {
		carrier string
		guard   guard.ConstructorGuard
	}

	errShipmentNotConstructed := errors.New("Shipment must be created via newShipment")

	newShipment := func(carrier string) (Shipment, error) {
		if carrier == "" {
			return Shipment{}, errors.New("carrier is required")
		}
		return Shipment{carrier: carrier, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("valid_construction_through_constructor", func(t *testing.T) {
		s, err := newShipment("DTDC")

		require.NoError(t, err)
		require.NoError(t, s.guard.Validate(errShipmentNotConstructed))
		assert.Equal(t, "DTDC", s.carrier)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var s Shipment

		assert.Equal(t, errShipmentNotConstructed, s.guard.Validate(errShipmentNotConstructed))
	})

	t.Run("constructor_validates_business_rules", func(t *testing.T) {
		_, err := newShipment("")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "carrier is required")
	})
}
