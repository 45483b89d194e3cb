package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(id, testCustomer(), testAddress(), testItems(t))
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, id, cmd.OrderID())
	assert.Equal(t, testCustomer(), cmd.Customer())
	assert.Equal(t, testAddress(), cmd.Address())
	assert.Len(t, cmd.Items(), 1)
	assert.False(t, cmd.PaymentConfirmed())
	assert.True(t, cmd.WithPaymentConfirmed().PaymentConfirmed())
}

func TestNewCreateOrderCommand_InvalidOrderID(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.UUID{}, testCustomer(), testAddress(), testItems(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewCreateOrderCommand_NoItems(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), testCustomer(), testAddress(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestCreateOrderCommand_NotConstructed(t *testing.T) {
	assert.ErrorIs(t, commands.CreateOrderCommand{}.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
}

func TestNewShipOrderCommand(t *testing.T) {
	t.Run("should trim carrier and tracking id", func(t *testing.T) {
		cmd, err := commands.NewShipOrderCommand(kernel.NewUUID(), " DTDC ", " T123 ")

		require.NoError(t, err)
		assert.Equal(t, order.Shipping{Carrier: "DTDC", TrackingID: "T123"}, cmd.Shipping())
	})

	t.Run("should require carrier and tracking id", func(t *testing.T) {
		_, err := commands.NewShipOrderCommand(kernel.NewUUID(), "", "  ")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "carrier")
		assert.Contains(t, err.Error(), "tracking id")
	})

	t.Run("should reject zero value", func(t *testing.T) {
		assert.ErrorIs(t, commands.ShipOrderCommand{}.Validate(), commands.ErrShipOrderCommandIsNotConstructed)
	})
}

func TestNewUpdateOrderStatusCommand(t *testing.T) {
	_, err := commands.NewUpdateOrderStatusCommand(kernel.NewUUID(), order.Unknown)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

	cmd, err := commands.NewUpdateOrderStatusCommand(kernel.NewUUID(), order.Delivered)
	require.NoError(t, err)
	assert.Equal(t, order.Delivered, cmd.Status())
}

func TestNewCancelOrderCommand(t *testing.T) {
	cmd, err := commands.NewCancelOrderCommand(kernel.NewUUID(), "  customer request ")
	require.NoError(t, err)
	assert.Equal(t, "customer request", cmd.Reason())

	_, err = commands.NewCancelOrderCommand(kernel.UUID{}, "x")
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewDeliverOrderCommand(t *testing.T) {
	_, err := commands.NewDeliverOrderCommand(kernel.UUID{})
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	assert.ErrorIs(t, commands.DeliverOrderCommand{}.Validate(), commands.ErrDeliverOrderCommandIsNotConstructed)
}
