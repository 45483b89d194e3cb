package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// ShipOrderCommandHandler moves a packed order to shipped and stamps shipped_at.
// An order that skipped packing is rejected by the status machine.
type ShipOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      kernel.Clock
}

func NewShipOrderCommandHandler(uowFactory OrderUoWFactory, clock kernel.Clock) ShipOrderCommandHandler {
	return ShipOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h *ShipOrderCommandHandler) Handle(ctx context.Context, cmd ShipOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return transitionOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.Ship(cmd.Shipping(), h.clock.Now())
	})
}
