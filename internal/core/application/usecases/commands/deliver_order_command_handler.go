package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// DeliverOrderCommandHandler moves a shipped order to delivered.
type DeliverOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      kernel.Clock
}

func NewDeliverOrderCommandHandler(uowFactory OrderUoWFactory, clock kernel.Clock) DeliverOrderCommandHandler {
	return DeliverOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h *DeliverOrderCommandHandler) Handle(ctx context.Context, cmd DeliverOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return transitionOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.Deliver(h.clock.Now())
	})
}
