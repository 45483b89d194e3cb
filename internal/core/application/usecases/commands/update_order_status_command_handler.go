package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// UpdateOrderStatusCommandHandler applies a manual status change. It goes
// through the status machine like every other transition, so edges reserved
// for packing and shipping are refused.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      kernel.Clock
}

func NewUpdateOrderStatusCommandHandler(uowFactory OrderUoWFactory, clock kernel.Clock) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h *UpdateOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateOrderStatusCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return transitionOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.ChangeStatus(cmd.Status(), h.clock.Now())
	})
}
