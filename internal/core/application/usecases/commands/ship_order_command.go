package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrShipOrderCommandIsNotConstructed = errors.New(
	"ShipOrderCommand must be created via NewShipOrderCommand constructor",
)

// ShipOrderCommand hands a packed order to a carrier.
//
// Example:
//
//	cmd, err := NewShipOrderCommand(orderID, "DTDC", "T123")
//	if err != nil {
//	    return err // carrier and tracking id are required
//	}
//	shipped, err := handler.Handle(ctx, cmd)
type ShipOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	shipping order.Shipping

	guard guard.ConstructorGuard
}

func NewShipOrderCommand(orderID kernel.UUID, carrier, trackingID string) (ShipOrderCommand, error) {
	cmd := ShipOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setShipping(carrier, trackingID),
	); err != nil {
		return ShipOrderCommand{}, err
	}

	return cmd, nil
}

func (c ShipOrderCommand) Validate() error {
	return c.guard.Validate(ErrShipOrderCommandIsNotConstructed)
}

func (c ShipOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ShipOrderCommand) Shipping() order.Shipping {
	return c.shipping
}

func (c *ShipOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ShipOrderCommand) setShipping(carrier, trackingID string) error {
	shipping := order.Shipping{
		Carrier:    strings.TrimSpace(carrier),
		TrackingID: strings.TrimSpace(trackingID),
	}
	if err := shipping.Validate(); err != nil {
		return err
	}

	c.shipping = shipping
	return nil
}
