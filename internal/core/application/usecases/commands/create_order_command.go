package commands

import (
	"errors"
	"slices"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// CreateOrderCommand carries an order placed at checkout. Checkout itself lives
// outside the fulfillment service; this command is its boundary.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, customer, address, items)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, kernel.SystemClock{})
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	customer order.Customer
	address  order.ShippingAddress
	items    []order.LineItem
	paid     bool

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the identifier and that at least one line item
// is present. The order aggregate validates the details.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customer order.Customer,
	address order.ShippingAddress,
	items []order.LineItem,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		customer: customer,
		address:  address,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// WithPaymentConfirmed returns a copy of the command for an order whose payment
// was already captured at checkout. Such orders are stored as paid.
func (c CreateOrderCommand) WithPaymentConfirmed() CreateOrderCommand {
	c.paid = true
	return c
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) Customer() order.Customer {
	return c.customer
}

func (c CreateOrderCommand) Address() order.ShippingAddress {
	return c.address
}

func (c CreateOrderCommand) Items() []order.LineItem {
	return slices.Clone(c.items)
}

// PaymentConfirmed reports whether the order is placed as paid.
func (c CreateOrderCommand) PaymentConfirmed() bool {
	return c.paid
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.LineItem) error {
	if len(items) == 0 {
		return order.ErrOrderHasNoItems
	}

	c.items = slices.Clone(items)
	return nil
}
