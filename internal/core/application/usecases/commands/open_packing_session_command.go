package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrOpenPackingSessionCommandIsNotConstructed = errors.New(
	"OpenPackingSessionCommand must be created via NewOpenPackingSessionCommand constructor",
)

// OpenPackingSessionCommand starts packing an order on behalf of an admin.
type OpenPackingSessionCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	adminEmail string

	guard guard.ConstructorGuard
}

func NewOpenPackingSessionCommand(orderID kernel.UUID, adminEmail string) (OpenPackingSessionCommand, error) {
	cmd := OpenPackingSessionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setAdminEmail(adminEmail),
	); err != nil {
		return OpenPackingSessionCommand{}, err
	}

	return cmd, nil
}

func (c OpenPackingSessionCommand) Validate() error {
	return c.guard.Validate(ErrOpenPackingSessionCommandIsNotConstructed)
}

func (c OpenPackingSessionCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c OpenPackingSessionCommand) AdminEmail() string {
	return c.adminEmail
}

func (c *OpenPackingSessionCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *OpenPackingSessionCommand) setAdminEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errs.NewValueIsRequiredError("admin email")
	}

	c.adminEmail = email
	return nil
}
