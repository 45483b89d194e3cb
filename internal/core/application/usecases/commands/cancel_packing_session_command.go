package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrCancelPackingSessionCommandIsNotConstructed = errors.New(
	"CancelPackingSessionCommand must be created via NewCancelPackingSessionCommand constructor",
)

// CancelPackingSessionCommand abandons a session, for example when the wrong
// box was picked. The order goes back to paid and can be packed again.
type CancelPackingSessionCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID
	reason    string

	guard guard.ConstructorGuard
}

func NewCancelPackingSessionCommand(sessionID kernel.UUID, reason string) (CancelPackingSessionCommand, error) {
	if err := sessionID.Validate(); err != nil {
		return CancelPackingSessionCommand{}, err
	}

	return CancelPackingSessionCommand{
		sessionID: sessionID,
		reason:    strings.TrimSpace(reason),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CancelPackingSessionCommand) Validate() error {
	return c.guard.Validate(ErrCancelPackingSessionCommandIsNotConstructed)
}

func (c CancelPackingSessionCommand) SessionID() kernel.UUID {
	return c.sessionID
}

func (c CancelPackingSessionCommand) Reason() string {
	return c.reason
}
