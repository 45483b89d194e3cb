package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrCompletePackingSessionCommandIsNotConstructed = errors.New(
	"CompletePackingSessionCommand must be created via NewCompletePackingSessionCommand constructor",
)

// CompletePackingSessionCommand closes a session once the box is sealed.
type CompletePackingSessionCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCompletePackingSessionCommand(sessionID kernel.UUID) (CompletePackingSessionCommand, error) {
	if err := sessionID.Validate(); err != nil {
		return CompletePackingSessionCommand{}, err
	}

	return CompletePackingSessionCommand{
		sessionID: sessionID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CompletePackingSessionCommand) Validate() error {
	return c.guard.Validate(ErrCompletePackingSessionCommandIsNotConstructed)
}

func (c CompletePackingSessionCommand) SessionID() kernel.UUID {
	return c.sessionID
}
