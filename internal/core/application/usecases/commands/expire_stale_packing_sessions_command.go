package commands

import (
	"errors"
	"math"
	"time"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrExpireStalePackingSessionsCommandIsNotConstructed = errors.New(
	"ExpireStalePackingSessionsCommand must be created via NewExpireStalePackingSessionsCommand constructor",
)

// ExpireStalePackingSessionsCommand cancels sessions left in progress for longer
// than olderThan.
type ExpireStalePackingSessionsCommand struct { //nolint:recvcheck //using for validation
	olderThan time.Duration

	guard guard.ConstructorGuard
}

func NewExpireStalePackingSessionsCommand(olderThan time.Duration) (ExpireStalePackingSessionsCommand, error) {
	if olderThan <= 0 {
		return ExpireStalePackingSessionsCommand{}, errs.NewValueIsOutOfRangeError(
			"session ttl", olderThan, time.Duration(1), time.Duration(math.MaxInt64),
		)
	}

	return ExpireStalePackingSessionsCommand{
		olderThan: olderThan,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ExpireStalePackingSessionsCommand) Validate() error {
	return c.guard.Validate(ErrExpireStalePackingSessionsCommandIsNotConstructed)
}

func (c ExpireStalePackingSessionsCommand) OlderThan() time.Duration {
	return c.olderThan
}
