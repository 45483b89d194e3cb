package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/packing"
	"fulfillment/internal/pkg/errs"
)

// ExpireStalePackingSessionsCommandHandler cancels abandoned packing sessions
// with reason "expired", returning their orders to paid. Each session is
// cancelled in its own transaction; a session completed or cancelled by an
// admin in the meantime is skipped.
type ExpireStalePackingSessionsCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
	cancel     CancelPackingSessionCommandHandler
}

func NewExpireStalePackingSessionsCommandHandler(
	uowFactory UoWFactory,
	clock kernel.Clock,
) ExpireStalePackingSessionsCommandHandler {
	return ExpireStalePackingSessionsCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		cancel:     NewCancelPackingSessionCommandHandler(uowFactory, clock),
	}
}

// Handle returns the number of sessions it expired. Failures of individual
// sessions are joined into the returned error without stopping the sweep.
func (h *ExpireStalePackingSessionsCommandHandler) Handle(
	ctx context.Context,
	cmd ExpireStalePackingSessionsCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	cutoff := h.clock.Now().Add(-cmd.OlderThan())
	stale, err := h.uowFactory.Create().PackingSessionRepository().ListActiveStartedBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	expired := 0
	var sweepErr error
	for _, session := range stale {
		if ctx.Err() != nil {
			return expired, errors.Join(sweepErr, ctx.Err())
		}

		cancelCmd, cmdErr := NewCancelPackingSessionCommand(session.ID(), packing.ExpiredReason)
		if cmdErr != nil {
			sweepErr = errors.Join(sweepErr, cmdErr)
			continue
		}

		if _, cancelErr := h.cancel.Handle(ctx, cancelCmd); cancelErr != nil {
			if errors.Is(cancelErr, errs.ErrStateTransitionIsInvalid) ||
				errors.Is(cancelErr, errs.ErrPreconditionFailed) {
				continue
			}
			sweepErr = errors.Join(sweepErr, cancelErr)
			continue
		}
		expired++
	}

	return expired, sweepErr
}
