package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/packing"
)

// CompletePackingSessionCommandHandler completes a session and marks its order
// packed with packed_at equal to the session's completed_at. Both writes share
// one transaction; a second completion of the same session fails on the
// session's status and leaves packed_at alone.
type CompletePackingSessionCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
}

func NewCompletePackingSessionCommandHandler(
	uowFactory UoWFactory,
	clock kernel.Clock,
) CompletePackingSessionCommandHandler {
	return CompletePackingSessionCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h *CompletePackingSessionCommandHandler) Handle(
	ctx context.Context,
	cmd CompletePackingSessionCommand,
) (*packing.Session, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	sessionRepo := uow.PackingSessionRepository()
	orderRepo := uow.OrderRepository()

	session, err := sessionRepo.Get(ctx, cmd.SessionID())
	if err != nil {
		return nil, err
	}

	if err = session.Complete(h.clock.Now()); err != nil {
		return nil, err
	}

	o, err := orderRepo.Get(ctx, session.OrderID())
	if err != nil {
		return nil, err
	}

	if err = o.MarkPacked(*session.CompletedAt()); err != nil {
		return nil, err
	}

	if err = sessionRepo.UpdateIfStatus(ctx, session, packing.InProgress); err != nil {
		return nil, err
	}

	if err = orderRepo.UpdateIfStatus(ctx, o, order.InPacking); err != nil {
		return nil, abort(ctx, uow, "packing session", "order", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return session, nil
}
