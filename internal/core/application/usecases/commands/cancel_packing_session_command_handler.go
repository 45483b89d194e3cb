package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/packing"
)

// CancelPackingSessionCommandHandler cancels a session and rolls its order back
// from in_packing to paid in one transaction.
type CancelPackingSessionCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
}

func NewCancelPackingSessionCommandHandler(
	uowFactory UoWFactory,
	clock kernel.Clock,
) CancelPackingSessionCommandHandler {
	return CancelPackingSessionCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h *CancelPackingSessionCommandHandler) Handle(
	ctx context.Context,
	cmd CancelPackingSessionCommand,
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

	now := h.clock.Now()
	if err = session.Cancel(cmd.Reason(), now); err != nil {
		return nil, err
	}

	o, err := orderRepo.Get(ctx, session.OrderID())
	if err != nil {
		return nil, err
	}

	if err = o.ReturnToPaid(now, cmd.Reason()); err != nil {
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
