package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/packing"
)

// UpdateScanProgressCommandHandler merges scanned counts into an active session.
// Counts are bounded by the quantities of the session's order: unknown products
// and over-scans are rejected.
type UpdateScanProgressCommandHandler struct {
	uowFactory UoWFactory
}

func NewUpdateScanProgressCommandHandler(uowFactory UoWFactory) UpdateScanProgressCommandHandler {
	return UpdateScanProgressCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *UpdateScanProgressCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateScanProgressCommand,
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
	session, err := sessionRepo.Get(ctx, cmd.SessionID())
	if err != nil {
		return nil, err
	}

	o, err := uow.OrderRepository().Get(ctx, session.OrderID())
	if err != nil {
		return nil, err
	}

	if err = session.UpdateProgress(cmd.Progress(), o.OrderedQuantities()); err != nil {
		return nil, err
	}

	if err = sessionRepo.UpdateIfStatus(ctx, session, packing.InProgress); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return session, nil
}
