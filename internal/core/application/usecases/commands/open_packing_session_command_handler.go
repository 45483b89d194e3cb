package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/packing"
	"fulfillment/internal/pkg/errs"
)

// OpenPackingSessionCommandHandler opens the packing session of a paid order
// and moves the order to in_packing.
//
// Opening is idempotent per order: while a session is in progress every call
// returns that session, whoever asks. Two admins racing to open the same order
// are resolved by the store, which accepts only one active session per order;
// the loser rolls back and returns the winner's session.
//
// Example:
//
//	cmd, _ := NewOpenPackingSessionCommand(orderID, "packer@store.in")
//	session, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("scanning into session %s", session.ID())
type OpenPackingSessionCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
}

func NewOpenPackingSessionCommandHandler(uowFactory UoWFactory, clock kernel.Clock) OpenPackingSessionCommandHandler {
	return OpenPackingSessionCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h *OpenPackingSessionCommandHandler) Handle(
	ctx context.Context,
	cmd OpenPackingSessionCommand,
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

	active, err := sessionRepo.GetActiveByOrder(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if active != nil {
		return active, nil
	}

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	now := h.clock.Now()
	from := o.Status()
	if err = o.StartPacking(now); err != nil {
		return nil, err
	}

	session, err := packing.NewSession(kernel.NewUUID(), o.ID(), cmd.AdminEmail(), now)
	if err != nil {
		return nil, err
	}

	if err = sessionRepo.Add(ctx, session); err != nil {
		if errors.Is(err, errs.ErrObjectAlreadyExists) {
			_ = uow.Rollback(ctx)
			return h.activeAfterConflict(ctx, uow, o.ID(), err)
		}
		return nil, err
	}

	if err = orderRepo.UpdateIfStatus(ctx, o, from); err != nil {
		err = abort(ctx, uow, "packing session", "order", err)
		if errors.Is(err, errs.ErrPreconditionFailed) {
			return h.activeAfterConflict(ctx, uow, o.ID(), err)
		}
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		if errors.Is(err, errs.ErrPreconditionFailed) {
			return h.activeAfterConflict(ctx, uow, o.ID(), err)
		}
		return nil, err
	}

	return session, nil
}

// activeAfterConflict runs after the transaction lost a race and was rolled back.
// The repository is then bound to the store directly, so it sees what the
// winner committed.
func (h *OpenPackingSessionCommandHandler) activeAfterConflict(
	ctx context.Context,
	uow UoW,
	orderID kernel.UUID,
	cause error,
) (*packing.Session, error) {
	active, err := uow.PackingSessionRepository().GetActiveByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if active == nil {
		return nil, errs.NewPreconditionFailedErrorWithCause("order", orderID, order.Paid.String(), cause)
	}
	return active, nil
}
