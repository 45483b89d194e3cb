package queries

import (
	"context"
)

type GetActivePackingSessionQueryHandler struct {
	readers ReaderFactory
}

func NewGetActivePackingSessionQueryHandler(readers ReaderFactory) GetActivePackingSessionQueryHandler {
	return GetActivePackingSessionQueryHandler{readers: readers}
}

// Handle returns nil without error when the order has no session in progress.
// An unknown order is reported as not found.
func (h GetActivePackingSessionQueryHandler) Handle(
	ctx context.Context,
	query GetActivePackingSessionQuery,
) (*PackingSessionView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	uow := h.readers.Create()
	if _, err := uow.OrderRepository().Get(ctx, query.OrderID()); err != nil {
		return nil, err
	}

	session, err := uow.PackingSessionRepository().GetActiveByOrder(ctx, query.OrderID())
	if err != nil || session == nil {
		return nil, err
	}

	view := NewPackingSessionView(session)
	return &view, nil
}
