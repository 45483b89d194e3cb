package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetActivePackingSessionQueryIsNotConstructed = errors.New(
	"GetActivePackingSessionQuery must be created via NewGetActivePackingSessionQuery constructor",
)

// GetActivePackingSessionQuery looks up the in-progress session of an order.
// The active session is always derived from the stored sessions, never cached.
type GetActivePackingSessionQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetActivePackingSessionQuery(orderID kernel.UUID) (GetActivePackingSessionQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetActivePackingSessionQuery{}, err
	}
	return GetActivePackingSessionQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetActivePackingSessionQuery) Validate() error {
	return q.guard.Validate(ErrGetActivePackingSessionQueryIsNotConstructed)
}

func (q GetActivePackingSessionQuery) OrderID() kernel.UUID {
	return q.orderID
}
