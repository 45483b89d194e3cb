package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
)

// OrderRepository defines the persistence contract for order aggregates.
// Every change of an existing order is a conditional write on its prior status,
// which is what keeps concurrent admin actions linearizable per order.
type OrderRepository interface {
	// Add persists a newly placed order.
	// Returns *errs.ObjectAlreadyExistsError if the id is taken.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its identifier.
	// Returns *errs.ObjectNotFoundError when no order matches.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// UpdateIfStatus writes the aggregate only if the stored order still has the
	// expected status (UPDATE ... WHERE id = ? AND status = ?).
	// Returns *errs.PreconditionFailedError when no row matched.
	//
	// Example:
	//   from := o.Status()
	//   if err := o.Ship(shipping, now); err != nil {
	//       return err
	//   }
	//   if err := repo.UpdateIfStatus(ctx, o, from); err != nil {
	//       return err // another admin moved the order first
	//   }
	UpdateIfStatus(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// ListFacts returns the status, total and creation time of every order.
	ListFacts(ctx context.Context) ([]services.OrderFacts, error)
}
