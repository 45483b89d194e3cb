package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// EventPublisher delivers order status changes to interested parties such as
// the customer notification service. Delivery is best effort: it runs after
// the change is committed and a failure never undoes the change.
type EventPublisher interface {
	Publish(ctx context.Context, event order.StatusChanged) error
}
