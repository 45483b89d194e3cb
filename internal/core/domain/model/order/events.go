package order

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// StatusChanged is raised by every successful order transition. The unit of
// work publishes the events of tracked orders once the transaction commits.
type StatusChanged struct {
	OrderID    kernel.UUID
	From       Status
	To         Status
	OccurredAt time.Time
	Reason     string
	Shipping   *Shipping
}
