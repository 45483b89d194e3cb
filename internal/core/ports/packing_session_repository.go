package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/packing"
)

// PackingSessionRepository defines the persistence contract for packing sessions.
type PackingSessionRepository interface {
	// Add inserts a new session. If the order already has an InProgress session
	// the store rejects the insert with *errs.ObjectAlreadyExistsError; this is
	// the only guard against two admins opening sessions at the same time.
	Add(ctx context.Context, session *packing.Session) error

	// Get retrieves a session by id, or *errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*packing.Session, error)

	// GetActiveByOrder returns the InProgress session of the order.
	// No active session is not an error: it returns (nil, nil).
	GetActiveByOrder(ctx context.Context, orderID kernel.UUID) (*packing.Session, error)

	// UpdateIfStatus writes the session only if the stored one still has the
	// expected status and session.Version(). On success the session's version
	// is advanced. Returns *errs.PreconditionFailedError otherwise.
	UpdateIfStatus(ctx context.Context, session *packing.Session, expected packing.Status) error

	// ListActiveStartedBefore lists InProgress sessions started before cutoff,
	// oldest first.
	ListActiveStartedBefore(ctx context.Context, cutoff time.Time) ([]*packing.Session, error)
}
