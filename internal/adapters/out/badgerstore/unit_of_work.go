package badgerstore

import (
	"context"
	"errors"
	"log/slog"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/dgraph-io/badger/v4"
)

// ErrNoTransaction is returned by Commit and Rollback without a prior Begin.
var ErrNoTransaction = errors.New("badgerstore: no active transaction")

type UnitOfWorkFactory struct {
	db        *badger.DB
	publisher ports.EventPublisher
	logger    *slog.Logger
}

// NewUnitOfWorkFactory creates a factory for Badger-backed units of work.
// A nil publisher drops domain events.
func NewUnitOfWorkFactory(db *badger.DB, publisher ports.EventPublisher, logger *slog.Logger) *UnitOfWorkFactory {
	if logger == nil {
		logger = slog.Default()
	}
	return &UnitOfWorkFactory{
		db:        db,
		publisher: publisher,
		logger:    logger.With("component", "badger_uow"),
	}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{db: f.db, publisher: f.publisher, logger: f.logger}
}

// UnitOfWork wraps one read-write Badger transaction. Without Begin every
// repository call runs in a transaction of its own.
type UnitOfWork struct {
	db        *badger.DB
	txn       *badger.Txn
	publisher ports.EventPublisher
	logger    *slog.Logger
	tracked   []*order.Order
}

func (u *UnitOfWork) Begin(_ context.Context) error {
	if u.txn != nil {
		return nil
	}
	u.txn = u.db.NewTransaction(true)
	u.tracked = nil
	return nil
}

// Commit commits the transaction and publishes the events of the orders it
// wrote. A conflict with a concurrently committed transaction is reported as
// *errs.PreconditionFailedError.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	if u.txn == nil {
		return ErrNoTransaction
	}

	err := translateCommit(u.txn.Commit())
	u.txn = nil
	if err != nil {
		u.tracked = nil
		return err
	}

	u.publishTracked(ctx)
	return nil
}

func (u *UnitOfWork) Rollback(_ context.Context) error {
	if u.txn == nil {
		return ErrNoTransaction
	}
	u.txn.Discard()
	u.txn = nil
	u.tracked = nil
	return nil
}

func (u *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &OrderRepository{uow: u}
}

func (u *UnitOfWork) PackingSessionRepository() ports.PackingSessionRepository {
	return &PackingSessionRepository{uow: u}
}

// TrackAggregate records an order written through this unit of work.
func (u *UnitOfWork) TrackAggregate(_ kernel.UUID, aggregate any) {
	o, ok := aggregate.(*order.Order)
	if !ok {
		return
	}
	u.tracked = append(u.tracked, o)
	if u.txn == nil {
		u.publishTracked(context.Background())
	}
}

func (u *UnitOfWork) view(fn func(txn *badger.Txn) error) error {
	if u.txn != nil {
		return fn(u.txn)
	}
	return u.db.View(fn)
}

func (u *UnitOfWork) update(fn func(txn *badger.Txn) error) error {
	if u.txn != nil {
		return fn(u.txn)
	}
	return translateCommit(u.db.Update(fn))
}

func (u *UnitOfWork) publishTracked(ctx context.Context) {
	tracked := u.tracked
	u.tracked = nil

	for _, o := range tracked {
		for _, event := range o.DomainEvents() {
			if u.publisher == nil {
				continue
			}
			if err := u.publisher.Publish(ctx, event); err != nil {
				u.logger.WarnContext(ctx, "failed to publish order status change",
					"order_id", event.OrderID.String(),
					"from", event.From.String(),
					"to", event.To.String(),
					"error", err,
				)
			}
		}
		o.ClearDomainEvents()
	}
}
