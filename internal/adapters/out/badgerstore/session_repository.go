package badgerstore

import (
	"context"
	"errors"
	"slices"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/packing"
	"fulfillment/internal/pkg/errs"

	"github.com/dgraph-io/badger/v4"
)

type PackingSessionRepository struct {
	uow *UnitOfWork
}

func sessionKey(id string) []byte {
	return []byte(sessionPrefix + id)
}

func activeSessionKey(orderID string) []byte {
	return []byte(activeSessionPrefix + orderID)
}

// Add stores a new session. An in_progress session also claims the order's
// active key; a claimed key rejects the insert with ObjectAlreadyExists.
func (r *PackingSessionRepository) Add(_ context.Context, session *packing.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}

	id := session.ID().String()
	orderID := session.OrderID().String()
	return r.uow.update(func(txn *badger.Txn) error {
		if _, err := txn.Get(sessionKey(id)); err == nil {
			return errs.NewObjectAlreadyExistsError("packing session", id)
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		if session.Status().IsActive() {
			if _, err := txn.Get(activeSessionKey(orderID)); err == nil {
				return errs.NewObjectAlreadyExistsError("active packing session of order", orderID)
			} else if !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}
			if err := txn.Set(activeSessionKey(orderID), []byte(id)); err != nil {
				return err
			}
		}

		return putJSON(txn, sessionKey(id), newSessionRecord(session))
	})
}

func (r *PackingSessionRepository) Get(_ context.Context, id kernel.UUID) (*packing.Session, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var rec sessionRecord
	err := r.uow.view(func(txn *badger.Txn) error {
		return getJSON(txn, sessionKey(id.String()), &rec)
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, errs.NewObjectNotFoundError("packing session", id.String())
	}
	if err != nil {
		return nil, err
	}

	return rec.toDomain()
}

// GetActiveByOrder returns nil, nil when the order has no session in progress.
func (r *PackingSessionRepository) GetActiveByOrder(_ context.Context, orderID kernel.UUID) (*packing.Session, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var (
		rec   sessionRecord
		found bool
	)
	err := r.uow.view(func(txn *badger.Txn) error {
		item, err := txn.Get(activeSessionKey(orderID.String()))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		sessionID, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		if err = getJSON(txn, sessionKey(string(sessionID)), &rec); err != nil {
			return err
		}
		found = true
		return nil
	})
	if err != nil || !found {
		return nil, err
	}

	return rec.toDomain()
}

// UpdateIfStatus overwrites the session provided the stored record still has
// the expected status and the version the session was read at. Leaving
// in_progress releases the order's active key.
func (r *PackingSessionRepository) UpdateIfStatus(
	_ context.Context,
	session *packing.Session,
	expected packing.Status,
) error {
	if err := session.Validate(); err != nil {
		return err
	}

	id := session.ID().String()
	next := newSessionRecord(session)
	next.Version++
	err := r.uow.update(func(txn *badger.Txn) error {
		var stored sessionRecord
		if err := getJSON(txn, sessionKey(id), &stored); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return errs.NewPreconditionFailedError("packing session", id, expected.String())
			}
			return err
		}
		if stored.Status != expected.String() || stored.Version != session.Version() {
			return errs.NewPreconditionFailedError("packing session", id, expected.String())
		}

		if stored.Status == packing.InProgress.String() && !session.Status().IsActive() {
			if err := txn.Delete(activeSessionKey(stored.OrderID)); err != nil {
				return err
			}
		}

		return putJSON(txn, sessionKey(id), next)
	})
	if err != nil {
		return err
	}
	session.SetVersion(next.Version)
	return nil
}

// ListActiveStartedBefore returns the sessions in progress that started before
// cutoff, oldest first.
func (r *PackingSessionRepository) ListActiveStartedBefore(
	_ context.Context,
	cutoff time.Time,
) ([]*packing.Session, error) {
	var records []sessionRecord
	err := r.uow.view(func(txn *badger.Txn) error {
		var ids []string
		err := scanPrefix(txn, []byte(activeSessionPrefix), func(value []byte) error {
			ids = append(ids, string(value))
			return nil
		})
		if err != nil {
			return err
		}

		for _, id := range ids {
			var rec sessionRecord
			if err = getJSON(txn, sessionKey(id), &rec); err != nil {
				return err
			}
			if rec.StartedAt.Before(cutoff) {
				records = append(records, rec)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(records, func(a, b sessionRecord) int {
		return a.StartedAt.Compare(b.StartedAt)
	})

	sessions := make([]*packing.Session, 0, len(records))
	for _, rec := range records {
		s, err := rec.toDomain()
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}
