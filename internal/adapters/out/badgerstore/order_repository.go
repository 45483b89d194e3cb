package badgerstore

import (
	"context"
	"encoding/json"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/dgraph-io/badger/v4"
)

type OrderRepository struct {
	uow *UnitOfWork
}

func orderKey(id string) []byte {
	return []byte(orderPrefix + id)
}

func (r *OrderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	id := aggregate.ID().String()
	err := r.uow.update(func(txn *badger.Txn) error {
		_, err := txn.Get(orderKey(id))
		if err == nil {
			return errs.NewObjectAlreadyExistsError("order", id)
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return putJSON(txn, orderKey(id), newOrderRecord(aggregate))
	})
	if err != nil {
		return err
	}

	r.uow.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *OrderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var rec orderRecord
	err := r.uow.view(func(txn *badger.Txn) error {
		return getJSON(txn, orderKey(id.String()), &rec)
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	if err != nil {
		return nil, err
	}

	return rec.toDomain()
}

// UpdateIfStatus overwrites the order provided the stored record still has the
// expected status. A missing record fails the precondition as well.
func (r *OrderRepository) UpdateIfStatus(_ context.Context, aggregate *order.Order, expected order.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	id := aggregate.ID().String()
	err := r.uow.update(func(txn *badger.Txn) error {
		var stored orderRecord
		if err := getJSON(txn, orderKey(id), &stored); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return errs.NewPreconditionFailedError("order", id, expected.String())
			}
			return err
		}
		if stored.Status != expected.String() {
			return errs.NewPreconditionFailedError("order", id, expected.String())
		}
		return putJSON(txn, orderKey(id), newOrderRecord(aggregate))
	})
	if err != nil {
		return err
	}

	r.uow.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *OrderRepository) ListFacts(_ context.Context) ([]services.OrderFacts, error) {
	var facts []services.OrderFacts
	err := r.uow.view(func(txn *badger.Txn) error {
		return scanPrefix(txn, []byte(orderPrefix), func(value []byte) error {
			var rec orderRecord
			if err := json.Unmarshal(value, &rec); err != nil {
				return err
			}

			status, parseErr := order.ParseStatus(rec.Status)
			if parseErr != nil {
				status = order.Unknown
			}
			total, moneyErr := kernel.MoneyFromNullable(rec.TotalAmount)
			if moneyErr != nil {
				return moneyErr
			}

			facts = append(facts, services.OrderFacts{
				Status:      status,
				TotalAmount: total,
				CreatedAt:   rec.CreatedAt,
			})
			return nil
		})
	})
	return facts, err
}

func getJSON(txn *badger.Txn, key []byte, out any) error {
	item, err := txn.Get(key)
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, out)
	})
}

func putJSON(txn *badger.Txn, key []byte, in any) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return txn.Set(key, raw)
}

func scanPrefix(txn *badger.Txn, prefix []byte, fn func(value []byte) error) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	it := txn.NewIterator(opts)
	defer it.Close()

	for it.Rewind(); it.Valid(); it.Next() {
		if err := it.Item().Value(fn); err != nil {
			return err
		}
	}
	return nil
}
