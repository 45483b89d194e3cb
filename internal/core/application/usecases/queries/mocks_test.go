package queries_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/packing"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateIfStatus(ctx context.Context, o *order.Order, expected order.Status) error {
	return m.Called(ctx, o, expected).Error(0)
}

func (m *MockOrderRepository) ListFacts(ctx context.Context) ([]services.OrderFacts, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]services.OrderFacts), args.Error(1)
}

type MockPackingSessionRepository struct{ mock.Mock }

func (m *MockPackingSessionRepository) Add(ctx context.Context, s *packing.Session) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockPackingSessionRepository) Get(ctx context.Context, id kernel.UUID) (*packing.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*packing.Session), args.Error(1)
}

func (m *MockPackingSessionRepository) GetActiveByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) (*packing.Session, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*packing.Session), args.Error(1)
}

func (m *MockPackingSessionRepository) UpdateIfStatus(
	ctx context.Context,
	s *packing.Session,
	expected packing.Status,
) error {
	return m.Called(ctx, s, expected).Error(0)
}

func (m *MockPackingSessionRepository) ListActiveStartedBefore(
	ctx context.Context,
	cutoff time.Time,
) ([]*packing.Session, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*packing.Session), args.Error(1)
}

// readers is an idle unit of work: queries must never begin a transaction, so
// the transaction methods fail the test.
type readers struct {
	t        *testing.T
	orders   *MockOrderRepository
	sessions *MockPackingSessionRepository
}

func newReaders(t *testing.T) *readers {
	return &readers{t: t, orders: &MockOrderRepository{}, sessions: &MockPackingSessionRepository{}}
}

func (r *readers) Create() ports.UnitOfWork { return r }

func (r *readers) Begin(context.Context) error {
	r.t.Fatal("query began a transaction")
	return nil
}

func (r *readers) Commit(context.Context) error {
	r.t.Fatal("query committed a transaction")
	return nil
}

func (r *readers) Rollback(context.Context) error {
	r.t.Fatal("query rolled back a transaction")
	return nil
}

func (r *readers) OrderRepository() ports.OrderRepository { return r.orders }

func (r *readers) PackingSessionRepository() ports.PackingSessionRepository { return r.sessions }

func shippedOrder(t *testing.T) *order.Order {
	t.Helper()
	price, err := kernel.NewMoney(89950)
	require.NoError(t, err)
	total, err := kernel.NewMoney(179900)
	require.NoError(t, err)
	createdAt := now.Add(-24 * time.Hour)
	packedAt := createdAt.Add(time.Hour)
	shippedAt := createdAt.Add(2 * time.Hour)

	o, err := order.RestoreOrder(order.RestoreOrderParams{
		ID:        kernel.NewUUID(),
		Customer:  order.Customer{Name: "Asha Verma", Email: "asha@example.com"},
		Address:   order.ShippingAddress{Line1: "12 Loom St", City: "Jaipur", PostalCode: "302001", Country: "IN"},
		Items:     []order.LineItem{{ProductID: "stole-02", Name: "Silk stole", UnitPrice: price, Quantity: 2}},
		Total:     total,
		Status:    order.Shipped,
		CreatedAt: createdAt,
		PackedAt:  &packedAt,
		ShippedAt: &shippedAt,
		Shipping:  &order.Shipping{Carrier: "DTDC", TrackingID: "T123"},
	})
	require.NoError(t, err)
	return o
}
