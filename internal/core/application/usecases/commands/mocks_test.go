package commands_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/packing"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func fixedClock() kernel.Clock {
	return kernel.ClockFunc(func() time.Time { return now })
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateIfStatus(ctx context.Context, o *order.Order, expected order.Status) error {
	args := m.Called(ctx, o, expected)
	return args.Error(0)
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
	args := m.Called(ctx, s)
	return args.Error(0)
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
	args := m.Called(ctx, s, expected)
	return args.Error(0)
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

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) PackingSessionRepository() ports.PackingSessionRepository {
	args := m.Called()
	return args.Get(0).(ports.PackingSessionRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

func testItems(t *testing.T) []order.LineItem {
	t.Helper()
	price, err := kernel.NewMoney(89950)
	require.NoError(t, err)
	return []order.LineItem{
		{ProductID: "stole-02", Name: "Silk stole", UnitPrice: price, Quantity: 2},
	}
}

func testCustomer() order.Customer {
	return order.Customer{Name: "Asha Verma", Phone: "+91 98290 00000"}
}

func testAddress() order.ShippingAddress {
	return order.ShippingAddress{Line1: "12 Loom St", City: "Jaipur", PostalCode: "302001", Country: "IN"}
}

// orderIn restores an order directly in the given status. Packed and later
// statuses get consistent fulfillment timestamps.
func orderIn(t *testing.T, status order.Status) *order.Order {
	t.Helper()
	createdAt := now.Add(-24 * time.Hour)
	params := order.RestoreOrderParams{
		ID:        kernel.NewUUID(),
		Customer:  testCustomer(),
		Address:   testAddress(),
		Items:     testItems(t),
		Status:    status,
		CreatedAt: createdAt,
	}
	if status == order.Packed || status == order.Shipped || status == order.Delivered {
		packedAt := createdAt.Add(time.Hour)
		params.PackedAt = &packedAt
	}
	if status == order.Shipped || status == order.Delivered {
		shippedAt := createdAt.Add(2 * time.Hour)
		params.ShippedAt = &shippedAt
		params.Shipping = &order.Shipping{Carrier: "DTDC", TrackingID: "T123"}
	}

	o, err := order.RestoreOrder(params)
	require.NoError(t, err)
	return o
}

func sessionFor(t *testing.T, orderID kernel.UUID, startedAt time.Time) *packing.Session {
	t.Helper()
	s, err := packing.NewSession(kernel.NewUUID(), orderID, "packer@store.in", startedAt)
	require.NoError(t, err)
	return s
}
