package workflow_test

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/badgerstore"
	"fulfillment/internal/core/application/workflow"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/packing"
	"fulfillment/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// testClock is a settable clock shared by every handler of the facade.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func (c *testClock) Advance(d time.Duration) {
	c.Set(c.Now().Add(d))
}

// FacadeTestSuite runs the whole workflow against an in-memory Badger store.
type FacadeTestSuite struct {
	suite.Suite
	clock  *testClock
	facade *workflow.Facade
	ctx    context.Context
}

func (s *FacadeTestSuite) SetupTest() {
	db, err := badgerstore.Open("", nil)
	s.Require().NoError(err)
	s.T().Cleanup(func() { _ = db.Close() })

	s.ctx = context.Background()
	s.clock = &testClock{now: time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)}
	s.facade = workflow.NewFacade(
		badgerstore.NewUnitOfWorkFactory(db, nil, nil),
		s.clock,
		services.NewStatisticsAggregator(time.UTC),
		nil,
	)
}

func (s *FacadeTestSuite) createOrder(paid bool) workflow.Order {
	created, err := s.facade.CreateOrder(s.ctx, workflow.CreateOrderInput{
		Customer: order.Customer{Name: "Asha Verma", Email: "asha@example.com"},
		Address:  order.ShippingAddress{Line1: "12 Loom St", City: "Jaipur", PostalCode: "302001", Country: "IN"},
		Items: []workflow.LineItemInput{
			{ProductID: "shawl-01", Name: "Pashmina shawl", UnitPriceMinor: 249900, Quantity: 1},
			{ProductID: "stole-02", Name: "Silk stole", UnitPriceMinor: 89950, Quantity: 2},
		},
		PaymentConfirmed: paid,
	})
	s.Require().NoError(err)
	return created
}

func (s *FacadeTestSuite) requireCode(err error, code workflow.Code) *workflow.Error {
	s.T().Helper()
	s.Require().Error(err)
	var wfErr *workflow.Error
	s.Require().True(errors.As(err, &wfErr), "expected *workflow.Error, got %T", err)
	s.Equal(code, wfErr.Code, wfErr.Message)
	return wfErr
}

func (s *FacadeTestSuite) TestCreateOrder() {
	created := s.createOrder(false)

	s.Equal(order.Pending, created.Status)
	s.Equal(int64(249900+2*89950), created.TotalMinor)
	s.Len(created.Items, 2)

	paid := s.createOrder(true)
	s.Equal(order.Paid, paid.Status)
}

func (s *FacadeTestSuite) TestCreateOrder_WithExplicitID() {
	id := kernel.NewUUID().String()
	in := workflow.CreateOrderInput{
		OrderID:  id,
		Customer: order.Customer{Name: "Asha Verma", Phone: "+91 98290 00000"},
		Address:  order.ShippingAddress{Line1: "12 Loom St", City: "Jaipur", PostalCode: "302001", Country: "IN"},
		Items:    []workflow.LineItemInput{{ProductID: "shawl-01", Name: "Pashmina shawl", UnitPriceMinor: 100, Quantity: 1}},
	}

	created, err := s.facade.CreateOrder(s.ctx, in)
	s.Require().NoError(err)
	s.Equal(id, created.ID.String())

	_, err = s.facade.CreateOrder(s.ctx, in)
	s.requireCode(err, workflow.CodeInvalidState)
}

func (s *FacadeTestSuite) TestCreateOrder_Validation() {
	tests := []struct {
		name string
		in   workflow.CreateOrderInput
	}{
		{"no items", workflow.CreateOrderInput{
			Customer: order.Customer{Name: "Asha", Email: "asha@example.com"},
			Address:  order.ShippingAddress{Line1: "12 Loom St", City: "Jaipur", PostalCode: "302001", Country: "IN"},
		}},
		{"negative price", workflow.CreateOrderInput{
			Customer: order.Customer{Name: "Asha", Email: "asha@example.com"},
			Address:  order.ShippingAddress{Line1: "12 Loom St", City: "Jaipur", PostalCode: "302001", Country: "IN"},
			Items:    []workflow.LineItemInput{{ProductID: "p", Name: "P", UnitPriceMinor: -1, Quantity: 1}},
		}},
		{"missing address", workflow.CreateOrderInput{
			Customer: order.Customer{Name: "Asha", Email: "asha@example.com"},
			Items:    []workflow.LineItemInput{{ProductID: "p", Name: "P", UnitPriceMinor: 1, Quantity: 1}},
		}},
		{"malformed id", workflow.CreateOrderInput{OrderID: "not-a-uuid"}},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.facade.CreateOrder(s.ctx, tt.in)
			wfErr := s.requireCode(err, workflow.CodeValidation)
			s.False(wfErr.Retryable())
		})
	}
}

func (s *FacadeTestSuite) TestGetOrder_Unknown() {
	_, err := s.facade.GetOrder(s.ctx, kernel.NewUUID().String())
	wfErr := s.requireCode(err, workflow.CodeNotFound)
	s.False(wfErr.Retryable())

	_, err = s.facade.GetOrder(s.ctx, "42")
	s.requireCode(err, workflow.CodeValidation)
}

func (s *FacadeTestSuite) TestPaidOrderCannotShipUntilPacked() {
	created := s.createOrder(true)

	_, err := s.facade.ShipOrder(s.ctx, created.ID.String(), "DTDC", "D123")
	s.requireCode(err, workflow.CodeInvalidState)

	_, err = s.facade.ShipOrder(s.ctx, created.ID.String(), "", "")
	s.requireCode(err, workflow.CodeValidation)

	got, err := s.facade.GetOrder(s.ctx, created.ID.String())
	s.Require().NoError(err)
	s.Equal(order.Paid, got.Status)
	s.Nil(got.ShippedAt)
}

func (s *FacadeTestSuite) TestFullLifecycle() {
	created := s.createOrder(true)

	s.clock.Advance(time.Hour)
	session, err := s.facade.OpenPackingSession(s.ctx, created.ID.String(), "packer@example.com")
	s.Require().NoError(err)
	s.Equal(packing.InProgress, session.Status)

	_, err = s.facade.UpdateScanProgress(s.ctx, session.ID.String(), map[string]int{"shawl-01": 1})
	s.Require().NoError(err)
	progressed, err := s.facade.UpdateScanProgress(s.ctx, session.ID.String(), map[string]int{"stole-02": 2})
	s.Require().NoError(err)
	s.Equal(map[string]int{"shawl-01": 1, "stole-02": 2}, progressed.ScanProgress)

	s.clock.Advance(12*time.Minute + 40*time.Second)
	completed, err := s.facade.CompletePackingSession(s.ctx, session.ID.String())
	s.Require().NoError(err)
	s.Equal(packing.Completed, completed.Status)
	s.Require().NotNil(completed.PackingDurationMinutes)
	s.Equal(13, *completed.PackingDurationMinutes)

	packed, err := s.facade.GetOrder(s.ctx, created.ID.String())
	s.Require().NoError(err)
	s.Equal(order.Packed, packed.Status)
	s.Require().NotNil(packed.PackedAt)
	s.True(packed.PackedAt.Equal(*completed.CompletedAt))

	s.clock.Advance(time.Hour)
	shipped, err := s.facade.ShipOrder(s.ctx, created.ID.String(), "DTDC", "D123")
	s.Require().NoError(err)
	s.Equal(order.Shipped, shipped.Status)
	s.Equal("DTDC", shipped.Carrier)
	s.Equal("D123", shipped.TrackingID)

	s.clock.Advance(48 * time.Hour)
	delivered, err := s.facade.UpdateOrderStatus(s.ctx, created.ID.String(), "delivered")
	s.Require().NoError(err)
	s.Equal(order.Delivered, delivered.Status)
	s.Require().NotNil(delivered.DeliveredAt)

	_, err = s.facade.CancelOrder(s.ctx, created.ID.String(), "too late")
	s.requireCode(err, workflow.CodeInvalidState)
}

func (s *FacadeTestSuite) TestOpenTwiceReturnsSameSession() {
	created := s.createOrder(true)

	first, err := s.facade.OpenPackingSession(s.ctx, created.ID.String(), "first@example.com")
	s.Require().NoError(err)
	s.clock.Advance(time.Minute)
	second, err := s.facade.OpenPackingSession(s.ctx, created.ID.String(), "second@example.com")
	s.Require().NoError(err)

	s.Equal(first.ID, second.ID)
	s.Equal("first@example.com", second.AdminEmail)
	s.True(first.StartedAt.Equal(second.StartedAt))

	active, err := s.facade.GetActivePackingSession(s.ctx, created.ID.String())
	s.Require().NoError(err)
	s.Require().NotNil(active)
	s.Equal(first.ID, active.ID)
}

func (s *FacadeTestSuite) TestConcurrentOpenReturnsOneSession() {
	created := s.createOrder(true)

	const admins = 6
	ids := make([]string, admins)
	errs := make([]error, admins)
	var wg sync.WaitGroup
	for i := range admins {
		wg.Add(1)
		go func() {
			defer wg.Done()
			session, err := s.facade.OpenPackingSession(s.ctx, created.ID.String(), "packer@example.com")
			errs[i] = err
			if err == nil {
				ids[i] = session.ID.String()
			}
		}()
	}
	wg.Wait()

	for i := range admins {
		s.Require().NoError(errs[i])
		s.Equal(ids[0], ids[i])
	}

	got, err := s.facade.GetOrder(s.ctx, created.ID.String())
	s.Require().NoError(err)
	s.Equal(order.InPacking, got.Status)
}

func (s *FacadeTestSuite) TestConcurrentScansNeverLoseCounts() {
	created := s.createOrder(true)
	session, err := s.facade.OpenPackingSession(s.ctx, created.ID.String(), "packer@example.com")
	s.Require().NoError(err)

	scans := []map[string]int{{"shawl-01": 1}, {"stole-02": 2}}
	errs := make([]error, len(scans))
	var wg sync.WaitGroup
	for i, scan := range scans {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = s.facade.UpdateScanProgress(s.ctx, session.ID.String(), scan)
		}()
	}
	wg.Wait()

	want := map[string]int{}
	for i, err := range errs {
		if err != nil {
			s.requireCode(err, workflow.CodeInvalidState)
			continue
		}
		for product, count := range scans[i] {
			want[product] = count
		}
	}
	s.NotEmpty(want)

	active, err := s.facade.GetActivePackingSession(s.ctx, created.ID.String())
	s.Require().NoError(err)
	s.Require().NotNil(active)
	s.Equal(want, active.ScanProgress)
}

func (s *FacadeTestSuite) TestOpenRequiresPaidOrder() {
	created := s.createOrder(false)

	_, err := s.facade.OpenPackingSession(s.ctx, created.ID.String(), "packer@example.com")
	s.requireCode(err, workflow.CodeInvalidState)

	paid := s.createOrder(true)
	_, err = s.facade.OpenPackingSession(s.ctx, paid.ID.String(), "no-at-sign")
	s.requireCode(err, workflow.CodeValidation)

	untouched, err := s.facade.GetOrder(s.ctx, paid.ID.String())
	s.Require().NoError(err)
	s.Equal(order.Paid, untouched.Status)

	_, err = s.facade.OpenPackingSession(s.ctx, kernel.NewUUID().String(), "packer@example.com")
	s.requireCode(err, workflow.CodeNotFound)
}

func (s *FacadeTestSuite) TestDoubleCompleteLeavesPackedAtUntouched() {
	created := s.createOrder(true)
	session, err := s.facade.OpenPackingSession(s.ctx, created.ID.String(), "packer@example.com")
	s.Require().NoError(err)

	s.clock.Advance(5 * time.Minute)
	_, err = s.facade.CompletePackingSession(s.ctx, session.ID.String())
	s.Require().NoError(err)
	before, err := s.facade.GetOrder(s.ctx, created.ID.String())
	s.Require().NoError(err)

	s.clock.Advance(5 * time.Minute)
	_, err = s.facade.CompletePackingSession(s.ctx, session.ID.String())
	s.requireCode(err, workflow.CodeInvalidState)

	after, err := s.facade.GetOrder(s.ctx, created.ID.String())
	s.Require().NoError(err)
	s.Require().NotNil(after.PackedAt)
	s.True(before.PackedAt.Equal(*after.PackedAt))

	_, err = s.facade.UpdateScanProgress(s.ctx, session.ID.String(), map[string]int{"shawl-01": 1})
	s.requireCode(err, workflow.CodeInvalidState)
}

func (s *FacadeTestSuite) TestCancelThenOpenCreatesNewSession() {
	created := s.createOrder(true)
	first, err := s.facade.OpenPackingSession(s.ctx, created.ID.String(), "packer@example.com")
	s.Require().NoError(err)

	cancelled, err := s.facade.CancelPackingSession(s.ctx, first.ID.String(), "  wrong box  ")
	s.Require().NoError(err)
	s.Equal(packing.Cancelled, cancelled.Status)
	s.Equal("wrong box", cancelled.CancelReason)
	s.Nil(cancelled.PackingDurationMinutes)

	back, err := s.facade.GetOrder(s.ctx, created.ID.String())
	s.Require().NoError(err)
	s.Equal(order.Paid, back.Status)

	active, err := s.facade.GetActivePackingSession(s.ctx, created.ID.String())
	s.Require().NoError(err)
	s.Nil(active)

	second, err := s.facade.OpenPackingSession(s.ctx, created.ID.String(), "packer@example.com")
	s.Require().NoError(err)
	s.NotEqual(first.ID, second.ID)

	reopened, err := s.facade.GetOrder(s.ctx, created.ID.String())
	s.Require().NoError(err)
	s.Equal(order.InPacking, reopened.Status)
}

func (s *FacadeTestSuite) TestUpdateScanProgress_Rejections() {
	created := s.createOrder(true)
	session, err := s.facade.OpenPackingSession(s.ctx, created.ID.String(), "packer@example.com")
	s.Require().NoError(err)

	_, err = s.facade.UpdateScanProgress(s.ctx, session.ID.String(), map[string]int{"stole-02": 3})
	s.requireCode(err, workflow.CodeValidation)

	_, err = s.facade.UpdateScanProgress(s.ctx, session.ID.String(), map[string]int{"kurta-09": 1})
	s.requireCode(err, workflow.CodeValidation)

	_, err = s.facade.UpdateScanProgress(s.ctx, session.ID.String(), map[string]int{})
	s.requireCode(err, workflow.CodeValidation)

	_, err = s.facade.UpdateScanProgress(s.ctx, kernel.NewUUID().String(), map[string]int{"stole-02": 1})
	s.requireCode(err, workflow.CodeNotFound)
}

func (s *FacadeTestSuite) TestUpdateOrderStatus_ManualEdgesOnly() {
	created := s.createOrder(false)

	_, err := s.facade.UpdateOrderStatus(s.ctx, created.ID.String(), "in_packing")
	s.requireCode(err, workflow.CodeInvalidState)

	_, err = s.facade.UpdateOrderStatus(s.ctx, created.ID.String(), "archived")
	s.requireCode(err, workflow.CodeValidation)

	paid, err := s.facade.UpdateOrderStatus(s.ctx, created.ID.String(), "paid")
	s.Require().NoError(err)
	s.Equal(order.Paid, paid.Status)

	cancelled, err := s.facade.CancelOrder(s.ctx, created.ID.String(), "customer request")
	s.Require().NoError(err)
	s.Equal(order.Cancelled, cancelled.Status)
	s.Equal("customer request", cancelled.CancellationReason)
}

func (s *FacadeTestSuite) TestTimestampsStayMonotonicWhenClockStepsBack() {
	created := s.createOrder(true)
	session, err := s.facade.OpenPackingSession(s.ctx, created.ID.String(), "packer@example.com")
	s.Require().NoError(err)

	s.clock.Advance(-2 * time.Hour)
	completed, err := s.facade.CompletePackingSession(s.ctx, session.ID.String())
	s.Require().NoError(err)
	s.Require().NotNil(completed.PackingDurationMinutes)
	s.Equal(0, *completed.PackingDurationMinutes)

	s.clock.Advance(-time.Hour)
	shipped, err := s.facade.ShipOrder(s.ctx, created.ID.String(), "DTDC", "D123")
	s.Require().NoError(err)
	s.False(shipped.PackedAt.Before(shipped.CreatedAt))
	s.False(shipped.ShippedAt.Before(*shipped.PackedAt))

	delivered, err := s.facade.DeliverOrder(s.ctx, created.ID.String())
	s.Require().NoError(err)
	s.False(delivered.DeliveredAt.Before(*delivered.ShippedAt))
}

func (s *FacadeTestSuite) TestGetOrderStatistics() {
	s.clock.Set(time.Date(2025, 3, 13, 18, 0, 0, 0, time.UTC))
	s.createOrder(true)

	s.clock.Set(time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC))
	s.createOrder(false)
	cancelled := s.createOrder(true)
	_, err := s.facade.CancelOrder(s.ctx, cancelled.ID.String(), "duplicate")
	s.Require().NoError(err)

	stats, err := s.facade.GetOrderStatistics(s.ctx)
	s.Require().NoError(err)

	orderTotal := int64(249900 + 2*89950)
	s.Equal(3, stats.Total)
	s.Equal(2, stats.TodayCount)
	s.Equal(2*orderTotal, stats.TodayRevenueMinor)
	s.Equal(orderTotal, stats.TodayNetRevenueMinor)
	s.Equal(1, stats.Pending)
	s.Equal(1, stats.Paid)
	s.Equal(1, stats.Cancelled)
	s.Zero(stats.InPacking)
}

func (s *FacadeTestSuite) TestCreateOrder_TotalOverflowIsRejectedBeforeWrite() {
	s.createOrder(true)

	_, err := s.facade.CreateOrder(s.ctx, workflow.CreateOrderInput{
		Customer: order.Customer{Name: "Asha Verma", Email: "asha@example.com"},
		Address:  order.ShippingAddress{Line1: "12 Loom St", City: "Jaipur", PostalCode: "302001", Country: "IN"},
		Items: []workflow.LineItemInput{
			{ProductID: "vault-01", Name: "Gold brocade", UnitPriceMinor: math.MaxInt64/2 + 1, Quantity: 2},
		},
	})
	s.requireCode(err, workflow.CodeValidation)

	_, err = s.facade.CreateOrder(s.ctx, workflow.CreateOrderInput{
		Customer: order.Customer{Name: "Asha Verma", Email: "asha@example.com"},
		Address:  order.ShippingAddress{Line1: "12 Loom St", City: "Jaipur", PostalCode: "302001", Country: "IN"},
		Items: []workflow.LineItemInput{
			{ProductID: "vault-01", Name: "Gold brocade", UnitPriceMinor: math.MaxInt64/2 + 1, Quantity: 1},
			{ProductID: "vault-02", Name: "Silver brocade", UnitPriceMinor: math.MaxInt64/2 + 1, Quantity: 1},
		},
	})
	s.requireCode(err, workflow.CodeValidation)

	stats, err := s.facade.GetOrderStatistics(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, stats.Total)
	s.Equal(int64(249900+2*89950), stats.TodayRevenueMinor)
}

func (s *FacadeTestSuite) TestExpireStalePackingSessions() {
	stale := s.createOrder(true)
	fresh := s.createOrder(true)

	staleSession, err := s.facade.OpenPackingSession(s.ctx, stale.ID.String(), "packer@example.com")
	s.Require().NoError(err)
	s.clock.Advance(3 * time.Hour)
	_, err = s.facade.OpenPackingSession(s.ctx, fresh.ID.String(), "packer@example.com")
	s.Require().NoError(err)

	s.clock.Advance(10 * time.Minute)
	expired, err := s.facade.ExpireStalePackingSessions(s.ctx, 2*time.Hour)
	s.Require().NoError(err)
	s.Equal(1, expired)

	back, err := s.facade.GetOrder(s.ctx, stale.ID.String())
	s.Require().NoError(err)
	s.Equal(order.Paid, back.Status)

	active, err := s.facade.GetActivePackingSession(s.ctx, stale.ID.String())
	s.Require().NoError(err)
	s.Nil(active)

	_, err = s.facade.CompletePackingSession(s.ctx, staleSession.ID.String())
	s.requireCode(err, workflow.CodeInvalidState)

	stillPacking, err := s.facade.GetOrder(s.ctx, fresh.ID.String())
	s.Require().NoError(err)
	s.Equal(order.InPacking, stillPacking.Status)

	_, err = s.facade.ExpireStalePackingSessions(s.ctx, 0)
	s.requireCode(err, workflow.CodeValidation)
}

func TestFacadeTestSuite(t *testing.T) {
	suite.Run(t, new(FacadeTestSuite))
}

func TestNewFacade_Defaults(t *testing.T) {
	db, err := badgerstore.Open("", nil)
	require.NoError(t, err)
	defer db.Close()

	facade := workflow.NewFacade(badgerstore.NewUnitOfWorkFactory(db, nil, nil), nil, services.NewStatisticsAggregator(nil), nil)
	stats, err := facade.GetOrderStatistics(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.Total)
}
