package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers to verify database persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.assertOrderCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateID_ReturnsAlreadyExists() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	err := suite.repository.Add(ctx, testOrder)

	suite.Require().ErrorIs(err, errs.ErrObjectAlreadyExists)
	suite.assertOrderCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_ReturnsOrder() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	got, err := suite.repository.Get(ctx, testOrder.ID())

	suite.Require().NoError(err)
	suite.True(got.ID().IsEqual(testOrder.ID()))
	suite.Equal(order.Pending, got.Status())
	suite.Equal(testOrder.Customer(), got.Customer())
	suite.Equal(testOrder.Address(), got.Address())
	suite.Equal(testOrder.Items(), got.Items())
	suite.Equal(testOrder.TotalAmount(), got.TotalAmount())
	suite.True(testOrder.CreatedAt().Equal(got.CreatedAt()))
	suite.Nil(got.PackedAt())
	suite.Empty(got.DomainEvents())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateIfStatus_Transitions() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	at := testOrder.CreatedAt()
	steps := []struct {
		from  order.Status
		apply func() error
	}{
		{order.Pending, func() error { return testOrder.MarkPaid(at.Add(time.Minute)) }},
		{order.Paid, func() error { return testOrder.StartPacking(at.Add(2 * time.Minute)) }},
		{order.InPacking, func() error { return testOrder.MarkPacked(at.Add(3 * time.Minute)) }},
		{order.Packed, func() error {
			return testOrder.Ship(order.Shipping{Carrier: "Delhivery", TrackingID: "DL42"}, at.Add(4*time.Minute))
		}},
		{order.Shipped, func() error { return testOrder.Deliver(at.Add(5 * time.Minute)) }},
	}

	for _, step := range steps {
		suite.Require().NoError(step.apply())
		suite.Require().NoError(suite.repository.UpdateIfStatus(ctx, testOrder, step.from))
	}

	got, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Delivered, got.Status())
	suite.Require().NotNil(got.Shipping())
	suite.Equal("DL42", got.Shipping().TrackingID)
	suite.Require().NotNil(got.PackedAt())
	suite.True(got.PackedAt().Equal(at.Add(3 * time.Minute)))
	suite.Require().NotNil(got.DeliveredAt())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateIfStatus_StaleStatus_ReturnsPreconditionFailed() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(testOrder.MarkPaid(testOrder.CreatedAt().Add(time.Minute)))
	err := suite.repository.UpdateIfStatus(ctx, testOrder, order.Paid)

	suite.Require().ErrorIs(err, errs.ErrPreconditionFailed)
	got, getErr := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(getErr)
	suite.Equal(order.Pending, got.Status())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateIfStatus_NonExistentOrder_ReturnsPreconditionFailed() {
	err := suite.repository.UpdateIfStatus(context.Background(), suite.createTestOrder(), order.Pending)

	suite.Require().ErrorIs(err, errs.ErrPreconditionFailed)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestListFacts_NullTotalReadsAsZero() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))
	suite.Require().NoError(suite.db.Exec("UPDATE orders SET total_amount = NULL").Error)

	facts, err := suite.repository.ListFacts(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(facts, 1)
	suite.True(facts[0].TotalAmount.IsZero())
	suite.Equal(order.Pending, facts[0].Status)
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder() *order.Order {
	price, err := kernel.NewMoney(124900)
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(
		kernel.NewUUID(),
		order.Customer{Name: "Meera Iyer", Email: "meera@example.com"},
		order.ShippingAddress{Line1: "4 Temple Rd", City: "Madurai", PostalCode: "625001", Country: "IN"},
		[]order.LineItem{{ProductID: "saree-07", Name: "Kanjivaram saree", UnitPrice: price, Quantity: 1}},
		time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC),
	)
	suite.Require().NoError(err)
	return testOrder
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int) {
	var count int64
	err := suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
