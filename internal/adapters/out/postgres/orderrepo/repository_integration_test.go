package orderrepo_test

import (
	"context"
	"strings"
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

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderLineDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_lines").Error)

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

	testOrder := suite.createPendingOrder()

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	suite.assertOrderCount(1)
	suite.assertLineCount(2)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_RoundTripsAllFields() {
	ctx := context.Background()

	originalOrder := suite.createPendingOrder()
	suite.tracker.On("TrackAggregate", originalOrder.ID(), originalOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, originalOrder))

	retrievedOrder, err := suite.repository.Get(ctx, originalOrder.ID())
	suite.Require().NoError(err)

	suite.True(retrievedOrder.ID().IsEqual(originalOrder.ID()))
	suite.True(retrievedOrder.UserID().IsEqual(originalOrder.UserID()))
	suite.True(retrievedOrder.AddressID().IsEqual(originalOrder.AddressID()))
	suite.Equal(originalOrder.PaymentMethod(), retrievedOrder.PaymentMethod())
	suite.Equal(order.Pending, retrievedOrder.Status())
	suite.Nil(retrievedOrder.Store())
	suite.Equal(0, retrievedOrder.RejectionCount())
	suite.Len(retrievedOrder.Lines(), len(originalOrder.Lines()))

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	retrievedOrder, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrievedOrder)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_AssignmentRoundTrip() {
	ctx := context.Background()

	testOrder := suite.createPendingOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	storeID := kernel.NewUUID()
	suite.Require().NoError(testOrder.AssignToStore(storeID))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	retrievedOrder, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.AssignedToStore, retrievedOrder.Status())
	suite.Require().NotNil(retrievedOrder.Store())
	suite.True(retrievedOrder.Store().IsEqual(storeID))
	// Lines are immutable; an update must not duplicate them.
	suite.assertLineCount(2)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_RejectionLedgerRoundTrip() {
	ctx := context.Background()

	storeID := kernel.NewUUID()
	testOrder := suite.createPendingOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(testOrder.AssignToStore(storeID))
	suite.Require().NoError(testOrder.Reject(storeID, "out of stock"))
	suite.Require().NoError(testOrder.Cancel("no suitable store found"))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	retrievedOrder, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Cancelled, retrievedOrder.Status())
	suite.Equal(1, retrievedOrder.RejectionCount())
	suite.Require().NotNil(retrievedOrder.LastRejectedStore())
	suite.True(retrievedOrder.LastRejectedStore().IsEqual(storeID))
	suite.Equal("no suitable store found", retrievedOrder.Reason())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_AcceptedOrderPersistsToken() {
	ctx := context.Background()

	storeID := kernel.NewUUID()
	testOrder := suite.createPendingOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(testOrder.AssignToStore(storeID))
	issuedAt := time.Now().UTC().Truncate(time.Microsecond)
	suite.Require().NoError(testOrder.Accept("token-abc", issuedAt))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	retrievedOrder, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.ManagerAccepted, retrievedOrder.Status())
	suite.Equal("token-abc", retrievedOrder.FulfillmentToken())
	suite.Require().NotNil(retrievedOrder.TokenIssuedAt())
	suite.True(retrievedOrder.TokenIssuedAt().Equal(issuedAt))

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_ZeroValuedFieldsPersist() {
	ctx := context.Background()

	storeID := kernel.NewUUID()
	testOrder := suite.createPendingOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), mock.Anything).Times(3)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(testOrder.AssignToStore(storeID))
	suite.Require().NoError(testOrder.Reject(storeID, "out of stock"))
	suite.Require().NoError(testOrder.AssignToStore(kernel.NewUUID()))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	// Write back a state with empty reason and zero rejection count for the
	// same row. A struct-based update would skip these zero values.
	cleared, err := order.RestoreOrder(
		testOrder.ID(), testOrder.UserID(), testOrder.AddressID(),
		testOrder.PaymentMethod(),
		nil, order.Pending, 0, nil, "", "", nil,
		testOrder.Lines(),
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, cleared))

	retrievedOrder, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Pending, retrievedOrder.Status())
	suite.Nil(retrievedOrder.Store())
	suite.Equal(0, retrievedOrder.RejectionCount())
	suite.Nil(retrievedOrder.LastRejectedStore())
	suite.Empty(retrievedOrder.Reason())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsError() {
	ctx := context.Background()

	err := suite.repository.Update(ctx, suite.createPendingOrder())

	suite.Require().Error(err)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetFirstInPendingStatus_ReturnsPendingOrder() {
	ctx := context.Background()

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(3)

	pending := suite.createPendingOrder()
	suite.Require().NoError(suite.repository.Add(ctx, pending))

	assigned := suite.createPendingOrder()
	suite.Require().NoError(assigned.AssignToStore(kernel.NewUUID()))
	suite.Require().NoError(suite.repository.Add(ctx, assigned))

	cancelled := suite.createPendingOrder()
	suite.Require().NoError(cancelled.Cancel("customer withdrew"))
	suite.Require().NoError(suite.repository.Add(ctx, cancelled))

	retrievedOrder, err := suite.repository.GetFirstInPendingStatus(ctx)
	suite.Require().NoError(err)
	suite.Equal(order.Pending, retrievedOrder.Status())
	suite.True(retrievedOrder.ID().IsEqual(pending.ID()))

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetFirstInPendingStatus_NoPendingOrders_ReturnsNotFoundError() {
	ctx := context.Background()

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Once()

	assigned := suite.createPendingOrder()
	suite.Require().NoError(assigned.AssignToStore(kernel.NewUUID()))
	suite.Require().NoError(suite.repository.Add(ctx, assigned))

	retrievedOrder, err := suite.repository.GetFirstInPendingStatus(ctx)

	suite.Nil(retrievedOrder)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
	suite.tracker.AssertExpectations(suite.T())
}

// TestOrderRepository_ErrorScenarios verifies error handling for various failure cases.
func (suite *OrderRepositoryIntegrationTestSuite) TestOrderRepository_ErrorScenarios() {
	testCases := []struct {
		name      string
		operation func() error
		expected  string
	}{
		{
			name: "get with invalid UUID",
			operation: func() error {
				invalidID := kernel.UUID{}
				_, err := suite.repository.Get(context.Background(), invalidID)
				return err
			},
			expected: "required",
		},
		{
			name: "get non-existent order",
			operation: func() error {
				_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
				return err
			},
			expected: "not found",
		},
		{
			name: "update non-existent order",
			operation: func() error {
				return suite.repository.Update(context.Background(), suite.createPendingOrder())
			},
			expected: "record not found",
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			err := tc.operation()
			suite.Require().Error(err)
			suite.Contains(strings.ToLower(err.Error()), strings.ToLower(tc.expected))
			suite.tracker.AssertExpectations(suite.T())
		})
	}
}

// createPendingOrder creates a freshly placed two-line order.
func (suite *OrderRepositoryIntegrationTestSuite) createPendingOrder() *order.Order {
	line1, err := order.NewLine(kernel.NewUUID(), 2, 150000)
	suite.Require().NoError(err)
	line2, err := order.NewLine(kernel.NewUUID(), 1, 99000)
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		order.PaymentMethodPayOnDelivery,
		[]order.Line{line1, line2},
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

func (suite *OrderRepositoryIntegrationTestSuite) assertLineCount(expected int) {
	var count int64
	err := suite.db.Model(&orderrepo.OrderLineDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
