package addressrepo_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/addressrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// AddressResolverIntegrationTestSuite provides integration tests for address
// resolution using PostgreSQL containers.
type AddressResolverIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	resolver  *addressrepo.GormAddressResolver
}

func (suite *AddressResolverIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&addressrepo.AddressDTO{}))
}

func (suite *AddressResolverIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE addresses").Error)

	suite.resolver = addressrepo.NewGormAddressResolver(suite.db)
}

func (suite *AddressResolverIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *AddressResolverIntegrationTestSuite) TestResolve_ExistingAddress_ReturnsCoordinates() {
	ctx := context.Background()
	addressID := kernel.NewUUID()

	dto := addressrepo.AddressDTO{
		ID:          addressID.Bytes(),
		AddressLine: "268 Ly Thuong Kiet, District 10",
		Latitude:    10.762622,
		Longitude:   106.660172,
	}
	suite.Require().NoError(suite.db.Create(&dto).Error)

	address, err := suite.resolver.Resolve(ctx, addressID)
	suite.Require().NoError(err)

	suite.Equal("268 Ly Thuong Kiet, District 10", address.AddressLine)
	suite.InDelta(10.762622, address.Location.Latitude(), 1e-9)
	suite.InDelta(106.660172, address.Location.Longitude(), 1e-9)
	suite.NoError(address.Location.Validate())
}

func (suite *AddressResolverIntegrationTestSuite) TestResolve_MissingAddress_ReturnsObjectNotFoundError() {
	ctx := context.Background()

	_, err := suite.resolver.Resolve(ctx, kernel.NewUUID())

	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.ErrorAs(err, &notFoundErr)
}

func (suite *AddressResolverIntegrationTestSuite) TestResolve_InvalidID_ReturnsError() {
	ctx := context.Background()

	_, err := suite.resolver.Resolve(ctx, kernel.UUID{})

	suite.Require().Error(err)
}

func TestAddressResolverIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(AddressResolverIntegrationTestSuite))
}
