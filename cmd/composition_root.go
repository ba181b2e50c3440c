package cmd

import (
	"log/slog"
	"os"

	"fulfillment/internal/adapters/out/aiclient"
	"fulfillment/internal/adapters/out/kafka"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/addressrepo"
	"fulfillment/internal/adapters/out/postgres/directoryrepo"
	"fulfillment/internal/adapters/out/postgres/storerepo"
	"fulfillment/internal/adapters/out/token"
	appservices "fulfillment/internal/core/application/services"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/services"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	publisher  *kafka.EventPublisher
	logger     *slog.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  kafka.NewEventPublisher(configs.KafkaHost),
		logger:     slog.New(slog.NewJSONHandler(os.Stdout, nil)),
	}
}

func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

func (c *CompositionRoot) Publisher() *kafka.EventPublisher {
	return c.publisher
}

func (c *CompositionRoot) CreateAssignOrderCommandHandler() commands.AssignOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignOrderCommandHandler(
		f,
		storerepo.NewGormStoreRepository(c.gormDB),
		addressrepo.NewGormAddressResolver(c.gormDB),
		c.publisher,
		c.logger,
	)
}

func (c *CompositionRoot) CreateManagerDecisionCommandHandler(configs Config) commands.ManagerDecisionCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	gateway := appservices.NewRecommendationGateway(
		aiclient.NewClient(configs.AIRecommenderURL),
		storerepo.NewGormStoreRepository(c.gormDB),
		storerepo.NewGormInventoryChecker(c.gormDB),
		services.NewStoreRanker(),
		c.logger,
	)
	return commands.NewManagerDecisionCommandHandler(
		f,
		gateway,
		token.NewUUIDGenerator(),
		addressrepo.NewGormAddressResolver(c.gormDB),
		directoryrepo.NewGormDirectory(c.gormDB),
		c.publisher,
		c.logger,
	)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUnassignedOrdersQueryHandler() queries.GetUnassignedOrdersQueryHandler {
	return queries.NewGetUnassignedOrdersQueryHandler(c.gormDB)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
