package cmd

import (
	"context"
	"log/slog"

	httpin "logistics/internal/adapters/in/http"
	"logistics/internal/adapters/out/kafka"
	"logistics/internal/adapters/out/postgres"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/outbox"
	"logistics/internal/jobs"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// CompositionRoot wires adapters, use cases and jobs together.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
	}
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.uow())
}

func (c *CompositionRoot) CreateUpdateOrdersStatusCommandHandler() commands.UpdateOrdersStatusCommandHandler {
	return commands.NewUpdateOrdersStatusCommandHandler(c.uow())
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.CreateUpdateOrdersStatusCommandHandler())
}

func (c *CompositionRoot) CreateAssignOrdersToDriverCommandHandler() commands.AssignOrdersToDriverCommandHandler {
	return commands.NewAssignOrdersToDriverCommandHandler(c.uow())
}

func (c *CompositionRoot) CreateScanParcelCommandHandler() commands.ScanParcelCommandHandler {
	return commands.NewScanParcelCommandHandler(c.uow(), c.CreateUpdateOrderStatusCommandHandler())
}

func (c *CompositionRoot) CreatePublishOutboxCommandHandler(publisher *kafka.Publisher) commands.PublishOutboxCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPublishOutboxCommandHandler(f, publisher)
}

func (c *CompositionRoot) CreateGetOrderTrackingQueryHandler() queries.GetOrderTrackingQueryHandler {
	return queries.NewGetOrderTrackingQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllDriversQueryHandler() queries.GetAllDriversQueryHandler {
	return queries.NewGetAllDriversQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrdersOverviewQueryHandler() queries.GetOrdersOverviewQueryHandler {
	return queries.NewGetOrdersOverviewQueryHandler(c.gormDB)
}

// CreatePublisher returns the Kafka producer of order-changed messages.
// The caller closes it.
func (c *CompositionRoot) CreatePublisher() (*kafka.Publisher, error) {
	return kafka.NewPublisher(kafka.NewWriter(c.config.KafkaHost), map[string]string{
		outbox.OrderChangedEventType: c.config.KafkaOrderChangedTopic,
	})
}

func (c *CompositionRoot) CreateOutboxRelayJob(publisher *kafka.Publisher) (*jobs.OutboxRelayJob, error) {
	command, err := commands.NewPublishOutboxCommand(c.config.OutboxBatchSize, c.config.OutboxMaxAttempts)
	if err != nil {
		return nil, err
	}
	return jobs.NewOutboxRelayJob(
		c.CreatePublishOutboxCommandHandler(publisher),
		command,
		c.config.OutboxSchedule,
		c.logger,
	), nil
}

// CreateRouter builds the HTTP router with every endpoint wired.
func (c *CompositionRoot) CreateRouter(ctx context.Context) (*echo.Echo, error) {
	doc, err := httpin.LoadOpenAPI(ctx)
	if err != nil {
		return nil, err
	}

	verifier, err := httpin.NewTokenVerifier(c.config.JWTSecret)
	if err != nil {
		return nil, err
	}

	server := httpin.NewServer(httpin.Handlers{
		CreateOrder:          c.CreateCreateOrderCommandHandler(),
		UpdateOrderStatus:    c.CreateUpdateOrderStatusCommandHandler(),
		UpdateOrdersStatus:   c.CreateUpdateOrdersStatusCommandHandler(),
		AssignOrdersToDriver: c.CreateAssignOrdersToDriverCommandHandler(),
		ScanParcel:           c.CreateScanParcelCommandHandler(),
		GetOrderTracking:     c.CreateGetOrderTrackingQueryHandler(),
		GetActiveOrders:      c.CreateGetActiveOrdersQueryHandler(),
		GetAllDrivers:        c.CreateGetAllDriversQueryHandler(),
		GetOrder:             c.CreateGetOrderQueryHandler(),
		ListOrders:           c.CreateListOrdersQueryHandler(),
		GetOrdersOverview:    c.CreateGetOrdersOverviewQueryHandler(),
	})

	return httpin.NewRouter(httpin.RouterConfig{
		Server:   server,
		Verifier: verifier,
		Doc:      doc,
		Logger:   c.logger,
	})
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
