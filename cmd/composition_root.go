package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	httpin "orderflow/internal/adapters/in/http"
	"orderflow/internal/adapters/out/notify"
	"orderflow/internal/adapters/out/postgres"
	"orderflow/internal/adapters/out/postgres/outboxrepo"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/ports"
	"orderflow/internal/jobs"
	"orderflow/internal/metrics"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// CompositionRoot builds every handler, adapter and job from one Config.
// Whatever it opens is released by Close.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	metrics    *metrics.Metrics
	logger     *slog.Logger

	closers []func() error
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	return &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		metrics:    metrics.New(),
		logger:     logger,
	}
}

func (c *CompositionRoot) workflowUoWFactory() commands.WorkflowUoWFactory {
	return commands.WorkflowUoWFactoryFunc(func() commands.WorkflowUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) outboxUoWFactory() commands.OutboxUoWFactory {
	return commands.OutboxUoWFactoryFunc(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateRequestModificationCommandHandler() *commands.RequestModificationCommandHandler {
	h := commands.NewRequestModificationCommandHandler(c.workflowUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateReviewModificationCommandHandler() *commands.ReviewModificationCommandHandler {
	h := commands.NewReviewModificationCommandHandler(c.workflowUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() *commands.CancelOrderCommandHandler {
	h := commands.NewCancelOrderCommandHandler(c.workflowUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateDispatchNotificationsCommandHandler(
	notifier ports.Notifier,
) *commands.DispatchNotificationsCommandHandler {
	h := commands.NewDispatchNotificationsCommandHandler(c.outboxUoWFactory(), notifier)
	return &h
}

func (c *CompositionRoot) CreateGetOrderModificationsQueryHandler() queries.GetOrderModificationsQueryHandler {
	return queries.NewGetOrderModificationsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListModificationsQueryHandler() queries.ListModificationsQueryHandler {
	return queries.NewListModificationsQueryHandler(c.gormDB)
}

// CreateNotifier returns the configured delivery channel. A Redis notifier
// is closed with the root.
func (c *CompositionRoot) CreateNotifier(ctx context.Context) (ports.Notifier, error) {
	switch c.config.NotifierKind {
	case NotifierRedis:
		notifier, err := notify.NewRedisNotifier(ctx, c.config.RedisURL)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, notifier.Close)
		return notifier, nil
	default:
		return notify.NewLogNotifier(c.logger), nil
	}
}

// CreateJobManager wires the outbox relay and the LISTEN/NOTIFY trigger.
func (c *CompositionRoot) CreateJobManager(ctx context.Context) (*jobs.JobManager, error) {
	notifier, err := c.CreateNotifier(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create notifier: %w", err)
	}

	cmd, err := commands.NewDispatchNotificationsCommand(c.config.RelayBatchSize, c.config.MaxDeliveryAttempts)
	if err != nil {
		return nil, err
	}

	relay := jobs.NewNotificationRelayJob(
		c.CreateDispatchNotificationsCommandHandler(notifier),
		cmd,
		c.config.RelaySchedule,
		c.metrics,
		c.logger,
	)
	listener := jobs.NewOutboxListener(c.config.DSN(), outboxrepo.NotifyChannel, relay, c.logger)

	return jobs.NewJobManager(relay, listener), nil
}

func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateRequestModificationCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateReviewModificationCommandHandler(),
		c.CreateGetOrderModificationsQueryHandler(),
		c.CreateListModificationsQueryHandler(),
		c.metrics,
	)
}

func (c *CompositionRoot) CreateRouter(ctx context.Context) (*echo.Echo, error) {
	return httpin.NewRouter(ctx, httpin.RouterConfig{
		Server:  c.CreateServer(),
		Metrics: c.metrics,
		Logger:  c.logger,
		Health:  c.ping,
	})
}

func (c *CompositionRoot) ping(ctx context.Context) error {
	sqlDB, err := c.gormDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases everything the root opened, newest first.
func (c *CompositionRoot) Close() error {
	var closeErrs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		closeErrs = append(closeErrs, c.closers[i]())
	}
	c.closers = nil
	return errors.Join(closeErrs...)
}
