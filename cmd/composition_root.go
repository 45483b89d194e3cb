package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	httpadapter "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/badgerstore"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/rabbitmq"
	"fulfillment/internal/core/application/workflow"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"

	"github.com/labstack/echo/v4"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// CompositionRoot owns the process-wide dependencies. Close releases them in
// reverse order of acquisition.
type CompositionRoot struct {
	cfg    Config
	logger *slog.Logger

	gormDB     *gorm.DB
	uowFactory ports.UnitOfWorkFactory
	facade     *workflow.Facade

	closers []func() error
}

func NewCompositionRoot(cfg Config, logger *slog.Logger) (*CompositionRoot, error) {
	root := &CompositionRoot{cfg: cfg, logger: logger}

	publisher, err := root.openPublisher()
	if err != nil {
		return nil, errors.Join(err, root.Close())
	}

	if err = root.openStore(publisher); err != nil {
		return nil, errors.Join(err, root.Close())
	}

	root.facade = workflow.NewFacade(
		root.uowFactory,
		kernel.SystemClock{},
		services.NewStatisticsAggregator(cfg.StatsLocation),
		logger,
	)
	return root, nil
}

// openPublisher returns nil when notifications are disabled. A nil publisher
// makes the units of work drop their events.
func (c *CompositionRoot) openPublisher() (ports.EventPublisher, error) {
	if c.cfg.RabbitMQURL == "" {
		c.logger.Info("order status notifications disabled")
		return nil, nil
	}

	conn, err := rabbitmq.Dial(c.cfg.RabbitMQURL)
	if err != nil {
		return nil, err
	}
	c.closers = append(c.closers, conn.Close)

	publisher := rabbitmq.NewPublisher(conn, c.cfg.RabbitMQExchange)
	c.closers = append(c.closers, publisher.Close)
	return publisher, nil
}

func (c *CompositionRoot) openStore(publisher ports.EventPublisher) error {
	switch c.cfg.StoreDriver {
	case StoreDriverBadger:
		db, err := badgerstore.Open(c.cfg.BadgerPath, c.logger)
		if err != nil {
			return fmt.Errorf("failed to open badger store: %w", err)
		}
		c.closers = append(c.closers, db.Close)
		c.uowFactory = badgerstore.NewUnitOfWorkFactory(db, publisher, c.logger)
		return nil

	case StoreDriverPostgres:
		db, err := gorm.Open(gorm_postgres.Open(c.cfg.DSN()), &gorm.Config{
			TranslateError: true,
			Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		})
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		c.closers = append(c.closers, sqlDB.Close)
		c.gormDB = db
		c.uowFactory = postgres.NewGormUnitOfWorkFactory(db, publisher, c.logger)
		return nil

	default:
		return fmt.Errorf("unknown store driver %q", c.cfg.StoreDriver)
	}
}

func (c *CompositionRoot) Facade() *workflow.Facade {
	return c.facade
}

// Migrate creates the Postgres schema. The Badger store has none.
func (c *CompositionRoot) Migrate() error {
	if c.gormDB == nil {
		return nil
	}
	return postgres.Migrate(c.gormDB)
}

func (c *CompositionRoot) NewRouter() (*echo.Echo, error) {
	return httpadapter.NewRouter(httpadapter.NewServer(c.facade), c.logger)
}

func (c *CompositionRoot) NewJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.facade, c.cfg.Jobs(), c.logger)
}

func (c *CompositionRoot) Close() error {
	var err error
	for i := len(c.closers) - 1; i >= 0; i-- {
		err = errors.Join(err, c.closers[i]())
	}
	c.closers = nil
	return err
}
