package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"disputedesk/internal/config"
	"disputedesk/internal/fixtures"
	"disputedesk/internal/id"
	"disputedesk/internal/logger"
	mysqlClient "disputedesk/internal/platform/mysql"
	otelClient "disputedesk/internal/platform/otel"
	rabbitmqClient "disputedesk/internal/platform/rabbitmq"
	redisClient "disputedesk/internal/platform/redis"
	"disputedesk/internal/repository"
	"disputedesk/internal/worker"
)

type App struct {
	Config           *config.Config
	MySQL            *gorm.DB
	Redis            *redis.Client
	MQConn           *amqp.Connection
	TranscriptWorker *worker.TranscriptPersistWorker
	Telemetry        *otelClient.Telemetry

	StartedAt time.Time
}

// Init loads configuration and installs telemetry, logging and the id
// generator. Every command starts here.
func Init(ctx context.Context) (*config.Config, *otelClient.Telemetry, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config failed: %w", err)
	}

	telemetry, err := otelClient.Setup(ctx, cfg.OTel)
	if err != nil {
		return nil, nil, err
	}
	logger.Setup(cfg)

	if err := id.Init(int64(cfg.App.NodeID)); err != nil {
		return nil, nil, fmt.Errorf("init id generator failed: %w", err)
	}
	return cfg, telemetry, nil
}

func New(ctx context.Context) (*App, error) {
	cfg, telemetry, err := Init(ctx)
	if err != nil {
		return nil, err
	}
	app := &App{Config: cfg, Telemetry: telemetry, StartedAt: time.Now()}

	app.MySQL, err = OpenDatabase(ctx, cfg)
	if err != nil {
		return nil, errors.Join(err, app.Close())
	}

	app.Redis, err = redisClient.New(ctx, cfg.Redis)
	if err != nil {
		return nil, errors.Join(err, app.Close())
	}

	app.MQConn, err = rabbitmqClient.New(ctx, cfg.RabbitMQ.URL, cfg.RabbitMQ.TranscriptQueue)
	if err != nil {
		return nil, errors.Join(err, app.Close())
	}

	transcriptRepo := repository.NewTranscriptRepository(app.MySQL)
	app.TranscriptWorker = worker.NewTranscriptPersistWorker(app.MQConn, transcriptRepo, cfg.RabbitMQ.TranscriptQueue)
	if err := app.TranscriptWorker.Start(ctx); err != nil {
		return nil, errors.Join(fmt.Errorf("start transcript worker failed: %w", err), app.Close())
	}

	slog.InfoContext(ctx, "bootstrap complete", "env", cfg.App.Env, "addr", cfg.HTTPAddr())
	return app, nil
}

// OpenDatabase connects to MySQL, migrates the schema and seeds the
// reference cases and transactions.
func OpenDatabase(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	db, err := mysqlClient.New(ctx, cfg.MySQLDSN())
	if err != nil {
		return nil, err
	}
	if err := prepare(ctx, db); err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
		return nil, err
	}
	return db, nil
}

func prepare(ctx context.Context, db *gorm.DB) error {
	if err := mysqlClient.Migrate(db); err != nil {
		return err
	}
	data, err := fixtures.Load()
	if err != nil {
		return err
	}
	return fixtures.Seed(ctx, data,
		repository.NewCaseRepository(db),
		repository.NewTransactionRepository(db),
	)
}

func (a *App) Close() error {
	var errs []error
	if a.TranscriptWorker != nil {
		a.TranscriptWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if a.MySQL != nil {
		if sqlDB, err := a.MySQL.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.Telemetry.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
