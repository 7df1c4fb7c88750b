package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"disputedesk/internal/agent"
	appsvc "disputedesk/internal/app"
	"disputedesk/internal/bootstrap"
	"disputedesk/internal/cache"
	"disputedesk/internal/id"
	"disputedesk/internal/notify"
	"disputedesk/internal/platform/rabbitmq"
	"disputedesk/internal/repository"
	"disputedesk/internal/transport/http/handler"
	"disputedesk/internal/transport/http/middleware"
)

type Services struct {
	Portal  *appsvc.PortalService
	Uploads *appsvc.UploadService
}

func NewServices(app *bootstrap.App) Services {
	cfg := app.Config

	assetRepo := repository.NewAssetRepository(app.MySQL)
	uploadService := appsvc.NewUploadService(assetRepo, appsvc.UploadOptions{
		Dir:               cfg.Upload.Dir,
		StagingDir:        cfg.Upload.StagingDir,
		MaxFileSize:       int64(cfg.Upload.MaxFileSizeMB) << 20,
		AllowedExtensions: cfg.Upload.AllowedExtensions,
	}, id.New)

	portalService := appsvc.NewPortalService(appsvc.PortalDeps{
		Sessions: cache.NewSessionStore(app.Redis, time.Duration(cfg.Redis.SessionTTLSeconds)*time.Second),
		Guard:    cache.NewGuard(app.Redis, time.Duration(cfg.Redis.LockTTLSeconds)*time.Second),
		Notices:  notify.NewRedisSink(app.Redis),
		Delays: notify.Delays{
			General:    time.Duration(cfg.Notify.GeneralTTLMillis) * time.Millisecond,
			Validation: time.Duration(cfg.Notify.ValidationTTLMillis) * time.Millisecond,
		},
		Agents: agent.NewClient(agent.Config{
			Endpoint: cfg.Agent.Endpoint,
			APIKey:   cfg.Agent.APIKey,
			Timeout:  time.Duration(cfg.Agent.TimeoutSeconds) * time.Second,
		}),
		Cases:            repository.NewCaseRepository(app.MySQL),
		Transactions:     repository.NewTransactionRepository(app.MySQL),
		Assets:           assetRepo,
		Uploads:          uploadService,
		Publisher:        rabbitmq.NewTranscriptPublisher(app.MQConn, cfg.RabbitMQ.TranscriptQueue),
		TokenSecret:      cfg.Auth.JWTSecret,
		TokenTTL:         time.Duration(cfg.Auth.JWTExpireMinute) * time.Minute,
		CustomerMaxFiles: cfg.Upload.CustomerMaxFiles,
		MerchantMaxFiles: cfg.Upload.MerchantMaxFiles,
		NewID:            id.New,
	})

	return Services{Portal: portalService, Uploads: uploadService}
}

func NewRouter(app *bootstrap.App) http.Handler {
	cfg := app.Config
	gin.SetMode(cfg.App.GinMode)
	router := gin.New()
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.Logger(), middleware.Recovery())

	health := handler.NewHealthHandler(cfg.App.Name, cfg.App.Env, app.StartedAt,
		handler.DependencyCheck{Name: "mysql", Check: func(ctx context.Context) error {
			sqlDB, err := app.MySQL.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}},
		handler.DependencyCheck{Name: "redis", Check: func(ctx context.Context) error {
			return app.Redis.Ping(ctx).Err()
		}},
		handler.DependencyCheck{Name: "rabbitmq", Check: func(context.Context) error {
			if app.MQConn == nil || app.MQConn.IsClosed() {
				return errors.New("connection closed")
			}
			return nil
		}},
	)

	SetupRoutes(router, NewHandlers(NewServices(app), health), cfg.Auth.JWTSecret)
	return WithCORS(router, cfg.App.CORSAllowedOrigins)
}

// WithCORS lets the browser portals on another origin call the API.
func WithCORS(h http.Handler, origins []string) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: false,
		MaxAge:           300,
	})(h)
}
