// Package app wires repositories, services and handlers into a router.
package app

import (
	"github.com/jmoiron/sqlx"
	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/jwalitptl/salon-api/internal/config"
	"github.com/jwalitptl/salon-api/internal/email"
	bookingHandler "github.com/jwalitptl/salon-api/internal/handler/booking"
	catalogHandler "github.com/jwalitptl/salon-api/internal/handler/catalog"
	customerHandler "github.com/jwalitptl/salon-api/internal/handler/customer"
	"github.com/jwalitptl/salon-api/internal/handler/health"
	"github.com/jwalitptl/salon-api/internal/handler/prometheus"
	stylistHandler "github.com/jwalitptl/salon-api/internal/handler/stylist"
	"github.com/jwalitptl/salon-api/internal/middleware"
	"github.com/jwalitptl/salon-api/internal/repository/postgres"
	"github.com/jwalitptl/salon-api/internal/router"
	bookingService "github.com/jwalitptl/salon-api/internal/service/booking"
	catalogService "github.com/jwalitptl/salon-api/internal/service/catalog"
	customerService "github.com/jwalitptl/salon-api/internal/service/customer"
	eventService "github.com/jwalitptl/salon-api/internal/service/event"
	"github.com/jwalitptl/salon-api/internal/service/notification"
	stylistService "github.com/jwalitptl/salon-api/internal/service/stylist"
	"github.com/jwalitptl/salon-api/pkg/logger"
	"github.com/jwalitptl/salon-api/pkg/messaging"
	"github.com/jwalitptl/salon-api/pkg/metrics"
	"github.com/jwalitptl/salon-api/pkg/validator"
)

type Deps struct {
	Config   *config.Config
	DB       *sqlx.DB
	Sender   email.Sender
	Broker   messaging.Publisher
	Logger   *logger.Logger
	Registry *prom.Registry
}

// NewRouter builds the HTTP router with every route registered.
func NewRouter(d Deps) *router.Router {
	cfg := d.Config
	validator.Register()

	m := metrics.NewMetrics(cfg.Metrics.Namespace, d.Registry)

	// Initialize repositories
	bookingRepo := postgres.NewBookingRepository(d.DB)
	emailLogRepo := postgres.NewEmailLogRepository(d.DB)
	customerRepo := postgres.NewCustomerRepository(d.DB)
	stylistRepo := postgres.NewStylistRepository(d.DB)
	serviceRepo := postgres.NewServiceRepository(d.DB)

	// Initialize services
	notifier := notification.NewService(customerRepo, emailLogRepo, d.Sender, cfg.Mail.SendTimeout, m, d.Logger)
	events := eventService.NewEventService(d.Broker, cfg.Redis.Channel, m, d.Logger)
	bookingSvc := bookingService.NewService(bookingRepo, emailLogRepo, notifier, events, m, d.Logger)
	customerSvc := customerService.NewService(customerRepo, d.Logger)
	stylistSvc := stylistService.NewService(stylistRepo, d.Logger)
	catalogSvc := catalogService.NewService(serviceRepo, d.Logger)

	r := router.NewRouter(
		router.RouterConfig{
			RequestTimeout:   cfg.Server.RequestTimeout,
			MaxBodyBytes:     cfg.Server.MaxBodyBytes,
			RateLimitEnabled: cfg.RateLimit.Enabled,
			RateLimit: middleware.RateLimiterConfig{
				RPS:     cfg.RateLimit.RequestsPerSecond,
				Burst:   cfg.RateLimit.Burst,
				IdleTTL: cfg.RateLimit.IdleTTL,
			},
			CORSConfig: middleware.CORSConfig{
				AllowOrigins: cfg.CORS.AllowedOrigins,
				AllowMethods: cfg.CORS.AllowedMethods,
				AllowHeaders: cfg.CORS.AllowedHeaders,
			},
			MetricsEnabled: cfg.Metrics.Enabled,
			MetricsPath:    cfg.Metrics.Path,
		},
		d.Logger,
		prometheus.New(d.Registry, m),
		health.NewHandler(d.DB),
		bookingHandler.NewHandler(bookingSvc),
		customerHandler.NewHandler(customerSvc),
		stylistHandler.NewHandler(stylistSvc),
		catalogHandler.NewHandler(catalogSvc),
	)
	r.Setup()
	return r
}
