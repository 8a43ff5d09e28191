package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/inventrack/inventory-api/docs"
	"github.com/inventrack/inventory-api/internal/api/handler"
	"github.com/inventrack/inventory-api/internal/api/middleware"
	"github.com/inventrack/inventory-api/internal/core/domain"
	"github.com/inventrack/inventory-api/internal/core/ports"
	"github.com/inventrack/inventory-api/internal/core/query"
)

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	AuthService  ports.AuthService
	ItemService  ports.ItemService
	Tokens       ports.TokenVerifier
	Revocations  ports.RevocationStore
	Queries      query.Builder
	HealthChecks []handler.DependencyCheck
	Logger       zerolog.Logger

	// Registry receives the HTTP metrics. Nil means the default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		registerer = d.Registry
		gatherer = prometheus.Gatherers{prometheus.DefaultGatherer, d.Registry}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "inventory",
		Registerer: registerer,
	}))

	authHandler := handler.NewAuthHandler(d.AuthService)
	itemHandler := handler.NewItemHandler(d.ItemService, d.Queries)
	authenticated := middleware.Auth(d.Tokens, d.Revocations, d.Logger)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/register", authHandler.Register, authenticated, adminOnly)
	e.POST("/auth/logout", authHandler.Logout, authenticated)
	e.GET("/auth/me", authHandler.Me, authenticated)

	// --- Item routes ---
	items := e.Group("/items", authenticated)
	items.GET("", itemHandler.List)
	items.GET("/:id", itemHandler.Get)
	items.POST("", itemHandler.Create, adminOnly)
	items.PUT("/:id", itemHandler.Update, adminOnly)
	items.DELETE("/:id", itemHandler.Delete, adminOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.HealthChecks...)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one structured line per request through zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
