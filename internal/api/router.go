package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/warehouse-crm/auth-service/docs"
	"github.com/warehouse-crm/auth-service/internal/api/handler"
	"github.com/warehouse-crm/auth-service/internal/api/middleware"
	"github.com/warehouse-crm/auth-service/internal/core/policy"
	"github.com/warehouse-crm/auth-service/internal/core/ports"
)

// Deps are the services the HTTP layer is built on.
type Deps struct {
	Sessions ports.SessionService
	Accounts ports.AccountService
	// Health maps a dependency name to its readiness probe.
	Health map[string]handler.Pinger
	Logger zerolog.Logger
	// Metrics receives the HTTP request metrics and backs /metrics. The
	// default registry is used when nil.
	Metrics *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Logger))

	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if d.Metrics != nil {
		registerer, gatherer = d.Metrics, d.Metrics
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "warehouse_auth",
		Registerer: registerer,
	}))

	authHandler := handler.NewAuthHandler(d.Sessions, d.Accounts)
	userHandler := handler.NewUserHandler(d.Accounts)
	requireAuth := middleware.Auth(d.Sessions)
	requireManager := middleware.Require(policy.CanManageUsers)

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/register", authHandler.Register)
	auth.POST("/token/refresh", authHandler.Refresh)
	auth.POST("/logout", authHandler.Logout, requireAuth)
	auth.GET("/profile", authHandler.Profile, requireAuth)
	auth.GET("/check-auth", authHandler.CheckAuth)

	// --- User management; finer role checks happen in the account service ---
	users := e.Group("/users", requireAuth)
	users.GET("", userHandler.List, requireManager)
	users.POST("", userHandler.Create)
	users.GET("/pending", userHandler.Pending)
	users.POST("/bulk/activate", userHandler.BulkActivate)
	users.POST("/bulk/deactivate", userHandler.BulkDeactivate)
	users.PATCH("/:id", userHandler.Update, requireManager)
	users.DELETE("/:id", userHandler.Delete, requireManager)
	users.POST("/:id/activate", userHandler.Activate)
	users.POST("/:id/deactivate", userHandler.Deactivate)

	// --- Probes, metrics and docs (no auth required) ---
	healthHandler := handler.NewHealthHandler(d.Health)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
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
