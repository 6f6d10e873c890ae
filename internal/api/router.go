package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/hikeplan/trip-planner/docs"
	"github.com/hikeplan/trip-planner/internal/api/handler"
	"github.com/hikeplan/trip-planner/internal/api/middleware"
	"github.com/hikeplan/trip-planner/internal/core/ports"
)

// Dependencies are the collaborators the HTTP layer is built from.
type Dependencies struct {
	Fields    ports.FieldService
	Overrides ports.OverrideService
	Admins    ports.AdminService
	JWTSecret string
	// Readiness lists the dependencies probed by /health/ready.
	Readiness map[string]handler.Pinger
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddleware("tripplanner"))

	// --- Ops endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Readiness)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Authenticated API ---
	fieldHandler := handler.NewFieldHandler(deps.Fields)
	adminHandler := handler.NewAdminHandler(deps.Overrides, deps.Admins)

	v1 := e.Group("/v1", middleware.Auth(deps.JWTSecret), middleware.ResolveAdmin(deps.Admins))

	users := v1.Group("/users/:user_id/fields/:field")
	users.GET("", fieldHandler.Get)
	users.PUT("", fieldHandler.Put)
	users.GET("/watch", fieldHandler.Watch)

	admin := v1.Group("/admin", middleware.RequireAdmin())
	admin.PUT("/users/:user_id/fields/:field/override", adminHandler.SetOverride)
	admin.GET("/lock-statuses", adminHandler.ListLockStatuses)
	admin.PUT("/users/:user_id/admin", adminHandler.SetAdmin)
	admin.DELETE("/users/:user_id", adminHandler.RemoveMember)

	return e
}

// requestLogger emits one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	log = log.With().Str("component", "http").Logger()
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics" || c.Path() == "/health"
		},
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
