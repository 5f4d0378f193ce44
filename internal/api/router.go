package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/stockflow/dashboard/docs"
	"github.com/stockflow/dashboard/internal/api/handler"
	"github.com/stockflow/dashboard/internal/api/middleware"
	"github.com/stockflow/dashboard/internal/core/domain"
	"github.com/stockflow/dashboard/internal/core/guard"
	"github.com/stockflow/dashboard/internal/core/ports"
	"github.com/stockflow/dashboard/internal/core/session"
	"github.com/stockflow/dashboard/internal/core/shell"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Log      zerolog.Logger
	Sessions *session.Store
	Guard    *guard.Guard
	Layout   *shell.Layout
	Auth     ports.AuthService
	Events   handler.EventDispatcher
	Audit    ports.SessionEventRepository
	// Health lists the dependencies pinged by the readiness probe.
	Health map[string]ports.Pinger
	// Registerer receives the HTTP request metrics. Defaults to the
	// Prometheus default registerer.
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	reg := d.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "stockflow",
		Registerer: reg,
	}))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(d.Auth, d.Sessions, d.Layout, d.Events, d.Log)
	shellHandler := handler.NewShellHandler(d.Layout)
	auditHandler := handler.NewAuditHandler(d.Audit)
	requireSession := middleware.RequireSession(d.Sessions)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/forgot-password", authHandler.ForgotPassword)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/auth/session", authHandler.Session)

	// --- Shell state ---
	// Middleware is attached per route: a group would claim every path under
	// its prefix and keep unknown pages away from the guard.
	e.GET("/shell/sidebar", shellHandler.Sidebar, requireSession)
	e.POST("/shell/sidebar/open", shellHandler.OpenSidebar, requireSession)
	e.POST("/shell/sidebar/close", shellHandler.CloseSidebar, requireSession)
	e.POST("/shell/sidebar/toggle", shellHandler.ToggleSidebar, requireSession)

	// --- Audit (admin only) ---
	e.GET("/audit/sessions", auditHandler.List, requireSession, middleware.RBAC(domain.RoleAdmin))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Health)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness) // pings storage

	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Pages: everything else goes through the route guard ---
	pages := e.Group("", middleware.Provide(d.Sessions), middleware.Guard(d.Guard, d.Sessions))
	for _, r := range d.Guard.Routes() {
		pages.GET(r.Path, shellHandler.Page)
	}
	pages.GET("/*", shellHandler.Page)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
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
